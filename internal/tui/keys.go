package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Granularity key.Binding
	Prev        key.Binding
	Next        key.Binding
	Today       key.Binding
	Back        key.Binding
	Quit        key.Binding
	Help        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Granularity: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "granularity"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "earlier"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "later"),
		),
		Today: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "today"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
