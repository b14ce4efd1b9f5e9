// Package tui implements the interactive habit board: a bubbletea app with
// a habit list, per-habit completion grids, and calendar navigation across
// day/week/month/year buckets.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/strideapp/stride/internal/engine"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
	"github.com/strideapp/stride/internal/tui/components/board"
	"github.com/strideapp/stride/internal/tui/components/grid"
)

type sessionState int

const (
	stateBoard sessionState = iota
	stateGrid
	stateAddHabit
	stateConfirmDelete
)

type habitFormModel struct {
	Name string
	Kind models.HabitKind
}

type Model struct {
	engine *engine.Engine
	state  sessionState
	keys   KeyMap
	help   help.Model

	board board.Model
	grid  grid.Model

	// Calendar position shared by the board and the grid.
	granularity period.Granularity
	anchor      time.Time

	form          *huh.Form
	habitForm     *habitFormModel
	habitToDelete models.Habit

	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(eng *engine.Engine) Model {
	m := Model{
		engine:      eng,
		state:       stateBoard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		board:       board.New(0, 0),
		grid:        grid.New(0, 0),
		granularity: period.Month,
		anchor:      eng.Today(),
	}
	m.refreshBoard()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Granularity, m.keys.Prev, m.keys.Next, m.keys.Today}
	switch m.state {
	case stateBoard:
		keys = append(keys, m.board.HelpKeys()...)
	case stateGrid:
		keys = append(keys, m.keys.Back)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Granularity, m.keys.Prev, m.keys.Next, m.keys.Today}
	return [][]key.Binding{global, navigation, m.board.HelpKeys()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshBoard rebuilds the habit rows: one completion map per habit covers
// both the anchor day's mark and the streak.
func (m *Model) refreshBoard() {
	habits, err := m.engine.Habits()
	if err != nil {
		m.statusMsg = fmt.Sprintf("Failed to load habits: %v", err)
		m.board.SetRows(nil)
		return
	}

	today := m.engine.Today()
	anchorKey := period.FormatDay(period.Normalize(m.anchor, m.engine.Resolver().Location))

	rows := make([]board.Item, 0, len(habits))
	for _, habit := range habits {
		completions, err := m.engine.CompletionMap(habit.ID, period.Month, m.anchor)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Failed to load completions: %v", err)
			completions = map[string]bool{}
		}
		rows = append(rows, board.Item{
			Habit:     habit,
			Completed: completions[anchorKey],
			Streak:    engine.CurrentStreak(completions, today),
		})
	}
	m.board.SetRows(rows)
}

// refreshGrid rebuilds the grid for the habit under the cursor.
func (m *Model) refreshGrid() {
	sel, ok := m.board.Selected()
	if !ok {
		m.state = stateBoard
		return
	}

	cells, err := m.engine.Resolver().PaddedGrid(m.granularity, m.anchor)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Failed to resolve bucket: %v", err)
		return
	}
	completions, err := m.engine.CompletionMap(sel.Habit.ID, m.granularity, m.anchor)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Failed to load completions: %v", err)
		return
	}

	today := m.engine.Today()
	m.grid.SetData(sel.Habit.Name, m.granularity, cells, completions,
		engine.CurrentStreak(completions, today),
		engine.DisplayPercentage(completions, today))
}

// refresh rebuilds whatever the current state displays.
func (m *Model) refresh() {
	m.refreshBoard()
	if m.state == stateGrid {
		m.refreshGrid()
	}
}

func newHabitForm(fm *habitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.HabitKind]().
				Title("Kind").
				Options(
					huh.NewOption("Good", models.HabitKindGood),
					huh.NewOption("Bad", models.HabitKindBad),
					huh.NewOption("Neutral", models.HabitKindNeutral),
				).
				Value(&fm.Kind),
		),
	).WithTheme(huh.ThemeDracula())
}
