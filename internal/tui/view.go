package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/strideapp/stride/internal/period"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateBoard:
		content = docStyle.Render(m.board.View())
	case stateGrid:
		content = docStyle.Render(m.grid.View())
	case stateAddHabit:
		content = m.form.View()
	case stateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.statusMsg != "" {
		status = warningStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		status,
		m.help.View(m),
	)
}

// viewHeader shows the granularity tabs and the anchor bucket's title.
func (m Model) viewHeader() string {
	var tabs []string
	for _, g := range period.Granularities() {
		title := titleCase(string(g))
		if g == m.granularity {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	bucket := bucketTitle(m.engine.Resolver(), m.granularity, m.anchor)
	return lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", headerTitleStyle.Render(bucket))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and its whole completion history?", m.habitToDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func bucketTitle(r period.Resolver, g period.Granularity, anchor time.Time) string {
	switch g {
	case period.Day:
		return anchor.Format("Monday, January 2 2006")
	case period.Week:
		rng, err := r.RangeFor(period.Week, anchor)
		if err != nil {
			return period.FormatDay(anchor)
		}
		return fmt.Sprintf("Week of %s", rng.Start.Format("January 2, 2006"))
	case period.Month:
		return anchor.Format("January 2006")
	case period.Year:
		return anchor.Format("2006")
	}
	return period.FormatDay(anchor)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
