// Package grid renders one habit's completion grid for a calendar bucket.
// Month and year buckets come pre-padded from the resolver, so the renderer
// only walks cells; day and week buckets render as a single strip.
package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/strideapp/stride/internal/period"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	missedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

type Model struct {
	habitName   string
	granularity period.Granularity
	cells       []period.GridCell
	completions map[string]bool
	streak      int
	percent     int
	width       int
	height      int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetData replaces the rendered habit and bucket in one shot.
func (m *Model) SetData(habitName string, g period.Granularity, cells []period.GridCell, completions map[string]bool, streak, percent int) {
	m.habitName = habitName
	m.granularity = g
	m.cells = cells
	m.completions = completions
	m.streak = streak
	m.percent = percent
}

func (m Model) View() string {
	if len(m.cells) == 0 {
		return "\n  No habit selected."
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render(m.habitName))
	b.WriteString("\n\n")

	columns := m.columns()
	for i, cell := range m.cells {
		switch {
		case cell.Empty:
			b.WriteString("  ")
		case m.completions[period.FormatDay(cell.Date)]:
			b.WriteString(completedStyle.Render("■") + " ")
		default:
			b.WriteString(missedStyle.Render("·") + " ")
		}
		if (i+1)%columns == 0 {
			b.WriteString("\n")
		}
	}
	if len(m.cells)%columns != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Current streak: %d   Completed: %d%%", m.streak, m.percent)))
	return b.String()
}

func (m Model) columns() int {
	switch m.granularity {
	case period.Month:
		return period.MonthGridColumns
	case period.Year:
		return period.YearGridColumns
	default:
		// Day and week buckets render as one strip.
		if len(m.cells) == 0 {
			return 1
		}
		return len(m.cells)
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
