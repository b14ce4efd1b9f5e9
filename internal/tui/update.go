package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
	"github.com/strideapp/stride/internal/tui/components/board"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == stateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.statusMsg = ""
			m.state = stateBoard
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if _, err := m.engine.CreateHabit(m.habitForm.Name, m.habitForm.Kind); err != nil {
				// Stay in the form so the user can correct and retry.
				m.statusMsg = fmt.Sprintf("Failed to add habit: %v", err)
				m.form.State = huh.StateNormal
			} else {
				m.statusMsg = ""
				m.refreshBoard()
				m.state = stateBoard
			}
		case huh.StateAborted:
			m.statusMsg = ""
			m.state = stateBoard
		}
		return m, tea.Batch(cmds...)
	}

	if m.state == stateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.engine.DeleteHabit(m.habitToDelete.ID); err != nil {
					m.statusMsg = fmt.Sprintf("Failed to delete habit: %v", err)
				} else {
					m.statusMsg = ""
				}
				m.habitToDelete = models.Habit{}
				m.refreshBoard()
				m.state = stateBoard
			case "n", "N", "esc", "q":
				m.habitToDelete = models.Habit{}
				m.state = stateBoard
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		h, v := docStyle.GetFrameSize()
		contentHeight := msg.Height - 4
		m.board.SetSize(msg.Width-h, contentHeight-v)
		m.grid.SetSize(msg.Width-h, contentHeight-v)

	case board.AddHabitMsg:
		m.habitForm = &habitFormModel{Kind: models.HabitKindGood}
		m.form = newHabitForm(m.habitForm)
		m.state = stateAddHabit
		return m, m.form.Init()

	case board.ToggleHabitMsg:
		if _, err := m.engine.ToggleCompletion(msg.ID, m.anchor); err != nil {
			m.statusMsg = fmt.Sprintf("Failed to toggle: %v", err)
		} else {
			m.statusMsg = ""
		}
		m.refreshBoard()
		return m, nil

	case board.DeleteHabitMsg:
		m.habitToDelete = msg.Habit
		m.state = stateConfirmDelete
		return m, nil

	case board.OpenGridMsg:
		m.state = stateGrid
		m.refreshGrid()
		return m, nil

	case tea.KeyMsg:
		// Let the board's filter input capture everything while it is open.
		if m.state == stateBoard && m.board.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Granularity):
			m.granularity = nextGranularity(m.granularity)
			m.anchor = m.engine.Lookback().Clamp(m.anchor, m.engine.Today(), m.granularity)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if anchor, ok := m.engine.Lookback().Back(m.anchor, m.engine.Today(), m.granularity); ok {
				m.anchor = anchor
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			if anchor, ok := m.engine.Lookback().Forward(m.anchor, m.engine.Today(), m.granularity); ok {
				m.anchor = anchor
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.anchor = m.engine.Today()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			if m.state == stateGrid {
				m.state = stateBoard
				return m, nil
			}
		}
	}

	if m.state == stateBoard {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func nextGranularity(g period.Granularity) period.Granularity {
	all := period.Granularities()
	for i, cur := range all {
		if cur == g {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
