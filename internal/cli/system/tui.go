package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Snapshot the database before an interactive session; the TUI is
	// where most edits happen.
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
