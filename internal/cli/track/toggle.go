// Package track implements the day-to-day tracking commands: toggling
// completions and reading status, grids, stats, and history.
package track

import (
	"fmt"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/period"
)

type ToggleCmd struct {
	Habit string `arg:"" help:"Habit name."`
	Date  string `help:"Day to toggle in YYYY-MM-DD format (default: today)."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Engine.HabitByName(c.Habit)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Habit)
	}

	day, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	// Only days inside the navigable window can be edited.
	clamped := ctx.Engine.Lookback().Clamp(day, ctx.Engine.Today(), period.Day)
	if !period.SameDay(clamped, day) {
		return fmt.Errorf("date %s is outside the navigable window", period.FormatDay(day))
	}

	completed, err := ctx.Engine.ToggleCompletion(habit.ID, day)
	if err != nil {
		return err
	}

	key := period.FormatDay(period.Normalize(day, ctx.Engine.Resolver().Location))
	if completed {
		fmt.Printf("Marked habit %q for %s\n", habit.Name, key)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Name, key)
	}
	return nil
}
