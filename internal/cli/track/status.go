package track

import (
	"fmt"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/engine"
	"github.com/strideapp/stride/internal/period"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Engine.Habits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'stride habit add <name>'.")
		return nil
	}

	today := ctx.Engine.Today()
	todayKey := period.FormatDay(today)
	fmt.Printf("Habits for %s:\n\n", todayKey)

	done := 0
	for _, habit := range habits {
		// One month map per habit covers both today's mark and the streak.
		m, err := ctx.Engine.CompletionMap(habit.ID, period.Month, today)
		if err != nil {
			return err
		}
		mark := "○"
		if m[todayKey] {
			mark = "✓"
			done++
		}
		fmt.Printf("%s %-24s streak %d\n", mark, habit.Name, engine.CurrentStreak(m, today))
	}

	fmt.Printf("\nDone: %d/%d\n", done, len(habits))
	return nil
}
