package track

import (
	"fmt"
	"strings"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
)

const logNameWidth = 20

type LogCmd struct {
	Habit string `arg:"" optional:"" help:"Show the log for a single habit."`
	Days  int    `help:"Number of days to show." default:"14"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be positive")
	}

	var habits []models.Habit
	var err error
	if c.Habit != "" {
		habit, err := ctx.Engine.HabitByName(c.Habit)
		if err != nil {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		habits = []models.Habit{habit}
	} else {
		habits, err = ctx.Engine.Habits()
		if err != nil {
			return err
		}
	}
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'stride habit add <name>'.")
		return nil
	}

	today := ctx.Engine.Today()
	start := today.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	fmt.Print(strings.Repeat(" ", logNameWidth))
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", start.AddDate(0, 0, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", logNameWidth+6*c.Days))

	for _, habit := range habits {
		history, err := ctx.Engine.History(habit.ID, c.Days)
		if err != nil {
			return err
		}

		fmt.Print(padName(habit.Name, logNameWidth))
		for i := 0; i < c.Days; i++ {
			key := period.FormatDay(start.AddDate(0, 0, i))
			if history[key] {
				fmt.Print("  x   ")
			} else {
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}
	return nil
}

// padName pads or truncates a habit name to the log column width.
func padName(name string, width int) string {
	if len(name) > width {
		if width >= 5 {
			return name[:width-3] + "..."
		}
		return name[:width]
	}
	return name + strings.Repeat(" ", width-len(name))
}
