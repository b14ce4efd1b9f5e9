package track

import (
	"fmt"

	"github.com/strideapp/stride/internal/cli"
)

type StatsCmd struct {
	Habit       string `arg:"" help:"Habit name."`
	Granularity string `arg:"" optional:"" help:"Period to score: day, week, month, or year." default:"month"`
	Anchor      string `help:"Anchor date in YYYY-MM-DD format (default: today)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Engine.HabitByName(c.Habit)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Habit)
	}

	g, anchor, err := ctx.Anchor(c.Granularity, c.Anchor)
	if err != nil {
		return err
	}

	stats, err := ctx.Engine.Statistics(habit.ID, g, anchor)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", habit.Name, bucketTitle(ctx.Engine.Resolver(), g, anchor))
	fmt.Printf("  Current streak:   %d\n", stats.Streak)
	fmt.Printf("  Completion rate:  %.2f\n", stats.Rate)
	fmt.Printf("  Completed:        %d%%\n", stats.Percent)
	return nil
}
