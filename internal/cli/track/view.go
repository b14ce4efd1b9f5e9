package track

import (
	"fmt"
	"time"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
)

type ViewCmd struct {
	Granularity string `arg:"" optional:"" help:"Period to render: day, week, month, or year." default:"month"`
	Anchor      string `help:"Anchor date in YYYY-MM-DD format (default: today)."`
	Habit       string `help:"Limit the view to a single habit."`
}

func (c *ViewCmd) Run(ctx *cli.Context) error {
	g, anchor, err := ctx.Anchor(c.Granularity, c.Anchor)
	if err != nil {
		return err
	}

	var habits []models.Habit
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

	resolver := ctx.Engine.Resolver()
	cells, err := resolver.PaddedGrid(g, anchor)
	if err != nil {
		return err
	}

	fmt.Println(bucketTitle(resolver, g, anchor))
	for _, habit := range habits {
		m, err := ctx.Engine.CompletionMap(habit.ID, g, anchor)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", habit.Name)
		printGrid(cells, m, columnsFor(g, len(cells)))
	}
	return nil
}

// columnsFor picks the row width for a granularity. Day and week buckets
// render as a single strip.
func columnsFor(g period.Granularity, cellCount int) int {
	switch g {
	case period.Month:
		return period.MonthGridColumns
	case period.Year:
		return period.YearGridColumns
	}
	return cellCount
}

func printGrid(cells []period.GridCell, m map[string]bool, columns int) {
	if columns <= 0 {
		columns = len(cells)
	}
	for i, cell := range cells {
		switch {
		case cell.Empty:
			fmt.Print("  ")
		case m[period.FormatDay(cell.Date)]:
			fmt.Print("x ")
		default:
			fmt.Print(". ")
		}
		if (i+1)%columns == 0 {
			fmt.Println()
		}
	}
	if len(cells)%columns != 0 {
		fmt.Println()
	}
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
