// Package habits implements the habit management subcommands.
package habits

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits." default:"1"`
	Rename HabitRenameCmd `cmd:"" help:"Rename a habit."`
	Kind   HabitKindCmd   `cmd:"" help:"Change a habit's kind."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
	Kind string `help:"Habit kind." enum:"good,bad,neutral" default:"good"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseHabitKind(c.Kind)
	if err != nil {
		return err
	}
	habit, err := ctx.Engine.CreateHabit(c.Name, kind)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s)\n", habit.Name, habit.Kind)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Engine.Habits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'stride habit add <name>'.")
		return nil
	}
	for _, habit := range habits {
		fmt.Printf("%-24s %-8s added %s\n", habit.Name, habit.Kind, humanize.Time(habit.CreatedAt))
	}
	return nil
}

type HabitRenameCmd struct {
	Name    string `arg:"" help:"Current habit name."`
	NewName string `arg:"" help:"New habit name."`
}

func (c *HabitRenameCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Engine.HabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	renamed, err := ctx.Engine.RenameHabit(habit.ID, c.NewName)
	if err != nil {
		return err
	}
	fmt.Printf("Renamed habit %q to %q\n", c.Name, renamed.Name)
	return nil
}

type HabitKindCmd struct {
	Name string `arg:"" help:"Habit name."`
	Kind string `arg:"" help:"New kind (good, bad, or neutral)." enum:"good,bad,neutral"`
}

func (c *HabitKindCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Engine.HabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	kind, err := models.ParseHabitKind(c.Kind)
	if err != nil {
		return err
	}
	if _, err := ctx.Engine.SetHabitKind(habit.ID, kind); err != nil {
		return err
	}
	fmt.Printf("Changed habit %q to kind %s\n", habit.Name, kind)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Engine.HabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	// Deleting removes the habit's whole completion history, so snapshot
	// the database first.
	ctx.PerformAutomaticBackup()

	if err := ctx.Engine.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
