// Package system implements the lifecycle commands: init, migrate, doctor,
// and the TUI launcher.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/constants"
	"github.com/strideapp/stride/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Existing database (file path or connection string) to copy habits and history from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized stride storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Importing data from: %s\n", c.Source)
		if err := c.importFrom(ctx); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Println("Import complete.")
	}
	return nil
}

// reset deletes the SQLite database file so Init starts from nothing.
// Dropping a PostgreSQL schema stays a server-side operation.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Config.IsPostgres() {
		return fmt.Errorf("--force cannot drop a PostgreSQL database; drop the %s schema server-side instead", constants.AppName)
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" && samePath(c.Source, dbPath) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
	}

	switch _, err := os.Stat(dbPath); {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	// Close before removing so the file is not held open.
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// importFrom copies settings, habits, and completion history out of
// another database into the freshly initialized one. Rows keep their IDs
// and timestamps, so streaks and history carry over unchanged.
func (c *InitCmd) importFrom(ctx *cli.Context) error {
	source, err := openSource(c.Source)
	if err != nil {
		return err
	}
	defer source.Close()

	fmt.Println("  Copying settings...")
	settings, err := source.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	// Habits before completions; the PostgreSQL schema enforces the
	// foreign key.
	fmt.Println("  Copying habits...")
	habits, err := source.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to read habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.Name, err)
		}
	}
	fmt.Printf("    %d habit(s)\n", len(habits))

	fmt.Println("  Copying completion history...")
	completions, err := source.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to read completions from source: %w", err)
	}
	for _, completion := range completions {
		if err := ctx.Store.AddCompletion(completion); err != nil {
			return fmt.Errorf("failed to add completion for %s on %s: %w", completion.HabitID, completion.Day, err)
		}
	}
	fmt.Printf("    %d completion(s)\n", len(completions))

	return nil
}

// openSource builds and loads a store for the import source. Connection
// strings go to PostgreSQL; anything else is treated as a SQLite path.
func openSource(source string) (storage.Provider, error) {
	var store storage.Provider
	if strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://") {
		if storage.HasEmbeddedCredentials(source) {
			return nil, fmt.Errorf("source connection string must not contain a password; use PGPASSWORD or .pgpass")
		}
		store = storage.NewPostgresStore(source)
	} else {
		store = storage.NewSQLiteStore(source)
	}
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load source database: %w", err)
	}
	return store, nil
}
