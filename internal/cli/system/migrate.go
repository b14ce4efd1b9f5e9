package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/migration"
	"github.com/strideapp/stride/internal/storage"
	"github.com/strideapp/stride/migrations"
)

type MigrateCmd struct {
	Status bool `help:"Show migration status without applying anything."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := newMigrationRunner(ctx)
	if err != nil {
		return err
	}

	if c.Status {
		current, err := runner.GetCurrentVersion()
		if err != nil {
			return fmt.Errorf("failed to get current schema version: %w", err)
		}
		latest, err := runner.GetLatestVersion()
		if err != nil {
			return fmt.Errorf("failed to get latest schema version: %w", err)
		}

		fmt.Printf("Current schema version: %d\n", current)
		fmt.Printf("Latest schema version:  %d\n", latest)
		if current >= latest {
			fmt.Println("Database is up to date.")
		} else {
			fmt.Printf("%d migration(s) pending. Run 'stride migrate' to apply.\n", latest-current)
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

// newMigrationRunner builds a migration runner for whichever storage
// provider the context carries, selecting the matching embedded SQL set.
func newMigrationRunner(ctx *cli.Context) (*migration.Runner, error) {
	var (
		db     *sql.DB
		driver migration.Driver
		dir    string
	)
	switch store := ctx.Store.(type) {
	case *storage.SQLiteStore:
		db, driver, dir = store.GetDB(), migration.DriverSQLite, "sqlite"
	case *storage.PostgresStore:
		db, driver, dir = store.GetDB(), migration.DriverPostgres, "postgres"
	default:
		return nil, fmt.Errorf("unsupported storage provider")
	}
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}
	return migration.NewRunner(db, subFS, driver)
}

// storeDB extracts the raw database handle from the active provider.
func storeDB(ctx *cli.Context) (*sql.DB, error) {
	var db *sql.DB
	switch store := ctx.Store.(type) {
	case *storage.SQLiteStore:
		db = store.GetDB()
	case *storage.PostgresStore:
		db = store.GetDB()
	default:
		return nil, fmt.Errorf("unsupported storage provider")
	}
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return db, nil
}
