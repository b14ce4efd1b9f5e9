package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/cli/backups"
	"github.com/strideapp/stride/internal/cli/habits"
	"github.com/strideapp/stride/internal/cli/settings"
	"github.com/strideapp/stride/internal/cli/system"
	"github.com/strideapp/stride/internal/cli/track"
	"github.com/strideapp/stride/internal/config"
	"github.com/strideapp/stride/internal/constants"
	"github.com/strideapp/stride/internal/engine"
	"github.com/strideapp/stride/internal/errors"
	"github.com/strideapp/stride/internal/logger"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Storage string `help:"SQLite file path or PostgreSQL connection string, overriding the config file. For PostgreSQL, credentials must NOT be embedded in the connection string."`

	Init    system.InitCmd    `cmd:"" help:"Initialize stride storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive habit board." default:"1"`

	Toggle track.ToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Status track.StatusCmd `cmd:"" help:"Show today's completions and streaks."`
	View   track.ViewCmd   `cmd:"" help:"Render a completion grid for a period."`
	Stats  track.StatsCmd  `cmd:"" help:"Show statistics for one habit."`
	Log    track.LogCmd    `cmd:"" help:"Show a trailing completion log."`

	Habit  habits.HabitCmd `cmd:"" help:"Manage habits."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal habit tracker with streaks and completion grids"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errors.Fatalf("failed to load config: %v", err)
	}
	if CLI.Storage != "" {
		cfg.Storage = CLI.Storage
	}

	if dir, err := config.Dir(); err == nil {
		if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: dir}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
		}
	}

	var store storage.Provider
	if cfg.IsPostgres() {
		// Refuse connection strings that carry a password; those end up in
		// shell history and the config file.
		if storage.HasEmbeddedCredentials(cfg.Storage) {
			fmt.Fprintf(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use one of these alternatives:\n")
			fmt.Fprintf(os.Stderr, "       1. Environment:  export PGPASSWORD=... and connect as \"postgresql://user@host:5432/stride\"\n")
			fmt.Fprintf(os.Stderr, "       2. .pgpass file: use a connection string without a password\n")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(cfg.Storage)
	} else {
		store = storage.NewSQLiteStore(cfg.Storage)
	}

	// init creates storage itself, and doctor reports reachability itself;
	// every other command needs a loaded store up front.
	loaded := false
	switch commandName(ctx) {
	case "init":
	case "doctor":
		loaded = store.Load() == nil
	default:
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		loaded = true
	}

	var userSettings models.Settings
	if loaded {
		if s, err := store.GetSettings(); err == nil {
			userSettings = s
		}
	}
	models.ApplyDefaultSettings(&userSettings)
	resolver, lookback := engine.CalendarFromSettings(userSettings)

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Engine: engine.New(store, resolver, lookback),
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func commandName(ctx *kong.Context) string {
	if node := ctx.Selected(); node != nil {
		return node.Name
	}
	return ""
}
