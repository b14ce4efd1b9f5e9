package system

import (
	"fmt"
	"time"

	"github.com/strideapp/stride/internal/backup"
	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
)

type DoctorCmd struct{}

// healthCheck is one doctor diagnostic. Checks that need the database are
// skipped when it cannot be reached; warn-only checks never fail the run.
type healthCheck struct {
	name     string
	fn       func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	checks := []healthCheck{
		{name: "Schema version", fn: checkSchemaVersion, needsDB: true},
		{name: "Migrations complete", fn: checkMigrationsComplete, needsDB: true},
		{name: "Backups present", fn: checkBackupsPresent, warnOnly: true},
		{name: "Settings valid", fn: checkSettings, needsDB: true},
		{name: "Clock sanity", fn: checkClock},
		{name: "Orphaned completions", fn: checkOrphanedCompletions, needsDB: true},
		{name: "Duplicate completions", fn: checkDuplicateCompletions, needsDB: true},
		{name: "Day formats", fn: checkDayFormats, needsDB: true},
		{name: "Timestamp integrity", fn: checkTimestamps, needsDB: true},
	}

	for _, check := range checks {
		if check.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", check.name)
			continue
		}
		err := check.fn(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", check.name)
		case check.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", check.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", check.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	db, err := storeDB(ctx)
	if err != nil {
		return err
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := newMigrationRunner(ctx)
	if err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than this build supports (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := newMigrationRunner(ctx)
	if err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'stride migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Config.IsPostgres() {
		return fmt.Errorf("file backups are not available for PostgreSQL storage")
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - create one with 'stride backup create'")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	if _, err := period.ParseWeekday(settings.WeekStart); err != nil {
		return err
	}
	if settings.Timezone != "Local" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
		}
	}

	lookbacks := map[string]int{
		"lookback_days":   settings.LookbackDays,
		"lookback_weeks":  settings.LookbackWeeks,
		"lookback_months": settings.LookbackMonths,
		"lookback_years":  settings.LookbackYears,
	}
	for key, n := range lookbacks {
		if n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %d", key, n)
		}
	}
	return nil
}

func checkClock(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkOrphanedCompletions(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	var orphaned int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM completions c
		LEFT JOIN habits h ON c.habit_id = h.id
		WHERE h.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned completions: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d completions referencing non-existent habits", orphaned)
	}
	return nil
}

func checkDuplicateCompletions(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	var duplicates int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM (
			SELECT habit_id, day
			FROM completions
			GROUP BY habit_id, day
			HAVING COUNT(*) > 1
		) AS dup
	`).Scan(&duplicates)
	if err != nil {
		return fmt.Errorf("failed to check duplicate completions: %w", err)
	}
	if duplicates > 0 {
		return fmt.Errorf("found %d habit+day combinations with duplicate completions", duplicates)
	}
	return nil
}

func checkDayFormats(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	// GLOB is SQLite-only; Postgres gets the equivalent regex match.
	condition := `day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`
	if ctx.Config.IsPostgres() {
		condition = `day !~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'`
	}

	var invalid int
	err = db.QueryRow(`SELECT COUNT(*) FROM completions WHERE ` + condition).Scan(&invalid)
	if err != nil {
		return fmt.Errorf("failed to check completion days: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d completions with invalid day format", invalid)
	}
	return nil
}

func checkTimestamps(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	var corrupted int
	err = db.QueryRow(`SELECT COUNT(*) FROM completions WHERE created_at = ''`).Scan(&corrupted)
	if err != nil {
		return fmt.Errorf("failed to check completion timestamps: %w", err)
	}
	if corrupted > 0 {
		return fmt.Errorf("found %d completions with missing timestamps", corrupted)
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM habits WHERE created_at = ''`).Scan(&corrupted)
	if err != nil {
		return fmt.Errorf("failed to check habit timestamps: %w", err)
	}
	if corrupted > 0 {
		return fmt.Errorf("found %d habits with missing timestamps", corrupted)
	}
	return nil
}
