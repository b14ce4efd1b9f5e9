package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/config"
	"github.com/strideapp/stride/internal/engine"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/storage"
)

// setupInitContext builds a context around an uninitialized store; init
// itself is responsible for creating the database.
func setupInitContext(t *testing.T) (*cli.Context, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "stride.db")
	store := storage.NewSQLiteStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.DefaultConfig()
	cfg.Storage = dbPath

	var settings models.Settings
	models.ApplyDefaultSettings(&settings)
	resolver, lookback := engine.CalendarFromSettings(settings)

	ctx := &cli.Context{
		Config: cfg,
		Store:  store,
		Engine: engine.New(store, resolver, lookback),
	}
	return ctx, dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupInitContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupInitContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath := setupInitContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not created")
	}

	// Mark the database as "used" so the reset is observable.
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get initial settings: %v", err)
	}
	settings.WeekStart = "sunday"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save modified settings: %v", err)
	}

	forceCmd := &InitCmd{Force: true}
	if err := forceCmd.Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("failed to load store after force: %v", err)
	}
	fresh, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after force: %v", err)
	}
	if fresh.WeekStart != "monday" {
		t.Errorf("WeekStart after force = %q, want %q", fresh.WeekStart, "monday")
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath := setupInitContext(t)

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	forceCmd := &InitCmd{Force: true}
	if err := forceCmd.Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_ForceRejectsPostgres(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage = "postgres://stride@localhost/stride"

	var settings models.Settings
	models.ApplyDefaultSettings(&settings)
	resolver, lookback := engine.CalendarFromSettings(settings)
	store := storage.NewPostgresStore(cfg.Storage)

	ctx := &cli.Context{
		Config: cfg,
		Store:  store,
		Engine: engine.New(store, resolver, lookback),
	}

	cmd := &InitCmd{Force: true}
	if err := cmd.Run(ctx); err == nil {
		t.Errorf("init --force on PostgreSQL storage should fail")
	}
}

func TestInitCmd_SourceImportsData(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "old.db")
	src := storage.NewSQLiteStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("failed to init source database: %v", err)
	}

	habit := models.Habit{ID: "h-1", Name: "Read", Kind: models.HabitKindGood, CreatedAt: time.Now()}
	if err := src.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit to source: %v", err)
	}
	completion := models.Completion{ID: "c-1", HabitID: "h-1", Day: "2026-02-10", CreatedAt: time.Now()}
	if err := src.AddCompletion(completion); err != nil {
		t.Fatalf("failed to add completion to source: %v", err)
	}
	settings, err := src.GetSettings()
	if err != nil {
		t.Fatalf("failed to get source settings: %v", err)
	}
	settings.WeekStart = "sunday"
	if err := src.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save source settings: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("failed to close source: %v", err)
	}

	ctx, _ := setupInitContext(t)
	cmd := &InitCmd{Source: srcPath}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetHabitByName("Read")
	if err != nil {
		t.Fatalf("imported habit not found: %v", err)
	}
	if got.ID != "h-1" {
		t.Errorf("imported habit ID = %q, want %q", got.ID, "h-1")
	}
	if _, err := ctx.Store.GetCompletion("h-1", "2026-02-10"); err != nil {
		t.Errorf("imported completion not found: %v", err)
	}
	imported, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after import: %v", err)
	}
	if imported.WeekStart != "sunday" {
		t.Errorf("WeekStart after import = %q, want %q", imported.WeekStart, "sunday")
	}
}

func TestInitCmd_SourceMissing(t *testing.T) {
	ctx, _ := setupInitContext(t)

	cmd := &InitCmd{Source: filepath.Join(t.TempDir(), "missing.db")}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for a missing source database")
	}
}

func TestInitCmd_ForceRejectsSourceAsDestination(t *testing.T) {
	ctx, dbPath := setupInitContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	cmd := &InitCmd{Force: true, Source: dbPath}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same file")
	}
}
