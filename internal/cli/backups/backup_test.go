package backups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/strideapp/stride/internal/backup"
	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/config"
	"github.com/strideapp/stride/internal/engine"
	"github.com/strideapp/stride/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "stride.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.DefaultConfig()
	cfg.Storage = dbPath

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	resolver, lookback := engine.CalendarFromSettings(settings)

	return &cli.Context{
		Config: cfg,
		Store:  store,
		Engine: engine.New(store, resolver, lookback),
	}
}

func TestBackupCreateCmd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &BackupCreateCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("backup count = %d, want 1", len(backups))
	}
}

func TestBackupCreateCmd_RejectsPostgres(t *testing.T) {
	ctx := setupTestContext(t)
	ctx.Config.Storage = "postgres://stride@localhost/stride"

	cmd := &BackupCreateCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("backup create on PostgreSQL storage should fail")
	}
}

func TestBackupListCmd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &BackupListCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("backup list with no backups failed: %v", err)
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestResolveBackupPath(t *testing.T) {
	ctx := setupTestContext(t)
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	got, err := resolveBackupPath(mgr, filepath.Base(backupPath))
	if err != nil {
		t.Errorf("resolveBackupPath with bare filename failed: %v", err)
	} else if got != backupPath {
		t.Errorf("resolveBackupPath(%q) = %q, want %q", filepath.Base(backupPath), got, backupPath)
	}

	got, err = resolveBackupPath(mgr, backupPath)
	if err != nil {
		t.Errorf("resolveBackupPath with absolute path failed: %v", err)
	} else if got != backupPath {
		t.Errorf("resolveBackupPath(%q) = %q, want %q", backupPath, got, backupPath)
	}

	missing := filepath.Join(t.TempDir(), "missing.db")
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatalf("stray file at %s", missing)
	}
	if _, err := resolveBackupPath(mgr, missing); err == nil {
		t.Error("resolveBackupPath with a missing absolute path should fail")
	}

	if _, err := resolveBackupPath(mgr, "no-such-backup.db"); err == nil {
		t.Error("resolveBackupPath with an unknown filename should fail")
	}
}
