// Package cli holds the shared command context and helpers the kong
// subcommand packages run against.
package cli

import (
	"fmt"
	"time"

	"github.com/strideapp/stride/internal/backup"
	"github.com/strideapp/stride/internal/config"
	"github.com/strideapp/stride/internal/engine"
	"github.com/strideapp/stride/internal/logger"
	"github.com/strideapp/stride/internal/period"
	"github.com/strideapp/stride/internal/storage"
)

type Context struct {
	Config *config.Config
	Store  storage.Provider
	Engine *engine.Engine
}

// PerformAutomaticBackup snapshots the SQLite database before a destructive
// operation. Failures are logged, never surfaced, so they cannot interrupt
// the user's workflow. PostgreSQL deployments are backed up server-side and
// skipped here.
func (c *Context) PerformAutomaticBackup() {
	if c.Config.IsPostgres() {
		logger.Debug("Skipping automatic backup for PostgreSQL storage")
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	mgr.SetRetention(c.Config.MaxBackups)
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDate parses a YYYY-MM-DD flag value in the engine's location. An
// empty value means today.
func (c *Context) ParseDate(s string) (time.Time, error) {
	if s == "" {
		return c.Engine.Today(), nil
	}
	day, err := period.ParseDay(s, c.Engine.Resolver().Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return day, nil
}

// Anchor resolves a granularity name and anchor flag into a view anchor
// clamped to the navigable window.
func (c *Context) Anchor(granularity, anchor string) (period.Granularity, time.Time, error) {
	g, err := period.ParseGranularity(granularity)
	if err != nil {
		return g, time.Time{}, err
	}
	day, err := c.ParseDate(anchor)
	if err != nil {
		return g, time.Time{}, err
	}
	return g, c.Engine.Lookback().Clamp(day, c.Engine.Today(), g), nil
}
