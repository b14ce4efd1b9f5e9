package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/strideapp/stride/internal/constants"
	"github.com/strideapp/stride/internal/logger"
	"github.com/strideapp/stride/internal/migration"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/migrations"
)

// Pool limits sized for a CLI that opens one store per invocation plus a
// possibly long-lived TUI session.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// Store keeps habits, completions, and settings in PostgreSQL. Everything
// lives in a schema named after the application so a shared database
// stays uncluttered.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	s := &Store{connStr: connStr}
	s.setSearchPath()
	return s
}

// setSearchPath pins the connection's search_path to the app schema so
// unqualified table names resolve there. A search_path the user already
// set wins.
func (s *Store) setSearchPath() {
	if isURL(s.connStr) {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Could not parse connection string, leaving search_path alone", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") != "" {
			return
		}
		q.Set("search_path", constants.AppName)
		u.RawQuery = q.Encode()
		s.connStr = u.String()
		return
	}
	if !dsnParamSet(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// Init connects, creates the app schema if needed, brings it to the
// latest migration version, and seeds settings.
func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	// The schema must exist before the search_path can resolve anything,
	// and s.db stays nil until it does.
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.ping(); err != nil {
		return err
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return s.seedSettings()
}

// Load connects to an already-initialized database and refuses a schema
// version this binary does not know.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	if err := s.ping(); err != nil {
		return err
	}
	return s.checkSchemaVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}

// ping verifies the connection actually works. Local dev servers often
// run without TLS, so the most common failure gets an sslmode hint.
func (s *Store) ping() error {
	err := s.db.Ping()
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
		return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}

// seedSettings tops up the settings table, keeping any values already
// present and filling the rest from the defaults.
func (s *Store) seedSettings() error {
	settings, err := s.GetSettings()
	if err == nil && settings.Timezone != "" {
		return nil
	}
	models.ApplyDefaultSettings(&settings)
	if err := s.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub, migration.DriverPostgres)
}

func (s *Store) migrate() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	_, err = r.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *Store) checkSchemaVersion() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
}

// GetConfigPath identifies the backend without echoing the connection
// string, which may name hosts and users.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

// GetDB exposes the pooled connection for health checks and manual
// migration runs. It is nil until Init or Load has succeeded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// ValidateConnString accepts a PostgreSQL connection string in URL or
// keyword/value form and rejects any string that embeds a password.
// Passwords belong in the environment or .pgpass, not in shell history.
// The boolean mirrors err == nil for callers that only need a yes or no.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}
	if isURL(connStr) {
		return validateURL(connStr)
	}
	if dsnParamSet(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

func validateURL(connStr string) (bool, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
	}
	if _, set := u.User.Password(); set {
		return false, ErrEmbeddedCredentials
	}
	if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
		return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return true, nil
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// dsnParamSet reports whether a keyword/value connection string sets the
// given parameter. Only keys are matched, case-insensitively, so a value
// that happens to contain the word does not count.
func dsnParamSet(connStr, key string) bool {
	for _, field := range strings.Fields(connStr) {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// hasSSLMode reports whether the connection string pins an sslmode, in
// either URL query or keyword/value position.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return dsnParamSet(connStr, "sslmode")
}
