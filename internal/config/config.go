package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/strideapp/stride/internal/constants"
)

type Config struct {
	// Storage is a SQLite file path or a postgres:// connection string.
	Storage    string `toml:"storage"`
	Debug      bool   `toml:"debug"`
	MaxBackups int    `toml:"max_backups"`
}

func DefaultConfig() *Config {
	dir, _ := Dir()
	return &Config{
		Storage:    filepath.Join(dir, constants.DefaultDBFile),
		Debug:      false,
		MaxBackups: constants.MaxBackups,
	}
}

func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", constants.AppName), nil
}

func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DefaultConfigFile), nil
}

func DatabasePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DefaultDBFile), nil
}

func BackupDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.BackupDirName), nil
}

func EnsureDirectories() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	backupDir, err := BackupDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(backupDir, 0700)
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Load existing config
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	// Expand ~ in the storage path; connection strings pass through untouched
	if !cfg.IsPostgres() {
		cfg.Storage = expandPath(cfg.Storage)
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// IsPostgres reports whether the storage setting is a PostgreSQL
// connection string rather than a SQLite file path.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.Storage, "postgres://") || strings.HasPrefix(c.Storage, "postgresql://")
}
