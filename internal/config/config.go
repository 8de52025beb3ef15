// Package config resolves trackdb storage paths and loads the optional YAML
// configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "trackdb"

// Config is the on-disk configuration. Every field has a usable default.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Library  LibraryConfig  `yaml:"library"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. Empty means GetDBPath().
	Path string `yaml:"path"`
}

// LoggingConfig configures the zap logger and its optional rotating file.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type LibraryConfig struct {
	// LoadDeleted allows loading logically deleted tracks by id.
	LoadDeleted bool `yaml:"load_deleted"`
	// Extensions lists the audio file extensions picked up by scans.
	Extensions []string `yaml:"extensions"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Library: LibraryConfig{
			LoadDeleted: true,
			Extensions:  []string{".mp3", ".flac", ".ogg", ".opus", ".m4a", ".wav", ".aif", ".aiff"},
		},
	}
}

// GetDataDir resolves the base directory for trackdb storage: TRACKDB_DIR,
// then XDG data home, then ~/.local/share.
func GetDataDir() string {
	if explicit := os.Getenv("TRACKDB_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appName)
}

// GetDBPath returns the path to the SQLite library database.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "library.db")
}

// GetConfigPath returns TRACKDB_CONFIG or the XDG config location.
func GetConfigPath() string {
	if explicit := os.Getenv("TRACKDB_CONFIG"); explicit != "" {
		return explicit
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error. An empty path means GetConfigPath(). TRACKDB_LOG_LEVEL overrides
// the configured level.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if level := os.Getenv("TRACKDB_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = GetDBPath()
	}
	if len(cfg.Library.Extensions) == 0 {
		cfg.Library.Extensions = Default().Library.Extensions
	}

	return cfg, nil
}
