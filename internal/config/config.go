// Package config resolves file locations and runtime options from defaults,
// environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

const appName = "cyberlab"

// Config holds all runtime configuration.
type Config struct {
	// DataDir is the directory holding every file below unless overridden.
	DataDir string

	// ProgressFile is the persisted progress document.
	// Default: <DataDir>/progress.json
	ProgressFile string

	// HistoryDB is the SQLite attempt history database.
	// Default: <DataDir>/history.db
	HistoryDB string

	// LogFile receives logs while the TUI owns the terminal.
	// Default: <DataDir>/cyberlab.log
	LogFile string

	// LogLevel is a logrus level name. Default: "info".
	LogLevel string

	// ContentFile is an optional JSON content pack replacing the built-in
	// catalog.
	ContentFile string

	// HistoryEnabled controls the attempt history database. Default: true.
	HistoryEnabled bool
}

// DefaultConfig returns a Config rooted at the default data directory:
// $XDG_DATA_HOME/cyberlab, or ~/.local/share/cyberlab.
func DefaultConfig() (Config, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return WithDataDir(filepath.Join(dataHome, appName)), nil
}

// WithDataDir returns the default Config rooted at dir.
func WithDataDir(dir string) Config {
	return Config{
		DataDir:        dir,
		ProgressFile:   filepath.Join(dir, "progress.json"),
		HistoryDB:      filepath.Join(dir, "history.db"),
		LogFile:        filepath.Join(dir, appName+".log"),
		LogLevel:       "info",
		HistoryEnabled: true,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if d := os.Getenv("CYBERLAB_DATA_DIR"); d != "" {
		cfg = WithDataDir(d)
	} else {
		var err error
		if cfg, err = DefaultConfig(); err != nil {
			return Config{}, err
		}
	}

	if p := os.Getenv("CYBERLAB_PROGRESS_FILE"); p != "" {
		cfg.ProgressFile = p
	}
	if p := os.Getenv("CYBERLAB_HISTORY_DB"); p != "" {
		cfg.HistoryDB = p
	}
	if p := os.Getenv("CYBERLAB_LOG_FILE"); p != "" {
		cfg.LogFile = p
	}
	if l := os.Getenv("CYBERLAB_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}
	if c := os.Getenv("CYBERLAB_CONTENT"); c != "" {
		cfg.ContentFile = c
	}
	if v := os.Getenv("CYBERLAB_NO_HISTORY"); v != "" {
		if off, err := strconv.ParseBool(v); err == nil {
			cfg.HistoryEnabled = !off
		}
	}

	return cfg, nil
}

// Validate checks paths and the log level.
func (c Config) Validate() error {
	if c.ProgressFile == "" {
		return fmt.Errorf("progress file path must not be empty")
	}
	if c.HistoryEnabled && c.HistoryDB == "" {
		return fmt.Errorf("history database path must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
