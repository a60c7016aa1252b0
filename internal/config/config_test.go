package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CYBERLAB_DATA_DIR", "CYBERLAB_PROGRESS_FILE", "CYBERLAB_HISTORY_DB",
		"CYBERLAB_LOG_FILE", "CYBERLAB_LOG_LEVEL", "CYBERLAB_CONTENT", "CYBERLAB_NO_HISTORY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_XDG(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "cyberlab"), cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/xdg", "cyberlab", "progress.json"), cfg.ProgressFile)
	assert.Equal(t, filepath.Join("/tmp/xdg", "cyberlab", "history.db"), cfg.HistoryDB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.HistoryEnabled)
}

func TestDefaultConfig_Home(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/learner")

	cfg, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/learner", ".local", "share", "cyberlab"), cfg.DataDir)
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CYBERLAB_DATA_DIR", "/data")
	t.Setenv("CYBERLAB_HISTORY_DB", "/db/h.db")
	t.Setenv("CYBERLAB_LOG_LEVEL", "debug")
	t.Setenv("CYBERLAB_CONTENT", "/packs/extra.json")
	t.Setenv("CYBERLAB_NO_HISTORY", "1")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/data", "progress.json"), cfg.ProgressFile)
	assert.Equal(t, "/db/h.db", cfg.HistoryDB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/packs/extra.json", cfg.ContentFile)
	assert.False(t, cfg.HistoryEnabled)
}

func TestConfigFromEnv_BadBoolIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CYBERLAB_DATA_DIR", "/data")
	t.Setenv("CYBERLAB_NO_HISTORY", "maybe")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.HistoryEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty progress", func(c *Config) { c.ProgressFile = "" }, true},
		{"empty history enabled", func(c *Config) { c.HistoryDB = "" }, true},
		{"empty history disabled", func(c *Config) { c.HistoryDB = ""; c.HistoryEnabled = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := WithDataDir("/data")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
