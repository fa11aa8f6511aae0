package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "https://api.example.com"
	cfg.Display.PageSize = 25

	path := filepath.Join(t.TempDir(), "expensepilot.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", got.API.BaseURL)
	assert.Equal(t, "15s", got.API.Timeout)
	assert.Equal(t, 25, got.Display.PageSize)
	assert.Equal(t, "session.json", got.Storage.SessionFile)
	assert.Equal(t, "cache.db", got.Storage.CacheFile)
	assert.Equal(t, "history.csv", got.Storage.HistoryFile)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "15s", cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Display.PageSize)
	assert.Equal(t, "$", cfg.Display.Currency)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXPENSEPILOT_API_URL", "http://finance.local:9090")
	t.Setenv("EXPENSEPILOT_TIMEOUT", "30s")
	t.Setenv("EXPENSEPILOT_PAGE_SIZE", "50")

	cfg := Default()
	assert.Equal(t, "http://finance.local:9090", cfg.API.BaseURL)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, 50, cfg.Display.PageSize)

	d, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestEnvOverridesIgnoreBadPageSize(t *testing.T) {
	t.Setenv("EXPENSEPILOT_PAGE_SIZE", "not-a-number")
	cfg := Default()
	assert.Equal(t, 10, cfg.Display.PageSize)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.API.Timeout = "soon"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Display.PageSize = 0
	require.Error(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXPENSEPILOT_CONFIG_DIR", dir)

	cfg, gotDir, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, dir, gotDir)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)

	saved := Default()
	saved.API.BaseURL = "https://saved.example.com"
	require.NoError(t, Save(filepath.Join(dir, "expensepilot.yaml"), saved))

	cfg, _, err = LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", cfg.API.BaseURL)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "session.json"), ResolvePath("/cfg", "session.json"))
	assert.Equal(t, "/abs/session.json", ResolvePath("/cfg", "/abs/session.json"))
}
