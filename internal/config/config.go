package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level expensepilot.yaml configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
}

// APIConfig locates the remote ExpensePilot service.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // time.ParseDuration format, e.g. "15s"
}

// DisplayConfig controls table rendering defaults.
type DisplayConfig struct {
	PageSize int    `yaml:"page_size"`
	Currency string `yaml:"currency"`
}

// StorageConfig names the local files the client keeps between runs.
// Relative paths are resolved against the config directory.
type StorageConfig struct {
	SessionFile string `yaml:"session_file"`
	CacheFile   string `yaml:"cache_file"`
	HistoryFile string `yaml:"history_file"`
}

// Load reads an expensepilot.yaml file from disk and applies
// environment overrides on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults, including
// environment overrides. It is used when no config file exists yet.
func Default() *Config {
	cfg := &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "15s",
		},
		Display: DisplayConfig{
			PageSize: 10,
			Currency: "$",
		},
		Storage: StorageConfig{
			SessionFile: "session.json",
			CacheFile:   "cache.db",
			HistoryFile: "history.csv",
		},
	}
	cfg.applyEnv()
	return cfg
}

// applyEnv lets environment variables override file values. A .env
// file picked up by godotenv in main feeds these as well.
func (c *Config) applyEnv() {
	if v := os.Getenv("EXPENSEPILOT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("EXPENSEPILOT_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("EXPENSEPILOT_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Display.PageSize = n
		}
	}
}

// Validate checks the configuration before any component uses it.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if _, err := c.RequestTimeout(); err != nil {
		return fmt.Errorf("api.timeout: %w", err)
	}
	if c.Display.PageSize < 1 {
		return fmt.Errorf("display.page_size must be at least 1, got %d", c.Display.PageSize)
	}
	return nil
}

// RequestTimeout parses the configured API timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", c.API.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}

// Dir returns the directory holding the config file and all local
// state, creating it if needed.
func Dir() (string, error) {
	if v := os.Getenv("EXPENSEPILOT_CONFIG_DIR"); v != "" {
		if err := os.MkdirAll(v, 0o755); err != nil {
			return "", fmt.Errorf("creating config dir: %w", err)
		}
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	dir := filepath.Join(base, "expensepilot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

// LoadOrDefault loads expensepilot.yaml from the config directory,
// falling back to defaults when the file does not exist.
func LoadOrDefault() (*Config, string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, "expensepilot.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), dir, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

// ResolvePath resolves a storage path against the config directory
// unless it is already absolute.
func ResolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
