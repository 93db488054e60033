// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://cdn.jsdelivr.net/gh/camayuki/theme_marketplace@main/"
	DefaultTimeout = "30s"
	DefaultAddr    = "127.0.0.1:8420"
)

// Config represents the themepad configuration.
type Config struct {
	Source    SourceConfig    `toml:"source"`
	Store     StoreConfig     `toml:"store"`
	Output    OutputConfig    `toml:"output"`
	Server    ServerConfig    `toml:"server"`
	Broadcast BroadcastConfig `toml:"broadcast"`
	Loader    LoaderConfig    `toml:"loader"`
}

// SourceConfig holds the remote theme source settings.
type SourceConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"` // Go duration, "0" = no timeout
}

// StoreConfig holds preference storage settings.
type StoreConfig struct {
	Path string `toml:"path"` // Empty = $XDG_DATA_HOME/themepad/preferences.json
}

// OutputConfig holds stylesheet output settings.
type OutputConfig struct {
	Stylesheet string `toml:"stylesheet"` // Write :root stylesheet here after each apply (empty = off)
}

// ServerConfig holds settings for the web switcher.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"` // Cross-origin callers (empty = same-origin only)
}

// BroadcastConfig controls external themeChanged broadcasts.
type BroadcastConfig struct {
	DBus bool `toml:"dbus"`
}

// LoaderConfig controls apply behavior.
type LoaderConfig struct {
	DropStale bool `toml:"drop_stale"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Loader: LoaderConfig{
			DropStale: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "themepad", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "themepad")
}

// PreferencePath returns the configured preference file, or the default one.
func (c *Config) PreferencePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataPath(), "preferences.json")
}

// Timeout parses the source timeout. Invalid values fall back to the default.
func (c *Config) Timeout() time.Duration {
	if c.Source.Timeout == "" {
		d, _ := time.ParseDuration(DefaultTimeout)
		return d
	}
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = DefaultBaseURL
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
