// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete sophia configuration.
type Config struct {
	Version string `toml:"version"`

	// Server holds backend connection settings
	Server ServerConfig `toml:"server"`

	// Format holds message formatter tuning
	Format FormatConfig `toml:"format"`

	// UI holds interface preferences
	UI UIConfig `toml:"ui"`

	// Log holds logging settings
	Log LogConfig `toml:"log"`
}

// ServerConfig contains backend connection configuration.
type ServerConfig struct {
	// BaseURL is the backend API base URL
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the timeout for regular requests
	TimeoutSecs int `toml:"timeout_secs"`
	// ChatTimeoutSecs is the timeout for message sends, which block on
	// the assistant reply
	ChatTimeoutSecs int `toml:"chat_timeout_secs"`
}

// FormatConfig contains message formatter tuning.
type FormatConfig struct {
	// URLDisplayMax is the display length a bare URL is truncated to.
	// The navigation target is never truncated.
	URLDisplayMax int `toml:"url_display_max"`
	// KeyMaxRunes is the longest text before a colon still treated as a
	// key-value key
	KeyMaxRunes int `toml:"key_max_runes"`
}

// UIConfig contains interface preferences.
type UIConfig struct {
	// Theme is "dark" or "light"
	Theme string `toml:"theme"`
	// ShowTimestamps toggles per-message timestamps
	ShowTimestamps bool `toml:"show_timestamps"`
	// SidebarWidth is the sidebar width in cells
	SidebarWidth int `toml:"sidebar_width"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `toml:"level"`
	// Path is the log file location (empty = ~/.sophia/sophia.log)
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Server: ServerConfig{
			BaseURL:         "http://127.0.0.1:8080/v1/api",
			TimeoutSecs:     30,
			ChatTimeoutSecs: 120,
		},
		Format: FormatConfig{
			URLDisplayMax: 40,
			KeyMaxRunes:   60,
		},
		UI: UIConfig{
			Theme:          "dark",
			ShowTimestamps: true,
			SidebarWidth:   32,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the sophia configuration directory (~/.sophia).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".sophia"), nil
}

// ConfigPath returns the path to config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applies environment overrides, fills
// defaults, and validates. A missing file is not an error: defaults
// (plus env overrides) are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load against an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values with defaults so a sparse config
// file never produces an unusable client.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = def.Server.TimeoutSecs
	}
	if c.Server.ChatTimeoutSecs == 0 {
		c.Server.ChatTimeoutSecs = def.Server.ChatTimeoutSecs
	}
	if c.Format.URLDisplayMax == 0 {
		c.Format.URLDisplayMax = def.Format.URLDisplayMax
	}
	if c.Format.KeyMaxRunes == 0 {
		c.Format.KeyMaxRunes = def.Format.KeyMaxRunes
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = def.UI.SidebarWidth
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies SOPHIA_* environment variables on top of
// whatever was loaded from file.
func (c *Config) ApplyEnvOverrides() {
	// SOPHIA_SERVER_URL
	if serverURL := os.Getenv("SOPHIA_SERVER_URL"); serverURL != "" {
		c.Server.BaseURL = serverURL
	}

	// SOPHIA_TIMEOUT_SECS
	if timeout := os.Getenv("SOPHIA_TIMEOUT_SECS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil && n > 0 {
			c.Server.TimeoutSecs = n
		}
	}

	// SOPHIA_THEME
	if theme := os.Getenv("SOPHIA_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}

	// SOPHIA_LOG_LEVEL
	if level := os.Getenv("SOPHIA_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}

	// SOPHIA_LOG_PATH
	if path := os.Getenv("SOPHIA_LOG_PATH"); path != "" {
		c.Log.Path = path
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

var errInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server.base_url %q is not an absolute URL", errInvalidConfig, c.Server.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: server.base_url scheme must be http or https", errInvalidConfig)
	}
	if c.Server.TimeoutSecs <= 0 {
		return fmt.Errorf("%w: server.timeout_secs must be positive", errInvalidConfig)
	}
	if c.Server.ChatTimeoutSecs <= 0 {
		return fmt.Errorf("%w: server.chat_timeout_secs must be positive", errInvalidConfig)
	}
	if c.Format.URLDisplayMax < 10 {
		return fmt.Errorf("%w: format.url_display_max must be at least 10", errInvalidConfig)
	}
	if c.Format.KeyMaxRunes < 1 {
		return fmt.Errorf("%w: format.key_max_runes must be positive", errInvalidConfig)
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: ui.theme must be dark or light, got %q", errInvalidConfig, c.UI.Theme)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be debug, info, warn or error, got %q", errInvalidConfig, c.Log.Level)
	}
	return nil
}

// LogPath resolves the log file location, falling back to the config
// directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sophia.log"), nil
}
