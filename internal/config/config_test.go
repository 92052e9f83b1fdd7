// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
	assert.Equal(t, 40, cfg.Format.URLDisplayMax)
}

func TestLoadFromPathSparseFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
base_url = "https://chat.example.com/v1/api"
`), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com/v1/api", cfg.Server.BaseURL)
	// Unset fields fall back to defaults.
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromPathFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = "1.0.0"

[server]
base_url = "http://10.0.0.5:9000/api"
timeout_secs = 15
chat_timeout_secs = 60

[format]
url_display_max = 50
key_max_runes = 80

[ui]
theme = "light"
show_timestamps = false
sidebar_width = 40

[log]
level = "debug"
`), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Server.TimeoutSecs)
	assert.Equal(t, 50, cfg.Format.URLDisplayMax)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.UI.ShowTimestamps)
	assert.Equal(t, 40, cfg.UI.SidebarWidth)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromPathMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[server`), 0o600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOPHIA_SERVER_URL", "https://override.example.com/api")
	t.Setenv("SOPHIA_THEME", "LIGHT")
	t.Setenv("SOPHIA_LOG_LEVEL", "debug")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com/api", cfg.Server.BaseURL)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.Server.BaseURL = "/just/a/path" }},
		{"bad scheme", func(c *Config) { c.Server.BaseURL = "ftp://x.example.com" }},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }},
		{"negative chat timeout", func(c *Config) { c.Server.ChatTimeoutSecs = -1 }},
		{"tiny url display", func(c *Config) { c.Format.URLDisplayMax = 5 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogPathDefault(t *testing.T) {
	cfg := Default()
	path, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Contains(t, path, ".sophia")

	cfg.Log.Path = "/tmp/custom.log"
	path, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", path)
}
