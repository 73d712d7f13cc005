package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Headless)
	assert.Equal(t, DefaultViewportWidth, cfg.ViewportWidth)
	assert.Equal(t, DefaultViewportHeight, cfg.ViewportHeight)
	assert.Equal(t, DefaultActionTimeout, cfg.ActionTimeout)
	assert.Equal(t, DefaultReadinessDelay, cfg.ReadinessDelay)
	assert.Equal(t, DefaultPopupTimeout, cfg.PopupTimeout)
	assert.Equal(t, DefaultTextReadDelay, cfg.TextReadDelay)
	assert.Equal(t, "load", cfg.NavigationWaitUntil)
	assert.Equal(t, []string{"*password*"}, cfg.RedactPatterns)

	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "automation.yaml")

	content := `
headless: false
viewport_width: 1920
viewport_height: 1080
action_timeout_ms: 10000
popup_timeout_ms: 60000
navigation_wait_until: networkidle
redact_patterns:
  - "*password*"
  - "*secret*"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, 1920, cfg.ViewportWidth)
	assert.Equal(t, 1080, cfg.ViewportHeight)
	assert.Equal(t, 10000.0, cfg.ActionTimeout)
	assert.Equal(t, 60000.0, cfg.PopupTimeout)
	assert.Equal(t, "networkidle", cfg.NavigationWaitUntil)
	assert.Equal(t, []string{"*password*", "*secret*"}, cfg.RedactPatterns)

	// Fields not present in the file keep their defaults
	assert.Equal(t, DefaultReadinessDelay, cfg.ReadinessDelay)
	assert.Equal(t, DefaultTextReadDelay, cfg.TextReadDelay)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headless: [not a bool"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero viewport",
			mutate:  func(c *Config) { c.ViewportWidth = 0 },
			wantErr: "viewport dimensions must be positive",
		},
		{
			name:    "negative action timeout",
			mutate:  func(c *Config) { c.ActionTimeout = -1 },
			wantErr: "action_timeout_ms cannot be negative",
		},
		{
			name:    "negative readiness delay",
			mutate:  func(c *Config) { c.ReadinessDelay = -1 },
			wantErr: "readiness_delay_ms cannot be negative",
		},
		{
			name:    "negative popup timeout",
			mutate:  func(c *Config) { c.PopupTimeout = -500 },
			wantErr: "popup_timeout_ms cannot be negative",
		},
		{
			name:    "invalid wait state",
			mutate:  func(c *Config) { c.NavigationWaitUntil = "idle" },
			wantErr: "invalid navigation_wait_until",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateFillsEmptyWaitState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NavigationWaitUntil = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "load", cfg.NavigationWaitUntil)
}
