// Package config holds the settings for a browsing session and the
// timing knobs used by element operations. Durations follow the
// Playwright convention of float64 milliseconds.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied by DefaultConfig
const (
	DefaultActionTimeout  = 30000.0  // 30 seconds in milliseconds
	DefaultReadinessDelay = 500.0    // settle pause before load-state waits
	DefaultPopupTimeout   = 120000.0 // 2 minutes in milliseconds
	DefaultTextReadDelay  = 100.0    // pause between per-element text reads
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Config represents the configuration for a browsing session
type Config struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool `yaml:"headless" json:"headless"`

	// Viewport dimensions for new browser contexts
	ViewportWidth  int `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height" json:"viewport_height"`

	// ActionTimeout is the default timeout for element operations (in milliseconds)
	ActionTimeout float64 `yaml:"action_timeout_ms" json:"action_timeout_ms"`

	// ReadinessDelay is the fixed settle pause inserted before the
	// ordered load-state waits of the readiness protocol (in milliseconds)
	ReadinessDelay float64 `yaml:"readiness_delay_ms" json:"readiness_delay_ms"`

	// PopupTimeout bounds waits for popup pages and URL changes (in milliseconds)
	PopupTimeout float64 `yaml:"popup_timeout_ms" json:"popup_timeout_ms"`

	// TextReadDelay is the pause between consecutive reads when collecting
	// text from every match of a selector (in milliseconds)
	TextReadDelay float64 `yaml:"text_read_delay_ms" json:"text_read_delay_ms"`

	// NavigationWaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	NavigationWaitUntil string `yaml:"navigation_wait_until" json:"navigation_wait_until"`

	// RedactPatterns are glob patterns matched case-insensitively against
	// element descriptions; values sent to matching elements are masked
	// in log output
	RedactPatterns []string `yaml:"redact_patterns" json:"redact_patterns"`
}

// DefaultConfig returns a default configuration suitable for most use cases
func DefaultConfig() Config {
	return Config{
		Headless:            true,
		ViewportWidth:       DefaultViewportWidth,
		ViewportHeight:      DefaultViewportHeight,
		ActionTimeout:       DefaultActionTimeout,
		ReadinessDelay:      DefaultReadinessDelay,
		PopupTimeout:        DefaultPopupTimeout,
		TextReadDelay:       DefaultTextReadDelay,
		NavigationWaitUntil: "load",
		RedactPatterns:      []string{"*password*"},
	}
}

// Load reads a YAML configuration file, applying defaults for any
// fields the file does not set
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive")
	}

	if c.ActionTimeout < 0 {
		return fmt.Errorf("action_timeout_ms cannot be negative")
	}

	if c.ReadinessDelay < 0 {
		return fmt.Errorf("readiness_delay_ms cannot be negative")
	}

	if c.PopupTimeout < 0 {
		return fmt.Errorf("popup_timeout_ms cannot be negative")
	}

	if c.TextReadDelay < 0 {
		return fmt.Errorf("text_read_delay_ms cannot be negative")
	}

	// Set default wait state if not specified
	if c.NavigationWaitUntil == "" {
		c.NavigationWaitUntil = "load"
	}

	validWaitStates := map[string]bool{
		"load":             true,
		"domcontentloaded": true,
		"networkidle":      true,
	}
	if !validWaitStates[c.NavigationWaitUntil] {
		return fmt.Errorf("invalid navigation_wait_until: %s (must be 'load', 'domcontentloaded', or 'networkidle')", c.NavigationWaitUntil)
	}

	return nil
}
