// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	// Backend connection settings.
	Backend BackendConfig `toml:"backend"`

	// Defaults preselected when the client starts.
	Defaults DefaultsConfig `toml:"defaults"`

	// UI settings.
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains backend connection configuration.
type BackendConfig struct {
	// BaseURL is the backend API base URL.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds every backend request, in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// DefaultsConfig contains the selection preloaded at startup.
type DefaultsConfig struct {
	Country string `toml:"country"`
	Topic   string `toml:"topic"`
	Model   string `toml:"model"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// ShowExamples toggles the example-question sidebar panel.
	ShowExamples bool `toml:"show_examples"`
	// ArchiveEnabled toggles the local transcript archive.
	ArchiveEnabled bool `toml:"archive_enabled"`
}

// DefaultConfig returns the built-in defaults. They mirror what the
// original web client preselected.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "http://127.0.0.1:8000/api",
			TimeoutSecs: 15,
		},
		Defaults: DefaultsConfig{
			Country: "America",
			Topic:   "visa",
			Model:   "gpt-3.5-turbo",
		},
		UI: UIConfig{
			ShowExamples:   true,
			ArchiveEnabled: true,
		},
	}
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Backend.TimeoutSecs <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.readytogo).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".readytogo"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// configPath returns the path of the TOML config file.
func configPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, applies environment overrides
// and validates the result. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, cfg); decErr != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, decErr)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies READYTOGO_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("READYTOGO_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("READYTOGO_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("READYTOGO_COUNTRY"); v != "" {
		cfg.Defaults.Country = v
	}
	if v := os.Getenv("READYTOGO_TOPIC"); v != "" {
		cfg.Defaults.Topic = v
	}
	if v := os.Getenv("READYTOGO_MODEL"); v != "" {
		cfg.Defaults.Model = v
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Backend.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("backend.base_url must be an absolute http(s) URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("backend.base_url must use http or https")
	}
	if c.Backend.TimeoutSecs < 0 {
		return errors.New("backend.timeout_secs must not be negative")
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to ~/.readytogo/config.toml using an
// atomic replace.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := configPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
