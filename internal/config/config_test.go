// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend.BaseURL != "http://127.0.0.1:8000/api" {
		t.Errorf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", cfg.Timeout())
	}
	if cfg.Defaults.Country != "America" || cfg.Defaults.Topic != "visa" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestTimeoutFallback(t *testing.T) {
	cfg := &Config{}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("zero timeout should fall back to 15s, got %v", cfg.Timeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"valid http", "http://127.0.0.1:8000/api", false},
		{"valid https", "https://api.example.com", false},
		{"missing scheme", "127.0.0.1:8000", true},
		{"relative path", "/api", true},
		{"wrong scheme", "ftp://example.com", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend.BaseURL = tt.baseURL
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("READYTOGO_BASE_URL", "http://10.0.0.5:9000/api")
	t.Setenv("READYTOGO_TIMEOUT_SECS", "30")
	t.Setenv("READYTOGO_COUNTRY", "Japan")
	t.Setenv("READYTOGO_TOPIC", "safety")
	t.Setenv("READYTOGO_MODEL", "phi-2")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Backend.BaseURL != "http://10.0.0.5:9000/api" {
		t.Errorf("base url override failed: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("timeout override failed: %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.Defaults.Country != "Japan" || cfg.Defaults.Topic != "safety" || cfg.Defaults.Model != "phi-2" {
		t.Errorf("defaults override failed: %+v", cfg.Defaults)
	}
}

func TestEnvOverrideIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("READYTOGO_TIMEOUT_SECS", "not-a-number")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Backend.TimeoutSecs != 15 {
		t.Errorf("invalid timeout should keep default, got %d", cfg.Backend.TimeoutSecs)
	}
}
