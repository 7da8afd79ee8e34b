// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"time"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/config"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/gateway"
)

// LoadConfig loads the configuration and applies CLI flag overrides.
func LoadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
	}
	if args.Country != "" {
		cfg.Defaults.Country = args.Country
	}
	if args.Topic != "" {
		cfg.Defaults.Topic = args.Topic
	}
	if args.Model != "" {
		cfg.Defaults.Model = args.Model
	}
	return cfg, nil
}

// NewGateway builds a backend gateway client from the configuration.
func NewGateway(cfg *config.Config, warnf func(format string, args ...any)) *gateway.Client {
	return gateway.NewClientWithConfig(&gateway.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Timeout(),
		Warnf:   warnf,
	})
}

// shortTimeout returns a context deadline suitable for one-shot
// commands like status checks.
func shortTimeout(cfg *config.Config) time.Duration {
	t := cfg.Timeout()
	if t > 5*time.Second {
		return 5 * time.Second
	}
	return t
}
