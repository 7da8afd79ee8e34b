// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration show/set command.
package cli

import (
	"fmt"
	"strconv"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/config"
)

// RunConfig shows or updates configuration values.
func RunConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return runConfigShow(args)
	case "set":
		return runConfigSet(args)
	default:
		return fmt.Errorf("unknown config subcommand %q (try show or set)", args.Subcommand)
	}
}

func runConfigShow(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	fmt.Printf("base_url     = %s\n", cfg.Backend.BaseURL)
	fmt.Printf("timeout_secs = %d\n", cfg.Backend.TimeoutSecs)
	fmt.Printf("country      = %s\n", cfg.Defaults.Country)
	fmt.Printf("topic        = %s\n", cfg.Defaults.Topic)
	fmt.Printf("model        = %s\n", cfg.Defaults.Model)
	fmt.Printf("show_examples   = %t\n", cfg.UI.ShowExamples)
	fmt.Printf("archive_enabled = %t\n", cfg.UI.ArchiveEnabled)
	return nil
}

func runConfigSet(args Args) error {
	if len(args.Raw) < 2 {
		return fmt.Errorf("usage: readytogo config set KEY VALUE")
	}
	key, value := args.Raw[0], args.Raw[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "base_url":
		cfg.Backend.BaseURL = value
	case "timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout_secs must be an integer: %w", err)
		}
		cfg.Backend.TimeoutSecs = secs
	case "country":
		cfg.Defaults.Country = value
	case "topic":
		cfg.Defaults.Topic = value
	case "model":
		cfg.Defaults.Model = value
	case "show_examples":
		cfg.UI.ShowExamples = value == "true"
	case "archive_enabled":
		cfg.UI.ArchiveEnabled = value == "true"
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
