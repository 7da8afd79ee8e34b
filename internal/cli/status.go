// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/ui/styles"
)

var (
	statusOKStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	statusDownStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
)

// RunStatus prints backend reachability and the effective metadata.
func RunStatus(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	gw := NewGateway(cfg, func(string, ...any) {})

	ctx, cancel := context.WithTimeout(context.Background(), shortTimeout(cfg))
	defer cancel()

	fmt.Printf("backend:  %s\n", cfg.Backend.BaseURL)
	if err := gw.CheckRunning(ctx); err != nil {
		fmt.Printf("status:   %s\n", statusDownStyle.Render("unreachable"))
		fmt.Println(infoStyle.Render("reads fall back to built-in defaults; new chats start offline"))
	} else {
		fmt.Printf("status:   %s\n", statusOKStyle.Render("online"))
	}

	countries := gw.GetCountries(ctx)
	topics := gw.GetTopics(ctx)
	models := gw.GetModels(ctx)

	fmt.Printf("countries: %d\n", len(countries))
	fmt.Printf("topics:    %d\n", len(topics))
	fmt.Printf("models:    %d\n", len(models))

	if !args.Quiet {
		fmt.Printf("defaults:  %s / %s / %s\n",
			catalog.CountryLabel(cfg.Defaults.Country),
			catalog.TopicLabel(cfg.Defaults.Topic),
			cfg.Defaults.Model)
	}
	return nil
}
