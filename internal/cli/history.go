// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Transcript browsing command.
//
// "history list" and "history show <id>" read the local SQLite archive.
// "history show <id> --remote" asks the backend for the transcript of a
// conversation id instead.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/archive"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// RunHistory dispatches the history subcommands.
func RunHistory(args Args) error {
	switch args.Subcommand {
	case "", "list":
		return runHistoryList(args)
	case "show":
		return runHistoryShow(args)
	default:
		return fmt.Errorf("unknown history subcommand %q (try list or show)", args.Subcommand)
	}
}

func runHistoryList(args Args) error {
	arc, err := archive.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer arc.Close()

	sessions, err := arc.ListSessions(args.Limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println(infoStyle.Render("no archived sessions"))
		return nil
	}

	for _, s := range sessions {
		offline := ""
		if s.Offline {
			offline = "  " + warningStyle.Render("[offline]")
		}
		fmt.Printf("%d  %s  %s (%d messages)%s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Title, s.MessageCount, offline)
	}
	return nil
}

func runHistoryShow(args Args) error {
	if len(args.Raw) < 1 {
		return fmt.Errorf("usage: readytogo history show <id> [--remote]")
	}
	id, err := strconv.ParseInt(args.Raw[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args.Raw[0])
	}

	if args.Remote {
		return runHistoryShowRemote(args, id)
	}

	arc, err := archive.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer arc.Close()

	messages, err := arc.Messages(id)
	if err != nil {
		return err
	}
	for _, m := range messages {
		fmt.Printf("[%s] %s: %s\n",
			m.Timestamp.Format("15:04"), model.Role(m.Role).DisplayName(), m.Text)
		for _, ref := range m.References {
			fmt.Println(referenceStyle.Render("    → " + ref))
		}
	}
	return nil
}

func runHistoryShowRemote(args Args, conversationID int64) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	gw := NewGateway(cfg, func(string, ...any) {})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	hist, err := gw.GetHistory(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to fetch conversation %d: %w", conversationID, err)
	}
	for _, m := range hist.Messages {
		fmt.Printf("%s: %s\n", model.Role(m.Role).DisplayName(), m.Content)
	}
	return nil
}
