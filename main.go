// Ready To Go - a terminal client for country-scoped travel regulation chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/archive"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/chat"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/cli"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/store"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async notification delivery
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.ParseArgs(os.Args[1:])

	var err error
	switch args.Cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdChat:
		err = cli.RunChat(args)
	case cli.CmdStatus:
		err = cli.RunStatus(args)
	case cli.CmdConfig:
		err = cli.RunConfig(args)
	case cli.CmdHistory:
		err = cli.RunHistory(args)
	case cli.CmdVersion:
		err = cli.RunVersion(args)
	case cli.CmdHelp:
		err = cli.RunHelp(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the state store, lifecycle manager and gateway together
// and runs the full-screen interface.
func runTUI(args cli.Args) error {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}

	st := store.New()
	// Warnings must not write to the terminal while the TUI owns it.
	gw := cli.NewGateway(cfg, func(string, ...any) {})
	manager := chat.NewManager(st, gw)

	if cfg.UI.ArchiveEnabled {
		if arc, openErr := archive.OpenDefault(); openErr == nil {
			manager.SetRecorder(arc)
			defer arc.Close()
		}
	}

	st.UpdateCountry(cfg.Defaults.Country)
	st.UpdateTopic(cfg.Defaults.Topic)
	st.UpdateModel(cfg.Defaults.Model)

	// Notifications may fire from command goroutines; route them
	// through program.Send so the model updates on one goroutine.
	st.SetListener(&ui.Forwarder{Send: sendToProgram})

	app := ui.NewApp(manager, gw, cfg.UI.ShowExamples)
	program := tea.NewProgram(app, tea.WithAltScreen())

	programMu.Lock()
	programRef = program
	programMu.Unlock()

	_, err = program.Run()
	return err
}

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
