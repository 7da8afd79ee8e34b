// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands
// of the Ready To Go client.
//
// # Usage
//
// Parse and dispatch:
//
//	args := cli.ParseArgs(os.Args[1:])
//	switch args.Cmd {
//	case cli.CmdChat:
//	    return cli.RunChat(args)
//	case cli.CmdStatus:
//	    return cli.RunStatus(args)
//	// ... other commands
//	}
//
// # Commands
//
//   - (default): full-screen TUI
//   - chat: interactive terminal chat with input history
//   - status: backend reachability and configuration summary
//   - config: show or set configuration values
//   - history: browse archived or remote transcripts
//   - version, help
package cli
