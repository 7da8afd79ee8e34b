// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and the version/help commands.
package cli

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdStatus
	CmdConfig
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Cmd Command

	// Global flags
	BaseURL string
	Country string
	Topic   string
	Model   string
	Quiet   bool

	// Command-specific
	Subcommand string
	Remote     bool
	Limit      int

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `readytogo - travel regulation chat client

Ready To Go answers questions about visas, travel insurance, safety
information and immigration, per country, backed by a RAG server.

Usage:
  readytogo                      Start TUI (default)
  readytogo chat                 Interactive terminal chat
  readytogo status               Show backend status
  readytogo config [show|set]    Configuration
  readytogo history [subcommand] Browse archived transcripts
  readytogo version              Show version
  readytogo help                 Show this help

Chat flags:
  --country NAME     Preselect a country (e.g. America, Japan)
  --topic NAME       Preselect a topic (visa, insurance, safety, immigration)
  --model ID         Preselect a model (e.g. gpt-4, phi-2)
  --url URL          Backend base URL
  -q, --quiet        Minimal output

Config commands:
  readytogo config show               Print the active configuration
  readytogo config set KEY VALUE     Set and persist a value
    Keys: base_url, timeout_secs, country, topic, model,
          show_examples, archive_enabled

History commands:
  readytogo history list             List archived sessions
    --limit N                        Show at most N sessions (default: 20)
  readytogo history show <id>        Print one archived transcript
  readytogo history show <id> --remote
                                     Fetch the transcript from the backend
                                     (id is the backend conversation id)

Interactive commands (during chat):
  /country NAME      Switch country (clears topic)
  /topic NAME        Switch topic
  /model ID          Switch model
  /models            List models eligible for the selection
  /new               Start a new chat session
  /sessions          List sessions in this run
  /switch <id>       Switch to another session
  /examples          Show example questions
  /sources           Show document sources
  /help, /quit
`

// ParseArgs parses command-line arguments.
func ParseArgs(argv []string) Args {
	args := Args{Cmd: CmdTUI, Limit: 20}

	positional := []string{}
	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "--url" && i+1 < len(argv):
			args.BaseURL = argv[i+1]
			i += 2
		case arg == "--country" && i+1 < len(argv):
			args.Country = argv[i+1]
			i += 2
		case arg == "--topic" && i+1 < len(argv):
			args.Topic = argv[i+1]
			i += 2
		case arg == "--model" && i+1 < len(argv):
			args.Model = argv[i+1]
			i += 2
		case arg == "--limit" && i+1 < len(argv):
			if n, err := strconv.Atoi(argv[i+1]); err == nil && n > 0 {
				args.Limit = n
			}
			i += 2
		case arg == "--remote":
			args.Remote = true
			i++
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
			i++
		case arg == "-h" || arg == "--help":
			args.Cmd = CmdHelp
			i++
		case strings.HasPrefix(arg, "-"):
			// Unknown flag, ignore.
			i++
		default:
			positional = append(positional, arg)
			i++
		}
	}

	if len(positional) == 0 {
		return args
	}

	switch positional[0] {
	case "chat":
		args.Cmd = CmdChat
	case "status", "s":
		args.Cmd = CmdStatus
	case "config":
		args.Cmd = CmdConfig
	case "history":
		args.Cmd = CmdHistory
	case "version", "-v", "--version":
		args.Cmd = CmdVersion
	case "help":
		args.Cmd = CmdHelp
	default:
		args.Cmd = CmdHelp
	}

	if len(positional) > 1 {
		args.Subcommand = positional[1]
		args.Raw = positional[2:]
	}
	return args
}

// RunVersion prints version information.
func RunVersion(args Args) error {
	fmt.Printf("readytogo %s\n", Version)
	if !args.Quiet {
		fmt.Printf("  commit:  %s\n", GitCommit)
		fmt.Printf("  built:   %s\n", BuildDate)
		fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return nil
}

// RunHelp prints usage.
func RunHelp(Args) error {
	fmt.Print(usageText)
	return nil
}
