// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParseArgsDefaultsToTUI(t *testing.T) {
	args := ParseArgs(nil)
	if args.Cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", args.Cmd)
	}
	if args.Limit != 20 {
		t.Errorf("limit default = %d, want 20", args.Limit)
	}
}

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"chat"}, CmdChat},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"history"}, CmdHistory},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
		{[]string{"--help"}, CmdHelp},
	}
	for _, tt := range tests {
		if got := ParseArgs(tt.argv); got.Cmd != tt.want {
			t.Errorf("ParseArgs(%v).Cmd = %v, want %v", tt.argv, got.Cmd, tt.want)
		}
	}
}

func TestParseArgsFlags(t *testing.T) {
	args := ParseArgs([]string{
		"chat", "--country", "Japan", "--topic", "visa",
		"--model", "phi-2", "--url", "http://10.0.0.5:8000/api", "-q",
	})

	if args.Cmd != CmdChat {
		t.Fatalf("cmd = %v, want CmdChat", args.Cmd)
	}
	if args.Country != "Japan" || args.Topic != "visa" || args.Model != "phi-2" {
		t.Errorf("selection flags = %q/%q/%q", args.Country, args.Topic, args.Model)
	}
	if args.BaseURL != "http://10.0.0.5:8000/api" {
		t.Errorf("url flag = %q", args.BaseURL)
	}
	if !args.Quiet {
		t.Error("quiet flag not set")
	}
}

func TestParseArgsSubcommands(t *testing.T) {
	args := ParseArgs([]string{"config", "set", "country", "Japan"})
	if args.Cmd != CmdConfig || args.Subcommand != "set" {
		t.Fatalf("cmd/sub = %v/%q", args.Cmd, args.Subcommand)
	}
	if len(args.Raw) != 2 || args.Raw[0] != "country" || args.Raw[1] != "Japan" {
		t.Errorf("raw = %v", args.Raw)
	}

	args = ParseArgs([]string{"history", "show", "42", "--remote", "--limit", "5"})
	if args.Subcommand != "show" || args.Raw[0] != "42" {
		t.Errorf("history args = %q %v", args.Subcommand, args.Raw)
	}
	if !args.Remote || args.Limit != 5 {
		t.Errorf("remote/limit = %v/%d", args.Remote, args.Limit)
	}
}

func TestUsageDocumentsAllConfigKeys(t *testing.T) {
	keys := []string{
		"base_url", "timeout_secs", "country", "topic", "model",
		"show_examples", "archive_enabled",
	}
	for _, key := range keys {
		if !strings.Contains(usageText, key) {
			t.Errorf("usage text does not mention config key %q", key)
		}
	}
}

func TestParseArgsLimitRejectsBadValues(t *testing.T) {
	tests := []string{"abc", "-3", "0", "5x"}
	for _, value := range tests {
		args := ParseArgs([]string{"history", "list", "--limit", value})
		if args.Limit != 20 {
			t.Errorf("--limit %q: limit = %d, want default 20", value, args.Limit)
		}
	}
}
