// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

// =============================================================================
// COMMAND DISPATCH TESTS
// =============================================================================

func TestParseArgsDefaultsToTUI(t *testing.T) {
	cmd, _ := parseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("no args should start the TUI, got %v", cmd)
	}
}

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"ask", "hello"}, CmdAsk},
		{[]string{"chat"}, CmdChat},
		{[]string{"people", "engineers"}, CmdPeople},
		{[]string{"companies", "startups"}, CmdCompanies},
		{[]string{"sessions", "list"}, CmdSessions},
		{[]string{"session"}, CmdSessions},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
	}

	for _, tt := range tests {
		cmd, _ := parseArgs(tt.argv)
		if cmd != tt.want {
			t.Errorf("parseArgs(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseArgsQueryJoining(t *testing.T) {
	_, args := parseArgs([]string{"ask", "what", "is", "a", "SAFE"})
	if args.Query != "what is a SAFE" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseArgsFlags(t *testing.T) {
	_, args := parseArgs([]string{"ask", "--mode", "web_search", "-m", "gpt-test", "--json", "q"})
	if args.Mode != "web_search" {
		t.Errorf("Mode = %q", args.Mode)
	}
	if args.Model != "gpt-test" {
		t.Errorf("Model = %q", args.Model)
	}
	if !args.JSON {
		t.Error("JSON flag not parsed")
	}
	if args.Query != "q" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseArgsNumResults(t *testing.T) {
	_, args := parseArgs([]string{"people", "query", "-n", "3"})
	if args.NumResults != 3 {
		t.Errorf("NumResults = %d, want 3", args.NumResults)
	}
}

func TestParseArgsSubcommand(t *testing.T) {
	_, args := parseArgs([]string{"sessions", "rename", "12", "New title"})
	if args.Subcommand != "rename" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if len(args.Raw) != 3 {
		t.Errorf("Raw = %v", args.Raw)
	}
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParserEqualsFormat(t *testing.T) {
	p := NewArgParser([]string{"--mode=web_search", "--json=true", "--quiet=false"})
	if v := p.FlagOr("mode", ""); v != "web_search" {
		t.Errorf("mode = %q", v)
	}
	if !p.BoolFlag("json") {
		t.Error("json=true should set the bool flag")
	}
	if p.BoolFlag("quiet") {
		t.Error("quiet=false should clear the bool flag")
	}
}

func TestArgParserValueFlagConsumesNext(t *testing.T) {
	p := NewArgParser([]string{"-n", "7", "query", "terms"})
	if v := p.IntFlag("n", 0); v != 7 {
		t.Errorf("n = %d", v)
	}
	if len(p.Positional()) != 2 {
		t.Errorf("positional = %v", p.Positional())
	}
}

func TestArgParserIntFlagMalformed(t *testing.T) {
	p := NewArgParser([]string{"--num=lots"})
	if v := p.IntFlag("num", 5); v != 5 {
		t.Errorf("malformed int should fall back, got %d", v)
	}
}

func TestArgParserBooleanFlagsDoNotEatPositionals(t *testing.T) {
	p := NewArgParser([]string{"--json", "list"})
	if p.Subcommand() != "list" {
		t.Errorf("Subcommand = %q, want list", p.Subcommand())
	}
}

func TestChatModeFor(t *testing.T) {
	if chatModeFor(&Args{Mode: ""}) != "standard" {
		t.Error("empty mode should map to standard")
	}
	if chatModeFor(&Args{Mode: "web"}) != "web_search" {
		t.Error("web should map to web_search")
	}
	if chatModeFor(&Args{Mode: "nonsense"}) != "standard" {
		t.Error("unknown mode should fall back to standard")
	}
}
