// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for warm.
package cli

import (
	"fmt"
	"os"
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
	CmdAsk
	CmdChat
	CmdPeople
	CmdCompanies
	CmdSessions
	CmdConfig
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	Mode    string // chat | web_search | file_search
	Model   string

	// Command-specific
	Query      string
	Subcommand string
	NumResults int

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `warm - chat and search for the Warm AI backend

Usage:
  warm                        Start the TUI (default)
  warm ask "question"         Ask one question, stream the answer
  warm chat                   Interactive chat in a plain terminal
  warm people "query"         Search for people
  warm companies "query"      Search for companies
  warm sessions [subcommand]  Session management (list|rename|delete)
  warm config [show|set]      Configuration
  warm status                 Check backend health
  warm version                Show version
  warm help                   Show this help

Flags:
  --mode MODE       Chat mode: chat, web_search (ask/chat)
  -m, --model NAME  Model name sent with chat turns
  -n, --num N       Number of search results (people/companies)
  --json            Output raw JSON (search/sessions/status)
  -q, --quiet       Minimal output
  -v, --verbose     Verbose output

Environment:
  WARM_BACKEND_URL  Backend base URL (default http://127.0.0.1:8000)
  WARM_MODE         Default input mode
  WARM_MODEL        Default model

Examples:
  warm ask "Summarize SAFE vs convertible notes"
  warm ask --mode web_search "What happened in AI funding this week?"
  warm people "ML engineers in Berlin" -n 3
  warm sessions list
  warm sessions rename 12 "Pricing research"
`

// Parse reads os.Args and returns the command plus its arguments.
func Parse() (Command, *Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, *Args) {
	args := &Args{NumResults: 0}

	if len(argv) == 0 {
		return CmdTUI, args
	}

	cmd := CmdTUI
	rest := argv

	switch strings.ToLower(argv[0]) {
	case "ask":
		cmd = CmdAsk
		rest = argv[1:]
	case "chat":
		cmd = CmdChat
		rest = argv[1:]
	case "people":
		cmd = CmdPeople
		rest = argv[1:]
	case "companies":
		cmd = CmdCompanies
		rest = argv[1:]
	case "sessions", "session":
		cmd = CmdSessions
		rest = argv[1:]
	case "config":
		cmd = CmdConfig
		rest = argv[1:]
	case "status", "s":
		cmd = CmdStatus
		rest = argv[1:]
	case "version", "--version", "-V":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	}

	parser := NewArgParser(rest)
	args.JSON = parser.BoolFlag("json")
	args.Quiet = parser.BoolFlag("quiet") || parser.BoolFlag("q")
	args.Verbose = parser.BoolFlag("verbose") || parser.BoolFlag("v")
	args.Mode = parser.FlagOr("mode", "")
	args.Model = parser.FlagOr("model", parser.FlagOr("m", ""))
	args.NumResults = parser.IntFlag("num", parser.IntFlag("n", 0))
	args.Raw = parser.Positional()

	switch cmd {
	case CmdAsk, CmdPeople, CmdCompanies:
		args.Query = strings.Join(parser.Positional(), " ")
	case CmdSessions, CmdConfig:
		args.Subcommand = parser.Subcommand()
	}

	return cmd, args
}

// PrintUsage writes the top-level help text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information.
func PrintVersion() {
	fmt.Printf("warm %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
