// warm - a terminal client for the Warm AI backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/cli"
	"github.com/warm-ai/warm-tui/internal/config"
	"github.com/warm-ai/warm-tui/internal/ui/chat"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdPeople:
		cli.HandlePeople(args)
	case cli.CmdCompanies:
		cli.HandleCompanies(args)
	case cli.CmdSessions:
		cli.HandleSessions(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(args)
	}
}

// appModel adapts the chat model to the tea.Model interface.
type appModel struct {
	chat chat.Model
}

func (a appModel) Init() tea.Cmd {
	return a.chat.Init()
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.chat.Update(msg)
	a.chat = m
	return a, cmd
}

func (a appModel) View() string {
	return a.chat.View()
}

// runTUI starts the full-screen terminal interface.
func runTUI(args *cli.Args) {
	// The TUI owns the terminal; piped output gets the plain CLI instead.
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use `warm ask` or `warm chat`")
		os.Exit(1)
	}

	cfg := config.Global()
	if args.Mode != "" {
		cfg.Chat.DefaultMode = args.Mode
	}
	if args.Model != "" {
		cfg.Chat.Model = args.Model
	}

	theme := styles.NewThemeWithPreference(cfg.UI.Theme)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:      cfg.Backend.URL,
		Timeout:      time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		DefaultModel: cfg.Chat.Model,
		SearchRate:   cfg.Search.RatePerSec,
	})

	m := chat.New(theme, cfg, client)
	m.SetVersion(Version)

	p := tea.NewProgram(
		appModel{chat: m},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Live config reload: edits to ~/.warm/config.* land in the running UI.
	watcher, err := config.NewWatcher(500*time.Millisecond, func(reloaded *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Config: reloaded})
	})
	if err == nil {
		if werr := watcher.Watch(); werr == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
