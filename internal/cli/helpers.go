// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring for the plain-terminal command handlers.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/config"
)

// loadConfig loads the user configuration, falling back to defaults with a
// warning rather than refusing to run.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render("config: "+err.Error()+" (using defaults)"))
		return config.Default()
	}
	return cfg
}

// newClient builds a backend client from the loaded configuration.
func newClient(cfg *config.Config, args *Args) *api.Client {
	model := cfg.Chat.Model
	if args.Model != "" {
		model = args.Model
	}
	return api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:      cfg.Backend.URL,
		Timeout:      time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		DefaultModel: model,
		SearchRate:   cfg.Search.RatePerSec,
	})
}

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// chatModeFor maps the --mode flag onto a wire mode. Unknown values fall
// back to standard chat with a warning.
func chatModeFor(args *Args) api.ChatMode {
	switch args.Mode {
	case "", "chat", "standard":
		return api.ModeStandard
	case "web_search", "web":
		return api.ModeWebSearch
	default:
		fmt.Fprintln(os.Stderr, warningStyle.Render("unknown mode "+args.Mode+", using chat"))
		return api.ModeStandard
	}
}

// cancelOnInterrupt invokes cancel on SIGINT/SIGTERM. The returned stop
// function restores default signal handling.
func cancelOnInterrupt(cancel context.CancelFunc) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// fail prints an error and exits non-zero.
func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
