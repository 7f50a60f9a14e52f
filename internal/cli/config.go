// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command handler for the warm CLI.
//
// Command: config [show|get|set|path]
//
// Examples:
//   warm config show
//   warm config get backend.url
//   warm config set chat.default_mode web_search

package cli

import (
	"fmt"
	"os"

	"github.com/warm-ai/warm-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args *Args) {
	switch args.Subcommand {
	case "", "show":
		cfg := loadConfig()
		if args.JSON {
			printJSON(cfg)
			return
		}
		fmt.Print(cfg.String())

	case "get":
		if len(args.Raw) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: warm config get KEY")
			os.Exit(1)
		}
		cfg := loadConfig()
		value, err := cfg.Get(args.Raw[1])
		if err != nil {
			fail(err)
		}
		fmt.Println(value)

	case "set":
		if len(args.Raw) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: warm config set KEY VALUE")
			os.Exit(1)
		}
		cfg := loadConfig()
		if err := cfg.Set(args.Raw[1], args.Raw[2]); err != nil {
			fail(err)
		}
		if err := cfg.Validate(); err != nil {
			fail(err)
		}
		if err := config.Save(cfg); err != nil {
			fail(err)
		}
		fmt.Println(commandStyle.Render("Saved."))

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			fail(err)
		}
		fmt.Println(path)

	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand %q. Use show, get, set or path.\n", args.Subcommand)
		os.Exit(1)
	}
}
