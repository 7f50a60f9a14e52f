// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - Session management command handlers for the warm CLI.
//
// Command: sessions [list|show|rename|delete]
//
// Examples:
//   warm sessions list
//   warm sessions show 12
//   warm sessions rename 12 "Pricing research"
//   warm sessions delete 12

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/warm-ai/warm-tui/internal/util"
)

const sessionListLimit = 50

// HandleSessions dispatches the sessions subcommands.
func HandleSessions(args *Args) {
	cfg := loadConfig()
	client := newClient(cfg, args)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	switch args.Subcommand {
	case "", "list", "ls":
		sessions, err := client.ListSessions(ctx, 0, sessionListLimit)
		if err != nil {
			fail(err)
		}
		if args.JSON {
			printJSON(sessions)
			return
		}
		if len(sessions) == 0 {
			fmt.Println(mutedStyle.Render("No sessions."))
			return
		}
		for _, s := range sessions {
			title := s.Title
			if title == "" {
				title = "Untitled"
			}
			line := fmt.Sprintf("%4d  %-12s %s", s.ID, s.Mode, util.TruncateWidth(title, 60))
			if s.FileName != "" {
				line += mutedStyle.Render("  [" + s.FileName + "]")
			}
			line += mutedStyle.Render("  " + util.RelativeTime(s.UpdatedAt, time.Now()))
			fmt.Println(line)
		}

	case "show":
		id := requireSessionID(args, "show")
		detail, err := client.GetSession(ctx, id)
		if err != nil {
			fail(err)
		}
		if args.JSON {
			printJSON(detail)
			return
		}
		fmt.Println(promptStyle.Render(detail.Title) + mutedStyle.Render("  ("+string(detail.Mode)+")"))
		for _, msg := range detail.Messages {
			role := infoStyle.Render(msg.Role)
			if msg.Role == "user" {
				role = promptStyle.Render(msg.Role)
			}
			fmt.Printf("\n%s\n%s\n", role, msg.Content)
		}

	case "rename":
		id := requireSessionID(args, "rename")
		title := strings.Join(args.Raw[2:], " ")
		if strings.TrimSpace(title) == "" {
			fmt.Fprintln(os.Stderr, "Usage: warm sessions rename ID \"new title\"")
			os.Exit(1)
		}
		if _, err := client.RenameSession(ctx, id, title); err != nil {
			fail(err)
		}
		fmt.Println(commandStyle.Render("Renamed."))

	case "delete", "rm":
		id := requireSessionID(args, "delete")
		if err := client.DeleteSession(ctx, id); err != nil {
			fail(err)
		}
		fmt.Println(commandStyle.Render("Deleted."))

	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand %q. Use list, show, rename or delete.\n", args.Subcommand)
		os.Exit(1)
	}
}

// requireSessionID parses the ID positional argument or exits.
func requireSessionID(args *Args, sub string) int {
	if len(args.Raw) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: warm sessions %s ID\n", sub)
		os.Exit(1)
	}
	id, err := strconv.Atoi(args.Raw[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid session ID %q\n", args.Raw[1])
		os.Exit(1)
	}
	return id
}
