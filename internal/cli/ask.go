// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the warm CLI.
//
// Handles the "warm ask" command which sends one message to the backend
// and streams the response to stdout.
//
// Command: ask [question]
//
// Examples:
//   warm ask "What is a SAFE note?"
//   warm ask --mode web_search "Latest EU AI regulation news"
//   warm ask --json "List three pricing models"

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/warm-ai/warm-tui/internal/api"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk sends a single message and streams the reply to stdout.
//
// When stdout is a TTY the tokens stream raw and the finished response is
// re-rendered as markdown; piped output stays plain so nothing downstream
// has to strip ANSI sequences.
func HandleAsk(args *Args) {
	if strings.TrimSpace(args.Query) == "" {
		fmt.Fprintln(os.Stderr, "Usage: warm ask \"question\"")
		os.Exit(1)
	}

	cfg := loadConfig()
	client := newClient(cfg, args)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C cancels the stream; the partial output stays on screen.
	stop := cancelOnInterrupt(cancel)
	defer stop()

	request := api.ChatRequest{
		Message: args.Query,
		Mode:    chatModeFor(args),
		Model:   client.GetConfig().DefaultModel,
	}

	var response strings.Builder
	var sources []api.SourceCitation
	var streamErr string

	err := client.ChatStream(ctx, request, func(event api.StreamEvent) {
		switch event.Type {
		case api.EventToken:
			response.WriteString(event.Content)
			if !args.JSON {
				fmt.Print(event.Content)
			}
		case api.EventCitation:
			sources = event.Sources
		case api.EventError:
			streamErr = event.Error
		}
	})

	if !args.JSON {
		fmt.Println()
	}

	if err != nil {
		if api.IsAborted(err) {
			os.Exit(130)
		}
		fail(err)
	}
	if streamErr != "" {
		fail(fmt.Errorf("%s", streamErr))
	}

	if args.JSON {
		printJSON(map[string]any{
			"response": response.String(),
			"sources":  sources,
		})
		return
	}

	// Re-render the full response as markdown on interactive terminals.
	if IsTTY() && !args.Quiet && response.Len() > 0 {
		fmt.Print("\n" + renderMarkdown(response.String()))
	}

	printSources(sources)
}

// printSources lists web citations under the response.
func printSources(sources []api.SourceCitation) {
	if len(sources) == 0 {
		return
	}
	fmt.Println(infoStyle.Render("Sources:"))
	for i, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URL
		}
		fmt.Printf("  %s %s\n", citationStyle.Render(fmt.Sprintf("[%d]", i+1)), title)
		if s.Title != "" && s.URL != "" {
			fmt.Println(mutedStyle.Render("      " + s.URL))
		}
	}
}
