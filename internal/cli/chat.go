// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the warm CLI.
//
// Handles the "warm chat" command: a line-oriented REPL for terminals
// where the full TUI is unwanted (ssh, screen readers, minimal shells).
//
// Interactive commands:
//   /help, /h       Show available commands
//   /clear, /c      Start a fresh conversation
//   /mode [name]    Show or switch chat mode (chat, web_search)
//   /sources        Show citations from the last reply
//   /quit, /q       Exit chat
//   Ctrl+C          Cancel the current reply
//   Ctrl+D          Exit chat

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/model"
)

// HandleChat runs the interactive plain-terminal chat loop.
func HandleChat(args *Args) {
	cfg := loadConfig()
	client := newClient(cfg, args)

	mode := chatModeFor(args)
	conv := model.NewConversation(mode)
	conv.Model = client.GetConfig().DefaultModel

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	printChatBanner(cfg.Backend.URL, mode)

	for {
		input, err := line.Prompt(promptStyle.Render("you> "))
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return
		}
		if err != nil {
			fail(err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := handleChatCommand(input, conv, &mode); quit {
				return
			}
			continue
		}

		runTurn(client, conv, mode, input)
	}
}

// runTurn streams one reply to stdout, honoring Ctrl+C as a silent cancel.
func runTurn(client *api.Client, conv *model.Conversation, mode api.ChatMode, input string) {
	if _, err := conv.BeginTurn(input); err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render(err.Error()))
		return
	}
	conv.Mode = mode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := cancelOnInterrupt(cancel)
	defer stop()

	request := api.ChatRequest{
		ConversationID: conv.SessionID,
		Message:        input,
		Mode:           mode,
		Model:          conv.Model,
	}

	fmt.Print(bannerStyle.Render("warm> "))

	var streamErr string
	err := client.ChatStream(ctx, request, func(event api.StreamEvent) {
		switch event.Type {
		case api.EventToken:
			conv.AppendToLast(event.Content)
			fmt.Print(event.Content)
		case api.EventCitation:
			conv.SetSourcesOnLast(event.Sources)
		case api.EventSessionCreated:
			conv.AdoptSession(event.SessionID, event.Title)
		case api.EventError:
			streamErr = event.Error
		}
	})
	fmt.Println()

	switch {
	case err != nil && api.IsAborted(err):
		conv.RollbackLast()
		fmt.Println(mutedStyle.Render("(cancelled)"))
	case err != nil:
		// The partial reply is discarded so the next turn starts clean;
		// the user's message stays in the transcript.
		conv.RollbackLast()
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
	case streamErr != "":
		conv.RollbackLast()
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+streamErr)
	default:
		conv.FinalizeLast()
		if last := conv.LastMessage(); last != nil && len(last.Sources) > 0 {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("(%d sources; /sources to list)", len(last.Sources))))
		}
	}
	fmt.Println()
}

// handleChatCommand executes a /command. Returns true when the loop should
// exit.
func handleChatCommand(input string, conv *model.Conversation, mode *api.ChatMode) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/clear") + "    start a fresh conversation")
		fmt.Println(commandStyle.Render("/mode") + "     show or switch mode (chat, web_search)")
		fmt.Println(commandStyle.Render("/sources") + "  citations from the last reply")
		fmt.Println(commandStyle.Render("/quit") + "     exit")

	case "/clear", "/c":
		*conv = *model.NewConversation(*mode)
		fmt.Println(infoStyle.Render("Conversation cleared."))

	case "/mode":
		if len(fields) == 1 {
			fmt.Println(infoStyle.Render("Mode: " + string(*mode)))
			break
		}
		switch fields[1] {
		case "chat", "standard":
			*mode = api.ModeStandard
		case "web_search", "web":
			*mode = api.ModeWebSearch
		default:
			fmt.Println(warningStyle.Render("Unknown mode. Use chat or web_search."))
			return false
		}
		fmt.Println(infoStyle.Render("Mode: " + string(*mode)))

	case "/sources":
		last := conv.LastAssistantMessage()
		if last == nil || len(last.Sources) == 0 {
			fmt.Println(mutedStyle.Render("No sources on the last reply."))
			break
		}
		printSources(last.Sources)

	default:
		fmt.Println(warningStyle.Render("Unknown command. /help lists commands."))
	}
	return false
}

func printChatBanner(backendURL string, mode api.ChatMode) {
	fmt.Println(bannerStyle.Render("warm chat"))
	fmt.Println(infoStyle.Render("backend " + backendURL + "  mode " + string(mode)))
	fmt.Println(mutedStyle.Render("/help for commands, Ctrl+D to exit"))
	fmt.Println()
}
