// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/model"
)

// =============================================================================
// CHAT TURN
// =============================================================================

// startTurnCmd opens the SSE stream for one chat turn. Tokens land in the
// stream buffer and everything else in the event channel; the 30fps tick
// drains both. The command itself only reports how the stream ended.
func (m *Model) startTurnCmd(content string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	// Each turn carries the mode selected right now, not the mode the
	// conversation started in, so switching mid-conversation takes effect
	// on the next request.
	mode := m.conversation.Mode
	if m.mode.IsChat() {
		mode = m.mode.ChatMode()
		m.conversation.Mode = mode
	}

	request := api.ChatRequest{
		ConversationID: m.conversation.SessionID,
		Message:        content,
		Mode:           mode,
		Model:          m.cfg.Chat.Model,
	}

	buf := m.streamBuf
	events := m.events

	return func() tea.Msg {
		err := m.client.ChatStream(ctx, request, func(event api.StreamEvent) {
			if event.Type == api.EventToken {
				buf.Write(event.Content)
				return
			}
			events.record(event)
		})
		return TurnDoneMsg{Err: err}
	}
}

// =============================================================================
// SEARCH
// =============================================================================

// searchCmd runs a one-shot people or company search.
func (m *Model) searchCmd(mode model.InputMode, query string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	numResults := m.cfg.Search.NumResults
	client := m.client

	return func() tea.Msg {
		switch mode {
		case model.ModePeopleSearch:
			resp, err := client.SearchPeople(ctx, query, numResults)
			if err != nil {
				return SearchDoneMsg{Mode: mode, Err: err}
			}
			cards := make([]api.Card, len(resp.Results))
			for i := range resp.Results {
				cards[i] = api.Card{Person: &resp.Results[i]}
			}
			return SearchDoneMsg{Mode: mode, Cards: cards}

		case model.ModeCompanySearch:
			resp, err := client.SearchCompanies(ctx, query, numResults)
			if err != nil {
				return SearchDoneMsg{Mode: mode, Err: err}
			}
			cards := make([]api.Card, len(resp.Results))
			for i := range resp.Results {
				cards[i] = api.Card{Company: &resp.Results[i]}
			}
			return SearchDoneMsg{Mode: mode, Cards: cards}

		default:
			return SearchDoneMsg{Mode: mode, Err: fmt.Errorf("not a search mode: %s", mode)}
		}
	}
}

// =============================================================================
// UPLOAD
// =============================================================================

// uploadCmd validates a local file and sends it to the backend. Extension
// and size limits are checked locally before any bytes move.
func (m *Model) uploadCmd(path string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	cfg := m.cfg
	client := m.client

	return func() tea.Msg {
		path = expandPath(path)

		info, err := os.Stat(path)
		if err != nil {
			return UploadDoneMsg{Err: fmt.Errorf("cannot read file: %w", err)}
		}
		if info.IsDir() {
			return UploadDoneMsg{Err: fmt.Errorf("%s is a directory", path)}
		}

		ext := filepath.Ext(path)
		if !cfg.ExtensionAllowed(ext) {
			return UploadDoneMsg{Err: fmt.Errorf("file type %s is not supported", ext)}
		}
		if info.Size() > cfg.MaxUploadBytes() {
			return UploadDoneMsg{Err: fmt.Errorf("file exceeds the %d MB upload limit", cfg.MaxUploadBytes()/(1024*1024))}
		}

		f, err := os.Open(path)
		if err != nil {
			return UploadDoneMsg{Err: fmt.Errorf("cannot open file: %w", err)}
		}
		defer f.Close()

		upload, err := client.UploadFile(ctx, filepath.Base(path), f)
		if err != nil {
			return UploadDoneMsg{Err: err}
		}
		return UploadDoneMsg{Upload: upload}
	}
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// =============================================================================
// SESSIONS
// =============================================================================

func (m *Model) refreshSessionsCmd() tea.Cmd {
	directory := m.directory
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sessions, err := directory.Refresh(ctx)
		return SessionsLoadedMsg{Added: len(sessions), Err: err}
	}
}

func (m *Model) loadMoreSessionsCmd() tea.Cmd {
	directory := m.directory
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		added, err := directory.LoadMore(ctx)
		return SessionsLoadedMsg{Added: added, Err: err}
	}
}

func (m *Model) openSessionCmd(id int) tea.Cmd {
	directory := m.directory
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		conv, err := directory.Select(ctx, id)
		return SessionOpenedMsg{Conversation: conv, Err: err}
	}
}

func (m *Model) renameSessionCmd(id int, title string) tea.Cmd {
	directory := m.directory
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := directory.Rename(ctx, id, title)
		return SessionRenamedMsg{ID: id, Err: err}
	}
}

func (m *Model) deleteSessionCmd(id int) tea.Cmd {
	directory := m.directory
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := directory.Delete(ctx, id)
		return SessionDeletedMsg{ID: id, Err: err}
	}
}

// =============================================================================
// HEALTH
// =============================================================================

func (m *Model) healthCmd() tea.Cmd {
	client := m.client
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.CheckHealth(ctx)
		return HealthMsg{Up: err == nil, Err: err}
	}
}
