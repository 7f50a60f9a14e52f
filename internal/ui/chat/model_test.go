// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/config"
	"github.com/warm-ai/warm-tui/internal/model"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	theme := styles.NewTheme()
	cfg := config.Default()
	return New(theme, cfg, api.NewClient())
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	if m.Mode() != model.ModeChat {
		t.Errorf("mode = %v, want chat", m.Mode())
	}
	if m.Conversation() == nil {
		t.Fatal("conversation should be initialized")
	}
	if !m.Conversation().IsEmpty() {
		t.Error("conversation should start empty")
	}
	if m.IsStreaming() {
		t.Error("new model should not be streaming")
	}
}

func TestNewModelInvalidDefaultMode(t *testing.T) {
	theme := styles.NewTheme()
	cfg := config.Default()
	cfg.Chat.DefaultMode = "telepathy"

	m := New(theme, cfg, api.NewClient())
	if m.Mode() != model.ModeChat {
		t.Errorf("unknown default mode should fall back to chat, got %v", m.Mode())
	}
}

func TestNewModelConfiguredMode(t *testing.T) {
	theme := styles.NewTheme()
	cfg := config.Default()
	cfg.Chat.DefaultMode = "web_search"

	m := New(theme, cfg, api.NewClient())
	if m.Mode() != model.ModeWebSearch {
		t.Errorf("mode = %v, want web_search", m.Mode())
	}
}

// =============================================================================
// MODE CYCLING
// =============================================================================

func TestCycleModeSkipsFileSearchWithoutUpload(t *testing.T) {
	m := newTestModel(t)
	m.setMode(model.ModeWebSearch)

	// web_search -> file_search, but there is no document bound.
	m.cycleMode()
	if m.Mode() == model.ModeFileSearch {
		t.Error("file search should be skipped without an uploaded document")
	}
	if m.Mode() != model.ModePeopleSearch {
		t.Errorf("mode = %v, want people_search", m.Mode())
	}
}

func TestCycleModeVisitsFileSearchAfterUpload(t *testing.T) {
	m := newTestModel(t)
	m.adoptUpload(&api.UploadResponse{
		SessionID: 12,
		StoreName: "store-12",
		FileName:  "deck.pdf",
		Status:    "indexed",
	})
	if m.Mode() != model.ModeFileSearch {
		t.Fatalf("mode after upload = %v, want file_search", m.Mode())
	}

	m.setMode(model.ModeWebSearch)
	m.cycleMode()
	if m.Mode() != model.ModeFileSearch {
		t.Errorf("file search should be reachable once a document is bound, got %v", m.Mode())
	}
}

func TestSetModeUpdatesPlaceholder(t *testing.T) {
	m := newTestModel(t)
	m.setMode(model.ModePeopleSearch)

	info, _ := model.GetModeInfo(string(model.ModePeopleSearch))
	if m.input.Placeholder != info.Placeholder {
		t.Errorf("placeholder = %q, want %q", m.input.Placeholder, info.Placeholder)
	}
}

func TestModeSwitchMidConversationReachesTheWire(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddMessage(model.NewUserMessage("first question"))
	m.setMode(model.ModeWebSearch)

	// Building the next turn's request syncs the conversation to the
	// selected mode, so the status bar and the wire agree.
	_ = m.startTurnCmd("second question")
	if m.conversation.Mode != api.ModeWebSearch {
		t.Errorf("conversation mode = %q, want web_search on the next turn", m.conversation.Mode)
	}
}

// =============================================================================
// CONVERSATION LIFECYCLE
// =============================================================================

func TestAdoptUploadCreatesFileSearchConversation(t *testing.T) {
	m := newTestModel(t)
	m.adoptUpload(&api.UploadResponse{
		SessionID: 5,
		StoreName: "store-5",
		FileName:  "notes.md",
		Status:    "indexed",
	})

	conv := m.Conversation()
	if conv.SessionID != 5 || conv.StoreName != "store-5" {
		t.Errorf("conversation not bound to upload: %+v", conv)
	}
	if conv.Mode != api.ModeFileSearch {
		t.Errorf("conversation mode = %v, want file_search", conv.Mode)
	}
}

func TestNewConversationLeavesFileSearch(t *testing.T) {
	m := newTestModel(t)
	m.adoptUpload(&api.UploadResponse{SessionID: 5, StoreName: "s", FileName: "f.pdf"})

	m.newConversation()
	if m.Mode() == model.ModeFileSearch {
		t.Error("a fresh conversation has no document, so file search must be left")
	}
	if m.Conversation().SessionID != 0 {
		t.Error("fresh conversation should have no session identity")
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func TestExpandPath(t *testing.T) {
	if got := expandPath("  /tmp/a.pdf "); got != "/tmp/a.pdf" {
		t.Errorf("expandPath trims whitespace, got %q", got)
	}
	if got := expandPath("relative.txt"); got != "relative.txt" {
		t.Errorf("expandPath should leave relative paths alone, got %q", got)
	}
	if got := expandPath("~/doc.pdf"); got == "~/doc.pdf" {
		t.Error("expandPath should resolve a leading ~")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Errorf("truncateLine = %q, want unchanged", got)
	}
	got := truncateLine("a very long session title here", 10)
	if len([]rune(got)) != 10 {
		t.Errorf("truncated length = %d, want 10", len([]rune(got)))
	}
}

func TestClampSidebarIndex(t *testing.T) {
	m := newTestModel(t)
	m.sidebarIndex = 42
	m.clampSidebarIndex()
	if m.sidebarIndex != 0 {
		t.Errorf("sidebarIndex = %d, want 0 with an empty directory", m.sidebarIndex)
	}
}

func TestSearchLabel(t *testing.T) {
	if searchLabel(model.ModePeopleSearch) != "Searching people" {
		t.Error("wrong label for people search")
	}
	if searchLabel(model.ModeCompanySearch) != "Searching companies" {
		t.Error("wrong label for company search")
	}
}
