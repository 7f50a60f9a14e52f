// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat interface:
// streaming ticks and turn completion, search results, uploads, session
// directory updates, and backend health.
package chat

import (
	"time"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/config"
	"github.com/warm-ai/warm-tui/internal/model"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamTickMsg is sent at 30fps during streaming to batch render tokens.
// This prevents excessive rendering which causes flicker and high CPU.
type StreamTickMsg struct {
	Time time.Time
}

// TurnDoneMsg signals that a streaming chat turn has finished, successfully
// or otherwise. A nil Err means the stream completed; an aborted context
// surfaces as api.ErrAborted.
type TurnDoneMsg struct {
	Err error
}

// =============================================================================
// SEARCH MESSAGES
// =============================================================================

// SearchDoneMsg delivers the result of a one-shot people or company search.
type SearchDoneMsg struct {
	Mode  model.InputMode
	Cards []api.Card
	Err   error
}

// =============================================================================
// UPLOAD MESSAGES
// =============================================================================

// UploadDoneMsg delivers the result of a document upload.
type UploadDoneMsg struct {
	Upload *api.UploadResponse
	Err    error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionsLoadedMsg signals that the session directory finished a refresh
// or a load-more page.
type SessionsLoadedMsg struct {
	Added int
	Err   error
}

// SessionOpenedMsg delivers a session hydrated into a conversation.
type SessionOpenedMsg struct {
	Conversation *model.Conversation
	Err          error
}

// SessionRenamedMsg confirms a rename.
type SessionRenamedMsg struct {
	ID  int
	Err error
}

// SessionDeletedMsg confirms a delete.
type SessionDeletedMsg struct {
	ID  int
	Err error
}

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// HealthMsg reports the result of a backend health check.
type HealthMsg struct {
	Up  bool
	Err error
}

// ConfigReloadedMsg carries a configuration reloaded from disk by the
// config watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}
