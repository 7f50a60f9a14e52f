// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements streaming optimization for smooth, flicker-free
// rendering. Tokens arrive from a goroutine reading the SSE stream and are
// batched in a StreamBuffer, which the Update loop drains at a capped frame
// rate. Non-token events (citations, session adoption, inline errors) are
// collected in a turnEvents side channel and applied on the same ticks.
package chat

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/warm-ai/warm-tui/internal/api"
)

// =============================================================================
// STREAM BUFFER
// =============================================================================

// StreamBuffer batches tokens for efficient rendering. Tokens accumulate and
// are flushed when either the batch size threshold is reached or enough time
// has passed since the last flush (~33ms for 30fps).
//
// Thread-safety: all operations are mutex-protected since the SSE goroutine
// writes while the main Bubble Tea loop reads.
type StreamBuffer struct {
	mu         sync.Mutex
	buffer     strings.Builder
	tokenCount int
	lastFlush  time.Time

	batchSize  int
	minFlushMs time.Duration
}

const (
	defaultBatchSize = 15
	defaultMaxFPS    = 30
)

// NewStreamBuffer creates a streaming buffer with default settings:
// 15-token batches at up to 30fps.
func NewStreamBuffer() *StreamBuffer {
	return &StreamBuffer{
		batchSize:  defaultBatchSize,
		minFlushMs: time.Second / defaultMaxFPS,
		lastFlush:  time.Now(),
	}
}

// Write adds a token to the buffer. Called from the streaming goroutine.
func (sb *StreamBuffer) Write(token string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buffer.WriteString(token)
	sb.tokenCount++
}

// Flush returns accumulated content if a flush threshold has been reached.
// Called from the main Bubble Tea loop.
func (sb *StreamBuffer) Flush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}

	if sb.tokenCount < sb.batchSize && time.Since(sb.lastFlush) < sb.minFlushMs {
		return "", false
	}

	return sb.takeLocked(), true
}

// ForceFlush immediately returns all buffered content regardless of
// thresholds. Used when a stream completes so no tokens are dropped.
func (sb *StreamBuffer) ForceFlush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}
	return sb.takeLocked(), true
}

// Reset clears the buffer without flushing. Used when cancelling a turn.
func (sb *StreamBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = time.Now()
}

// Pending returns the number of tokens waiting to be flushed.
func (sb *StreamBuffer) Pending() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.tokenCount
}

func (sb *StreamBuffer) takeLocked() string {
	content := sb.buffer.String()
	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = time.Now()
	return content
}

// =============================================================================
// TURN EVENTS
// =============================================================================

// turnEvents collects the non-token stream events of the current turn.
// The SSE goroutine records them; the Update loop drains them on ticks.
type turnEvents struct {
	mu sync.Mutex

	sources          []api.SourceCitation
	hasSources       bool
	fileCitations    []api.FileCitation
	hasFileCitations bool

	sessionID    int
	sessionTitle string
	hasSession   bool

	errText string
	hasErr  bool
}

// turnSnapshot is one drained batch of turn events.
type turnSnapshot struct {
	Sources          []api.SourceCitation
	HasSources       bool
	FileCitations    []api.FileCitation
	HasFileCitations bool

	SessionID    int
	SessionTitle string
	HasSession   bool

	ErrText string
	HasErr  bool
}

func newTurnEvents() *turnEvents {
	return &turnEvents{}
}

// record stores one non-token event. Later citation events replace earlier
// ones; only the first session_created is kept.
func (e *turnEvents) record(event api.StreamEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch event.Type {
	case api.EventCitation:
		e.sources = event.Sources
		e.hasSources = true
	case api.EventFileCitation:
		if citations, ok := event.DecodeFileCitations(); ok {
			e.fileCitations = citations
			e.hasFileCitations = true
		}
	case api.EventSessionCreated:
		if !e.hasSession {
			e.sessionID = event.SessionID
			e.sessionTitle = event.Title
			e.hasSession = true
		}
	case api.EventError:
		e.errText = event.Error
		e.hasErr = true
	}
}

// drain returns everything recorded since the last drain and clears it.
func (e *turnEvents) drain() turnSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := turnSnapshot{
		Sources:          e.sources,
		HasSources:       e.hasSources,
		FileCitations:    e.fileCitations,
		HasFileCitations: e.hasFileCitations,
		SessionID:        e.sessionID,
		SessionTitle:     e.sessionTitle,
		HasSession:       e.hasSession,
		ErrText:          e.errText,
		HasErr:           e.hasErr,
	}

	e.sources = nil
	e.hasSources = false
	e.fileCitations = nil
	e.hasFileCitations = false
	e.sessionID = 0
	e.sessionTitle = ""
	e.hasSession = false
	// The error is deliberately sticky: a mid-stream tick may drain before
	// the stream closes, and the final drain still needs to see it.

	return snap
}

// reset discards any recorded events. Called before a new turn starts.
func (e *turnEvents) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sources = nil
	e.hasSources = false
	e.fileCitations = nil
	e.hasFileCitations = false
	e.sessionID = 0
	e.sessionTitle = ""
	e.hasSession = false
	e.errText = ""
	e.hasErr = false
}

// =============================================================================
// STREAMING TICK COMMAND
// =============================================================================

// streamTickCmd creates a tea.Cmd that sends StreamTickMsg at ~30fps.
func streamTickCmd() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
