// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/warm-ai/warm-tui/internal/api"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Warm"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content. For card-bearing assistant messages this is blank; the cards
	// carry the payload.
	Content string `json:"content"`

	// Streaming state
	// PERFORMANCE: strings.Builder avoids quadratic allocations during streaming
	IsStreaming   bool            `json:"-"`
	streamContent strings.Builder `json:"-"`

	// revealed is the typewriter cursor: how many runes of the accumulated
	// content are currently shown. Only meaningful while streaming; snapped
	// to the full length on finalize.
	revealed int

	// Citations attached by the backend. Each citation event replaces the
	// whole set; it never appends.
	Sources       []api.SourceCitation `json:"sources,omitempty"`
	FileCitations []api.FileCitation   `json:"file_citations,omitempty"`

	// Structured result cards from the search modes.
	Cards []api.Card `json:"cards,omitempty"`
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates a new streaming assistant placeholder.
func NewAssistantMessage() *Message {
	return &Message{
		ID:          generateID(),
		Role:        RoleAssistant,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// NewCardMessage creates a finalized assistant message carrying result cards.
func NewCardMessage(cards []api.Card) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Cards:     cards,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendToken appends a token to a streaming message. Content only ever
// grows during a turn; nothing rewrites earlier tokens.
func (m *Message) AppendToken(token string) {
	if m.IsStreaming {
		m.streamContent.WriteString(token)
	}
}

// SetSources replaces the message's web citations.
func (m *Message) SetSources(sources []api.SourceCitation) {
	m.Sources = sources
}

// SetFileCitations replaces the message's document citations.
func (m *Message) SetFileCitations(citations []api.FileCitation) {
	m.FileCitations = citations
}

// FinalizeStream completes streaming: the buffered content becomes the
// message content and the typewriter snaps to the end.
func (m *Message) FinalizeStream() {
	if !m.IsStreaming {
		return
	}
	m.Content = m.streamContent.String()
	m.streamContent.Reset()
	m.IsStreaming = false
	m.revealed = len([]rune(m.Content))
}

// FullContent returns everything accumulated so far, streamed or final.
func (m *Message) FullContent() string {
	if m.IsStreaming {
		return m.streamContent.String()
	}
	return m.Content
}

// DisplayContent returns the content to render: the revealed prefix while
// streaming, the full content otherwise.
func (m *Message) DisplayContent() string {
	if !m.IsStreaming {
		return m.Content
	}
	runes := []rune(m.streamContent.String())
	if m.revealed >= len(runes) {
		return string(runes)
	}
	return string(runes[:m.revealed])
}

// AdvanceReveal moves the typewriter cursor forward by at most maxRunes,
// clamped to the accumulated content. It reports whether anything new was
// revealed.
func (m *Message) AdvanceReveal(maxRunes int) bool {
	if !m.IsStreaming || maxRunes <= 0 {
		return false
	}
	total := len([]rune(m.streamContent.String()))
	if m.revealed >= total {
		return false
	}
	m.revealed += maxRunes
	if m.revealed > total {
		m.revealed = total
	}
	return true
}

// RevealPending reports whether the typewriter still has content to show.
func (m *Message) RevealPending() bool {
	return m.IsStreaming && m.revealed < len([]rune(m.streamContent.String()))
}

// HasCards reports whether the message renders as result cards.
func (m *Message) HasCards() bool {
	return len(m.Cards) > 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	content := m.FullContent()
	if m.HasCards() && content == "" {
		content = cardPreview(m.Cards)
	}
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content and no cards.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0 && m.streamContent.Len() == 0 && len(m.Cards) == 0
}

// cardPreview summarizes a card set for history listings.
func cardPreview(cards []api.Card) string {
	var names []string
	for _, card := range cards {
		switch card.Kind() {
		case api.CardPerson:
			names = append(names, card.Person.Name)
		case api.CardCompany:
			names = append(names, card.Company.Name)
		}
		if len(names) == 3 {
			break
		}
	}
	if len(names) == 0 {
		return "Search results"
	}
	return "Results: " + strings.Join(names, ", ")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
