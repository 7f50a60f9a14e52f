// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"time"

	"github.com/warm-ai/warm-tui/internal/api"
)

// MaxMessages is the maximum number of messages to keep in conversation history.
// When exceeded, old messages are pruned to prevent unbounded memory growth.
const MaxMessages = 1000

// ErrTurnInFlight is returned by BeginTurn while a previous turn is still
// streaming. One turn at a time: the caller waits or cancels first.
var ErrTurnInFlight = errors.New("a turn is already streaming")

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat session's local state: the message transcript
// plus the identity the backend assigned it.
//
// The backend is the source of truth for persisted history. A Conversation
// starts with SessionID zero; the backend's session_created event during the
// first turn assigns the real ID.
type Conversation struct {
	// Backend identity. Zero until the backend creates the session.
	SessionID int    `json:"session_id"`
	Title     string `json:"title"`

	Mode  api.ChatMode `json:"mode"`
	Model string       `json:"model,omitempty"`

	// File-search sessions are bound to one uploaded document.
	FileName  string `json:"file_name,omitempty"`
	StoreName string `json:"store_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`

	// True while a turn is streaming. Guarded here as well as in the UI so a
	// headless caller cannot interleave turns either.
	inFlight bool
}

// NewConversation creates an empty conversation in the given mode.
func NewConversation(mode api.ChatMode) *Conversation {
	return &Conversation{
		Mode:      mode,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// NewFileSearchConversation creates a conversation bound to an uploaded
// document.
func NewFileSearchConversation(upload *api.UploadResponse) *Conversation {
	conv := NewConversation(api.ModeFileSearch)
	conv.SessionID = upload.SessionID
	conv.FileName = upload.FileName
	conv.StoreName = upload.StoreName
	conv.Title = upload.FileName
	return conv
}

// =============================================================================
// TURN LIFECYCLE
// =============================================================================

// BeginTurn starts a chat turn: the user message is appended and a streaming
// assistant placeholder follows it. It fails if a turn is already in flight.
// The returned message is the placeholder the stream writes into.
func (c *Conversation) BeginTurn(userContent string) (*Message, error) {
	if c.inFlight {
		return nil, ErrTurnInFlight
	}

	c.AddMessage(NewUserMessage(userContent))
	placeholder := NewAssistantMessage()
	c.AddMessage(placeholder)
	c.inFlight = true
	return placeholder, nil
}

// InFlight reports whether a turn is currently streaming.
func (c *Conversation) InFlight() bool {
	return c.inFlight
}

// AppendToLast appends a token to the streaming placeholder.
func (c *Conversation) AppendToLast(token string) {
	last := c.LastMessage()
	if last != nil && last.IsStreaming {
		last.AppendToken(token)
	}
}

// SetSourcesOnLast replaces the streaming message's web citations.
func (c *Conversation) SetSourcesOnLast(sources []api.SourceCitation) {
	last := c.LastMessage()
	if last != nil && last.Role == RoleAssistant {
		last.SetSources(sources)
	}
}

// SetFileCitationsOnLast replaces the streaming message's document citations.
func (c *Conversation) SetFileCitationsOnLast(citations []api.FileCitation) {
	last := c.LastMessage()
	if last != nil && last.Role == RoleAssistant {
		last.SetFileCitations(citations)
	}
}

// AdoptSession records the identity the backend assigned on the first turn.
// A backend title wins over the local auto-title.
func (c *Conversation) AdoptSession(sessionID int, title string) {
	if c.SessionID == 0 {
		c.SessionID = sessionID
	}
	if title != "" {
		c.Title = title
	}
	c.UpdatedAt = time.Now()
}

// FinalizeLast completes the streaming placeholder after a done event.
func (c *Conversation) FinalizeLast() {
	last := c.LastMessage()
	if last != nil && last.IsStreaming {
		last.FinalizeStream()
	}
	c.inFlight = false
	c.UpdatedAt = time.Now()
}

// RollbackLast removes the streaming placeholder after a failed or aborted
// turn. The user's message stays so it can be resubmitted by hand; partial
// assistant output is discarded.
func (c *Conversation) RollbackLast() {
	last := c.LastMessage()
	if last != nil && last.IsStreaming {
		c.Messages = c.Messages[:len(c.Messages)-1]
	}
	c.inFlight = false
	c.UpdatedAt = time.Now()
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	c.pruneOldMessages()
}

// AddCardMessage appends a finalized assistant message carrying search
// result cards.
func (c *Conversation) AddCardMessage(cards []api.Card) *Message {
	msg := NewCardMessage(cards)
	c.AddMessage(msg)
	return msg
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAssistantMessage returns the most recent assistant message.
func (c *Conversation) LastAssistantMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}

// LastUserMessage returns the most recent user message.
func (c *Conversation) LastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// SESSION HYDRATION
// =============================================================================

// HydrateFromSession rebuilds a conversation from server-side history.
//
// Stored assistant content that parses as a card array becomes result cards
// with the raw JSON blanked out of the displayed content; everything else is
// plain text. Stored citation JSON that fails to parse is dropped silently.
func HydrateFromSession(detail *api.SessionDetail) *Conversation {
	mode := api.ChatMode(detail.Mode)
	conv := &Conversation{
		SessionID: detail.ID,
		Title:     detail.Title,
		Mode:      mode,
		FileName:  detail.FileName,
		StoreName: detail.FileSearchStoreName,
		CreatedAt: detail.CreatedAt,
		UpdatedAt: detail.UpdatedAt,
		Messages:  make([]*Message, 0, len(detail.Messages)),
	}

	for _, stored := range detail.Messages {
		msg := &Message{
			ID:        generateID(),
			Role:      Role(stored.Role),
			Content:   stored.Content,
			Timestamp: stored.CreatedAt,
		}

		if msg.Role == RoleAssistant {
			if cards, ok := api.ParseCards(stored.Content); ok {
				msg.Cards = cards
				msg.Content = ""
			}
			msg.Sources = stored.DecodeSources()
		}

		conv.Messages = append(conv.Messages, msg)
	}

	return conv
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user message if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = msg.Preview(50)
			return
		}
	}
}

// SetTitle manually sets the conversation title.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// Preview returns a short preview of the conversation.
func (c *Conversation) Preview() string {
	if len(c.Messages) == 0 {
		return "Empty conversation"
	}

	first := c.LastUserMessage()
	if first == nil {
		first = c.Messages[0]
	}
	return first.Preview(100)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// pruneOldMessages removes old messages when conversation history exceeds
// MaxMessages, keeping the most recent ones.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
}
