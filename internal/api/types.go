// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"time"
)

// =============================================================================
// CHAT MODES
// =============================================================================

// ChatMode selects how the backend grounds a chat turn.
type ChatMode string

const (
	// ModeStandard is plain model chat with no augmentation.
	ModeStandard ChatMode = "standard"
	// ModeWebSearch augments the answer with live web results.
	ModeWebSearch ChatMode = "web_search"
	// ModeFileSearch grounds the answer in a previously uploaded document.
	ModeFileSearch ChatMode = "file_search"
)

// Valid reports whether the mode is one the backend understands.
func (m ChatMode) Valid() bool {
	switch m {
	case ModeStandard, ModeWebSearch, ModeFileSearch:
		return true
	}
	return false
}

// =============================================================================
// CHAT REQUESTS
// =============================================================================

// ChatRequest is one chat turn.
//
// ConversationID is zero for the first turn of a fresh conversation; the
// server assigns an ID and announces it with a session_created event.
type ChatRequest struct {
	ConversationID int      `json:"conversation_id,omitempty"`
	Message        string   `json:"message"`
	Mode           ChatMode `json:"mode"`
	Model          string   `json:"model,omitempty"`
}

// fileSearchChatRequest is the body shape the file-search chat endpoint
// expects. Same data as ChatRequest, different field names.
type fileSearchChatRequest struct {
	SessionID int    `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Model     string `json:"model,omitempty"`
}

// =============================================================================
// STREAM EVENTS
// =============================================================================

// EventType tags a StreamEvent.
type EventType string

const (
	EventToken          EventType = "token"
	EventCitation       EventType = "citation"
	EventFileCitation   EventType = "file_citation"
	EventDone           EventType = "done"
	EventError          EventType = "error"
	EventSessionCreated EventType = "session_created"
)

// StreamEvent is one decoded record from a chat event stream.
//
// Only the fields matching Type are populated. For EventFileCitation the
// payload arrives as a JSON-encoded array inside Content; use
// DecodeFileCitations.
type StreamEvent struct {
	Type          EventType        `json:"type"`
	Content       string           `json:"content,omitempty"`
	Sources       []SourceCitation `json:"sources,omitempty"`
	FileCitations []FileCitation   `json:"file_citations,omitempty"`
	Error         string           `json:"error,omitempty"`
	SessionID     int              `json:"session_id,omitempty"`
	Title         string           `json:"title,omitempty"`
}

// DecodeFileCitations parses the JSON array carried in a file_citation
// event's Content field. Returns nil and false if the payload is not a
// well-formed citation array.
func (e *StreamEvent) DecodeFileCitations() ([]FileCitation, bool) {
	if e.Type != EventFileCitation || e.Content == "" {
		return nil, false
	}
	var citations []FileCitation
	if err := json.Unmarshal([]byte(e.Content), &citations); err != nil {
		return nil, false
	}
	return citations, true
}

// SourceCitation is a web source backing part of an assistant response.
type SourceCitation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FileCitation is a segment of an uploaded document backing part of an
// assistant response.
type FileCitation struct {
	SourceTitle string `json:"source_title"`
	TextSegment string `json:"text_segment"`
	StartIndex  *int   `json:"start_index,omitempty"`
	EndIndex    *int   `json:"end_index,omitempty"`
}

// =============================================================================
// SEARCH
// =============================================================================

// SearchRequest is the body for the people and company search endpoints.
type SearchRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
}

// PersonCard is a structured person result.
type PersonCard struct {
	CardType    string   `json:"card_type"` // always "person"
	Name        string   `json:"name"`
	Headline    string   `json:"headline,omitempty"`
	CurrentRole string   `json:"current_role,omitempty"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	LinkedInURL string   `json:"linkedin_url,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// CompanyCard is a structured company result.
type CompanyCard struct {
	CardType           string `json:"card_type"` // always "company"
	Name               string `json:"name"`
	Industry           string `json:"industry"`
	FoundedYear        int    `json:"founded_year,omitempty"`
	Description        string `json:"description,omitempty"`
	Location           string `json:"location,omitempty"`
	WebsiteURL         string `json:"website_url,omitempty"`
	LinkedInURL        string `json:"linkedin_url,omitempty"`
	EstimatedEmployees string `json:"estimated_employees,omitempty"`
	LogoURL            string `json:"logo_url,omitempty"`
}

// PeopleSearchResponse is the people search result envelope.
type PeopleSearchResponse struct {
	RequestID string       `json:"request_id"`
	Results   []PersonCard `json:"results"`
}

// CompanySearchResponse is the company search result envelope.
type CompanySearchResponse struct {
	RequestID string        `json:"request_id"`
	Results   []CompanyCard `json:"results"`
}

// =============================================================================
// CARDS
// =============================================================================

// CardKind discriminates the card union.
type CardKind string

const (
	CardPerson  CardKind = "person"
	CardCompany CardKind = "company"
)

// Card is one entry of a card array: exactly one of Person or Company is
// non-nil.
type Card struct {
	Person  *PersonCard
	Company *CompanyCard
}

// Kind returns the card's discriminator, or "" for a malformed card.
func (c Card) Kind() CardKind {
	switch {
	case c.Person != nil:
		return CardPerson
	case c.Company != nil:
		return CardCompany
	}
	return ""
}

// ParseCards detects assistant content that is a stored card array: a JSON
// array whose elements carry a card_type discriminator. Returns the decoded
// cards and true on success, or nil and false when the content is ordinary
// text (including malformed JSON, which is not an error here).
func ParseCards(content string) ([]Card, bool) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil || len(raw) == 0 {
		return nil, false
	}

	cards := make([]Card, 0, len(raw))
	for _, entry := range raw {
		var tag struct {
			CardType CardKind `json:"card_type"`
		}
		if err := json.Unmarshal(entry, &tag); err != nil {
			return nil, false
		}
		switch tag.CardType {
		case CardPerson:
			var p PersonCard
			if err := json.Unmarshal(entry, &p); err != nil {
				return nil, false
			}
			cards = append(cards, Card{Person: &p})
		case CardCompany:
			var co CompanyCard
			if err := json.Unmarshal(entry, &co); err != nil {
				return nil, false
			}
			cards = append(cards, Card{Company: &co})
		default:
			// Any untagged element means this is not a card array.
			return nil, false
		}
	}
	return cards, true
}

// =============================================================================
// SESSIONS
// =============================================================================

// SessionSummary is the lightweight session listing used by the sidebar.
type SessionSummary struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Mode                ChatMode  `json:"mode"`
	FileName            string    `json:"file_name,omitempty"`
	FileSearchStoreName string    `json:"file_search_store_name,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// SessionMessage is one stored message within a session.
//
// Sources, when present, is a JSON-encoded array of SourceCitation; the
// backend stores it as an opaque string.
type SessionMessage struct {
	ID        int       `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sources   string    `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DecodeSources parses the stored citation JSON. A missing or malformed
// sources string degrades to no citations.
func (m *SessionMessage) DecodeSources() []SourceCitation {
	if m.Sources == "" {
		return nil
	}
	var sources []SourceCitation
	if err := json.Unmarshal([]byte(m.Sources), &sources); err != nil {
		return nil
	}
	return sources
}

// SessionDetail is a full session with message history.
type SessionDetail struct {
	SessionSummary
	Messages []SessionMessage `json:"messages"`
}

// SessionUpdate is the PATCH body for renaming a session.
type SessionUpdate struct {
	Title string `json:"title"`
}

// DeleteResult is the DELETE response.
type DeleteResult struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

// =============================================================================
// UPLOADS
// =============================================================================

// UploadResponse is the file-search upload result. A successful upload
// creates (or reuses) a file-search session keyed by SessionID.
type UploadResponse struct {
	SessionID int    `json:"session_id"`
	StoreName string `json:"store_name"`
	FileName  string `json:"file_name"`
	Status    string `json:"status"` // "indexed" | "error"
}

// errorDetail is the backend's validation failure body ({"detail": "..."}).
type errorDetail struct {
	Detail string `json:"detail"`
}
