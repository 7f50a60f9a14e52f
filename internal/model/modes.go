// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"

	"github.com/warm-ai/warm-tui/internal/api"
)

// =============================================================================
// INPUT MODE TYPE
// =============================================================================

// InputMode is a way of submitting input: the three chat modes plus the two
// one-shot entity searches. Chat modes map onto api.ChatMode; search modes
// call the search endpoints instead of streaming.
type InputMode string

const (
	ModeChat          InputMode = "chat"
	ModeWebSearch     InputMode = "web_search"
	ModeFileSearch    InputMode = "file_search"
	ModePeopleSearch  InputMode = "people_search"
	ModeCompanySearch InputMode = "company_search"
)

// ModeInfo describes an input mode for selection and display in the UI.
type ModeInfo struct {
	// Mode is the identifier used in key bindings and commands
	Mode InputMode

	// Name is the human-readable display name
	Name string

	// Icon is the single-character marker shown in the status bar
	Icon string

	// Description is a brief explanation shown in the mode picker
	Description string

	// Placeholder is the input prompt hint for this mode
	Placeholder string

	// SuggestedQueries seed the welcome screen when the transcript is empty
	SuggestedQueries []string

	// RequiresUpload marks modes that cannot run without a document
	RequiresUpload bool
}

// IsChat reports whether the mode streams through a chat endpoint.
func (m InputMode) IsChat() bool {
	switch m {
	case ModeChat, ModeWebSearch, ModeFileSearch:
		return true
	}
	return false
}

// IsSearch reports whether the mode is a one-shot entity search.
func (m InputMode) IsSearch() bool {
	return m == ModePeopleSearch || m == ModeCompanySearch
}

// ChatMode returns the wire-level chat mode, or empty for search modes.
func (m InputMode) ChatMode() api.ChatMode {
	switch m {
	case ModeChat:
		return api.ModeStandard
	case ModeWebSearch:
		return api.ModeWebSearch
	case ModeFileSearch:
		return api.ModeFileSearch
	}
	return ""
}

// =============================================================================
// MODE REGISTRY
// =============================================================================

// Modes is the catalog of input modes, in selector order.
var Modes = []ModeInfo{
	{
		Mode:        ModeChat,
		Name:        "Chat",
		Icon:        "*",
		Description: "Plain conversation with the model",
		Placeholder: "Ask anything...",
		SuggestedQueries: []string{
			"Draft a cold outreach email for a product launch",
			"Explain the difference between SAFE and convertible notes",
			"Summarize the pros and cons of usage-based pricing",
		},
	},
	{
		Mode:        ModeWebSearch,
		Name:        "Web Search",
		Icon:        "@",
		Description: "Answers grounded in live web results, with citations",
		Placeholder: "Search the web...",
		SuggestedQueries: []string{
			"What happened in AI funding this week?",
			"Latest developments in EU data regulation",
			"Recent acquisitions in the fintech space",
		},
	},
	{
		Mode:           ModeFileSearch,
		Name:           "File Search",
		Icon:           "#",
		Description:    "Questions answered from an uploaded document",
		Placeholder:    "Ask about the document...",
		RequiresUpload: true,
		SuggestedQueries: []string{
			"Summarize the key points of this document",
			"What risks does this document mention?",
			"List the action items in this document",
		},
	},
	{
		Mode:        ModePeopleSearch,
		Name:        "People",
		Icon:        "%",
		Description: "Find professionals matching a description",
		Placeholder: "Describe who you're looking for...",
		SuggestedQueries: []string{
			"Senior ML engineers in Berlin with startup experience",
			"Product managers who moved from consulting to tech",
			"CTOs of seed-stage climate companies",
		},
	},
	{
		Mode:        ModeCompanySearch,
		Name:        "Companies",
		Icon:        "$",
		Description: "Find companies matching a description",
		Placeholder: "Describe the companies...",
		SuggestedQueries: []string{
			"Series A devtools startups in Europe",
			"Profitable bootstrapped SaaS companies",
			"Logistics companies using computer vision",
		},
	},
}

// =============================================================================
// MODE LOOKUP FUNCTIONS
// =============================================================================

// GetModeInfo looks up a mode by identifier or display name.
func GetModeInfo(nameOrID string) (ModeInfo, bool) {
	lower := strings.ToLower(nameOrID)
	for _, info := range Modes {
		if string(info.Mode) == lower || strings.ToLower(info.Name) == lower {
			return info, true
		}
	}
	return ModeInfo{}, false
}

// NextMode returns the mode after m in selector order, wrapping around.
func NextMode(m InputMode) InputMode {
	for i, info := range Modes {
		if info.Mode == m {
			return Modes[(i+1)%len(Modes)].Mode
		}
	}
	return Modes[0].Mode
}

// ModeForSession maps a stored session's chat mode back to an input mode.
func ModeForSession(mode api.ChatMode) InputMode {
	switch mode {
	case api.ModeWebSearch:
		return ModeWebSearch
	case api.ModeFileSearch:
		return ModeFileSearch
	default:
		return ModeChat
	}
}
