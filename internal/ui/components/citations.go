// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the warm TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// CITATION LISTS - Sources shown under a finished assistant reply
// =============================================================================

// RenderSourceCitations renders web search citations as a numbered tree
// under an assistant reply.
func RenderSourceCitations(sources []api.SourceCitation, width int) string {
	if len(sources) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.CitationSource).
		Bold(true)

	markStyle := lipgloss.NewStyle().
		Foreground(styles.CitationNumber).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	lines := []string{headerStyle.Render("Sources")}

	maxTitle := width - 20
	if maxTitle < 20 {
		maxTitle = 20
	}

	for i, src := range sources {
		prefix := styles.RenderTreeLine(i == len(sources)-1)
		mark := markStyle.Render("[" + toStr(i+1) + "]")

		title := src.Title
		if title == "" {
			title = src.URL
		}
		if runeLen(title) > maxTitle {
			title = string([]rune(title)[:maxTitle-3]) + "..."
		}

		line := prefix + mark + " " + titleStyle.Render(title)
		lines = append(lines, line)

		if src.Title != "" && src.URL != "" {
			indent := "    "
			lines = append(lines, indent+styles.RenderLink(src.URL))
		}
	}

	return strings.Join(lines, "\n")
}

// RenderFileCitations renders document citations with their quoted segments.
func RenderFileCitations(citations []api.FileCitation, width int) string {
	if len(citations) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.CitationSource).
		Bold(true)

	markStyle := lipgloss.NewStyle().
		Foreground(styles.CitationNumber).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	quoteStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		PaddingLeft(4)

	lines := []string{headerStyle.Render("From the document")}

	quoteWidth := width - 12
	if quoteWidth < 30 {
		quoteWidth = 30
	}

	for i, cit := range citations {
		prefix := styles.RenderTreeLine(i == len(citations)-1)
		mark := markStyle.Render("[" + toStr(i+1) + "]")
		lines = append(lines, prefix+mark+" "+titleStyle.Render(cit.SourceTitle))

		if cit.TextSegment != "" {
			segment := cit.TextSegment
			if runeLen(segment) > 200 {
				segment = string([]rune(segment)[:197]) + "..."
			}
			lines = append(lines, quoteStyle.Render("\""+wordWrap(segment, quoteWidth)+"\""))
		}
	}

	return strings.Join(lines, "\n")
}
