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
// RESULT CARDS - People and company search results
// =============================================================================

const cardLabelWidth = 12

// RenderCard renders a single search result card of either kind.
// Malformed cards (no discriminant) render as an empty string.
func RenderCard(card api.Card, width int) string {
	switch card.Kind() {
	case api.CardPerson:
		return RenderPersonCard(*card.Person, width)
	case api.CardCompany:
		return RenderCompanyCard(*card.Company, width)
	}
	return ""
}

// RenderCardList renders a stack of result cards with a count header.
func RenderCardList(cards []api.Card, width int) string {
	if len(cards) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("No results found.")
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true)

	noun := "results"
	if len(cards) == 1 {
		noun = "result"
	}
	header := headerStyle.Render(fmtNumber(len(cards)) + " " + noun)

	rendered := make([]string, 0, len(cards)+1)
	rendered = append(rendered, header)
	for _, card := range cards {
		if view := RenderCard(card, width); view != "" {
			rendered = append(rendered, view)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// RenderPersonCard renders a person result as a teal-framed card.
func RenderPersonCard(p api.PersonCard, width int) string {
	contentWidth := cardContentWidth(width)

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.PersonCardTitle).
		Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render(p.Name))

	if p.Headline != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Italic(true).
			Render(wordWrap(p.Headline, contentWidth)))
	}

	lines = appendCardField(lines, "Role", p.CurrentRole, contentWidth)
	lines = appendCardField(lines, "Company", p.Company, contentWidth)
	lines = appendCardField(lines, "Location", p.Location, contentWidth)

	if len(p.Skills) > 0 {
		lines = appendCardField(lines, "Skills", strings.Join(p.Skills, ", "), contentWidth)
	}

	if p.Summary != "" {
		lines = append(lines, "", lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(wordWrap(p.Summary, contentWidth)))
	}

	if p.LinkedInURL != "" {
		lines = append(lines, styles.RenderLink(p.LinkedInURL))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.PersonCardBorder).
		Padding(0, 2).
		Width(contentWidth + 4).
		Render(strings.Join(lines, "\n"))
}

// RenderCompanyCard renders a company result as a gold-framed card.
func RenderCompanyCard(c api.CompanyCard, width int) string {
	contentWidth := cardContentWidth(width)

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.CompanyCardTitle).
		Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render(c.Name))
	if c.Industry != "" {
		lines = appendCardField(lines, "Industry", c.Industry, contentWidth)
	}
	if c.FoundedYear > 0 {
		lines = appendCardField(lines, "Founded", toStr(c.FoundedYear), contentWidth)
	}
	lines = appendCardField(lines, "Location", c.Location, contentWidth)
	lines = appendCardField(lines, "Employees", c.EstimatedEmployees, contentWidth)

	if c.Description != "" {
		lines = append(lines, "", lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(wordWrap(c.Description, contentWidth)))
	}

	var links []string
	if c.WebsiteURL != "" {
		links = append(links, styles.RenderLink(c.WebsiteURL))
	}
	if c.LinkedInURL != "" {
		links = append(links, styles.RenderLink(c.LinkedInURL))
	}
	if len(links) > 0 {
		lines = append(lines, strings.Join(links, "  "))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CompanyCardBorder).
		Padding(0, 2).
		Width(contentWidth + 4).
		Render(strings.Join(lines, "\n"))
}

// =============================================================================
// HELPERS
// =============================================================================

// appendCardField appends a "Label: value" line, skipping empty values.
func appendCardField(lines []string, label, value string, width int) []string {
	if value == "" {
		return lines
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(cardLabelWidth)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	wrapped := wordWrap(value, width-cardLabelWidth)
	valueLines := strings.Split(wrapped, "\n")

	line := labelStyle.Render(label) + valueStyle.Render(valueLines[0])
	lines = append(lines, line)

	// Continuation lines indent past the label column
	indent := strings.Repeat(" ", cardLabelWidth)
	for _, extra := range valueLines[1:] {
		lines = append(lines, indent+valueStyle.Render(extra))
	}

	return lines
}

// cardContentWidth computes the usable inner width for card content.
func cardContentWidth(width int) int {
	contentWidth := width - 10
	if contentWidth > 70 {
		contentWidth = 70
	}
	if contentWidth < 30 {
		contentWidth = 30
	}
	return contentWidth
}
