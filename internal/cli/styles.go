// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for the plain-terminal commands.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

var (
	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Teal).
			Bold(true)

	// Welcome banner style
	bannerStyle = lipgloss.NewStyle().
			Foreground(styles.Ember).
			Bold(true)

	// Info style
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// Muted detail style
	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// Command style
	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// Citation mark style
	citationStyle = lipgloss.NewStyle().
			Foreground(styles.Gold)
)
