// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the warm TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/model"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom bar: mode badges, backend status, session
// title, and contextual key hints.
type StatusBar struct {
	width int

	mode         model.InputMode
	backendUp    bool
	sessionTitle string
	fileName     string
	streaming    bool

	theme *styles.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		width: 80,
		mode:  model.ModeChat,
		theme: theme,
	}
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetMode sets the active input mode.
func (s *StatusBar) SetMode(mode model.InputMode) {
	s.mode = mode
}

// SetBackendUp records the last known backend health.
func (s *StatusBar) SetBackendUp(up bool) {
	s.backendUp = up
}

// SetSessionTitle sets the current session title.
func (s *StatusBar) SetSessionTitle(title string) {
	s.sessionTitle = title
}

// SetFileName sets the uploaded document name for file search sessions.
func (s *StatusBar) SetFileName(name string) {
	s.fileName = name
}

// SetStreaming records whether a reply is currently streaming.
func (s *StatusBar) SetStreaming(streaming bool) {
	s.streaming = streaming
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderModes()

	var middle string
	if s.fileName != "" {
		middle = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render("# " + s.fileName)
	} else if s.sessionTitle != "" {
		middle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(s.sessionTitle)
	}

	right := s.renderStatus() + "  " + s.renderHints()

	gapWidth := s.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 2
	if gapWidth < 1 {
		// Narrow terminal: drop the middle section first
		middle = ""
		gapWidth = s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
		if gapWidth < 1 {
			gapWidth = 1
		}
	}

	leftGap := gapWidth / 2
	rightGap := gapWidth - leftGap

	bar := left + strings.Repeat(" ", leftGap) + middle + strings.Repeat(" ", rightGap) + right

	return s.theme.StatusBar.Width(s.width).Render(bar)
}

// renderModes renders one badge per input mode with the active one filled.
func (s *StatusBar) renderModes() string {
	var parts []string
	for _, info := range model.Modes {
		badge := info.Icon
		if s.width >= 100 {
			badge += " " + info.Name
		}
		if info.Mode == s.mode {
			parts = append(parts, s.theme.ModeBadgeActive.Render(badge))
		} else {
			parts = append(parts, s.theme.ModeBadge.Render(badge))
		}
	}
	return strings.Join(parts, "")
}

// renderStatus renders the backend health indicator.
func (s *StatusBar) renderStatus() string {
	if s.streaming {
		return s.theme.BackendUp.Render(styles.StatusIndicators.Active + " streaming")
	}
	if s.backendUp {
		return s.theme.BackendUp.Render(styles.StatusIndicators.Active)
	}
	return s.theme.BackendDown.Render(styles.StatusIndicators.Error + " offline")
}

// renderHints renders contextual key hints.
func (s *StatusBar) renderHints() string {
	key := s.theme.ShortcutKey
	desc := s.theme.ShortcutDesc

	if s.streaming {
		return key.Render("esc") + desc.Render(" cancel")
	}

	hints := key.Render("tab") + desc.Render(" mode")
	if s.width >= 80 {
		hints += "  " + key.Render("ctrl+s") + desc.Render(" sessions")
	}
	return hints
}
