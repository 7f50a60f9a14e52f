// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the warm TUI.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/model"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the screen shown before the first message of a session.
type Welcome struct {
	version    string
	backendURL string
	mode       model.InputMode
	backendUp  bool

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		mode:    model.ModeChat,
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetBackendURL sets the backend URL shown in the info line.
func (w *Welcome) SetBackendURL(url string) {
	w.backendURL = url
}

// SetBackendUp records whether the startup health check succeeded.
func (w *Welcome) SetBackendUp(up bool) {
	w.backendUp = up
}

// SetMode sets the active input mode, which drives the suggested queries.
func (w *Welcome) SetMode(mode model.InputMode) {
	w.mode = mode
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen centered in the available space.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}

	sections := []string{
		w.renderLogo(),
		w.renderVersion(),
		"",
		w.renderBackendInfo(),
		"",
		w.renderSuggestions(),
		"",
		w.renderKeys(),
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Ember).
		Padding(1, 4).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// SECTIONS
// =============================================================================

func (w Welcome) renderLogo() string {
	logo := strings.Join([]string{
		`__        ___    ____  __  __`,
		`\ \      / / \  |  _ \|  \/  |`,
		` \ \ /\ / / _ \ | |_) | |\/| |`,
		`  \ V  V / ___ \|  _ <| |  | |`,
		`   \_/\_/_/   \_\_| \_\_|  |_|`,
	}, "\n")

	// ASCII art falls back to plain text on very narrow terminals
	if w.width > 0 && w.width < 50 {
		logo = "w a r m"
	}

	return lipgloss.NewStyle().
		Foreground(styles.Gold).
		Bold(true).
		Render(logo)
}

func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("chat + search  " + w.version)
}

func (w Welcome) renderBackendInfo() string {
	infoStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	status := w.theme.BackendDown.Render(styles.StatusIndicators.Error + " backend unreachable")
	if w.backendUp {
		status = w.theme.BackendUp.Render(styles.StatusIndicators.Active + " connected")
	}

	url := w.backendURL
	if url == "" {
		url = "not configured"
	}

	return infoStyle.Render(url) + "  " + status
}

func (w Welcome) renderSuggestions() string {
	info, ok := model.GetModeInfo(string(w.mode))
	if !ok || len(info.SuggestedQueries) == 0 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true)

	queryStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true)

	lines := []string{titleStyle.Render("Try asking")}
	for _, q := range info.SuggestedQueries {
		lines = append(lines, queryStyle.Render("\""+q+"\""))
	}

	return strings.Join(lines, "\n")
}

func (w Welcome) renderKeys() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Teal).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	pairs := [][2]string{
		{"tab", "switch mode"},
		{"ctrl+s", "sessions"},
		{"ctrl+u", "upload"},
		{"esc", "cancel"},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, keyStyle.Render(p[0])+" "+descStyle.Render(p[1]))
	}

	return strings.Join(parts, "   ")
}

// CompactLogo returns a one-line logo for the header.
func CompactLogo() string {
	return lipgloss.NewStyle().
		Foreground(styles.Gold).
		Bold(true).
		Render("warm")
}
