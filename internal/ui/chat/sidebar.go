// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/model"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// SIDEBAR KEYS
// =============================================================================

// handleSidebarKey drives the session list while it is open.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sessions := m.directory.Sessions()

	switch {
	case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.Sessions):
		m.sidebarOpen = false
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.sidebarIndex > 0 {
			m.sidebarIndex--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.sidebarIndex < len(sessions)-1 {
			m.sidebarIndex++
			return m, nil
		}
		// Walking past the end pulls the next page.
		if !m.directory.Exhausted() && !m.sessionsBusy {
			m.sessionsBusy = true
			return m, m.loadMoreSessionsCmd()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.sidebarIndex < len(sessions) {
			return m, m.openSessionCmd(sessions[m.sidebarIndex].ID)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewSession):
		m.sidebarOpen = false
		m.newConversation()
		m.input.Focus()
		return m, nil
	}

	switch msg.String() {
	case "r":
		if m.sidebarIndex < len(sessions) {
			m.renaming = true
			m.renameInput.SetValue(sessions[m.sidebarIndex].Title)
			m.renameInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "d", "x":
		if m.sidebarIndex < len(sessions) {
			return m, m.deleteSessionCmd(sessions[m.sidebarIndex].ID)
		}
		return m, nil

	case "g":
		m.sidebarIndex = 0
		return m, nil
	}

	return m, nil
}

// handleRenameKey drives the inline rename prompt.
func (m Model) handleRenameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.renaming = false
		m.renameInput.Blur()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		title := strings.TrimSpace(m.renameInput.Value())
		m.renaming = false
		m.renameInput.Blur()
		if title == "" {
			return m, nil
		}
		sessions := m.directory.Sessions()
		if m.sidebarIndex >= len(sessions) {
			return m, nil
		}
		return m, m.renameSessionCmd(sessions[m.sidebarIndex].ID, title)
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// handleUploadKey drives the file path prompt.
func (m Model) handleUploadKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.uploadPrompt = false
		m.uploadInput.Blur()
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		path := strings.TrimSpace(m.uploadInput.Value())
		m.uploadPrompt = false
		m.uploadInput.Blur()
		m.input.Focus()
		if path == "" {
			return m, nil
		}
		m.state = StateUploading
		m.uploading.SetDetail(path)
		return m, tea.Batch(m.uploading.Start(), m.uploadCmd(path))
	}

	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return m, cmd
}

// =============================================================================
// SIDEBAR RENDERING
// =============================================================================

// renderSidebar renders the session list pane.
func (m *Model) renderSidebar(width, height int) string {
	var b strings.Builder

	b.WriteString(m.theme.SidebarHeader.Render("Sessions"))
	b.WriteString("\n\n")

	sessions := m.directory.Sessions()
	if len(sessions) == 0 {
		if m.sessionsBusy {
			b.WriteString(m.theme.SessionMeta.Render("Loading..."))
		} else {
			b.WriteString(m.theme.SessionMeta.Render("No sessions yet"))
		}
	}

	// Leave room for the title and footer lines.
	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.sidebarIndex >= visible {
		start = m.sidebarIndex - visible + 1
	}

	for i := start; i < len(sessions) && i < start+visible; i++ {
		b.WriteString(m.renderSessionEntry(sessions[i], i == m.sidebarIndex, width-4))
		b.WriteString("\n")
	}

	if m.renaming {
		b.WriteString("\n")
		b.WriteString(m.theme.SessionTitle.Render("Rename: " + m.renameInput.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if !m.directory.Exhausted() {
		b.WriteString(m.theme.SidebarFooter.Render("down for more"))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.SidebarFooter.Render("enter open  r rename  d delete"))

	return m.theme.Sidebar.
		Width(width).
		Height(height).
		Render(b.String())
}

// renderSessionEntry renders one row of the session list.
func (m *Model) renderSessionEntry(s api.SessionSummary, selected bool, width int) string {
	info, _ := model.GetModeInfo(string(model.ModeForSession(s.Mode)))

	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	line := info.Icon + " " + title
	if s.FileName != "" {
		line += " (" + s.FileName + ")"
	}
	line = truncateLine(line, width)

	style := m.theme.SessionItem
	if selected {
		style = m.theme.SessionItemSelected
	}
	if m.conversation.SessionID == s.ID {
		line = styles.StatusIndicators.Active + " " + line
	}
	return style.Render(line)
}

// truncateLine clips a line to width runes with an ellipsis.
func truncateLine(s string, width int) string {
	if width <= 3 {
		width = 3
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// overlaySidebar joins the sidebar next to the transcript.
func (m *Model) overlaySidebar(transcript string, sidebarWidth, height int) string {
	sidebar := m.renderSidebar(sidebarWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, transcript)
}
