// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/ui/components"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// Layout constants. Header is one line, input box three, status bar one.
const (
	headerHeight   = 2
	inputHeight    = 3
	statusHeight   = 1
	chromeHeight   = headerHeight + inputHeight + statusHeight
	minInputWidth  = 20
	transcriptPadX = 1
)

// =============================================================================
// RESIZE
// =============================================================================

// resize propagates a new terminal size to every component.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	bodyHeight := height - chromeHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	m.viewport.Width = m.transcriptWidth()
	m.viewport.Height = bodyHeight

	inputWidth := width - 6
	if inputWidth < minInputWidth {
		inputWidth = minInputWidth
	}
	m.input.Width = inputWidth
	m.uploadInput.Width = inputWidth
	m.renameInput.Width = m.theme.SidebarWidth() - 10

	m.statusBar.SetWidth(width)
	m.welcome.SetSize(width, bodyHeight)
	m.refreshTranscript()
}

// transcriptWidth is the viewport width, reduced when the sidebar is open.
func (m *Model) transcriptWidth() int {
	width := m.width
	if m.sidebarOpen {
		width -= m.theme.SidebarWidth()
	}
	width -= transcriptPadX * 2
	if width < minInputWidth {
		width = minInputWidth
	}
	return width
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole chat screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderInputArea())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	view := b.String()

	if m.toasts.HasToasts() {
		toasts := components.RenderToastStack(m.toasts.GetToasts(), m.width, m.height)
		if toasts != "" {
			view = view + "\n" + toasts
		}
	}
	return view
}

func (m *Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("warm")
	title := ""
	if t := m.conversation.GetTitle(); t != "" {
		title = m.theme.HeaderTitle.Render(truncateLine(t, m.width-20))
	}
	line := brand
	if title != "" {
		line += "  " + title
	}
	return m.theme.Header.Width(m.width).Render(line)
}

func (m *Model) renderBody() string {
	bodyHeight := m.height - chromeHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var transcript string
	if m.conversation.IsEmpty() && !m.sidebarOpen {
		transcript = m.welcome.View()
	} else {
		transcript = m.viewport.View()
	}

	if m.sidebarOpen && m.theme.SidebarWidth() > 0 {
		return m.overlaySidebar(transcript, m.theme.SidebarWidth(), bodyHeight)
	}
	return transcript
}

func (m *Model) renderInputArea() string {
	if m.uploadPrompt {
		prompt := m.theme.UploadTitle.Render("Upload document") + "\n" +
			m.uploadInput.View()
		return m.theme.UploadBox.Width(m.width - 2).Render(prompt)
	}

	var activity string
	switch m.state {
	case StateStreaming:
		if m.thinking.IsActive() {
			activity = m.thinking.View()
		}
	case StateSearching:
		activity = m.searching.View()
	case StateUploading:
		activity = m.uploading.View()
	}

	input := m.theme.InputContainer.Width(m.width - 2).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	)
	if activity != "" {
		return activity + "\n" + input
	}
	return input
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript re-renders the conversation into the viewport.
func (m *Model) refreshTranscript() {
	width := m.transcriptWidth()
	messages := m.conversation.Messages

	var b strings.Builder
	for i, msg := range messages {
		bubble := components.NewMessageBubble(msg, m.theme)
		bubble.SetWidth(width)
		bubble.SetIsLatest(i == len(messages)-1)
		b.WriteString(bubble.View())
		b.WriteString("\n\n")
	}

	content := lipgloss.NewStyle().
		PaddingLeft(transcriptPadX).
		PaddingRight(transcriptPadX).
		Render(strings.TrimRight(b.String(), "\n"))
	m.viewport.SetContent(content)
}

// Theme returns the active theme. Used by the app shell for shared chrome.
func (m *Model) Theme() *styles.Theme {
	return m.theme
}
