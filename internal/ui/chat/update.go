// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/model"
	"github.com/warm-ai/warm-tui/internal/ui/components"
)

// Update handles all incoming messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamTickMsg:
		return m.handleStreamTick()

	case TurnDoneMsg:
		return m.handleTurnDone(msg)

	case SearchDoneMsg:
		return m.handleSearchDone(msg)

	case UploadDoneMsg:
		return m.handleUploadDone(msg)

	case SessionsLoadedMsg:
		m.sessionsBusy = false
		if msg.Err != nil && m.sidebarOpen {
			m.toasts.AddError("Could not load sessions: " + msg.Err.Error())
		}
		m.clampSidebarIndex()
		return m, nil

	case SessionOpenedMsg:
		return m.handleSessionOpened(msg)

	case SessionRenamedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Rename failed: " + msg.Err.Error())
		}
		if m.conversation.SessionID == msg.ID && msg.Err == nil {
			m.statusBar.SetSessionTitle(m.conversation.GetTitle())
		}
		return m, nil

	case SessionDeletedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Delete failed: " + msg.Err.Error())
			return m, nil
		}
		m.clampSidebarIndex()
		// Deleting the open session resets the transcript locally too.
		if m.conversation.SessionID == msg.ID {
			m.newConversation()
		}
		return m, nil

	case HealthMsg:
		m.backendUp = msg.Up
		m.statusBar.SetBackendUp(msg.Up)
		m.welcome.SetBackendUp(msg.Up)
		if !msg.Up {
			m.toasts.AddWarning("Backend unreachable at " + m.cfg.Backend.URL)
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.cfg = msg.Config
			m.toasts.AddStatus("Configuration reloaded")
		}
		return m, nil

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, components.ToastTickCmd()

	case components.ToastDismissMsg:
		m.toasts.RemoveToast(msg.ID)
		return m, nil
	}

	// Everything else feeds the spinner animations.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.thinking, cmd = m.thinking.Update(msg)
	cmds = append(cmds, cmd)
	m.searching, cmd = m.searching.Update(msg)
	cmds = append(cmds, cmd)
	m.uploading, cmd = m.uploading.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		m.cancelMgr.cancel()
		return m, tea.Quit
	}

	// Modal surfaces capture keys first.
	if m.renaming {
		return m.handleRenameKey(msg)
	}
	if m.uploadPrompt {
		return m.handleUploadKey(msg)
	}
	if m.sidebarOpen {
		return m.handleSidebarKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		if m.state != StateIdle {
			m.cancelMgr.cancel()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.CycleMode):
		if m.state == StateIdle {
			m.cycleMode()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Sessions):
		m.sidebarOpen = true
		m.sidebarIndex = 0
		m.sessionsBusy = true
		return m, m.refreshSessionsCmd()

	case key.Matches(msg, m.keyMap.Upload):
		if m.state == StateIdle {
			m.uploadPrompt = true
			m.uploadInput.SetValue("")
			m.uploadInput.Focus()
			m.input.Blur()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewSession):
		if m.state == StateIdle {
			m.newConversation()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home), key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit dispatches the input line: chat modes start a streaming turn,
// search modes run a one-shot query.
func (m Model) submit() (Model, tea.Cmd) {
	if m.state != StateIdle {
		return m, nil
	}
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if m.mode.IsSearch() {
		m.input.SetValue("")
		m.conversation.AddMessage(model.NewUserMessage(content))
		m.state = StateSearching
		m.searching.SetMessage(searchLabel(m.mode))
		m.refreshTranscript()
		return m, tea.Batch(m.searching.Start(), m.searchCmd(m.mode, content))
	}

	// File search needs a document first.
	if m.mode == model.ModeFileSearch && m.conversation.StoreName == "" {
		m.toasts.AddWarning("Upload a document first (ctrl+u)")
		return m, nil
	}

	if _, err := m.conversation.BeginTurn(content); err != nil {
		m.toasts.AddWarning(err.Error())
		return m, nil
	}

	m.input.SetValue("")
	m.streamBuf.Reset()
	m.events.reset()
	m.state = StateStreaming
	m.statusBar.SetStreaming(true)
	m.refreshTranscript()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.thinking.Start(),
		m.startTurnCmd(content),
		streamTickCmd(),
	)
}

// =============================================================================
// STREAM LIFECYCLE
// =============================================================================

func (m Model) handleStreamTick() (Model, tea.Cmd) {
	if m.state != StateStreaming {
		return m, nil
	}

	dirty := false

	if content, ok := m.streamBuf.Flush(); ok {
		m.conversation.AppendToLast(content)
		m.thinking.Stop()
		dirty = true
	}

	dirty = m.applyTurnSnapshot(m.events.drain()) || dirty

	// Speed 0 disables the typewriter: reveal everything at once.
	speed := m.cfg.Chat.TypewriterSpeed
	if speed <= 0 {
		speed = 1 << 20
	}
	if last := m.conversation.LastMessage(); last != nil && last.IsStreaming {
		if last.AdvanceReveal(speed) {
			dirty = true
		}
	}

	if dirty {
		m.refreshTranscript()
		m.viewport.GotoBottom()
	}
	return m, streamTickCmd()
}

func (m Model) handleTurnDone(msg TurnDoneMsg) (Model, tea.Cmd) {
	if m.state != StateStreaming {
		return m, nil
	}

	if content, ok := m.streamBuf.ForceFlush(); ok {
		m.conversation.AppendToLast(content)
	}
	snap := m.events.drain()
	m.applyTurnSnapshot(snap)

	m.state = StateIdle
	m.thinking.Stop()
	m.statusBar.SetStreaming(false)

	switch {
	case msg.Err != nil && api.IsAborted(msg.Err):
		// User cancelled: drop the partial turn without a toast.
		m.conversation.RollbackLast()

	case msg.Err != nil:
		// A failed turn leaves only the user's message behind; the failure
		// itself surfaces as a toast, not in the transcript.
		m.conversation.RollbackLast()
		m.toasts.AddError(msg.Err.Error())

	case snap.HasErr:
		m.conversation.RollbackLast()
		m.toasts.AddError(snap.ErrText)

	default:
		m.conversation.FinalizeLast()
		m.touchDirectory()
	}

	m.statusBar.SetSessionTitle(m.conversation.GetTitle())
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, nil
}

// applyTurnSnapshot copies buffered non-token events onto the conversation.
// Returns true if anything changed.
func (m *Model) applyTurnSnapshot(snap turnSnapshot) bool {
	changed := false
	if snap.HasSources {
		m.conversation.SetSourcesOnLast(snap.Sources)
		changed = true
	}
	if snap.HasFileCitations {
		m.conversation.SetFileCitationsOnLast(snap.FileCitations)
		changed = true
	}
	if snap.HasSession {
		m.conversation.AdoptSession(snap.SessionID, snap.SessionTitle)
		m.statusBar.SetSessionTitle(m.conversation.GetTitle())
		changed = true
	}
	return changed
}

// =============================================================================
// SEARCH AND UPLOAD RESULTS
// =============================================================================

func (m Model) handleSearchDone(msg SearchDoneMsg) (Model, tea.Cmd) {
	if m.state != StateSearching {
		return m, nil
	}
	m.state = StateIdle
	m.searching.Stop()

	if msg.Err != nil {
		if !api.IsAborted(msg.Err) {
			m.toasts.AddError(msg.Err.Error())
		}
		return m, nil
	}

	m.conversation.AddCardMessage(msg.Cards)
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleUploadDone(msg UploadDoneMsg) (Model, tea.Cmd) {
	if m.state != StateUploading {
		return m, nil
	}
	m.state = StateIdle
	m.uploading.Stop()

	if msg.Err != nil {
		if !api.IsAborted(msg.Err) {
			m.toasts.AddError(msg.Err.Error())
		}
		return m, nil
	}

	if msg.Upload.Status == "error" {
		m.toasts.AddError("The backend could not index " + msg.Upload.FileName)
		return m, nil
	}

	m.adoptUpload(msg.Upload)
	m.toasts.AddSuccess("Uploaded " + msg.Upload.FileName)
	return m, nil
}

// =============================================================================
// SESSION RESULTS
// =============================================================================

func (m Model) handleSessionOpened(msg SessionOpenedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddError("Could not open session: " + msg.Err.Error())
		return m, nil
	}
	m.conversation = msg.Conversation
	m.setModeFromConversation()
	m.sidebarOpen = false
	m.input.Focus()
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, nil
}
