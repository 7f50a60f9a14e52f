// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/config"
	"github.com/warm-ai/warm-tui/internal/history"
	"github.com/warm-ai/warm-tui/internal/model"
	"github.com/warm-ai/warm-tui/internal/ui/components"
	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State is the coarse activity state of the chat view.
type State int

const (
	// StateIdle - ready for input
	StateIdle State = iota
	// StateStreaming - a chat turn is streaming
	StateStreaming
	// StateSearching - a one-shot search is running
	StateSearching
	// StateUploading - a document upload is running
	StateUploading
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	state State

	theme *styles.Theme
	cfg   *config.Config

	width  int
	height int

	// Backend
	client    *api.Client
	backendUp bool

	// Conversation and sessions
	conversation *model.Conversation
	directory    *history.Directory
	mode         model.InputMode

	// Streaming plumbing. Pointers so Bubble Tea model copies share them
	// with the goroutine reading the SSE stream.
	streamBuf *StreamBuffer
	events    *turnEvents
	cancelMgr *cancelManager

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	thinking  components.Spinner
	searching components.Spinner
	uploading components.Spinner
	toasts    *components.ToastManager
	statusBar *components.StatusBar
	welcome   components.Welcome

	keyMap KeyMap

	// Session sidebar
	sidebarOpen   bool
	sidebarIndex  int
	renaming      bool
	renameInput   textinput.Model
	sessionsBusy  bool

	// Upload prompt
	uploadPrompt bool
	uploadInput  textinput.Model

	version string
}

// New creates a chat model wired to the given backend client.
func New(theme *styles.Theme, cfg *config.Config, client *api.Client) Model {
	mode := model.InputMode(cfg.Chat.DefaultMode)
	if _, ok := model.GetModeInfo(string(mode)); !ok {
		mode = model.ModeChat
	}

	input := textinput.New()
	input.Placeholder = placeholderFor(mode)
	input.CharLimit = 4000
	input.Focus()

	renameInput := textinput.New()
	renameInput.CharLimit = 120

	uploadInput := textinput.New()
	uploadInput.Placeholder = "Path to document (.pdf, .txt, .md, .docx, .csv)"
	uploadInput.CharLimit = 512

	vp := viewport.New(80, 20)

	welcome := components.NewWelcome(theme)
	welcome.SetBackendURL(cfg.Backend.URL)
	welcome.SetMode(mode)

	statusBar := components.NewStatusBar(theme)
	statusBar.SetMode(mode)

	return Model{
		state:        StateIdle,
		theme:        theme,
		cfg:          cfg,
		client:       client,
		conversation: model.NewConversation(mode.ChatMode()),
		directory:    history.NewDirectory(client),
		mode:         mode,
		streamBuf:    NewStreamBuffer(),
		events:       newTurnEvents(),
		cancelMgr:    newCancelManager(),
		viewport:     vp,
		input:        input,
		thinking:     components.NewThinkingSpinner(),
		searching:    components.NewSearchSpinner(),
		uploading:    components.NewUploadSpinner(""),
		toasts:       components.NewToastManager(),
		statusBar:    statusBar,
		welcome:      welcome,
		keyMap:       DefaultKeyMap(),
		renameInput:  renameInput,
		uploadInput:  uploadInput,
		version:      "dev",
	}
}

// SetVersion sets the version string shown on the welcome screen.
func (m *Model) SetVersion(v string) {
	m.version = v
	m.welcome.SetVersion(v)
}

// Init starts the background commands: health check, session refresh, and
// the toast ticker.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		components.ToastTickCmd(),
		m.refreshSessionsCmd(),
	}
	if m.cfg.Backend.HealthCheckOnStartup {
		cmds = append(cmds, m.healthCmd())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the active conversation.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// Mode returns the active input mode.
func (m *Model) Mode() model.InputMode {
	return m.mode
}

// IsStreaming reports whether a chat turn is in flight.
func (m *Model) IsStreaming() bool {
	return m.state == StateStreaming
}

// setMode switches the input mode and updates dependent UI.
func (m *Model) setMode(mode model.InputMode) {
	m.mode = mode
	m.input.Placeholder = placeholderFor(mode)
	m.statusBar.SetMode(mode)
	m.welcome.SetMode(mode)

	// An empty conversation is rebound to the new mode right away. A live
	// one keeps its transcript; the next turn simply goes out under the
	// newly selected mode.
	if mode.IsChat() && mode != model.ModeFileSearch && m.conversation.Mode != mode.ChatMode() {
		if m.conversation.IsEmpty() {
			m.conversation = model.NewConversation(mode.ChatMode())
		}
	}
}

// cycleMode advances to the next input mode, skipping file search unless a
// document has been attached to the current conversation.
func (m *Model) cycleMode() {
	next := model.NextMode(m.mode)
	if next == model.ModeFileSearch && m.conversation.StoreName == "" {
		next = model.NextMode(next)
	}
	m.setMode(next)
}

// newConversation discards the transcript and starts fresh in the current
// mode. A file-search conversation falls back to plain chat because the
// document binding is gone.
func (m *Model) newConversation() {
	mode := m.mode
	if mode == model.ModeFileSearch {
		mode = model.ModeChat
		m.setMode(mode)
	}
	if !mode.IsChat() {
		mode = model.ModeChat
	}
	m.conversation = model.NewConversation(mode.ChatMode())
	m.statusBar.SetSessionTitle("")
	m.statusBar.SetFileName("")
	m.refreshTranscript()
}

// adoptUpload binds a fresh conversation to an uploaded document and
// switches into file search.
func (m *Model) adoptUpload(upload *api.UploadResponse) {
	m.conversation = model.NewFileSearchConversation(upload)
	m.setMode(model.ModeFileSearch)
	m.statusBar.SetFileName(upload.FileName)
	m.statusBar.SetSessionTitle(m.conversation.GetTitle())
	m.refreshTranscript()
}

// setModeFromConversation aligns the input mode with a resumed session.
func (m *Model) setModeFromConversation() {
	m.setMode(model.ModeForSession(m.conversation.Mode))
	m.statusBar.SetFileName(m.conversation.FileName)
	m.statusBar.SetSessionTitle(m.conversation.GetTitle())
}

// touchDirectory bumps the active session to the top of the sidebar cache.
func (m *Model) touchDirectory() {
	if m.conversation.SessionID == 0 {
		return
	}
	m.directory.Touch(api.SessionSummary{
		ID:                  m.conversation.SessionID,
		Title:               m.conversation.GetTitle(),
		Mode:                m.conversation.Mode,
		FileName:            m.conversation.FileName,
		FileSearchStoreName: m.conversation.StoreName,
		CreatedAt:           m.conversation.CreatedAt,
		UpdatedAt:           m.conversation.UpdatedAt,
	})
}

// clampSidebarIndex keeps the cursor inside the cached session list.
func (m *Model) clampSidebarIndex() {
	if count := m.directory.Count(); m.sidebarIndex >= count {
		m.sidebarIndex = count - 1
	}
	if m.sidebarIndex < 0 {
		m.sidebarIndex = 0
	}
}

// searchLabel returns the spinner caption for a search mode.
func searchLabel(mode model.InputMode) string {
	if mode == model.ModeCompanySearch {
		return "Searching companies"
	}
	return "Searching people"
}

// placeholderFor returns the input placeholder for a mode.
func placeholderFor(mode model.InputMode) string {
	if info, ok := model.GetModeInfo(string(mode)); ok {
		return info.Placeholder
	}
	return "Ask anything..."
}
