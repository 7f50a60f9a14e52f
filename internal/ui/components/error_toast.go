// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the warm TUI.
//
// This file implements non-blocking toasts. Unlike modal error dialogs,
// toasts appear in the bottom-right corner and auto-dismiss, so the user
// can keep typing while an upload rejection or backend error is displayed.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind selects the icon, border color, and lifetime of a toast.
type ToastKind int

const (
	ToastKindStatus ToastKind = iota
	ToastKindError
	ToastKindWarning
	ToastKindSuccess
)

// Lifetimes per kind. Errors linger longest so they can be read.
const (
	DefaultToastDuration = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

func toastDuration(kind ToastKind) time.Duration {
	switch kind {
	case ToastKindError:
		return ErrorToastDuration
	case ToastKindWarning:
		return WarningToastDuration
	}
	return DefaultToastDuration
}

// ErrorToast is one notification. The ID is assigned by the manager when
// the toast is added.
type ErrorToast struct {
	ID          int
	Message     string
	Kind        ToastKind
	CreatedAt   time.Time
	Duration    time.Duration
	Dismissible bool
}

func newToast(kind ToastKind, message string) ErrorToast {
	return ErrorToast{
		Message:     message,
		Kind:        kind,
		CreatedAt:   time.Now(),
		Duration:    toastDuration(kind),
		Dismissible: true,
	}
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) ErrorToast { return newToast(ToastKindError, message) }

// NewWarningToast creates a warning toast.
func NewWarningToast(message string) ErrorToast { return newToast(ToastKindWarning, message) }

// NewStatusToast creates an informational toast.
func NewStatusToast(message string) ErrorToast { return newToast(ToastKindStatus, message) }

// NewSuccessToast creates a success toast.
func NewSuccessToast(message string) ErrorToast { return newToast(ToastKindSuccess, message) }

// IsExpired reports whether the toast has outlived its duration.
func (t *ErrorToast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns the time left before auto-dismiss, floored at zero.
func (t *ErrorToast) TimeRemaining() time.Duration {
	if remaining := t.Duration - time.Since(t.CreatedAt); remaining > 0 {
		return remaining
	}
	return 0
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toasts, newest first, capped at maxToasts.
type ToastManager struct {
	toasts    []ErrorToast
	nextID    int
	maxToasts int
	mutex     sync.Mutex
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1, maxToasts: 5}
}

// AddToast inserts a toast at the front and returns its ID. The oldest
// toast falls off when the stack is full.
func (m *ToastManager) AddToast(toast ErrorToast) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if toast.ID == 0 {
		toast.ID = m.nextID
		m.nextID++
	}

	m.toasts = append([]ErrorToast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// AddError adds an error toast.
func (m *ToastManager) AddError(message string) int {
	return m.AddToast(NewErrorToast(message))
}

// AddWarning adds a warning toast.
func (m *ToastManager) AddWarning(message string) int {
	return m.AddToast(NewWarningToast(message))
}

// AddStatus adds an informational toast.
func (m *ToastManager) AddStatus(message string) int {
	return m.AddToast(NewStatusToast(message))
}

// AddSuccess adds a success toast.
func (m *ToastManager) AddSuccess(message string) int {
	return m.AddToast(NewSuccessToast(message))
}

// RemoveToast dismisses a toast by ID. Unknown IDs are ignored.
func (m *ToastManager) RemoveToast(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// TickToasts drops expired toasts and returns what is left. Driven by
// ToastTickCmd.
func (m *ToastManager) TickToasts() []ErrorToast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return m.toasts
}

// GetToasts returns a copy of the active toasts, newest first.
func (m *ToastManager) GetToasts() []ErrorToast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]ErrorToast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts reports whether anything is on screen.
func (m *ToastManager) HasToasts() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.toasts) > 0
}

// Clear dismisses everything.
func (m *ToastManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastDismissMsg requests dismissing one toast.
type ToastDismissMsg struct {
	ID int
}

// ToastTickCmd re-arms the 100ms expiry tick.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// toastChrome maps a kind to its icon and accent color.
func toastChrome(kind ToastKind) (icon string, accent lipgloss.AdaptiveColor) {
	switch kind {
	case ToastKindError:
		return styles.StatusIndicators.Error, styles.Rose
	case ToastKindWarning:
		return styles.StatusIndicators.Warning, styles.Amber
	case ToastKindSuccess:
		return styles.StatusIndicators.Success, styles.Emerald
	}
	return styles.StatusIndicators.Info, styles.Teal
}

// RenderToast renders one toast box.
func RenderToast(toast ErrorToast, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	icon, accent := toastChrome(toast.Kind)

	iconStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 8)

	message := toast.Message
	if len(message) > maxWidth-10 {
		message = wordWrap(message, maxWidth-10)
	}
	content := iconStyle.Render(icon+" ") + messageStyle.Render(message)

	if toast.Dismissible {
		hints := []string{"[x] Dismiss"}
		if secs := int(toast.TimeRemaining().Seconds()); secs > 0 {
			hints = append(hints, toStr(secs)+"s")
		}
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		content += "\n" + hintStyle.Render(strings.Join(hints, "  "))
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack stacks the active toasts in the bottom-right corner,
// newest at the bottom.
func RenderToastStack(toasts []ErrorToast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(toast, width))
	}

	stack := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(lipgloss.JoinVertical(lipgloss.Right, rendered...))

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
	}
	return stack
}
