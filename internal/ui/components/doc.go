// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the warm TUI:
// message bubbles, person and company result cards, citation lists, code
// blocks with chroma highlighting, toast notifications, the welcome screen,
// and the status bar.
package components
