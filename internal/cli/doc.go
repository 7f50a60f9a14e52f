// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the plain-terminal commands of warm: one-shot
// questions, a line-oriented chat REPL, entity search, session management,
// configuration and health checks.
//
// The package exists for contexts where the TUI is the wrong tool — piped
// output, ssh sessions, scripts. Output stays plain when stdout is not a
// terminal.
package cli
