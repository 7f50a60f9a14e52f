// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive chat view: the Bubble Tea model
// that owns the conversation, streams assistant replies at a capped frame
// rate, runs one-shot people and company searches, manages the session
// sidebar, and drives document uploads for file search.
package chat
