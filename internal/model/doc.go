// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat sessions, messages, and input modes.
//
// # Key Types
//
//   - Conversation: A chat session's transcript plus its backend identity
//   - Message: Single message with role, content, citations, and cards
//   - ModeInfo: Information about an input mode (chat, searches)
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Run one chat turn:
//
//	conv := model.NewConversation(api.ModeStandard)
//	placeholder, err := conv.BeginTurn("Hello!")
//	// stream tokens into the placeholder...
//	conv.FinalizeLast()
//
// The backend owns persisted history; Conversation is the in-memory working
// copy, rebuilt from the server with HydrateFromSession.
package model
