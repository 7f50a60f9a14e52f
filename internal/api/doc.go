// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the Warm AI
// backend.
//
// The backend owns all model invocation, retrieval and ranking; this package
// is pure request/response glue. Chat turns arrive as a server-sent event
// stream (see EventReader), everything else is plain JSON over HTTP.
package api
