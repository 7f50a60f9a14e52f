// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the warm-tui application.
//
// This package contains common helper functions used throughout the
// application for string manipulation and display formatting.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: Display-width truncation (CJK aware)
//
// Time Formatting:
//   - RelativeTime: Short ages for list display ("5m", "3h", "2d")
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// Format a session age for the sidebar
//	age := util.RelativeTime(session.UpdatedAt, time.Now())
package util
