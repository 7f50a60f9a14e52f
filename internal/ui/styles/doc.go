// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the warm visual theme: an ember and gold palette
// built on Lip Gloss adaptive colors, with termenv-based capability
// detection, responsive layout modes, and ASCII status indicators for
// colorblind accessibility.
package styles
