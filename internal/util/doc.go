// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string and text helpers shared across the
// sophia TUI: rune-safe truncation, display-width truncation for CJK and
// emoji content, and relative date formatting for the session sidebar.
package util
