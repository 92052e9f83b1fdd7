// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the sophia
// TUI: message bubbles, the session sidebar, and the composer. Each
// component renders state handed to it by the controller and forwards
// user intents back; none of them perform I/O.
package components
