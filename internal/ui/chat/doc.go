// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI: the session
// sidebar, the message list, and the composer, driven by one Bubble Tea
// model.
//
// The controller is a small state machine. A send is optimistic: the
// user's message appears immediately, is marked pending, and is removed
// again if the backend rejects it. Session switches carry a generation
// counter so a reply for an abandoned switch is discarded instead of
// overwriting the newer session's log. At most one send is in flight;
// the composer is disabled until the reply lands.
package chat
