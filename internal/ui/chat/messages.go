// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat view.
// All message types follow Bubble Tea conventions and are immutable.

package chat

import "github.com/sophiachat/sophia-tui/internal/model"

// =============================================================================
// SESSION LIST MESSAGES
// =============================================================================

// SessionsLoadedMsg delivers the sidebar's session listing.
type SessionsLoadedMsg struct {
	Sessions []model.ChatSession
	Err      error
}

// SessionMessagesMsg delivers one session's message log. Generation is
// the switch counter value captured when the fetch started; a stale
// generation means the user has switched again and the payload must be
// dropped.
type SessionMessagesMsg struct {
	Generation int
	SessionID  string
	Messages   []model.Message
	Err        error
}

// =============================================================================
// SEND MESSAGES
// =============================================================================

// SendResultMsg delivers the assistant's reply to a send into an
// existing session. PendingID names the optimistic user message to
// commit (success) or roll back (failure).
type SendResultMsg struct {
	SessionID string
	PendingID string
	Reply     string
	Err       error
}

// NewSessionResultMsg delivers the outcome of a first-message send that
// implicitly created a session. SessionID is the authoritative server
// id to adopt.
type NewSessionResultMsg struct {
	PendingID string
	SessionID string
	Title     string
	Reply     string
	Err       error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// UnauthorizedMsg tells the application model that a backend call was
// rejected with 401 and the user must log in again.
type UnauthorizedMsg struct{}

// LogoutRequestMsg asks the application model to log out deliberately.
type LogoutRequestMsg struct{}

// ProfileRequestMsg asks the application model to open the profile view.
type ProfileRequestMsg struct{}

// CopiedMsg reports a clipboard copy attempt.
type CopiedMsg struct {
	Err error
}

// statusExpiredMsg clears a transient status line.
type statusExpiredMsg struct{}
