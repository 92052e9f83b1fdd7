// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the account
// flow views.

package auth

import "github.com/sophiachat/sophia-tui/internal/auth"

// =============================================================================
// OUTCOMES SENT TO THE APPLICATION MODEL
// =============================================================================

// AuthenticatedMsg reports a completed login; the application switches
// to the conversation view.
type AuthenticatedMsg struct {
	User *auth.User
}

// CloseProfileMsg reports that the profile page is done and the
// application should return to the conversation view.
type CloseProfileMsg struct{}

// =============================================================================
// SERVICE RESULTS
// =============================================================================

type loginResultMsg struct {
	User *auth.User
	Err  error
}

type registerResultMsg struct {
	Notice string
	Err    error
}

type verifyResultMsg struct {
	Err error
}

type resendResultMsg struct {
	Err error
}

type forgotOTPResultMsg struct {
	Err error
}

type resetResultMsg struct {
	Err error
}

type profileResultMsg struct {
	Notice string
	Err    error
}

// cooldownTickMsg advances the resend countdown once a second.
type cooldownTickMsg struct{}
