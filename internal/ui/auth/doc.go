// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the account flow views: login, registration,
// email verification, password reset, and the profile page. One Bubble
// Tea model drives all of them as pages of a single form controller.
//
// Registration never logs the user in: it routes to the verification
// page, and a verified account is sent back to login with a one-shot
// notice. The verification page enforces the resend cooldown with a
// countdown mirroring the server-side limit.
package auth
