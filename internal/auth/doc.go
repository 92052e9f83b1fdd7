// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the logged-in user state and the account operations
// against the backend: login, registration, OTP verification, password
// reset, and profile updates.
//
// The Store is the single shared mutable piece of the whole program. It
// is mutex-guarded and injected into the API client as its token source,
// so a logout (explicit or forced by a 401) is observed by every
// subsequent request.
package auth
