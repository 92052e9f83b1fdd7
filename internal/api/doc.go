// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the Sophia
// backend REST API.
//
// The client owns the base URL, default headers, and cookie passthrough. A
// bearer token is read from the injected session on every outgoing request,
// never cached at construction, so a login or logout is visible to all
// subsequent calls immediately. Any 401 response clears the session before
// the error propagates, which logs the user out everywhere at once.
//
// The client never retries; callers decide whether a failed request is
// worth reissuing.
package api
