// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat maps conversation operations onto the backend: listing
// sessions, fetching a session's message log, and sending text or image
// messages. Each backend payload shape is pinned to one DTO and one
// normalization function; a payload that matches none of the pinned
// shapes is a hard decode error, never a silent guess.
package chat
