// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
//
// Messages are immutable once created and always belong to exactly one
// session. Session ids come in two flavors: transient ids minted client-side
// before the backend has seen the session, and authoritative ids assigned by
// the backend. A transient id is replaced, never aliased, once the server
// responds with its own.
package model
