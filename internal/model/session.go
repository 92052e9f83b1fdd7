// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"time"
)

// TitleMaxRunes is the number of leading characters of the first user
// message that become the session title. Longer messages get an ellipsis.
const TitleMaxRunes = 30

// =============================================================================
// CHAT SESSION TYPE
// =============================================================================

// ChatSession holds one conversation thread and its sidebar metadata.
//
// The session list endpoint returns metadata only; Messages stays nil until
// the session is selected and its log is fetched.
type ChatSession struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages, chronological. Lazily populated.
	Messages []Message `json:"messages,omitempty"`

	// LastMessagePreview is shown under the title in the sidebar.
	LastMessagePreview string `json:"last_message_preview,omitempty"`
}

// NewSession creates a session with a transient id and a title derived from
// the first user message. The transient id must be replaced once the backend
// assigns an authoritative one (see AdoptID).
func NewSession(firstMessage string) *ChatSession {
	now := time.Now()
	return &ChatSession{
		ID:        NewTransientID(),
		Title:     DeriveTitle(firstMessage),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DeriveTitle derives a session title from the first user message: the first
// TitleMaxRunes characters, with "..." appended when anything was cut.
func DeriveTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= TitleMaxRunes {
		return firstMessage
	}
	return string(runes[:TitleMaxRunes]) + "..."
}

// AdoptID replaces a transient id with the backend's authoritative one.
// Adopting onto a session that already has a server id is a no-op: server
// ids are never aliased.
func (s *ChatSession) AdoptID(serverID string) {
	if serverID == "" || !IsTransientID(s.ID) {
		return
	}
	s.ID = serverID
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the session's log.
func (s *ChatSession) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
	s.LastMessagePreview = msg.Preview(50)
}

// RemoveLast removes and returns the most recent message. Used to roll back
// an optimistic append when the send fails. Returns false on an empty log.
func (s *ChatSession) RemoveLast() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	last := s.Messages[len(s.Messages)-1]
	s.Messages = s.Messages[:len(s.Messages)-1]
	if len(s.Messages) > 0 {
		s.LastMessagePreview = s.Messages[len(s.Messages)-1].Preview(50)
	} else {
		s.LastMessagePreview = ""
	}
	return last, true
}

// LastMessage returns the most recent message, or false if the log is empty.
func (s *ChatSession) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// MessageCount returns the number of messages in the loaded log.
func (s *ChatSession) MessageCount() int {
	return len(s.Messages)
}

// IsEmpty returns true if no messages are loaded.
func (s *ChatSession) IsEmpty() bool {
	return len(s.Messages) == 0
}

// LastActivity returns the timestamp that orders sessions in the
// sidebar: UpdatedAt when set, else CreatedAt.
func (s *ChatSession) LastActivity() time.Time {
	if !s.UpdatedAt.IsZero() {
		return s.UpdatedAt
	}
	return s.CreatedAt
}

// GetTitle returns the session title or a default for untitled sessions.
func (s *ChatSession) GetTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return "New chat"
}

// Clone returns a deep copy of the session. Messages are value types, so
// copying the slice copies the log.
func (s *ChatSession) Clone() *ChatSession {
	clone := *s
	clone.Messages = make([]Message, len(s.Messages))
	copy(clone.Messages, s.Messages)
	return &clone
}
