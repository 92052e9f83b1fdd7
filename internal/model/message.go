// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Sophia"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// ImagePlaceholder is the sentinel content the backend stores for messages
// that carried only an image. The formatter suppresses normal text rendering
// for it and shows a short italic marker instead.
const ImagePlaceholder = "[Hình ảnh gửi lên]"

// Message represents a single message in a chat session. Messages are
// append-only: once created they are never mutated in place.
type Message struct {
	// ID is transient for optimistic messages that have not reached the
	// backend yet; the backend's id is set on the replacement message.
	ID            string    `json:"id,omitempty"`
	Role          Role      `json:"role"`
	Content       string    `json:"content"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// NewUserMessage creates a user message timestamped now. The id is a
// transient one so callers can track the message through an optimistic
// append until the backend confirms or the send fails.
func NewUserMessage(content string) Message {
	return Message{
		ID:        NewTransientID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewUserImageMessage creates a user message carrying an attachment.
// An empty caption falls back to the image placeholder sentinel so the
// message still renders as image-only.
func NewUserImageMessage(caption, attachmentURL string) Message {
	if caption == "" {
		caption = ImagePlaceholder
	}
	msg := NewUserMessage(caption)
	msg.AttachmentURL = attachmentURL
	return msg
}

// NewAssistantMessage creates an assistant reply timestamped now.
func NewAssistantMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// IsImageOnly reports whether the message carried only an image.
func (m Message) IsImageOnly() bool {
	return m.Content == ImagePlaceholder || m.Content == "Hình ảnh gửi lên"
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has neither content nor an attachment.
func (m Message) IsEmpty() bool {
	return m.Content == "" && m.AttachmentURL == ""
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// NewTransientID mints a client-side id for sessions that have not been
// created on the backend yet. The "tmp_" prefix keeps transient ids
// distinguishable from server-assigned ones in logs.
func NewTransientID() string {
	return "tmp_" + uuid.NewString()
}

// IsTransientID reports whether an id was minted client-side.
func IsTransientID(id string) bool {
	return len(id) > 4 && id[:4] == "tmp_"
}
