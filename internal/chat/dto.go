// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"time"

	"github.com/sophiachat/sophia-tui/internal/api"
	"github.com/sophiachat/sophia-tui/internal/model"
)

// =============================================================================
// WIRE SHAPES
// =============================================================================

// sessionDTO is one entry of the session listing. The backend uses
// "title" or "name" interchangeably, and "lastMessage" or "summary" for
// the preview; normalization pins the precedence here and nowhere else.
type sessionDTO struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Name        string `json:"name"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	LastMessage string `json:"lastMessage"`
	Summary     string `json:"summary"`
}

// messageDTO is one entry of a session's message log.
type messageDTO struct {
	ID        string `json:"_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	MediaURL  string `json:"mediaUrl"`
	CreatedAt string `json:"createdAt"`
}

// replyDTO is the send-message response. The backend has shipped the
// assistant text under three different keys, and renders each either as
// a bare string or as an object carrying "content"; precedence and
// normalization are fixed here.
type replyDTO struct {
	ChatID           string          `json:"chatId"`
	AssistantMessage json.RawMessage `json:"assistantMessage"`
	Response         json.RawMessage `json:"response"`
	AIResponse       json.RawMessage `json:"aiResponse"`
}

func (r replyDTO) text() (string, error) {
	for _, raw := range []json.RawMessage{r.AssistantMessage, r.Response, r.AIResponse} {
		s, err := replyText(raw)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
	}
	return "", nil
}

// replyText normalizes one reply key: a bare JSON string or an object
// with a "content" field. Any other shape is a hard decode error.
func replyText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Content, nil
	}
	return "", api.NewDecodeError("assistant reply has an unrecognized shape", nil)
}

// =============================================================================
// NORMALIZATION
// =============================================================================

func (d sessionDTO) toSession() model.ChatSession {
	title := d.Title
	if title == "" {
		title = d.Name
	}
	preview := d.LastMessage
	if preview == "" {
		preview = d.Summary
	}
	return model.ChatSession{
		ID:                 d.ID,
		Title:              title,
		CreatedAt:          parseTime(d.CreatedAt),
		UpdatedAt:          parseTime(d.UpdatedAt),
		LastMessagePreview: preview,
	}
}

func (d messageDTO) toMessage() (model.Message, error) {
	if d.ID == "" {
		return model.Message{}, api.NewDecodeError("message entry has no id", nil)
	}
	role := model.RoleAssistant
	if d.Role == "user" {
		role = model.RoleUser
	}
	return model.Message{
		ID:            d.ID,
		Role:          role,
		Content:       d.Content,
		AttachmentURL: d.MediaURL,
		CreatedAt:     parseTime(d.CreatedAt),
	}, nil
}

// parseTime accepts the two timestamp renderings the backend emits.
// An unparseable timestamp yields the zero time; display code treats
// that as "unknown" rather than failing the whole fetch.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
