// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"os"
	"sort"

	"github.com/sophiachat/sophia-tui/internal/api"
	"github.com/sophiachat/sophia-tui/internal/model"
)

// =============================================================================
// SERVICE
// =============================================================================

// Service performs conversation operations against the backend. It is
// stateless; all session state lives in the UI controller and the
// backend.
type Service struct {
	client *api.Client
}

// NewService creates a chat service bound to the given client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// =============================================================================
// SESSION LISTING
// =============================================================================

// ListSessions fetches session metadata, newest activity first. The
// listing carries no message bodies; a session's log is fetched on
// selection via SessionMessages.
func (s *Service) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	var dtos []sessionDTO
	if _, err := s.client.Get(ctx, "/chats", &dtos, false); err != nil {
		return nil, err
	}

	sessions := make([]model.ChatSession, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			return nil, api.NewDecodeError("session entry has no id", nil)
		}
		sessions = append(sessions, d.toSession())
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastActivity().After(sessions[j].LastActivity())
	})
	return sessions, nil
}

// SessionMessages fetches the full ordered message log of one session.
// This is the one endpoint that may answer with a bare JSON array
// instead of the envelope.
func (s *Service) SessionMessages(ctx context.Context, sessionID string) ([]model.Message, error) {
	if sessionID == "" || model.IsTransientID(sessionID) {
		return nil, api.NewValidationError("session has no server id yet")
	}

	var dtos []messageDTO
	if _, err := s.client.Get(ctx, "/chats/"+sessionID+"/messages", &dtos, true); err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(dtos))
	for _, d := range dtos {
		msg, err := d.toMessage()
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// =============================================================================
// SENDING
// =============================================================================

// CreateSession sends the first message of a brand-new conversation.
// The backend creates the session and returns its id along with the
// assistant's reply.
func (s *Service) CreateSession(ctx context.Context, firstMessage string) (sessionID, reply string, err error) {
	if firstMessage == "" {
		return "", "", api.NewValidationError("message is empty")
	}

	var dto replyDTO
	if _, err := s.client.PostChat(ctx, "/chats/new/messages", map[string]string{
		"content": firstMessage,
	}, &dto); err != nil {
		return "", "", err
	}
	if dto.ChatID == "" {
		return "", "", api.NewDecodeError("new-session response has no chat id", nil)
	}
	reply, err = dto.text()
	if err != nil {
		return "", "", err
	}
	if reply == "" {
		return "", "", api.NewDecodeError("new-session response has no assistant reply", nil)
	}
	return dto.ChatID, reply, nil
}

// SendMessage sends text into an existing session and returns the
// assistant's reply.
func (s *Service) SendMessage(ctx context.Context, sessionID, text string) (string, error) {
	if sessionID == "" || model.IsTransientID(sessionID) {
		return "", api.NewValidationError("session has no server id yet")
	}
	if text == "" {
		return "", api.NewValidationError("message is empty")
	}

	var dto replyDTO
	if _, err := s.client.PostChat(ctx, "/chats/"+sessionID+"/messages", map[string]string{
		"content": text,
	}, &dto); err != nil {
		return "", err
	}
	reply, err := dto.text()
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", api.NewDecodeError("send response has no assistant reply", nil)
	}
	return reply, nil
}

// SendImageMessage uploads an image with an optional caption and
// returns the assistant's reply.
func (s *Service) SendImageMessage(ctx context.Context, sessionID, path, caption string) (string, error) {
	if sessionID == "" || model.IsTransientID(sessionID) {
		return "", api.NewValidationError("session has no server id yet")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", api.NewValidationError("cannot read file: " + path)
	}

	var dto replyDTO
	if _, err := s.client.PostMultipart(ctx, "/chats/"+sessionID+"/images",
		map[string]string{"content": caption},
		[]api.MultipartFile{{Field: "image", Filename: path, Content: content}},
		&dto); err != nil {
		return "", err
	}
	reply, err := dto.text()
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", api.NewDecodeError("image response has no assistant reply", nil)
	}
	return reply, nil
}
