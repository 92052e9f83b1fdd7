// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file holds the tea.Cmd factories that talk to the backend, plus
// the slash-command registry for the composer.

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sophiachat/sophia-tui/internal/model"
)

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// loadSessionsCmd fetches the sidebar listing.
func (m *Model) loadSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.chatSvc.ListSessions(context.Background())
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// loadMessagesCmd fetches one session's log, tagged with the current
// switch generation.
func (m *Model) loadMessagesCmd(generation int, sessionID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := m.chatSvc.SessionMessages(context.Background(), sessionID)
		return SessionMessagesMsg{
			Generation: generation,
			SessionID:  sessionID,
			Messages:   messages,
			Err:        err,
		}
	}
}

// sendMessageCmd sends text into an existing session.
func (m *Model) sendMessageCmd(sessionID, pendingID, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.chatSvc.SendMessage(context.Background(), sessionID, text)
		return SendResultMsg{SessionID: sessionID, PendingID: pendingID, Reply: reply, Err: err}
	}
}

// sendImageCmd uploads an image with an optional caption.
func (m *Model) sendImageCmd(sessionID, pendingID, path, caption string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.chatSvc.SendImageMessage(context.Background(), sessionID, path, caption)
		return SendResultMsg{SessionID: sessionID, PendingID: pendingID, Reply: reply, Err: err}
	}
}

// createSessionCmd sends the first message of a new conversation.
func (m *Model) createSessionCmd(pendingID, text string) tea.Cmd {
	return func() tea.Msg {
		sessionID, reply, err := m.chatSvc.CreateSession(context.Background(), text)
		return NewSessionResultMsg{
			PendingID: pendingID,
			SessionID: sessionID,
			Title:     model.DeriveTitle(text),
			Reply:     reply,
			Err:       err,
		}
	}
}

// copyCmd puts text on the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: clipboard.WriteAll(text)}
	}
}

// expireStatusCmd clears the status line after a short delay.
func expireStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}

// =============================================================================
// SLASH COMMAND REGISTRY
// =============================================================================

// CommandHandler handles one composer slash command.
type CommandHandler func(m *Model, args []string) tea.Cmd

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	"new":     handleNewCommand,
	"n":       handleNewCommand,
	"attach":  handleAttachCommand,
	"a":       handleAttachCommand,
	"detach":  handleDetachCommand,
	"copy":    handleCopyCommand,
	"y":       handleCopyCommand,
	"profile": handleProfileCommand,
	"logout":  handleLogoutCommand,
	"help":    handleHelpCommand,
	"h":       handleHelpCommand,
	"?":       handleHelpCommand,
	"quit":    handleQuitCommand,
	"q":       handleQuitCommand,
}

// handleSlashCommand dispatches a composer line starting with "/".
func (m *Model) handleSlashCommand(line string) tea.Cmd {
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return nil
	}
	handler, ok := commandHandlers[fields[0]]
	if !ok {
		m.setStatus("Unknown command: /" + fields[0])
		return expireStatusCmd()
	}
	return handler(m, fields[1:])
}

func handleNewCommand(m *Model, _ []string) tea.Cmd {
	return m.startNewChat()
}

func handleAttachCommand(m *Model, args []string) tea.Cmd {
	if len(args) == 0 {
		m.setStatus("Usage: /attach <path-to-image>")
		return expireStatusCmd()
	}
	m.composer.SetAttachment(strings.Join(args, " "))
	m.setStatus("Attached " + m.composer.Attachment())
	return expireStatusCmd()
}

func handleDetachCommand(m *Model, _ []string) tea.Cmd {
	m.composer.SetAttachment("")
	m.setStatus("Attachment removed")
	return expireStatusCmd()
}

func handleCopyCommand(m *Model, _ []string) tea.Cmd {
	if m.session == nil {
		return nil
	}
	last, ok := m.session.LastMessage()
	if !ok {
		return nil
	}
	return copyCmd(last.Content)
}

func handleProfileCommand(_ *Model, _ []string) tea.Cmd {
	return func() tea.Msg { return ProfileRequestMsg{} }
}

func handleLogoutCommand(_ *Model, _ []string) tea.Cmd {
	return func() tea.Msg { return LogoutRequestMsg{} }
}

func handleHelpCommand(m *Model, _ []string) tea.Cmd {
	m.setStatus("/new  /attach <path>  /detach  /copy  /profile  /logout  /quit")
	return expireStatusCmd()
}

func handleQuitCommand(_ *Model, _ []string) tea.Cmd {
	return tea.Quit
}
