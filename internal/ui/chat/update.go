// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sophiachat/sophia-tui/internal/api"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state == StateIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case SessionMessagesMsg:
		return m.handleSessionMessages(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case NewSessionResultMsg:
		return m.handleNewSessionResult(msg)

	case CopiedMsg:
		if msg.Err != nil {
			m.setStatus("Copy failed: " + msg.Err.Error())
		} else {
			m.setStatus("Copied to clipboard")
		}
		return m, expireStatusCmd()

	case statusExpiredMsg:
		m.statusText = ""
		return m, nil
	}

	return m, m.composer.Update(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.SwitchPane):
		if m.focus == FocusComposer {
			m.focus = FocusSidebar
			m.composer.Blur()
			return m, nil
		}
		m.focus = FocusComposer
		return m, m.composer.Focus()

	case key.Matches(msg, m.keyMap.NewChat):
		return m, m.startNewChat()

	case key.Matches(msg, m.keyMap.CopyLast):
		return m, handleCopyCommand(m, nil)

	case key.Matches(msg, m.keyMap.RefreshList):
		return m, m.loadSessionsCmd()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}

	if key.Matches(msg, m.keyMap.Submit) {
		line := strings.TrimSpace(m.composer.Value())
		if strings.HasPrefix(line, "/") {
			m.composer.Reset()
			return m, m.handleSlashCommand(line)
		}
		return m, m.submit()
	}

	return m, m.composer.Update(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.MoveSelection(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.MoveSelection(1)
	case key.Matches(msg, m.keyMap.Submit):
		if selected := m.sidebar.SelectedSession(); selected != nil {
			m.focus = FocusComposer
			return m, tea.Batch(m.switchToSession(*selected), m.composer.Focus())
		}
	}
	return m, nil
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

func (m *Model) handleSessionsLoaded(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, func() tea.Msg { return UnauthorizedMsg{} }
		}
		m.errText = api.UserMessage(msg.Err, "Could not load conversations")
		m.logger.Error("session list failed", "error", msg.Err)
		return m, nil
	}
	m.sidebar.Sessions = msg.Sessions
	if m.sidebar.Selected >= len(msg.Sessions) {
		m.sidebar.Selected = 0
	}
	return m, nil
}

func (m *Model) handleSessionMessages(msg SessionMessagesMsg) (tea.Model, tea.Cmd) {
	// A newer switch or new-chat supersedes this response.
	if msg.Generation != m.generation {
		m.logger.Debug("dropping stale session fetch", "session", msg.SessionID)
		return m, nil
	}
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, func() tea.Msg { return UnauthorizedMsg{} }
		}
		m.state = StateIdle
		m.errText = api.UserMessage(msg.Err, "Could not load this conversation")
		return m, nil
	}
	if m.session == nil || m.session.ID != msg.SessionID {
		return m, nil
	}
	m.session.Messages = msg.Messages
	m.state = StateIdle
	m.syncViewport()
	return m, nil
}

func (m *Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	if m.pendingID != msg.PendingID {
		return m, nil
	}
	if msg.Err != nil {
		m.rollbackPending()
		if api.IsUnauthorized(msg.Err) {
			return m, func() tea.Msg { return UnauthorizedMsg{} }
		}
		m.errText = api.UserMessage(msg.Err, "Message could not be sent")
		m.logger.Warn("send failed", "session", msg.SessionID, "error", msg.Err)
		return m, nil
	}
	m.commitReply(msg.Reply)
	return m, nil
}

func (m *Model) handleNewSessionResult(msg NewSessionResultMsg) (tea.Model, tea.Cmd) {
	if m.pendingID != msg.PendingID {
		return m, nil
	}
	if msg.Err != nil {
		m.rollbackPending()
		if api.IsUnauthorized(msg.Err) {
			return m, func() tea.Msg { return UnauthorizedMsg{} }
		}
		m.errText = api.UserMessage(msg.Err, "Could not start the conversation")
		m.logger.Warn("new session failed", "error", msg.Err)
		return m, nil
	}

	if m.session != nil {
		m.session.AdoptID(msg.SessionID)
		m.commitReply(msg.Reply)
		m.sidebar.Prepend(*m.session.Clone())
	}
	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	sidebarWidth := m.sidebar.Width
	if sidebarWidth > width/3 {
		sidebarWidth = width / 3
	}
	contentWidth := width - sidebarWidth - 2
	if contentWidth < 30 {
		contentWidth = 30
	}

	m.sidebar.SetSize(sidebarWidth, height-2)
	m.composer.SetWidth(contentWidth)
	m.viewport.Width = contentWidth
	m.viewport.Height = height - 7
	if m.viewport.Height < 5 {
		m.viewport.Height = 5
	}
	m.syncViewport()
}
