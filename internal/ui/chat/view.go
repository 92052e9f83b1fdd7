// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sophiachat/sophia-tui/internal/ui/components"
)

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar.View(),
		m.renderConversation(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.composer.View(),
		m.renderStatusBar(),
	)
}

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Sophia")
	sub := ""
	if user := m.store.GetUser(); user != nil {
		sub = m.theme.HeaderSubtitle.Render("  " + user.Name)
	}
	return m.theme.Header.Width(m.width).Render(title + sub)
}

func (m *Model) renderConversation() string {
	if m.session == nil {
		return m.renderEmptyState()
	}

	if m.state == StateLoading {
		return lipgloss.NewStyle().
			Width(m.viewport.Width).
			Height(m.viewport.Height).
			Render(m.spinner.View() + " Loading conversation...")
	}

	content := m.viewport.View()
	if m.state == StateSending {
		content += "\n" + m.theme.Spinner.Render(m.spinner.View()+" Sophia is thinking...")
	}
	return content
}

// renderEmptyState shows suggestion prompts before the first message.
func (m *Model) renderEmptyState() string {
	var sb strings.Builder
	sb.WriteString(m.theme.HeaderSubtitle.Render("Start a new conversation"))
	sb.WriteString("\n\n")
	for _, s := range suggestions {
		sb.WriteString(m.theme.Suggestion.Render(s))
		sb.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		Padding(1, 2).
		Render(sb.String())
}

// syncViewport re-renders the message log into the viewport and keeps
// the latest message visible.
func (m *Model) syncViewport() {
	if m.session == nil {
		m.viewport.SetContent("")
		return
	}

	var sb strings.Builder
	for i, msg := range m.session.Messages {
		bubble := components.NewMessageBubble(msg, m.theme, m.formatter)
		bubble.SetWidth(m.viewport.Width)
		bubble.ShowTimestamp = m.showTimestamps
		bubble.Pending = msg.ID == m.pendingID
		sb.WriteString(bubble.View())
		if i < len(m.session.Messages)-1 {
			sb.WriteString("\n\n")
		}
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderStatusBar() string {
	switch {
	case m.errText != "":
		return m.theme.ErrorNotice.Render("✗ " + m.errText)
	case m.statusText != "":
		return m.theme.InfoNotice.Render(m.statusText)
	}

	help := strings.Join([]string{
		m.theme.ShortcutKey.Render("Tab") + m.theme.ShortcutDesc.Render(" panes"),
		m.theme.ShortcutKey.Render("C-n") + m.theme.ShortcutDesc.Render(" new"),
		m.theme.ShortcutKey.Render("/help") + m.theme.ShortcutDesc.Render(" commands"),
		m.theme.ShortcutKey.Render("C-c") + m.theme.ShortcutDesc.Render(" quit"),
	}, "  ")
	return m.theme.StatusBar.Width(m.width).Render(help)
}
