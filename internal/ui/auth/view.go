// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.theme.FormTitle.Render(m.title()))
	sb.WriteString("\n")

	for i, input := range m.inputs {
		label := m.theme.FormLabel
		if i == m.focusIdx {
			label = m.theme.FormFocused
		}
		sb.WriteString(label.Render(m.labelFor(i)))
		sb.WriteString("\n")
		sb.WriteString(input.View())
		sb.WriteString("\n")
	}

	if m.busy {
		sb.WriteString("\n" + m.spinner.View() + " working...")
	}
	if m.errText != "" {
		sb.WriteString("\n" + m.theme.ErrorNotice.Render("✗ "+m.errText))
	}
	if m.notice != "" {
		sb.WriteString("\n" + m.theme.SuccessNotice.Render(m.notice))
	}
	if m.page == PageVerify && m.cooldownSecs > 0 {
		sb.WriteString("\n" + m.theme.FormHint.Render(
			fmt.Sprintf("Resend available in %ds", m.cooldownSecs)))
	}

	sb.WriteString("\n\n" + m.theme.FormHint.Render(m.hint()))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.FormFocused.GetForeground()).
		Padding(1, 3).
		Render(sb.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) title() string {
	switch m.page {
	case PageLogin:
		return "Sign in to Sophia"
	case PageRegister:
		return "Create your account"
	case PageVerify:
		return "Check your email"
	case PageForgot:
		return "Forgot password"
	case PageReset:
		return "Choose a new password"
	case PageProfile:
		return "Your profile"
	}
	return ""
}

func (m *Model) labelFor(i int) string {
	labels := map[Page][]string{
		PageLogin:    {"Email", "Password"},
		PageRegister: {"Name", "Email", "Password"},
		PageVerify:   {"Verification code"},
		PageForgot:   {"Email"},
		PageReset:    {"Reset code", "New password"},
		PageProfile:  {"Display name", "Current password", "New password", "Avatar image"},
	}
	if names, ok := labels[m.page]; ok && i < len(names) {
		return names[i]
	}
	return ""
}

func (m *Model) hint() string {
	switch m.page {
	case PageLogin:
		return "Enter sign in · C-r register · C-f forgot password · C-c quit"
	case PageRegister:
		return "Enter create account · Esc back to login"
	case PageVerify:
		return "Enter verify · C-r resend code · Esc back to login"
	case PageForgot:
		return "Enter send reset code · Esc back to login"
	case PageReset:
		return "Enter set password · Esc back to login"
	case PageProfile:
		return "Enter apply focused field · Esc back to chat"
	}
	return ""
}
