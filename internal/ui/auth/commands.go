// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sophiachat/sophia-tui/internal/auth"
)

// =============================================================================
// SERVICE COMMANDS
// =============================================================================

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.service.Login(context.Background(), email, password)
		return loginResultMsg{User: user, Err: err}
	}
}

func (m *Model) registerCmd(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		notice, err := m.service.Register(context.Background(), name, email, password)
		return registerResultMsg{Notice: notice, Err: err}
	}
}

func (m *Model) verifyCmd(email, code string, purpose auth.OTPPurpose) tea.Cmd {
	return func() tea.Msg {
		return verifyResultMsg{Err: m.service.VerifyOTP(context.Background(), email, code, purpose)}
	}
}

func (m *Model) resendCmd(email string, purpose auth.OTPPurpose) tea.Cmd {
	return func() tea.Msg {
		return resendResultMsg{Err: m.service.ResendOTP(context.Background(), email, purpose)}
	}
}

func (m *Model) forgotCmd(email string) tea.Cmd {
	return func() tea.Msg {
		return forgotOTPResultMsg{Err: m.service.SendOTPForgotPassword(context.Background(), email)}
	}
}

func (m *Model) resetCmd(email, code, newPassword string) tea.Cmd {
	return func() tea.Msg {
		return resetResultMsg{Err: m.service.ResetPassword(context.Background(), email, code, newPassword)}
	}
}

func (m *Model) updateNameCmd(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.service.UpdateName(context.Background(), name); err != nil {
			return profileResultMsg{Err: err}
		}
		return profileResultMsg{Notice: "Name updated"}
	}
}

func (m *Model) changePasswordCmd(current, next string) tea.Cmd {
	return func() tea.Msg {
		if err := m.service.ChangePassword(context.Background(), current, next); err != nil {
			return profileResultMsg{Err: err}
		}
		return profileResultMsg{Notice: "Password changed"}
	}
}

func (m *Model) uploadAvatarCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.service.UploadAvatar(context.Background(), path); err != nil {
			return profileResultMsg{Err: err}
		}
		return profileResultMsg{Notice: "Avatar updated"}
	}
}

// cooldownTickCmd drives the one-second resend countdown.
func cooldownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{}
	})
}
