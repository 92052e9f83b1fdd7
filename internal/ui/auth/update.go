// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sophiachat/sophia-tui/internal/api"
	"github.com/sophiachat/sophia-tui/internal/auth"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cooldownTickMsg:
		if m.cooldownSecs > 0 {
			m.cooldownSecs--
			if m.cooldownSecs > 0 {
				return m, cooldownTickCmd()
			}
		}
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Login failed")
			return m, nil
		}
		m.logger.Info("logged in", "user", msg.User.Email)
		return m, func() tea.Msg { return AuthenticatedMsg{User: msg.User} }

	case registerResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Registration failed")
			return m, nil
		}
		// Account exists but is unverified: go collect the emailed code.
		m.otpPurpose = auth.OTPRegister
		m.setPage(PageVerify)
		m.notice = "We sent a code to " + m.pendingEmail
		m.cooldownSecs = int(auth.ResendCooldown.Seconds())
		return m, cooldownTickCmd()

	case verifyResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Verification failed")
			return m, nil
		}
		if m.otpPurpose == auth.OTPForgotPassword {
			m.setPage(PageReset)
			m.notice = "Code accepted, choose a new password"
			return m, nil
		}
		// Registration complete: back to login with a one-shot notice.
		m.setPage(PageLogin)
		m.notice = "Registration complete, please log in"
		return m, nil

	case resendResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Could not resend the code")
			return m, nil
		}
		m.notice = "A new code is on its way"
		m.cooldownSecs = int(auth.ResendCooldown.Seconds())
		return m, cooldownTickCmd()

	case forgotOTPResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Could not start the reset")
			return m, nil
		}
		m.otpPurpose = auth.OTPForgotPassword
		m.setPage(PageReset)
		m.notice = "We sent a reset code to " + m.pendingEmail
		m.cooldownSecs = int(auth.ResendCooldown.Seconds())
		return m, cooldownTickCmd()

	case resetResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Password reset failed")
			return m, nil
		}
		m.setPage(PageLogin)
		m.notice = "Password changed, log in with the new one"
		return m, nil

	case profileResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = api.UserMessage(msg.Err, "Update failed")
			return m, nil
		}
		m.errText = ""
		m.notice = msg.Notice
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.focusInput(1)
		return m, nil

	case "shift+tab", "up":
		m.focusInput(-1)
		return m, nil

	case "enter":
		return m, m.submit()

	case "ctrl+r":
		// Register page from login; resend code from verify.
		switch m.page {
		case PageLogin:
			m.setPage(PageRegister)
			m.notice = ""
			return m, nil
		case PageVerify:
			return m, m.resend()
		}

	case "ctrl+f":
		if m.page == PageLogin {
			m.setPage(PageForgot)
			m.notice = ""
			return m, nil
		}

	case "esc":
		switch m.page {
		case PageProfile:
			return m, func() tea.Msg { return CloseProfileMsg{} }
		case PageLogin:
			return m, nil
		default:
			m.setPage(PageLogin)
			m.notice = ""
			return m, nil
		}
	}

	return m, m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit dispatches the current page's action. Validation failures come
// back synchronously from the service as validation errors.
func (m *Model) submit() tea.Cmd {
	m.errText = ""
	m.notice = ""

	switch m.page {
	case PageLogin:
		m.busy = true
		return tea.Batch(m.loginCmd(m.value(0), m.value(1)), m.spinner.Tick)

	case PageRegister:
		m.pendingEmail = m.value(1)
		m.busy = true
		return tea.Batch(m.registerCmd(m.value(0), m.value(1), m.value(2)), m.spinner.Tick)

	case PageVerify:
		m.busy = true
		return tea.Batch(m.verifyCmd(m.pendingEmail, m.value(0), m.otpPurpose), m.spinner.Tick)

	case PageForgot:
		m.pendingEmail = m.value(0)
		m.busy = true
		return tea.Batch(m.forgotCmd(m.value(0)), m.spinner.Tick)

	case PageReset:
		m.busy = true
		return tea.Batch(m.resetCmd(m.pendingEmail, m.value(0), m.value(1)), m.spinner.Tick)

	case PageProfile:
		return m.submitProfile()
	}
	return nil
}

// submitProfile applies whichever profile field is focused: name,
// password pair, or avatar path.
func (m *Model) submitProfile() tea.Cmd {
	switch m.focusIdx {
	case 0:
		m.busy = true
		return tea.Batch(m.updateNameCmd(m.value(0)), m.spinner.Tick)
	case 1, 2:
		m.busy = true
		return tea.Batch(m.changePasswordCmd(m.value(1), m.value(2)), m.spinner.Tick)
	case 3:
		if m.value(3) == "" {
			m.errText = "Enter the path to an image file"
			return nil
		}
		m.busy = true
		return tea.Batch(m.uploadAvatarCmd(m.value(3)), m.spinner.Tick)
	}
	return nil
}

// resend requests a fresh code, respecting the countdown.
func (m *Model) resend() tea.Cmd {
	if m.cooldownSecs > 0 {
		return nil
	}
	m.busy = true
	return tea.Batch(m.resendCmd(m.pendingEmail, m.otpPurpose), m.spinner.Tick)
}
