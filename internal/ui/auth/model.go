// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sophiachat/sophia-tui/internal/auth"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
)

// =============================================================================
// PAGES
// =============================================================================

// Page identifies which account form is on screen.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageVerify
	PageForgot
	PageReset
	PageProfile
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the account flows.
type Model struct {
	page    Page
	service *auth.Service
	theme   *styles.Theme
	logger  *log.Logger

	inputs   []textinput.Model
	focusIdx int

	spinner spinner.Model
	busy    bool

	errText string
	// notice is a one-shot informational line, e.g. "registration
	// complete, please log in" shown on the login page.
	notice string

	// verification state
	pendingEmail string
	otpPurpose   auth.OTPPurpose
	cooldownSecs int

	width  int
	height int
}

// New creates the account flow model, starting at the login page.
func New(service *auth.Service, theme *styles.Theme, logger *log.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := &Model{
		service: service,
		theme:   theme,
		logger:  logger,
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.setPage(PageLogin)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Page returns the page on screen.
func (m *Model) Page() Page {
	return m.page
}

// OpenProfile switches to the profile page, prefilled with the stored
// display name.
func (m *Model) OpenProfile() {
	m.setPage(PageProfile)
	if user := m.service.Store().GetUser(); user != nil {
		m.inputs[0].SetValue(user.Name)
	}
}

// ShowSessionExpired routes back to login after a forced logout.
func (m *Model) ShowSessionExpired() {
	m.setPage(PageLogin)
	m.errText = "Your session has expired, please log in again"
}

// =============================================================================
// FORM CONSTRUCTION
// =============================================================================

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// setPage rebuilds the input set for the chosen page.
func (m *Model) setPage(page Page) {
	m.page = page
	m.errText = ""
	m.busy = false
	m.focusIdx = 0

	switch page {
	case PageLogin:
		m.inputs = []textinput.Model{
			newInput("email", false),
			newInput("password", true),
		}
	case PageRegister:
		m.inputs = []textinput.Model{
			newInput("name", false),
			newInput("email", false),
			newInput("password", true),
		}
	case PageVerify:
		m.inputs = []textinput.Model{
			newInput("6-digit code", false),
		}
		m.inputs[0].CharLimit = 6
	case PageForgot:
		m.inputs = []textinput.Model{
			newInput("email", false),
		}
	case PageReset:
		m.inputs = []textinput.Model{
			newInput("6-digit code", false),
			newInput("new password", true),
		}
		m.inputs[0].CharLimit = 6
	case PageProfile:
		m.inputs = []textinput.Model{
			newInput("display name", false),
			newInput("current password", true),
			newInput("new password", true),
			newInput("avatar image path", false),
		}
	}

	m.inputs[0].Focus()
}

// focusInput moves input focus by delta, wrapping.
func (m *Model) focusInput(delta int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focusIdx].Focus()
}

func (m *Model) value(i int) string {
	return m.inputs[i].Value()
}
