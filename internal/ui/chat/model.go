// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sophiachat/sophia-tui/internal/auth"
	svc "github.com/sophiachat/sophia-tui/internal/chat"
	"github.com/sophiachat/sophia-tui/internal/format"
	"github.com/sophiachat/sophia-tui/internal/model"
	"github.com/sophiachat/sophia-tui/internal/ui/components"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateIdle    State = iota // Ready for input
	StateLoading              // Fetching a session's message log
	StateSending              // A send is in flight
)

// Focus marks which pane receives key events.
type Focus int

const (
	FocusComposer Focus = iota
	FocusSidebar
)

// suggestions shown on the empty state before the first message.
var suggestions = []string{
	"What can you help me with?",
	"Plan a weekend trip to Da Nang",
	"Explain this in simple terms: ",
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	// State
	state State
	focus Focus

	// generation counts session switches; responses tagged with an older
	// generation are stale and dropped.
	generation int

	// session is the conversation on screen. A nil session is the empty
	// "new chat" state. A session with a transient id exists only
	// locally until the backend assigns the real one.
	session *model.ChatSession

	// pendingID is the transient id of the optimistic user message
	// awaiting its reply, "" when none.
	pendingID string

	// Services
	chatSvc *svc.Service
	store   *auth.Store
	logger  *log.Logger

	// Styling
	theme     *styles.Theme
	formatter *format.Formatter

	// UI components
	sidebar  *components.Sidebar
	composer *components.Composer
	viewport viewport.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Status line
	errText    string
	statusText string

	// Dimensions
	width  int
	height int

	showTimestamps bool
}

// New creates the conversation view.
func New(chatSvc *svc.Service, store *auth.Store, theme *styles.Theme, formatter *format.Formatter, logger *log.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	m := &Model{
		state:          StateIdle,
		focus:          FocusComposer,
		chatSvc:        chatSvc,
		store:          store,
		logger:         logger,
		theme:          theme,
		formatter:      formatter,
		sidebar:        components.NewSidebar(theme),
		composer:       components.NewComposer(theme),
		viewport:       vp,
		spinner:        sp,
		keyMap:         DefaultKeyMap(),
		width:          100,
		height:         30,
		showTimestamps: true,
	}
	return m
}

// SetShowTimestamps toggles per-message timestamps.
func (m *Model) SetShowTimestamps(show bool) {
	m.showTimestamps = show
}

// SetSidebarWidth sets the preferred sidebar width in cells. The layout
// still caps it at a third of the window.
func (m *Model) SetSidebarWidth(width int) {
	if width > 0 {
		m.sidebar.Width = width
	}
}

// Init loads the session list and focuses the composer.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSessionsCmd(),
		m.composer.Focus(),
		m.spinner.Tick,
	)
}

// State returns the controller state, for the status bar and tests.
func (m *Model) State() State {
	return m.state
}

// Session returns the conversation on screen, nil in the empty state.
func (m *Model) Session() *model.ChatSession {
	return m.session
}

// =============================================================================
// STATE TRANSITIONS
// =============================================================================

// startNewChat switches to the empty state. Nothing is created on the
// backend until the first message is sent.
func (m *Model) startNewChat() tea.Cmd {
	if m.state == StateSending {
		return nil
	}
	m.generation++
	m.session = nil
	m.pendingID = ""
	m.state = StateIdle
	m.errText = ""
	m.composer.Reset()
	m.composer.SetDisabled(false)
	m.focus = FocusComposer
	m.syncViewport()
	return m.composer.Focus()
}

// switchToSession begins loading the chosen session's log. Responses of
// earlier switches become stale through the generation bump.
func (m *Model) switchToSession(session model.ChatSession) tea.Cmd {
	if m.state == StateSending {
		m.setStatus("Still waiting for a reply, one moment")
		return expireStatusCmd()
	}
	m.generation++
	selected := session.Clone()
	m.session = selected
	m.pendingID = ""
	m.state = StateLoading
	m.errText = ""
	m.syncViewport()
	return tea.Batch(m.loadMessagesCmd(m.generation, selected.ID), m.spinner.Tick)
}

// submit sends whatever the composer holds. The user message is
// appended optimistically and rolled back if the backend rejects it.
func (m *Model) submit() tea.Cmd {
	if m.state != StateIdle || m.composer.Empty() {
		return nil
	}

	text := m.composer.Value()
	attachment := m.composer.Attachment()

	if m.session == nil || model.IsTransientID(m.session.ID) {
		if attachment != "" {
			m.errText = "Send a text message first to start the conversation"
			return nil
		}
		if text == "" {
			return nil
		}
		return m.submitFirst(text)
	}

	var userMsg model.Message
	var cmd tea.Cmd
	if attachment != "" {
		userMsg = model.NewUserImageMessage(text, attachment)
		cmd = m.sendImageCmd(m.session.ID, userMsg.ID, attachment, text)
	} else {
		userMsg = model.NewUserMessage(text)
		cmd = m.sendMessageCmd(m.session.ID, userMsg.ID, text)
	}

	m.session.Append(userMsg)
	m.pendingID = userMsg.ID
	m.state = StateSending
	m.errText = ""
	m.composer.Reset()
	m.composer.SetDisabled(true)
	m.syncViewport()
	return tea.Batch(cmd, m.spinner.Tick)
}

// submitFirst sends the first message of a new conversation.
func (m *Model) submitFirst(text string) tea.Cmd {
	session := model.NewSession(text)
	userMsg := model.NewUserMessage(text)
	session.Append(userMsg)

	m.session = session
	m.pendingID = userMsg.ID
	m.state = StateSending
	m.errText = ""
	m.composer.Reset()
	m.composer.SetDisabled(true)
	m.syncViewport()
	return tea.Batch(m.createSessionCmd(userMsg.ID, text), m.spinner.Tick)
}

// rollbackPending removes the optimistic user message after a failed
// send and returns the composer to the user.
func (m *Model) rollbackPending() {
	if m.session != nil && m.pendingID != "" {
		if last, ok := m.session.LastMessage(); ok && last.ID == m.pendingID {
			m.session.RemoveLast()
		}
		// A failed first message leaves an empty local-only session;
		// drop back to the empty state entirely.
		if model.IsTransientID(m.session.ID) && m.session.IsEmpty() {
			m.session = nil
		}
	}
	m.pendingID = ""
	m.state = StateIdle
	m.composer.SetDisabled(false)
	m.syncViewport()
}

// commitReply appends the assistant's reply and refreshes the sidebar
// entry for the session.
func (m *Model) commitReply(reply string) {
	if m.session == nil {
		return
	}
	assistant := model.NewAssistantMessage(reply)
	m.session.Append(assistant)
	m.pendingID = ""
	m.state = StateIdle
	m.composer.SetDisabled(false)

	for i := range m.sidebar.Sessions {
		if m.sidebar.Sessions[i].ID == m.session.ID {
			m.sidebar.Sessions[i].LastMessagePreview = m.session.LastMessagePreview
			m.sidebar.Sessions[i].UpdatedAt = assistant.CreatedAt
		}
	}
	m.syncViewport()
}

func (m *Model) setStatus(text string) {
	m.statusText = text
}
