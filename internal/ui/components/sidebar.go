// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/sophiachat/sophia-tui/internal/model"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
	"github.com/sophiachat/sophia-tui/internal/util"
)

// =============================================================================
// SESSION SIDEBAR COMPONENT
// =============================================================================

// PreviewMaxWidth is the display width a session preview is clipped to.
const PreviewMaxWidth = 50

// Sidebar renders the session list, newest activity first, with the
// selected entry highlighted.
type Sidebar struct {
	Sessions []model.ChatSession
	Selected int
	Width    int
	Height   int

	theme *styles.Theme
	now   func() time.Time
}

// NewSidebar creates a new Sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width:  32,
		Height: 24,
		theme:  theme,
		now:    time.Now,
	}
}

// SetSize sets the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// MoveSelection moves the highlight by delta, clamped to the list.
func (s *Sidebar) MoveSelection(delta int) {
	s.Selected += delta
	if s.Selected < 0 {
		s.Selected = 0
	}
	if s.Selected >= len(s.Sessions) {
		s.Selected = len(s.Sessions) - 1
	}
}

// SelectedSession returns the highlighted session, or nil on an empty list.
func (s *Sidebar) SelectedSession() *model.ChatSession {
	if s.Selected < 0 || s.Selected >= len(s.Sessions) {
		return nil
	}
	return &s.Sessions[s.Selected]
}

// Prepend puts a new session at the top of the list and selects it.
func (s *Sidebar) Prepend(session model.ChatSession) {
	s.Sessions = append([]model.ChatSession{session}, s.Sessions...)
	s.Selected = 0
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	innerWidth := s.Width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	var sb strings.Builder
	sb.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	sb.WriteString("\n\n")

	if len(s.Sessions) == 0 {
		sb.WriteString(s.theme.SidebarEmpty.Render("No conversations yet"))
		return s.theme.Sidebar.Width(s.Width).Height(s.Height).Render(sb.String())
	}

	// Three rows per entry plus a blank line.
	maxVisible := s.Height / 4
	if maxVisible < 1 {
		maxVisible = 1
	}
	start := 0
	if s.Selected >= maxVisible {
		start = s.Selected - maxVisible + 1
	}

	for i := start; i < len(s.Sessions) && i < start+maxVisible; i++ {
		session := s.Sessions[i]

		titleStyle := s.theme.SessionItem
		if i == s.Selected {
			titleStyle = s.theme.SessionItemSelected
		}
		sb.WriteString(titleStyle.Render(util.TruncateWidth(session.GetTitle(), innerWidth)))
		sb.WriteString("\n")

		if preview := session.LastMessagePreview; preview != "" {
			width := innerWidth
			if width > PreviewMaxWidth {
				width = PreviewMaxWidth
			}
			sb.WriteString(s.theme.SessionPreview.Render(util.TruncateWidth(preview, width)))
			sb.WriteString("\n")
		}

		if activity := session.LastActivity(); !activity.IsZero() {
			sb.WriteString(s.theme.SessionDate.Render(util.RelativeDate(activity, s.now())))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return s.theme.Sidebar.Width(s.Width).Height(s.Height).Render(sb.String())
}
