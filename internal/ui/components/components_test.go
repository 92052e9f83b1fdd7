// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sophiachat/sophia-tui/internal/format"
	"github.com/sophiachat/sophia-tui/internal/model"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// SIDEBAR
// =============================================================================

func TestSidebarSelectionClamped(t *testing.T) {
	s := NewSidebar(testTheme())
	s.Sessions = []model.ChatSession{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	s.MoveSelection(-5)
	assert.Equal(t, 0, s.Selected)

	s.MoveSelection(10)
	assert.Equal(t, 2, s.Selected)

	require.NotNil(t, s.SelectedSession())
	assert.Equal(t, "c", s.SelectedSession().ID)
}

func TestSidebarEmptyList(t *testing.T) {
	s := NewSidebar(testTheme())
	assert.Nil(t, s.SelectedSession())
	assert.Contains(t, s.View(), "No conversations yet")
}

func TestSidebarPrependSelectsNew(t *testing.T) {
	s := NewSidebar(testTheme())
	s.Sessions = []model.ChatSession{{ID: "old"}}
	s.Selected = 0

	s.Prepend(model.ChatSession{ID: "new", Title: "Fresh"})
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, "new", s.Sessions[0].ID)
	assert.Len(t, s.Sessions, 2)
}

func TestSidebarShowsTitlePreviewAndDate(t *testing.T) {
	s := NewSidebar(testTheme())
	s.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	s.Sessions = []model.ChatSession{{
		ID:                 "a",
		Title:              "Trip planning",
		LastMessagePreview: "See you at the airport",
		UpdatedAt:          time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}}

	view := s.View()
	assert.Contains(t, view, "Trip planning")
	assert.Contains(t, view, "See you at the airport")
	assert.Contains(t, view, "yesterday")
}

func TestSidebarUntitledSessionGetsDefault(t *testing.T) {
	s := NewSidebar(testTheme())
	s.Sessions = []model.ChatSession{{ID: "a"}}
	assert.Contains(t, s.View(), "New chat")
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

func TestMessageBubbleRendersBlocks(t *testing.T) {
	msg := model.NewAssistantMessage("1. Plan: pack early\n• passport\n• tickets")
	b := NewMessageBubble(msg, testTheme(), format.New(format.DefaultOptions()))
	b.SetWidth(100)

	view := b.View()
	assert.Contains(t, view, "Sophia")
	assert.Contains(t, view, "Plan")
	assert.Contains(t, view, "passport")
	assert.Contains(t, view, "tickets")
}

func TestMessageBubblePendingMarker(t *testing.T) {
	msg := model.NewUserMessage("hello")
	b := NewMessageBubble(msg, testTheme(), format.New(format.DefaultOptions()))
	b.Pending = true

	view := b.View()
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "sending...")
}

func TestMessageBubbleImageOnly(t *testing.T) {
	msg := model.NewUserImageMessage("", "http://x/img.png")
	b := NewMessageBubble(msg, testTheme(), format.New(format.DefaultOptions()))

	view := b.View()
	assert.Contains(t, view, "[image]")
	assert.NotContains(t, view, model.ImagePlaceholder)
}

// =============================================================================
// COMPOSER
// =============================================================================

func TestComposerAttachmentLifecycle(t *testing.T) {
	c := NewComposer(testTheme())
	assert.True(t, c.Empty())

	c.SetAttachment("/tmp/photo.png")
	assert.False(t, c.Empty())
	assert.Contains(t, c.View(), "photo.png")

	c.Reset()
	assert.True(t, c.Empty())
	assert.Equal(t, "", c.Attachment())
}

func TestComposerDisabledShowsWaiting(t *testing.T) {
	c := NewComposer(testTheme())
	c.SetDisabled(true)
	assert.True(t, c.Disabled())
	assert.Contains(t, c.View(), "waiting for reply")
}

// =============================================================================
// WORD WRAP
// =============================================================================

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("alpha beta gamma delta", 11)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 11)
	}
	assert.Equal(t, "short", wordWrap("short", 20))
	assert.Equal(t, "unbounded", wordWrap("unbounded", 0))
}
