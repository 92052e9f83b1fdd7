// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sophiachat/sophia-tui/internal/ui/styles"
)

// =============================================================================
// COMPOSER COMPONENT
// =============================================================================

// Composer is the message input line plus an optional staged image
// attachment. The controller disables it while a send is in flight.
type Composer struct {
	input      textinput.Model
	attachment string
	width      int
	disabled   bool
	theme      *styles.Theme
}

// NewComposer creates a new Composer.
func NewComposer(theme *styles.Theme) *Composer {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Width = 70
	ti.Prompt = "> "

	ti.PromptStyle = lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Cyan)

	return &Composer{
		input: ti,
		width: 80,
		theme: theme,
	}
}

// Focus focuses the input.
func (c *Composer) Focus() tea.Cmd {
	return c.input.Focus()
}

// Blur removes focus from the input.
func (c *Composer) Blur() {
	c.input.Blur()
}

// Focused reports whether the input has focus.
func (c *Composer) Focused() bool {
	return c.input.Focused()
}

// SetWidth sets the composer width.
func (c *Composer) SetWidth(width int) {
	c.width = width
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	c.input.Width = inner
}

// SetDisabled blocks editing while a send is in flight.
func (c *Composer) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Disabled reports whether the composer is rejecting input.
func (c *Composer) Disabled() bool {
	return c.disabled
}

// Value returns the current text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the current text.
func (c *Composer) SetValue(value string) {
	c.input.SetValue(value)
}

// Attachment returns the staged image path, or "".
func (c *Composer) Attachment() string {
	return c.attachment
}

// SetAttachment stages an image file for the next send.
func (c *Composer) SetAttachment(path string) {
	c.attachment = path
}

// Reset clears the text and the staged attachment.
func (c *Composer) Reset() {
	c.input.Reset()
	c.attachment = ""
}

// Empty reports whether there is nothing to send.
func (c *Composer) Empty() bool {
	return c.input.Value() == "" && c.attachment == ""
}

// Update forwards events to the text input unless disabled.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if c.disabled {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the composer.
func (c *Composer) View() string {
	line := c.input.View()
	if c.attachment != "" {
		tag := c.theme.AttachmentTag.Render("📎 " + filepath.Base(c.attachment))
		line = tag + "\n" + line
	}
	if c.disabled {
		line += "  " + c.theme.FormHint.Render("waiting for reply...")
	}
	return c.theme.InputContainer.Width(c.width).Render(line)
}
