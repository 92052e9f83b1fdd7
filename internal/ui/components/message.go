// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sophiachat/sophia-tui/internal/format"
	"github.com/sophiachat/sophia-tui/internal/model"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
	"github.com/sophiachat/sophia-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message as a styled bubble. The body goes
// through the formatter: headings, bullets, key-value lines and links
// each get their own style.
type MessageBubble struct {
	Message       model.Message
	Width         int
	Pending       bool
	ShowTimestamp bool

	theme     *styles.Theme
	formatter *format.Formatter
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg model.Message, theme *styles.Theme, formatter *format.Formatter) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		formatter:     formatter,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	blocks := b.formatter.Message(b.Message.Content, b.Message.AttachmentURL)
	body := b.renderBlocks(blocks, maxContentWidth)

	var bubble lipgloss.Style
	if b.Message.Role == model.RoleUser {
		bubble = b.theme.UserBubble
	} else {
		bubble = b.theme.AssistantBubble
	}

	header := b.theme.MessageSender.Render(b.Message.Role.DisplayName())
	if b.Pending {
		header += " " + b.theme.MessagePending.Render("sending...")
	} else if b.ShowTimestamp && !b.Message.CreatedAt.IsZero() {
		header += " " + b.theme.MessageTime.Render(util.MessageTimestamp(b.Message.CreatedAt))
	}

	return header + "\n" + bubble.MaxWidth(b.Width).Render(body)
}

// renderBlocks turns formatter output into styled lines.
func (b *MessageBubble) renderBlocks(blocks []format.Block, width int) string {
	if len(blocks) == 0 {
		return "..."
	}

	var lines []string
	for _, blk := range blocks {
		switch blk.Kind {
		case format.KindImage:
			lines = append(lines, b.theme.BlockImage.Render("[image] "+util.TruncateWidth(blk.URL, width-8)))
		case format.KindPlaceholder:
			lines = append(lines, b.theme.BlockItalic.Render(blk.Text()))
		case format.KindHeading:
			lines = append(lines, b.theme.BlockHeading.Render(strconv.Itoa(blk.Number)+". "+b.renderSpans(blk.Spans)))
		case format.KindSubheading:
			lines = append(lines, b.theme.BlockSubheading.Render(strconv.Itoa(blk.Number)+". "+b.renderSpans(blk.Spans)))
		case format.KindBullet:
			indent := strings.Repeat("  ", blk.Indent)
			lines = append(lines, b.theme.BlockBullet.Render(indent+"• "+b.renderSpans(blk.Spans)))
		case format.KindKeyValue:
			lines = append(lines, b.theme.BlockKey.Render(blk.Key+":"))
			if text := b.renderSpans(blk.Spans); text != "" {
				lines = append(lines, b.theme.BlockValue.Render(text))
			}
		default:
			lines = append(lines, wordWrap(b.renderSpans(blk.Spans), width))
		}
	}
	return strings.Join(lines, "\n")
}

// renderSpans styles link spans and passes plain text through.
func (b *MessageBubble) renderSpans(spans []format.Span) string {
	var sb strings.Builder
	for _, span := range spans {
		if span.URL != "" {
			sb.WriteString(b.theme.Link.Render(span.Text))
		} else {
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}

// wordWrap wraps text at width without splitting words.
func wordWrap(text string, width int) string {
	if width <= 0 || util.StringWidth(text) <= width {
		return text
	}

	words := strings.Fields(text)
	var lines []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && util.StringWidth(current.String())+1+util.StringWidth(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
