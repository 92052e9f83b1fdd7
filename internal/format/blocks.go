// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
package format

import "strings"

// =============================================================================
// BLOCK TYPES
// =============================================================================

// BlockKind discriminates the structural unit a Block represents.
type BlockKind int

const (
	// KindParagraph is a plain run of text.
	KindParagraph BlockKind = iota

	// KindHeading is a numbered heading line ("3. Realism: ..."), the
	// heaviest weight. Number carries the ordinal, Spans the title.
	KindHeading

	// KindSubheading is a numbered item without a colon ("2. Kant"),
	// rendered one weight below KindHeading.
	KindSubheading

	// KindBullet is a bullet line; Indent carries the nesting level.
	KindBullet

	// KindKeyValue is a "Key: value" line. Key holds the heading-weight
	// label; Spans hold the value, which may be empty.
	KindKeyValue

	// KindImage is an attachment; URL holds the image source.
	KindImage

	// KindPlaceholder is the short italic marker shown for image-only
	// messages instead of their sentinel text.
	KindPlaceholder
)

// String returns the block kind name, for test failures and logs.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindSubheading:
		return "subheading"
	case KindBullet:
		return "bullet"
	case KindKeyValue:
		return "keyvalue"
	case KindImage:
		return "image"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// =============================================================================
// SPANS
// =============================================================================

// Span is one inline run within a block: either plain text (URL empty) or a
// link. For links, Text is the display form, possibly truncated for long
// bare URLs, while URL is always the untruncated navigation target.
type Span struct {
	Text string
	URL  string
}

// IsLink reports whether the span is a link.
func (s Span) IsLink() bool {
	return s.URL != ""
}

// SpanText concatenates the display text of a span sequence.
func SpanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// =============================================================================
// BLOCK
// =============================================================================

// Block is one structural unit of formatted message content. Blocks carry no
// identity beyond their position; they are rebuilt from the message text on
// every render.
type Block struct {
	Kind BlockKind

	// Number is the ordinal of a KindHeading or KindSubheading line.
	Number int

	// Indent is the nesting level of a KindBullet line.
	Indent int

	// Key is the label of a KindKeyValue line.
	Key string

	// Spans is the inline content: heading title, bullet text, key-value
	// value, paragraph text.
	Spans []Span

	// URL is the source of a KindImage block.
	URL string
}

// Text returns the block's display text with links flattened.
func (b Block) Text() string {
	return SpanText(b.Spans)
}

// Links returns every link span in the block, in order.
func (b Block) Links() []Span {
	var links []Span
	for _, s := range b.Spans {
		if s.IsLink() {
			links = append(links, s)
		}
	}
	return links
}
