// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
package format

import (
	"strings"

	"github.com/sophiachat/sophia-tui/internal/model"
)

// placeholderText is the short marker rendered for image-only messages in
// place of their sentinel content.
const placeholderText = "(image)"

// =============================================================================
// FORMATTER
// =============================================================================

// Formatter converts message text into display blocks. It is stateless and
// safe for concurrent use; construct once and reuse across renders.
type Formatter struct {
	opts Options
}

// New creates a formatter with the given options. Zero fields fall back to
// the defaults.
func New(opts Options) *Formatter {
	def := DefaultOptions()
	if opts.URLDisplayMax <= 0 {
		opts.URLDisplayMax = def.URLDisplayMax
	}
	if opts.KeyMaxRunes <= 0 {
		opts.KeyMaxRunes = def.KeyMaxRunes
	}
	return &Formatter{opts: opts}
}

// Message formats a message's text and optional attachment into an ordered
// block sequence:
//
//   - an attachment URL becomes a leading image block
//   - the image placeholder sentinel suppresses the classifier and yields a
//     short placeholder marker instead
//   - empty text with no attachment yields no blocks at all
//   - whitespace-only lines are skipped and produce nothing
func (f *Formatter) Message(text, attachmentURL string) []Block {
	var blocks []Block

	if attachmentURL != "" {
		blocks = append(blocks, Block{Kind: KindImage, URL: attachmentURL})
	}

	if isImagePlaceholder(text) {
		return append(blocks, Block{
			Kind:  KindPlaceholder,
			Spans: []Span{{Text: placeholderText}},
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, classifyLine(line, f.opts)...)
	}

	return blocks
}

// Line formats a single line of text into blocks, bypassing attachment
// handling. Empty and whitespace-only input yields nothing.
func (f *Formatter) Line(line string) []Block {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return classifyLine(line, f.opts)
}

// Links extracts the inline links of a single line without classifying it.
func (f *Formatter) Links(text string) []Span {
	var links []Span
	for _, s := range Linkify(text, f.opts) {
		if s.IsLink() {
			links = append(links, s)
		}
	}
	return links
}

// isImagePlaceholder reports whether the text is the image-only sentinel.
func isImagePlaceholder(text string) bool {
	t := strings.TrimSpace(text)
	return t == model.ImagePlaceholder || t == "Hình ảnh gửi lên"
}

// =============================================================================
// PACKAGE-LEVEL CONVENIENCE
// =============================================================================

// defaultFormatter backs the package-level helpers.
var defaultFormatter = New(DefaultOptions())

// Message formats with the default options.
func Message(text, attachmentURL string) []Block {
	return defaultFormatter.Message(text, attachmentURL)
}
