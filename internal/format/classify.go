// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
package format

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options tunes the formatter. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// URLDisplayMax is the maximum number of runes of a bare URL shown
	// before the display text is truncated with an ellipsis.
	URLDisplayMax int

	// KeyMaxRunes is the longest prefix (before the first colon) that the
	// key-value rule still treats as a key.
	KeyMaxRunes int
}

// DefaultOptions returns the formatter defaults.
func DefaultOptions() Options {
	return Options{
		URLDisplayMax: 40,
		KeyMaxRunes:   60,
	}
}

// =============================================================================
// LINE GRAMMAR
// =============================================================================

// numberedLineRe matches "N. rest" numbered lines. Both the heading and the
// item rule key off this shape; the colon decides which fires.
var numberedLineRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

// bulletGlyphs are the characters that open a bullet line. The glyph and one
// following space are stripped from the text before link extraction.
var bulletGlyphs = []string{"•", "◦", "○", "‣", "- ", "* "}

// classifyLine turns one non-empty line into its block(s). The rules run in
// fixed precedence order and the first match wins:
//
//  1. numbered heading: "N. title: ..." (the rest contains a colon)
//  2. numbered item: "N. text" (no colon)
//  3. bullet: line opens with a bullet glyph
//  4. key-value: short non-URL prefix before the first colon
//  5. paragraph: anything else
//
// A heading's text after the colon, when present, becomes a separate
// paragraph block following the heading.
func classifyLine(line string, opts Options) []Block {
	indent := leadingIndent(line)
	trimmed := strings.TrimSpace(line)

	if m := numberedLineRe.FindStringSubmatch(trimmed); m != nil {
		number, _ := strconv.Atoi(m[1])
		rest := m[2]

		// Rule 1: numbered heading, split at the first colon.
		if idx := strings.Index(rest, ":"); idx >= 0 {
			title := strings.TrimSpace(rest[:idx])
			tail := strings.TrimSpace(rest[idx+1:])

			blocks := []Block{{
				Kind:   KindHeading,
				Number: number,
				Spans:  Linkify(title, opts),
			}}
			if tail != "" {
				blocks = append(blocks, Block{
					Kind:  KindParagraph,
					Spans: Linkify(tail, opts),
				})
			}
			return blocks
		}

		// Rule 2: numbered item.
		return []Block{{
			Kind:   KindSubheading,
			Number: number,
			Spans:  Linkify(rest, opts),
		}}
	}

	// Rule 3: bullet.
	if text, ok := stripBullet(trimmed); ok {
		return []Block{{
			Kind:   KindBullet,
			Indent: indent,
			Spans:  Linkify(text, opts),
		}}
	}

	// Rule 4: key-value.
	if key, value, ok := splitKeyValue(trimmed, opts.KeyMaxRunes); ok {
		b := Block{Kind: KindKeyValue, Key: key}
		if value != "" {
			b.Spans = Linkify(value, opts)
		}
		return []Block{b}
	}

	// Rule 5: paragraph.
	return []Block{{
		Kind:  KindParagraph,
		Spans: Linkify(trimmed, opts),
	}}
}

// leadingIndent derives a bullet nesting level from leading whitespace:
// every two spaces (or one tab) is one level.
func leadingIndent(line string) int {
	spaces := 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
		case '\t':
			spaces += 2
		default:
			return spaces / 2
		}
	}
	return spaces / 2
}

// stripBullet removes a leading bullet glyph and the whitespace after it.
// Returns false when the line is not a bullet.
func stripBullet(line string) (string, bool) {
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(line, glyph) {
			return strings.TrimLeft(line[len(glyph):], " \t"), true
		}
	}
	return "", false
}

// splitKeyValue splits "Key: value" at the first colon. The prefix counts as
// a key only when it is non-empty, short, and does not look like part of a
// URL (which would wrongly split "https://..." at its scheme colon).
func splitKeyValue(line string, keyMaxRunes int) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:idx])
	if key == "" || len([]rune(key)) > keyMaxRunes {
		return "", "", false
	}
	if looksLikeURL(key) || strings.HasPrefix(line[idx:], "://") {
		return "", "", false
	}

	return key, strings.TrimSpace(line[idx+1:]), true
}

// looksLikeURL reports whether a candidate key is actually the front of a
// URL or a scheme-qualified token.
func looksLikeURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http") ||
		strings.HasPrefix(lower, "www.") ||
		strings.Contains(lower, "://")
}
