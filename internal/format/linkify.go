// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
package format

import (
	"regexp"
	"sort"
	"strings"
)

// =============================================================================
// LINK PATTERNS
// =============================================================================

// The two recognized link forms, checked in registration order:
// bracketed "[label](url)" first, then bare http(s) URLs. When both match
// overlapping ranges the earlier-registered pattern wins and the later match
// is suppressed.
var (
	bracketLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
	bareURLRe     = regexp.MustCompile(`https?://[^\s<>]+`)
)

// trailingPunct are characters a bare URL match must not swallow when they
// trail the URL in prose ("see https://x.test/a, then...").
const trailingPunct = `.,;:!?"'`

// =============================================================================
// LINKIFY
// =============================================================================

// linkMatch is one accepted link occurrence inside a line.
type linkMatch struct {
	start, end int // byte offsets into the input
	display    string
	url        string
}

// Linkify scans raw text for bracketed links and bare URLs and returns the
// text as a span sequence with each non-overlapping match replaced by a link
// span. Linkify operates on raw input only, never on its own output: a
// rendered link is just its display text, which the bracket pattern no
// longer matches, so re-running the scan cannot double-wrap a link.
func Linkify(text string, opts Options) []Span {
	if text == "" {
		return nil
	}

	var matches []linkMatch

	// Pattern 1: [label](url)
	for _, m := range bracketLinkRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, linkMatch{
			start:   m[0],
			end:     m[1],
			display: text[m[2]:m[3]],
			url:     text[m[4]:m[5]],
		})
	}

	// Pattern 2: bare URLs, skipping ranges already claimed by pattern 1.
	for _, m := range bareURLRe.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		url := trimURLTail(text[start:end])
		if url == "" {
			continue
		}
		end = start + len(url)
		if overlapsAny(matches, start, end) {
			continue
		}
		matches = append(matches, linkMatch{
			start:   start,
			end:     end,
			display: displayURL(url, opts.URLDisplayMax),
			url:     url,
		})
	}

	if len(matches) == 0 {
		return []Span{{Text: text}}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	// Stitch plain text and link spans back together in order.
	spans := make([]Span, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m.start > last {
			spans = append(spans, Span{Text: text[last:m.start]})
		}
		spans = append(spans, Span{Text: m.display, URL: m.url})
		last = m.end
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}

	return spans
}

// overlapsAny reports whether [start, end) intersects any accepted match.
func overlapsAny(matches []linkMatch, start, end int) bool {
	for _, m := range matches {
		if start < m.end && end > m.start {
			return true
		}
	}
	return false
}

// trimURLTail strips trailing punctuation and unbalanced closing parentheses
// from a bare URL match. A ")" is kept only when the URL itself contains a
// matching "(" (Wikipedia-style paths).
func trimURLTail(url string) string {
	for url != "" {
		last := url[len(url)-1]
		if strings.IndexByte(trailingPunct, last) >= 0 {
			url = url[:len(url)-1]
			continue
		}
		if last == ')' && strings.Count(url, ")") > strings.Count(url, "(") {
			url = url[:len(url)-1]
			continue
		}
		break
	}
	return url
}

// displayURL truncates a bare URL for display. The navigation target is
// never truncated; only the visible text is.
func displayURL(url string, maxRunes int) string {
	if maxRunes <= 0 {
		return url
	}
	runes := []rune(url)
	if len(runes) <= maxRunes {
		return url
	}
	return string(runes[:maxRunes]) + "..."
}
