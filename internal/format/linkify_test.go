// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
package format

import (
	"strings"
	"testing"
)

func linkifyDefault(text string) []Span {
	return Linkify(text, DefaultOptions())
}

// =============================================================================
// BASIC EXTRACTION
// =============================================================================

func TestLinkifyPlainText(t *testing.T) {
	spans := linkifyDefault("no links here")
	if len(spans) != 1 || spans[0].IsLink() || spans[0].Text != "no links here" {
		t.Fatalf("plain text spans = %+v", spans)
	}
}

func TestLinkifyEmpty(t *testing.T) {
	if spans := linkifyDefault(""); spans != nil {
		t.Fatalf("empty text spans = %+v, want nil", spans)
	}
}

func TestLinkifyBracketLink(t *testing.T) {
	spans := linkifyDefault("see [the docs](https://docs.example.com/guide) for more")

	if len(spans) != 3 {
		t.Fatalf("span count = %d, want 3: %+v", len(spans), spans)
	}
	if spans[0].Text != "see " || spans[0].IsLink() {
		t.Errorf("leading span = %+v", spans[0])
	}
	if spans[1].Text != "the docs" || spans[1].URL != "https://docs.example.com/guide" {
		t.Errorf("link span = %+v", spans[1])
	}
	if spans[2].Text != " for more" || spans[2].IsLink() {
		t.Errorf("trailing span = %+v", spans[2])
	}
}

func TestLinkifyBareURL(t *testing.T) {
	spans := linkifyDefault("visit https://example.com today")

	if len(spans) != 3 {
		t.Fatalf("span count = %d: %+v", len(spans), spans)
	}
	if spans[1].URL != "https://example.com" || spans[1].Text != "https://example.com" {
		t.Errorf("link span = %+v", spans[1])
	}
}

func TestLinkifyMultipleLinks(t *testing.T) {
	spans := linkifyDefault("[a](https://a.test) and https://b.test done")

	var links []Span
	for _, s := range spans {
		if s.IsLink() {
			links = append(links, s)
		}
	}
	if len(links) != 2 {
		t.Fatalf("link count = %d: %+v", len(links), spans)
	}
	if links[0].URL != "https://a.test" || links[1].URL != "https://b.test" {
		t.Errorf("links = %+v", links)
	}
	if SpanText(spans) != "a and https://b.test done" {
		t.Errorf("flattened text = %q", SpanText(spans))
	}
}

// =============================================================================
// TRAILING PUNCTUATION
// =============================================================================

func TestLinkifyTrailingPunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing period", "read https://example.com/page.", "https://example.com/page"},
		{"trailing comma", "https://example.com/a, then more", "https://example.com/a"},
		{"enclosing parens", "(see https://example.com/x)", "https://example.com/x"},
		{"trailing question mark", "have you seen https://example.com?", "https://example.com"},
		{"balanced parens kept", "https://en.wikipedia.org/wiki/Go_(game)", "https://en.wikipedia.org/wiki/Go_(game)"},
		{"semicolon", "link: https://example.com/p;", "https://example.com/p"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			for _, s := range linkifyDefault(tc.input) {
				if s.IsLink() {
					got = s.URL
				}
			}
			if got != tc.want {
				t.Errorf("url = %q, want %q", got, tc.want)
			}
		})
	}
}

// =============================================================================
// OVERLAP SUPPRESSION
// =============================================================================

// A bracketed link's URL part also matches the bare-URL pattern; the earlier
// registered bracket pattern must win and the bare match must be suppressed.
func TestLinkifyNoOverlap(t *testing.T) {
	spans := linkifyDefault("[label](https://example.com/path)")

	var links []Span
	for _, s := range spans {
		if s.IsLink() {
			links = append(links, s)
		}
	}
	if len(links) != 1 {
		t.Fatalf("link count = %d, want 1 (overlap not suppressed): %+v", len(links), spans)
	}
	if links[0].Text != "label" || links[0].URL != "https://example.com/path" {
		t.Errorf("winning span = %+v, want bracket form", links[0])
	}
}

func TestLinkifySpansNeverOverlap(t *testing.T) {
	inputs := []string{
		"[a](https://a.test) https://a.test [b](https://b.test)",
		"https://x.test/[a](https://y.test)",
		"[one](https://1.test)[two](https://2.test)",
	}

	for _, input := range inputs {
		spans := Linkify(input, DefaultOptions())
		// Reconstructing offsets: spans must tile the input left to right
		// without gaps claimed by two links at once, which the stitching
		// guarantees as long as the total plain text is consistent.
		total := 0
		for _, s := range spans {
			if !s.IsLink() {
				total += len(s.Text)
			}
		}
		if total > len(input) {
			t.Errorf("input %q produced more plain text than input length", input)
		}
	}
}

// =============================================================================
// TRUNCATION BOUND
// =============================================================================

func TestLinkifyTruncationBound(t *testing.T) {
	opts := DefaultOptions()
	longURL := "https://example.com/" + strings.Repeat("segment/", 12)
	if len([]rune(longURL)) <= opts.URLDisplayMax {
		t.Fatal("test URL not long enough")
	}

	spans := Linkify("go to "+longURL+" now", opts)

	var link Span
	for _, s := range spans {
		if s.IsLink() {
			link = s
		}
	}
	if link.URL != longURL {
		t.Errorf("navigable url = %q, want untruncated original", link.URL)
	}
	wantText := string([]rune(longURL)[:opts.URLDisplayMax]) + "..."
	if link.Text != wantText {
		t.Errorf("display text = %q, want %q", link.Text, wantText)
	}
	if n := len([]rune(link.Text)); n > opts.URLDisplayMax+3 {
		t.Errorf("display length = %d, want <= threshold + ellipsis", n)
	}
}

func TestLinkifyShortURLNotTruncated(t *testing.T) {
	spans := linkifyDefault("https://ex.test/a")
	if spans[0].Text != "https://ex.test/a" {
		t.Errorf("short URL display = %q, want unmodified", spans[0].Text)
	}
}

// =============================================================================
// IDEMPOTENCE
// =============================================================================

// Rendering spans back to text and re-linkifying must not double-wrap:
// bracket links lose their bracket syntax on render, and bare URLs below the
// truncation threshold round-trip to the identical span sequence.
func TestLinkifyIdempotent(t *testing.T) {
	inputs := []string{
		"plain text without links",
		"bare https://example.com/short here",
		"mixed https://a.test and https://b.test",
	}

	for _, input := range inputs {
		first := linkifyDefault(input)
		rendered := SpanText(first)
		second := linkifyDefault(rendered)

		if SpanText(second) != rendered {
			t.Errorf("re-linkify changed text: %q -> %q", rendered, SpanText(second))
		}
		if countLinks(first) != countLinks(second) {
			t.Errorf("re-linkify changed link count for %q: %d -> %d",
				input, countLinks(first), countLinks(second))
		}
	}
}

// A bracketed link must not be re-wrapped after rendering: the label is
// plain text and produces zero links on the second pass.
func TestLinkifyBracketNotDoubleWrapped(t *testing.T) {
	first := linkifyDefault("[docs](https://docs.example.com)")
	rendered := SpanText(first) // "docs"
	second := linkifyDefault(rendered)

	if countLinks(second) != 0 {
		t.Errorf("rendered bracket label %q produced links on second pass", rendered)
	}
}

func countLinks(spans []Span) int {
	n := 0
	for _, s := range spans {
		if s.IsLink() {
			n++
		}
	}
	return n
}
