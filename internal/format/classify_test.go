// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
package format

import (
	"testing"
)

func classifyDefault(line string) []Block {
	return classifyLine(line, DefaultOptions())
}

// =============================================================================
// RULE 1: NUMBERED HEADING
// =============================================================================

func TestClassifyNumberedHeading(t *testing.T) {
	blocks := classifyDefault("3. Rationalism: reason is the source of knowledge")

	if len(blocks) != 2 {
		t.Fatalf("block count = %d, want heading + paragraph: %+v", len(blocks), blocks)
	}
	h := blocks[0]
	if h.Kind != KindHeading || h.Number != 3 || h.Text() != "Rationalism" {
		t.Errorf("heading = kind %s number %d text %q", h.Kind, h.Number, h.Text())
	}
	p := blocks[1]
	if p.Kind != KindParagraph || p.Text() != "reason is the source of knowledge" {
		t.Errorf("trailing paragraph = kind %s text %q", p.Kind, p.Text())
	}
}

func TestClassifyNumberedHeadingBareColon(t *testing.T) {
	// Nothing after the colon: only the heading is emitted.
	blocks := classifyDefault("1. Introduction:")

	if len(blocks) != 1 {
		t.Fatalf("block count = %d, want 1: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != KindHeading || blocks[0].Text() != "Introduction" {
		t.Errorf("heading = %+v", blocks[0])
	}
}

// =============================================================================
// RULE 2: NUMBERED ITEM
// =============================================================================

func TestClassifyNumberedItem(t *testing.T) {
	blocks := classifyDefault("2. Immanuel Kant")

	if len(blocks) != 1 {
		t.Fatalf("block count = %d: %+v", len(blocks), blocks)
	}
	b := blocks[0]
	if b.Kind != KindSubheading || b.Number != 2 || b.Text() != "Immanuel Kant" {
		t.Errorf("item = kind %s number %d text %q", b.Kind, b.Number, b.Text())
	}
}

// =============================================================================
// RULE PRECEDENCE
// =============================================================================

// "1. Key: value" matches both the numbered-heading and key-value rules; the
// numbered-heading rule is earlier in the order and must win.
func TestClassifyPrecedenceHeadingOverKeyValue(t *testing.T) {
	blocks := classifyDefault("1. Key: value")

	if blocks[0].Kind != KindHeading {
		t.Fatalf("kind = %s, want heading", blocks[0].Kind)
	}
	if blocks[0].Text() != "Key" {
		t.Errorf("heading text = %q, want %q", blocks[0].Text(), "Key")
	}
	if len(blocks) != 2 || blocks[1].Text() != "value" {
		t.Errorf("tail = %+v, want paragraph %q", blocks[1:], "value")
	}
}

// A bullet line containing a colon stays a bullet; the bullet rule precedes
// key-value.
func TestClassifyPrecedenceBulletOverKeyValue(t *testing.T) {
	blocks := classifyDefault("• Note: remember this")

	if blocks[0].Kind != KindBullet {
		t.Fatalf("kind = %s, want bullet", blocks[0].Kind)
	}
	if blocks[0].Text() != "Note: remember this" {
		t.Errorf("bullet text = %q", blocks[0].Text())
	}
}

// =============================================================================
// RULE 3: BULLETS
// =============================================================================

func TestClassifyBulletGlyphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"round bullet", "• first point", "first point"},
		{"white bullet", "◦ nested point", "nested point"},
		{"circle bullet", "○ another", "another"},
		{"dash bullet", "- dashed item", "dashed item"},
		{"star bullet", "* starred item", "starred item"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := classifyDefault(tc.input)
			if blocks[0].Kind != KindBullet {
				t.Fatalf("kind = %s, want bullet", blocks[0].Kind)
			}
			if blocks[0].Text() != tc.want {
				t.Errorf("text = %q, want %q (glyph not stripped)", blocks[0].Text(), tc.want)
			}
		})
	}
}

func TestClassifyBulletIndent(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"• top level", 0},
		{"  • one level", 1},
		{"    • two levels", 2},
		{"\t• tab counts as one level", 1},
	}

	for _, tc := range tests {
		blocks := classifyLine(tc.input, DefaultOptions())
		if blocks[0].Kind != KindBullet {
			t.Fatalf("%q: kind = %s, want bullet", tc.input, blocks[0].Kind)
		}
		if blocks[0].Indent != tc.want {
			t.Errorf("%q: indent = %d, want %d", tc.input, blocks[0].Indent, tc.want)
		}
	}
}

// A dash without a following space is prose (hyphenated word), not a bullet.
func TestClassifyDashWithoutSpaceIsParagraph(t *testing.T) {
	blocks := classifyDefault("-dashed but not a bullet")
	if blocks[0].Kind != KindParagraph {
		t.Errorf("kind = %s, want paragraph", blocks[0].Kind)
	}
}

// =============================================================================
// RULE 4: KEY-VALUE
// =============================================================================

func TestClassifyKeyValue(t *testing.T) {
	blocks := classifyDefault("Conclusion: knowledge is justified true belief")

	if len(blocks) != 1 {
		t.Fatalf("block count = %d: %+v", len(blocks), blocks)
	}
	b := blocks[0]
	if b.Kind != KindKeyValue || b.Key != "Conclusion" {
		t.Errorf("block = kind %s key %q", b.Kind, b.Key)
	}
	if b.Text() != "knowledge is justified true belief" {
		t.Errorf("value = %q", b.Text())
	}
}

func TestClassifyKeyValueEmptyValue(t *testing.T) {
	blocks := classifyDefault("Main points:")

	b := blocks[0]
	if b.Kind != KindKeyValue || b.Key != "Main points" {
		t.Fatalf("block = kind %s key %q", b.Kind, b.Key)
	}
	if len(b.Spans) != 0 {
		t.Errorf("empty value produced spans: %+v", b.Spans)
	}
}

func TestClassifyKeyValueSplitsAtFirstColon(t *testing.T) {
	blocks := classifyDefault("Time: 10:30 in the morning")

	b := blocks[0]
	if b.Key != "Time" || b.Text() != "10:30 in the morning" {
		t.Errorf("key = %q value = %q, want split at first colon", b.Key, b.Text())
	}
}

func TestClassifyURLNotKeyValue(t *testing.T) {
	// A bare URL line must not be split at its scheme colon.
	blocks := classifyDefault("https://example.com/page")
	if blocks[0].Kind != KindParagraph {
		t.Errorf("kind = %s, want paragraph", blocks[0].Kind)
	}
	links := blocks[0].Links()
	if len(links) != 1 || links[0].URL != "https://example.com/page" {
		t.Errorf("links = %+v", links)
	}
}

func TestClassifyLongPrefixNotKey(t *testing.T) {
	long := "this prefix is much too long to plausibly be a label because it just keeps going and going"
	blocks := classifyDefault(long + ": trailing")
	if blocks[0].Kind != KindParagraph {
		t.Errorf("kind = %s, want paragraph for overlong key", blocks[0].Kind)
	}
}

// =============================================================================
// RULE 5: PARAGRAPH FALLBACK
// =============================================================================

func TestClassifyParagraph(t *testing.T) {
	blocks := classifyDefault("Just an ordinary sentence.")
	if len(blocks) != 1 || blocks[0].Kind != KindParagraph {
		t.Fatalf("blocks = %+v", blocks)
	}
	if blocks[0].Text() != "Just an ordinary sentence." {
		t.Errorf("text = %q", blocks[0].Text())
	}
}

// =============================================================================
// LINKS INSIDE CLASSIFIED LINES
// =============================================================================

func TestClassifiedBlocksCarryLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  BlockKind
	}{
		{"heading with link", "1. Sources: see https://plato.stanford.edu", KindHeading},
		{"bullet with link", "• read [SEP](https://plato.stanford.edu/entries/knowledge)", KindBullet},
		{"key-value with link", "Reference: https://example.com/paper", KindKeyValue},
		{"paragraph with link", "more at https://example.com", KindParagraph},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := classifyDefault(tc.input)
			var links []Span
			for _, b := range blocks {
				links = append(links, b.Links()...)
			}
			if len(links) == 0 {
				t.Errorf("no links extracted from %q: %+v", tc.input, blocks)
			}
		})
	}
}
