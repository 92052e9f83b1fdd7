// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into a sequence of display blocks.
//
// The pipeline is line-oriented and runs in a single pass: the text is split
// on newlines, whitespace-only lines are dropped, and each remaining line is
// classified by an ordered rule set (numbered heading, numbered item, bullet,
// key-value, paragraph; first match wins). Every classified line runs
// through inline link extraction, so any block can carry links. An optional
// attachment URL becomes a leading image block.
//
// Formatting is pure: no I/O, no shared state, and the same input always
// yields the same block sequence. Malformed input never fails; anything the
// grammar does not recognize degrades to a plain paragraph.
package format
