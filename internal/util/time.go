// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the sophia TUI.
package util

import (
	"strconv"
	"time"
)

// RelativeDate formats a timestamp the way the session sidebar shows it:
//   - same calendar day: "today"
//   - previous calendar day: "yesterday"
//   - within the last week: "N days ago"
//   - older: "Jan 2 2006"
func RelativeDate(t time.Time, now time.Time) string {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return "today"
	}

	days := int(now.Sub(t).Hours() / 24)
	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return "yesterday"
	}
	if days < 1 {
		days = 1
	}
	if days < 7 {
		return strconv.Itoa(days) + " days ago"
	}
	return t.Format("Jan 2 2006")
}

// MessageTimestamp formats a message timestamp for display:
//   - today: just time ("15:04")
//   - this week: day and time ("Mon 15:04")
//   - older: date and time ("Jan 2 15:04")
func MessageTimestamp(t time.Time) string {
	now := time.Now()

	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}
	return t.Format("Jan 2 15:04")
}
