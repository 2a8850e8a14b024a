// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helper functions for the authgate-tui
// application.
package util

import (
	"fmt"
	"strings"
)

// DigitsOnly strips every non-digit character from s and truncates the
// result to maxLen runes. A non-positive maxLen means no truncation.
func DigitsOnly(s string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if maxLen > 0 && b.Len() == maxLen {
			break
		}
	}
	return b.String()
}

// FormatSeconds renders a second count as mm:ss. Negative values are
// floored at zero. Durations of an hour or more keep growing the minute
// field rather than rolling over.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
