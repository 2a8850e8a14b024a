// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"plain digits", "123456", 6, "123456"},
		{"letters stripped", "12ab34", 6, "1234"},
		{"spaces and punctuation stripped", "1 2-3.4", 6, "1234"},
		{"truncated to max", "1234567890", 6, "123456"},
		{"no truncation when non-positive", "1234567890", 0, "1234567890"},
		{"empty input", "", 6, ""},
		{"all non-digits", "abc-def", 6, ""},
		{"unicode digits from other scripts rejected", "١٢٣45", 6, "45"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DigitsOnly(tc.input, tc.maxLen))
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{59, "00:59"},
		{60, "01:00"},
		{61, "01:01"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "60:00"}, // minute field keeps growing past an hour
		{-5, "00:00"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, FormatSeconds(tc.seconds))
	}
}
