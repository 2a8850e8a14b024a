// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal presentation layer for authgate-tui.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// COLORS
// =============================================================================

// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
var (
	// Cyan - brand color, headings
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Purple - accents, key hints
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Emerald - success states, session screen
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

	// Rose - errors
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Amber - countdowns, warnings
	Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

	// TextPrimary - main text
	TextPrimary = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#E4E4E7"}

	// TextSecondary - labels, help lines
	TextSecondary = lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#A1A1AA"}

	// Overlay - borders
	Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Container lipgloss.Style
	Brand     lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Code      lipgloss.Style
	Countdown lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	KeyHint   lipgloss.Style
}

// NewTheme creates a Theme tuned to the terminal's capabilities.
func NewTheme() *Theme {
	return &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),

		Container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Overlay).
			Padding(1, 3),

		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimary).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(TextSecondary),

		Value: lipgloss.NewStyle().
			Foreground(TextPrimary),

		Code: lipgloss.NewStyle().
			Bold(true).
			Foreground(Purple),

		Countdown: lipgloss.NewStyle().
			Foreground(Amber),

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(Emerald),

		Error: lipgloss.NewStyle().
			Foreground(Rose),

		Help: lipgloss.NewStyle().
			Foreground(TextSecondary).
			MarginTop(1),

		KeyHint: lipgloss.NewStyle().
			Bold(true).
			Foreground(Purple),
	}
}
