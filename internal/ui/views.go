// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal presentation layer for authgate-tui.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authgate-tui/internal/auth"
	"github.com/jeranaias/authgate-tui/internal/util"
)

// View renders the screen for the live state variant.
func (m Model) View() string {
	var body string
	switch st := m.state.(type) {
	case auth.Login:
		body = m.viewLogin(st)
	case auth.OtpPending:
		body = m.viewOtp(st)
	case auth.Session:
		body = m.viewSession(st)
	default:
		body = m.theme.Error.Render("unknown state")
	}

	brand := m.theme.Brand.Render("< authgate >")
	panel := m.theme.Container.Render(body)
	screen := lipgloss.JoinVertical(lipgloss.Left, brand, panel)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, screen)
	}
	return screen
}

// viewLogin renders the email entry screen.
func (m Model) viewLogin(st auth.Login) string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n")

	if st.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(st.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(m.hint("enter", "send code") + "  " + m.hint("esc", "quit")))

	return b.String()
}

// viewOtp renders the code entry screen.
func (m Model) viewOtp(st auth.OtpPending) string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Enter the code"))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Sent to ") + m.theme.Value.Render(st.Email))
	b.WriteString("\n\n")

	// No delivery transport in this build; the code is shown on screen.
	b.WriteString(m.theme.Label.Render("Your code: ") + m.theme.Code.Render(st.IssuedCode))
	b.WriteString("\n\n")

	b.WriteString(m.code.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.Countdown.Render(fmt.Sprintf("Expires in %s", util.FormatSeconds(int64(st.RemainingSeconds)))))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render(fmt.Sprintf("Attempts remaining: %d", st.AttemptsRemaining)))
	b.WriteString("\n")

	if st.ResendCooldownSeconds > 0 {
		b.WriteString(m.theme.Label.Render(fmt.Sprintf("Resend available in %s", util.FormatSeconds(int64(st.ResendCooldownSeconds)))))
		b.WriteString("\n")
	}

	if st.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(st.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(
		m.hint("enter", "verify") + "  " + m.hint("ctrl+r", "resend") + "  " + m.hint("esc", "back"),
	))

	return b.String()
}

// viewSession renders the post-login screen.
func (m Model) viewSession(st auth.Session) string {
	var b strings.Builder

	b.WriteString(m.theme.Success.Render("Signed in"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Label.Render("Account  ") + m.theme.Value.Render(st.Email))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Session  ") + m.theme.Value.Render(st.ID))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Elapsed  ") + m.theme.Value.Render(util.FormatSeconds(st.ElapsedSeconds)))
	b.WriteString("\n")

	b.WriteString(m.theme.Help.Render(m.hint("enter", "log out") + "  " + m.hint("q", "quit")))

	return b.String()
}

// hint renders a "key action" fragment for the help line.
func (m Model) hint(key, action string) string {
	return m.theme.KeyHint.Render(key) + " " + m.theme.Label.Render(action)
}
