// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal presentation layer for authgate-tui.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authgate-tui/internal/auth"
	"github.com/jeranaias/authgate-tui/internal/otp"
)

// =============================================================================
// MESSAGES
// =============================================================================

// stateMsg carries one value from the engine's conflated state stream.
type stateMsg struct {
	state auth.State
}

// waitForState blocks on the engine's update stream and converts the next
// value into a message. Re-issued after every receive.
func waitForState(engine *auth.Engine) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-engine.Updates()
		if !ok {
			return tea.Quit()
		}
		return stateMsg{state: s}
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the top-level Bubble Tea model. It mirrors the engine's latest
// state and routes key input to engine events.
type Model struct {
	engine *auth.Engine
	state  auth.State
	theme  *Theme

	email textinput.Model
	code  textinput.Model

	width  int
	height int
}

// NewModel creates the UI model bound to an engine.
func NewModel(engine *auth.Engine) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 36
	email.Focus()

	code := textinput.New()
	code.Placeholder = "000000"
	code.CharLimit = otp.CodeLength
	code.Width = 12

	return Model{
		engine: engine,
		state:  engine.State(),
		theme:  NewTheme(),
		email:  email,
		code:   code,
	}
}

// Init starts the state subscription and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForState(m.engine))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m = m.applyState(msg.state)
		return m, waitForState(m.engine)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

// applyState adopts a new engine state and keeps the inputs in sync with
// the fields the engine owns (e.g. digits cleared after a failed verify).
func (m Model) applyState(s auth.State) Model {
	prev := m.state
	m.state = s

	switch st := s.(type) {
	case auth.Login:
		if _, wasLogin := prev.(auth.Login); !wasLogin {
			m.email.SetValue(st.Email)
			m.email.Focus()
			m.code.Blur()
		}
	case auth.OtpPending:
		if m.code.Value() != st.Entered {
			m.code.SetValue(st.Entered)
			m.code.CursorEnd()
		}
		if _, wasPending := prev.(auth.OtpPending); !wasPending {
			m.code.Focus()
			m.email.Blur()
		}
	case auth.Session:
		m.email.Blur()
		m.code.Blur()
	}

	return m
}

// handleKey routes key input according to the live state variant.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.state.(type) {
	case auth.Login:
		switch msg.String() {
		case "enter":
			m.engine.Dispatch(auth.EmailChanged{Email: m.email.Value()})
			m.engine.Dispatch(auth.SendOtpClicked{})
			return m, nil
		case "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		m.engine.Dispatch(auth.EmailChanged{Email: m.email.Value()})
		return m, cmd

	case auth.OtpPending:
		switch msg.String() {
		case "enter":
			m.engine.Dispatch(auth.VerifyOtpClicked{})
			return m, nil
		case "ctrl+r":
			m.engine.Dispatch(auth.ResendOtpClicked{})
			return m, nil
		case "esc":
			m.engine.Dispatch(auth.BackToLoginClicked{})
			return m, nil
		}
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		m.engine.Dispatch(auth.OtpChanged{Otp: m.code.Value()})
		return m, cmd

	case auth.Session:
		switch msg.String() {
		case "enter", "esc", "l":
			m.engine.Dispatch(auth.LogoutClicked{})
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// updateInputs forwards non-key messages (blink ticks) to the inputs.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.code, cmd = m.code.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
