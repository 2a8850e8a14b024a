// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the email + OTP login state machine.
package auth

import "time"

// =============================================================================
// STATE UNION
// =============================================================================

// State is the sealed union of the three authentication states. Exactly
// one variant is live at any instant; transitions replace the whole value.
type State interface {
	isAuthState()
}

// Login is the initial state: collecting an email address.
type Login struct {
	// Email is the address as typed, untrimmed.
	Email string

	// Submitting reports an issuance in progress. Issuance is synchronous
	// in this engine, so the flag is only ever observed false; it is kept
	// for the presentation contract.
	Submitting bool

	// ErrorMessage is the user-visible validation error, if any.
	ErrorMessage string
}

func (Login) isAuthState() {}

// OtpPending is the challenge state: a code has been issued and the user
// is entering it.
type OtpPending struct {
	// Email is the trimmed address the challenge was issued for.
	Email string

	// Entered is the digits typed so far, at most CodeLength of them.
	Entered string

	// IssuedCode is the generated code, surfaced for display because this
	// engine has no delivery transport.
	IssuedCode string

	// Submitting reports a validation in progress; see Login.Submitting.
	Submitting bool

	// ErrorMessage is the user-visible validation error, if any.
	ErrorMessage string

	// AttemptsRemaining is the validation attempts left on this challenge.
	AttemptsRemaining int

	// RemainingSeconds is the challenge lifetime left, updated once per
	// second by the expiry countdown.
	RemainingSeconds int

	// ResendCooldownSeconds is the wait left before resend is allowed.
	// Zero on first issuance; the cooldown starts on each resend.
	ResendCooldownSeconds int
}

func (OtpPending) isAuthState() {}

// Session is the post-login state.
type Session struct {
	// Email is the authenticated address.
	Email string

	// ID is the unique session identifier.
	ID string

	// StartedAt is when the session began.
	StartedAt time.Time

	// ElapsedSeconds is recomputed once per second by the session ticker.
	ElapsedSeconds int64
}

func (Session) isAuthState() {}
