// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the email + OTP login state machine.
package auth

// Event is the sealed union of commands the presentation layer can send.
// Events that do not apply to the live state variant are no-ops.
type Event interface {
	isAuthEvent()
}

// EmailChanged updates the email field while in Login.
type EmailChanged struct {
	Email string
}

func (EmailChanged) isAuthEvent() {}

// SendOtpClicked validates the email and, if valid, issues a challenge.
type SendOtpClicked struct{}

func (SendOtpClicked) isAuthEvent() {}

// OtpChanged updates the entered code while in OtpPending. Non-digit
// characters are discarded and the input is truncated to the code length.
type OtpChanged struct {
	Otp string
}

func (OtpChanged) isAuthEvent() {}

// VerifyOtpClicked submits the entered code for validation.
type VerifyOtpClicked struct{}

func (VerifyOtpClicked) isAuthEvent() {}

// ResendOtpClicked requests a fresh challenge. Ignored while the resend
// cooldown is running.
type ResendOtpClicked struct{}

func (ResendOtpClicked) isAuthEvent() {}

// BackToLoginClicked abandons the pending challenge and returns to a
// fresh Login state.
type BackToLoginClicked struct{}

func (BackToLoginClicked) isAuthEvent() {}

// LogoutClicked ends the session and returns to a fresh Login state.
type LogoutClicked struct{}

func (LogoutClicked) isAuthEvent() {}
