// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package otp implements one-time-passcode issuance and validation.
package otp

import "time"

// =============================================================================
// POLICY
// =============================================================================

// CodeLength is the number of digits in a generated code.
// Codes are drawn from [100000, 999999], so the length is fixed.
const CodeLength = 6

// Default policy values. These match the limits the engine was originally
// tuned with; config may override them within the clamps enforced there.
const (
	// DefaultExpirySeconds is how long a code stays valid after issuance.
	DefaultExpirySeconds = 60

	// DefaultMaxAttempts is the number of wrong guesses before a challenge
	// is locked and a fresh code must be requested.
	DefaultMaxAttempts = 3

	// DefaultResendCooldownSeconds is the minimum wait between resends.
	DefaultResendCooldownSeconds = 30
)

// Policy holds the tunable limits applied to every challenge.
type Policy struct {
	// ExpirySeconds is the challenge lifetime in seconds.
	ExpirySeconds int

	// MaxAttempts is the maximum number of validation attempts.
	MaxAttempts int

	// ResendCooldownSeconds is the minimum wait before a resend.
	ResendCooldownSeconds int
}

// DefaultPolicy returns the built-in policy limits.
func DefaultPolicy() Policy {
	return Policy{
		ExpirySeconds:         DefaultExpirySeconds,
		MaxAttempts:           DefaultMaxAttempts,
		ResendCooldownSeconds: DefaultResendCooldownSeconds,
	}
}

// =============================================================================
// RECORD
// =============================================================================

// Record is a single pending OTP challenge for one identifier.
// A record is replaced wholesale on reissue; only a failed validation
// attempt mutates it, by incrementing AttemptCount.
type Record struct {
	// Code is the 6-digit numeric code, in [100000, 999999].
	Code string

	// IssuedAt is the creation instant of this challenge.
	IssuedAt time.Time

	// AttemptCount is the number of failed validation attempts so far.
	AttemptCount int
}

// IsExpired reports whether the challenge lifetime has elapsed at now.
func (r Record) IsExpired(p Policy, now time.Time) bool {
	return now.Sub(r.IssuedAt) >= time.Duration(p.ExpirySeconds)*time.Second
}

// RemainingSeconds returns the whole seconds of lifetime left at now,
// floored at zero.
func (r Record) RemainingSeconds(p Policy, now time.Time) int {
	elapsed := int(now.Sub(r.IssuedAt) / time.Second)
	remaining := p.ExpirySeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AttemptsRemaining returns how many validation attempts are left.
func (r Record) AttemptsRemaining(p Policy) int {
	remaining := p.MaxAttempts - r.AttemptCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AttemptsExhausted reports whether the attempt budget is used up.
func (r Record) AttemptsExhausted(p Policy) bool {
	return r.AttemptCount >= p.MaxAttempts
}
