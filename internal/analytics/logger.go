// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics provides the best-effort authentication event sink.
package analytics

import (
	"strings"
	"sync"
)

// =============================================================================
// REASON CODES
// =============================================================================

// Validation failure reason codes reported to the sink.
const (
	ReasonExpired     = "expired"
	ReasonMaxAttempts = "max_attempts"
	ReasonInvalidOtp  = "invalid_otp"
	ReasonNoOtpFound  = "no_otp_found"
)

// =============================================================================
// LOGGER INTERFACE
// =============================================================================

// Logger is the outbound event sink. All methods are best-effort and must
// not block the caller; implementations swallow their own failures.
// Callers pass identifiers already masked with MaskEmail.
type Logger interface {
	// OtpIssued records that a challenge code was generated.
	OtpIssued(maskedEmail string)

	// OtpValidationSuccess records a successful validation.
	OtpValidationSuccess(maskedEmail string)

	// OtpValidationFailure records a failed validation with a reason code.
	OtpValidationFailure(maskedEmail string, reason string)

	// Logout records the end of a session and its duration.
	Logout(sessionDurationSeconds int64)
}

// =============================================================================
// MASKING
// =============================================================================

// MaskEmail redacts an email address for telemetry.
//
// "local@domain" becomes the first two characters of the local part
// followed by "***@domain". Local parts of two characters or fewer, and
// anything that does not look like an address, mask to "***@***".
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || len(parts[0]) <= 2 {
		return "***@***"
	}
	return parts[0][:2] + "***@" + parts[1]
}

// =============================================================================
// NO-OP LOGGER
// =============================================================================

// NopLogger discards all events.
type NopLogger struct{}

// OtpIssued discards the event.
func (NopLogger) OtpIssued(string) {}

// OtpValidationSuccess discards the event.
func (NopLogger) OtpValidationSuccess(string) {}

// OtpValidationFailure discards the event.
func (NopLogger) OtpValidationFailure(string, string) {}

// Logout discards the event.
func (NopLogger) Logout(int64) {}

// =============================================================================
// RECORDER (TEST DOUBLE)
// =============================================================================

// Recorder captures events in memory. It exists so tests can assert on
// sink traffic without any global state.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OtpIssued captures the event.
func (r *Recorder) OtpIssued(maskedEmail string) {
	r.append(Event{Type: EventOtpIssued, MaskedEmail: maskedEmail})
}

// OtpValidationSuccess captures the event.
func (r *Recorder) OtpValidationSuccess(maskedEmail string) {
	r.append(Event{Type: EventOtpValidationSuccess, MaskedEmail: maskedEmail})
}

// OtpValidationFailure captures the event.
func (r *Recorder) OtpValidationFailure(maskedEmail string, reason string) {
	r.append(Event{Type: EventOtpValidationFailure, MaskedEmail: maskedEmail, Reason: reason})
}

// Logout captures the event.
func (r *Recorder) Logout(sessionDurationSeconds int64) {
	r.append(Event{Type: EventLogout, DurationSeconds: sessionDurationSeconds})
}

// Events returns a copy of everything captured so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards captured events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}

func (r *Recorder) append(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}
