// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics provides the best-effort authentication event sink.
//
// This file tests identifier masking, the event formats, and the
// in-memory recorder.
package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// MASKING TESTS
// =============================================================================

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"normal address", "john.doe@example.com", "jo***@example.com"},
		{"three char local", "abc@example.com", "ab***@example.com"},
		{"two char local", "ab@example.com", "***@***"},
		{"one char local", "a@b.com", "***@***"},
		{"empty local", "@example.com", "***@***"},
		{"no at sign", "not-an-email", "***@***"},
		{"two at signs", "a@b@c.com", "***@***"},
		{"empty string", "", "***@***"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MaskEmail(tc.email))
		})
	}
}

// =============================================================================
// EVENT FORMAT TESTS
// =============================================================================

func TestEvent_ToLogLine(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	e := Event{Timestamp: ts, Type: EventOtpValidationFailure, MaskedEmail: "jo***@example.com", Reason: ReasonInvalidOtp}
	require.Equal(t,
		"2025-06-01 12:30:45 | OTP_VALIDATION_FAILURE | jo***@example.com reason=invalid_otp",
		e.ToLogLine(),
	)

	logout := Event{Timestamp: ts, Type: EventLogout, DurationSeconds: 93}
	require.Equal(t,
		"2025-06-01 12:30:45 | USER_LOGOUT | duration=93s",
		logout.ToLogLine(),
	)
}

func TestEvent_ToJSON(t *testing.T) {
	e := Event{
		ID:          "evt-1",
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Type:        EventOtpIssued,
		MaskedEmail: "jo***@example.com",
	}

	s, err := e.ToJSON()
	require.NoError(t, err)
	require.Contains(t, s, `"event_type":"OTP_ISSUED"`)
	require.Contains(t, s, `"masked_email":"jo***@example.com"`)
	// Zero-valued optional fields stay out of the payload.
	require.NotContains(t, s, "reason")
	require.NotContains(t, s, "duration_seconds")
}

// =============================================================================
// RECORDER TESTS
// =============================================================================

func TestRecorder_CapturesEventsInOrder(t *testing.T) {
	r := NewRecorder()

	r.OtpIssued("jo***@example.com")
	r.OtpValidationFailure("jo***@example.com", ReasonInvalidOtp)
	r.OtpValidationSuccess("jo***@example.com")
	r.Logout(42)

	events := r.Events()
	require.Len(t, events, 4)
	require.Equal(t, EventOtpIssued, events[0].Type)
	require.Equal(t, EventOtpValidationFailure, events[1].Type)
	require.Equal(t, ReasonInvalidOtp, events[1].Reason)
	require.Equal(t, EventOtpValidationSuccess, events[2].Type)
	require.Equal(t, EventLogout, events[3].Type)
	require.Equal(t, int64(42), events[3].DurationSeconds)

	r.Reset()
	require.Empty(t, r.Events())
}
