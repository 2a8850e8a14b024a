// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics provides the best-effort authentication event sink.
package analytics

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// Event type identifiers.
const (
	EventOtpIssued            = "OTP_ISSUED"
	EventOtpValidationSuccess = "OTP_VALIDATION_SUCCESS"
	EventOtpValidationFailure = "OTP_VALIDATION_FAILURE"
	EventLogout               = "USER_LOGOUT"
)

// =============================================================================
// EVENT
// =============================================================================

// Event is a single recorded authentication event.
type Event struct {
	ID              string    `json:"id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Type            string    `json:"event_type"`
	MaskedEmail     string    `json:"masked_email,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	DurationSeconds int64     `json:"duration_seconds,omitempty"`
}

// ToLogLine formats the event as a single pipe-delimited log line.
func (e *Event) ToLogLine() string {
	timestamp := e.Timestamp.UTC().Format("2006-01-02 15:04:05")

	detail := e.MaskedEmail
	if e.Reason != "" {
		detail = fmt.Sprintf("%s reason=%s", detail, e.Reason)
	}
	if e.Type == EventLogout {
		detail = fmt.Sprintf("duration=%ds", e.DurationSeconds)
	}

	return fmt.Sprintf("%s | %s | %s", timestamp, e.Type, detail)
}

// ToJSON formats the event as JSON.
func (e *Event) ToJSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
