// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics provides the best-effort authentication event sink.
//
// The engine reports OTP issuance, validation outcomes, and logouts through
// the Logger interface. All implementations are fire-and-forget: sink
// failures are swallowed and never surface as authentication errors.
// Identifiers are masked before they reach any sink, so raw email
// addresses are never logged.
//
// # Key Types
//
//   - Logger: The sink interface injected into the engine
//   - Event: A single recorded event (JSON-marshalable)
//   - EventLogger: Concrete sink writing a line log and/or a SQLite store
//   - NopLogger: Discards everything
//   - Recorder: In-memory sink for tests
//
// # Usage
//
//	sink, err := analytics.NewEventLogger(
//	    analytics.WithLogFile(logPath),
//	    analytics.WithDatabase(dbPath),
//	)
//	if err != nil {
//	    // engine falls back to NopLogger when given a nil sink
//	} else {
//	    defer sink.Close()
//	}
package analytics
