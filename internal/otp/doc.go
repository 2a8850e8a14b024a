// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package otp implements one-time-passcode issuance and validation.
//
// This package contains the challenge record store and the policy layer
// that classifies every validation attempt. It owns no timers; countdown
// display is driven by the auth engine.
//
// # Key Types
//
//   - Record: A single pending OTP challenge (code, issue time, attempts)
//   - Store: In-memory record store, at most one record per identifier
//   - Issuer: Generates codes and classifies validation attempts
//   - Result: Classified validation outcome with remaining attempts
//
// # Usage
//
//	store := otp.NewStore()
//	issuer := otp.NewIssuer(store, sink)
//	code := issuer.Issue("a@b.com")
//
//	res := issuer.Validate("a@b.com", entered)
//	if res.Outcome == otp.OutcomeSuccess {
//	    // challenge consumed, record deleted
//	}
package otp
