// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the email + OTP login state machine.
//
// The Engine owns a single authentication state (Login, OtpPending, or
// Session) and advances it in response to discrete events from the
// presentation layer and to timer ticks from the scheduler. Every
// transition replaces the whole state value; the latest value is
// published on a conflated channel for rendering.
//
// All event handling is linearized through one mutex. Timer ticks re-enter
// the same critical section and are dropped when their epoch no longer
// matches the live timer for their role, so a superseded countdown can
// never write into newer state.
//
// # Key Types
//
//   - State: Sealed union of Login, OtpPending, and Session
//   - Event: Sealed union of the presentation-layer commands
//   - Engine: Owns the state, the OTP issuer, and the timer scheduler
//
// # Usage
//
//	engine := auth.New(auth.WithAnalytics(sink))
//	defer engine.Close()
//
//	engine.Dispatch(auth.EmailChanged{Email: "a@b.com"})
//	engine.Dispatch(auth.SendOtpClicked{})
//
//	for state := range engine.Updates() {
//	    render(state)
//	}
package auth
