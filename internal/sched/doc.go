// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sched manages the cancellable countdown and ticker goroutines
// behind the auth engine.
//
// Each timer role (OTP expiry, resend cooldown, session tick) has at most
// one live goroutine. Starting a role cancels its predecessor and bumps
// that role's epoch counter; every delivered Tick carries the epoch it was
// started under, so a consumer can discard ticks from a superseded timer
// even if they were already in flight when the replacement started.
//
// # Key Types
//
//   - Role: Timer role identifier (OtpExpiry, ResendCooldown, SessionTick)
//   - Tick: One delivered tick, stamped with its role and epoch
//   - Scheduler: Starts, supersedes, and cancels per-role goroutines
//
// # Usage
//
//	s := sched.New(time.Second, deliver)
//	s.StartCountdown(sched.RoleOtpExpiry, 60)
//	...
//	s.Shutdown() // cancels every role and waits for the goroutines
package sched
