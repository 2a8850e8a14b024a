// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sched manages the cancellable countdown and ticker goroutines
// behind the auth engine.
package sched

import (
	"sync"
	"time"
)

// =============================================================================
// ROLES
// =============================================================================

// Role identifies one of the engine's timer slots.
type Role int

const (
	// RoleOtpExpiry is the once-per-second countdown over the challenge
	// lifetime while an OTP is pending.
	RoleOtpExpiry Role = iota

	// RoleResendCooldown is the countdown gating the resend action.
	RoleResendCooldown

	// RoleSessionTick is the indefinite once-per-second session ticker.
	RoleSessionTick

	roleCount
)

// String returns a string representation of the Role.
func (r Role) String() string {
	switch r {
	case RoleOtpExpiry:
		return "OTP_EXPIRY"
	case RoleResendCooldown:
		return "RESEND_COOLDOWN"
	case RoleSessionTick:
		return "SESSION_TICK"
	default:
		return "UNKNOWN"
	}
}

// =============================================================================
// TICK
// =============================================================================

// Tick is one scheduled work item delivered back to the consumer.
type Tick struct {
	// Role is the timer slot that produced this tick.
	Role Role

	// Epoch is the role epoch the timer was started under. Consumers must
	// drop ticks whose epoch no longer matches Epoch(role).
	Epoch uint64

	// Remaining is the seconds left in a countdown after this tick.
	// Always zero for RoleSessionTick, which has no endpoint.
	Remaining int
}

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler owns at most one live goroutine per role. Delivery happens on
// the timer goroutines via the deliver callback; the callback is expected
// to serialize into the consumer's own critical section. The scheduler
// never holds its lock while delivering.
type Scheduler struct {
	interval time.Duration
	deliver  func(Tick)

	mu      sync.Mutex
	epochs  [roleCount]uint64
	cancels [roleCount]chan struct{}
	closed  bool
	wg      sync.WaitGroup
}

// New creates a Scheduler delivering ticks at the given interval.
// A non-positive interval defaults to one second.
func New(interval time.Duration, deliver func(Tick)) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		interval: interval,
		deliver:  deliver,
	}
}

// StartCountdown replaces any live timer for the role with a countdown
// from seconds-1 down to 0 inclusive, one tick per interval. Returns the
// new role epoch, or zero if the scheduler is shut down.
func (s *Scheduler) StartCountdown(role Role, seconds int) uint64 {
	return s.start(role, seconds, false)
}

// StartTicker replaces any live timer for the role with an indefinite
// once-per-interval ticker. Returns the new role epoch.
func (s *Scheduler) StartTicker(role Role) uint64 {
	return s.start(role, 0, true)
}

func (s *Scheduler) start(role Role, seconds int, repeat bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	s.cancelLocked(role)

	epoch := s.epochs[role]
	stop := make(chan struct{})
	s.cancels[role] = stop

	s.wg.Add(1)
	go s.run(role, epoch, seconds, repeat, stop)

	return epoch
}

// run is the timer goroutine body. It exits when the countdown completes
// or the stop channel closes, whichever comes first.
func (s *Scheduler) run(role Role, epoch uint64, seconds int, repeat bool, stop chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	remaining := seconds
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		if repeat {
			s.deliver(Tick{Role: role, Epoch: epoch})
			continue
		}

		remaining--
		if remaining < 0 {
			return
		}
		s.deliver(Tick{Role: role, Epoch: epoch, Remaining: remaining})
	}
}

// Cancel stops the live timer for the role, if any, and invalidates its
// epoch so in-flight ticks are discarded. Idempotent.
func (s *Scheduler) Cancel(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(role)
}

// cancelLocked stops the role's timer and bumps its epoch.
// Caller holds s.mu.
func (s *Scheduler) cancelLocked(role Role) {
	if s.cancels[role] != nil {
		close(s.cancels[role])
		s.cancels[role] = nil
	}
	// Epoch advances even when no timer was live, so a tick raced against
	// Cancel can never match again.
	s.epochs[role]++
}

// Epoch returns the current epoch for the role. A Tick is live only if
// its stamped epoch equals this value.
func (s *Scheduler) Epoch(role Role) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.epochs[role]
}

// Shutdown cancels every role and waits for all timer goroutines to exit.
// The scheduler cannot be restarted. Callers must not hold the lock the
// deliver callback takes, or Shutdown can deadlock against an in-flight
// delivery.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for role := Role(0); role < roleCount; role++ {
		s.cancelLocked(role)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
