// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Tests for countdown delivery, role supersession, and shutdown. Timing
// assertions use generous margins; they check ordering and epochs, not
// wall-clock precision.

package sched

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// tickCollector records delivered ticks for assertions.
type tickCollector struct {
	mu    sync.Mutex
	ticks []Tick
}

func (c *tickCollector) deliver(t Tick) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = append(c.ticks, t)
}

func (c *tickCollector) snapshot() []Tick {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Tick, len(c.ticks))
	copy(out, c.ticks)
	return out
}

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_String(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleOtpExpiry, "OTP_EXPIRY"},
		{RoleResendCooldown, "RESEND_COOLDOWN"},
		{RoleSessionTick, "SESSION_TICK"},
		{Role(99), "UNKNOWN"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.role.String())
	}
}

// =============================================================================
// COUNTDOWN TESTS
// =============================================================================

func TestScheduler_CountdownDeliversDescendingRemaining(t *testing.T) {
	var c tickCollector
	s := New(5*time.Millisecond, c.deliver)
	defer s.Shutdown()

	epoch := s.StartCountdown(RoleOtpExpiry, 3)
	require.NotZero(t, epoch)

	// 3 ticks at 5ms; wait long enough for the countdown to finish.
	require.Eventually(t, func() bool {
		return len(c.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	ticks := c.snapshot()
	for i, tick := range ticks {
		require.Equal(t, RoleOtpExpiry, tick.Role)
		require.Equal(t, epoch, tick.Epoch)
		require.Equal(t, 2-i, tick.Remaining)
	}

	// The goroutine stops at zero; no further ticks arrive.
	time.Sleep(30 * time.Millisecond)
	require.Len(t, c.snapshot(), 3)
}

func TestScheduler_TickerRepeatsUntilCancelled(t *testing.T) {
	var c tickCollector
	s := New(5*time.Millisecond, c.deliver)
	defer s.Shutdown()

	epoch := s.StartTicker(RoleSessionTick)

	require.Eventually(t, func() bool {
		return len(c.snapshot()) >= 5
	}, time.Second, 5*time.Millisecond)

	s.Cancel(RoleSessionTick)
	settled := len(c.snapshot())
	time.Sleep(30 * time.Millisecond)
	// At most one tick was in flight when Cancel landed.
	require.LessOrEqual(t, len(c.snapshot()), settled+1)

	for _, tick := range c.snapshot() {
		require.Equal(t, epoch, tick.Epoch)
		require.Equal(t, 0, tick.Remaining)
	}
}

// =============================================================================
// SUPERSESSION TESTS
// =============================================================================

func TestScheduler_StartSupersedesPriorEpoch(t *testing.T) {
	var c tickCollector
	s := New(5*time.Millisecond, c.deliver)
	defer s.Shutdown()

	first := s.StartCountdown(RoleOtpExpiry, 1000)

	require.Eventually(t, func() bool {
		return len(c.snapshot()) >= 2
	}, time.Second, 5*time.Millisecond)

	second := s.StartCountdown(RoleOtpExpiry, 1000)
	require.Greater(t, second, first)
	require.Equal(t, second, s.Epoch(RoleOtpExpiry))

	// Drop everything recorded so far, then watch only fresh ticks.
	preRestart := len(c.snapshot())
	require.Eventually(t, func() bool {
		return len(c.snapshot()) >= preRestart+3
	}, time.Second, 5*time.Millisecond)

	// Allow at most one in-flight tick from the first timer at the
	// moment of restart; everything after carries the new epoch.
	fresh := c.snapshot()[preRestart+1:]
	for _, tick := range fresh {
		require.Equal(t, second, tick.Epoch)
	}
}

func TestScheduler_CancelInvalidatesEpoch(t *testing.T) {
	var c tickCollector
	s := New(5*time.Millisecond, c.deliver)
	defer s.Shutdown()

	epoch := s.StartCountdown(RoleResendCooldown, 1000)
	require.Equal(t, epoch, s.Epoch(RoleResendCooldown))

	s.Cancel(RoleResendCooldown)

	// Even a tick that raced the cancel can never match again.
	require.NotEqual(t, epoch, s.Epoch(RoleResendCooldown))

	// Idempotent; each call keeps advancing the epoch.
	before := s.Epoch(RoleResendCooldown)
	s.Cancel(RoleResendCooldown)
	require.Greater(t, s.Epoch(RoleResendCooldown), before)
}

func TestScheduler_RolesAreIndependent(t *testing.T) {
	var c tickCollector
	s := New(5*time.Millisecond, c.deliver)
	defer s.Shutdown()

	expiry := s.StartCountdown(RoleOtpExpiry, 1000)
	cooldown := s.StartCountdown(RoleResendCooldown, 1000)

	s.Cancel(RoleResendCooldown)

	// Cancelling one role leaves the other's epoch intact.
	require.Equal(t, expiry, s.Epoch(RoleOtpExpiry))
	require.NotEqual(t, cooldown, s.Epoch(RoleResendCooldown))
}

// =============================================================================
// SHUTDOWN TESTS
// =============================================================================

func TestScheduler_ShutdownStopsEverything(t *testing.T) {
	var c tickCollector
	s := New(5*time.Millisecond, c.deliver)

	s.StartCountdown(RoleOtpExpiry, 1000)
	s.StartCountdown(RoleResendCooldown, 1000)
	s.StartTicker(RoleSessionTick)

	time.Sleep(20 * time.Millisecond)
	s.Shutdown()

	// Shutdown waits for the goroutines, so the tick count is final.
	settled := len(c.snapshot())
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, settled, len(c.snapshot()))

	// Starting after shutdown is refused.
	require.Zero(t, s.StartCountdown(RoleOtpExpiry, 10))
	require.Zero(t, s.StartTicker(RoleSessionTick))

	// A second shutdown is a no-op.
	s.Shutdown()
}
