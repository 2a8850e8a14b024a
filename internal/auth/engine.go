// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the email + OTP login state machine.
package auth

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/authgate-tui/internal/analytics"
	"github.com/jeranaias/authgate-tui/internal/otp"
	"github.com/jeranaias/authgate-tui/internal/sched"
	"github.com/jeranaias/authgate-tui/internal/util"
)

// =============================================================================
// USER-FACING MESSAGES
// =============================================================================

const (
	msgInvalidEmail      = "Please enter a valid email"
	msgWrongLength       = "Please enter 6-digit OTP"
	msgExpired           = "OTP has expired. Please request a new one."
	msgAttemptsExhausted = "Maximum attempts reached. Please request a new OTP."
	msgNotFound          = "No OTP found. Please request a new one."
)

// emailRe is the RFC-lite address check applied before issuance.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// =============================================================================
// ENGINE
// =============================================================================

// Engine owns the authentication state and everything that mutates it.
//
// Dispatch and timer ticks are linearized through one mutex; there is no
// other writer. The current state is readable via State and observable as
// a latest-value stream via Updates.
type Engine struct {
	mu     sync.Mutex
	state  State
	closed bool

	store  *otp.Store
	issuer *otp.Issuer
	timers *sched.Scheduler
	sink   analytics.Logger

	now func() time.Time

	// updates is the conflated state stream: capacity one, stale value
	// evicted before each publish.
	updates chan State

	// construction-time settings
	policy       otp.Policy
	tickInterval time.Duration
	randSource   rand.Source
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithAnalytics sets the event sink. Defaults to a no-op sink.
func WithAnalytics(sink analytics.Logger) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithPolicy overrides the default OTP policy.
func WithPolicy(p otp.Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithTickInterval overrides the one-second timer interval. Countdown
// semantics are unchanged; tests use short intervals.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithClock sets the time source used for expiry and session duration.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRandSource sets the randomness source for code generation.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) {
		e.randSource = src
	}
}

// New creates an Engine in the Login state.
func New(opts ...Option) *Engine {
	e := &Engine{
		state:        Login{},
		sink:         analytics.NopLogger{},
		now:          time.Now,
		policy:       otp.DefaultPolicy(),
		tickInterval: time.Second,
		updates:      make(chan State, 1),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.store = otp.NewStore()

	issuerOpts := []otp.IssuerOption{
		otp.WithPolicy(e.policy),
		otp.WithClock(e.now),
	}
	if e.randSource != nil {
		issuerOpts = append(issuerOpts, otp.WithRandSource(e.randSource))
	}
	e.issuer = otp.NewIssuer(e.store, e.sink, issuerOpts...)

	e.timers = sched.New(e.tickInterval, e.handleTick)

	return e
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Updates returns the conflated state stream. Intermediate states may be
// skipped; the latest is always retained. The channel closes on Close.
func (e *Engine) Updates() <-chan State {
	return e.updates
}

// SetPolicy replaces the OTP policy for subsequent issuance and
// validation. Running countdowns keep the lifetime they started with.
func (e *Engine) SetPolicy(p otp.Policy) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.policy = p
	e.issuer.SetPolicy(p)
}

// Dispatch applies one event. Events for a mismatched state variant are
// no-ops. Safe for concurrent use.
func (e *Engine) Dispatch(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	switch ev := ev.(type) {
	case EmailChanged:
		e.handleEmailChanged(ev.Email)
	case SendOtpClicked:
		e.handleSendOtp()
	case OtpChanged:
		e.handleOtpChanged(ev.Otp)
	case VerifyOtpClicked:
		e.handleVerifyOtp()
	case ResendOtpClicked:
		e.handleResendOtp()
	case BackToLoginClicked:
		e.handleBackToLogin()
	case LogoutClicked:
		e.handleLogout()
	}
}

// Close cancels all timers, waits for their goroutines, and closes the
// update stream. The engine accepts no events afterwards. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	// Shutdown waits for in-flight ticks, which need the mutex; it must
	// run outside the critical section.
	e.timers.Shutdown()
	close(e.updates)
}

// =============================================================================
// EVENT HANDLERS (caller holds e.mu)
// =============================================================================

func (e *Engine) handleEmailChanged(email string) {
	st, ok := e.state.(Login)
	if !ok {
		return
	}
	st.Email = email
	st.ErrorMessage = ""
	e.setState(st)
}

func (e *Engine) handleSendOtp() {
	st, ok := e.state.(Login)
	if !ok {
		return
	}

	email := strings.TrimSpace(st.Email)
	if !emailRe.MatchString(email) {
		st.ErrorMessage = msgInvalidEmail
		e.setState(st)
		return
	}

	code := e.issuer.Issue(email)

	e.setState(OtpPending{
		Email:             email,
		IssuedCode:        code,
		AttemptsRemaining: e.policy.MaxAttempts,
		RemainingSeconds:  e.policy.ExpirySeconds,
	})

	e.timers.StartCountdown(sched.RoleOtpExpiry, e.policy.ExpirySeconds)
}

func (e *Engine) handleOtpChanged(entered string) {
	st, ok := e.state.(OtpPending)
	if !ok {
		return
	}
	st.Entered = util.DigitsOnly(entered, otp.CodeLength)
	st.ErrorMessage = ""
	e.setState(st)
}

func (e *Engine) handleVerifyOtp() {
	st, ok := e.state.(OtpPending)
	if !ok {
		return
	}

	if len(st.Entered) != otp.CodeLength {
		st.ErrorMessage = msgWrongLength
		e.setState(st)
		return
	}

	res := e.issuer.Validate(st.Email, st.Entered)
	switch res.Outcome {
	case otp.OutcomeSuccess:
		e.cancelAllTimers()
		now := e.now()
		e.setState(Session{
			Email:     st.Email,
			ID:        uuid.NewString(),
			StartedAt: now,
		})
		e.timers.StartTicker(sched.RoleSessionTick)

	case otp.OutcomeExpired:
		st.ErrorMessage = msgExpired
		st.Entered = ""
		e.setState(st)

	case otp.OutcomeAttemptsExhausted:
		st.ErrorMessage = msgAttemptsExhausted
		st.AttemptsRemaining = 0
		st.Entered = ""
		e.setState(st)

	case otp.OutcomeInvalidCode:
		st.ErrorMessage = fmt.Sprintf("Incorrect OTP. %d attempts remaining.", res.AttemptsRemaining)
		st.AttemptsRemaining = res.AttemptsRemaining
		st.Entered = ""
		e.setState(st)

	case otp.OutcomeNotFound:
		st.ErrorMessage = msgNotFound
		e.setState(st)
	}
}

func (e *Engine) handleResendOtp() {
	st, ok := e.state.(OtpPending)
	if !ok {
		return
	}

	// Cooldown still running: the event is ignored outright, the state
	// value stays identical.
	if st.ResendCooldownSeconds > 0 {
		return
	}

	code := e.issuer.Issue(st.Email)

	e.setState(OtpPending{
		Email:                 st.Email,
		IssuedCode:            code,
		AttemptsRemaining:     e.policy.MaxAttempts,
		RemainingSeconds:      e.policy.ExpirySeconds,
		ResendCooldownSeconds: e.policy.ResendCooldownSeconds,
	})

	e.timers.StartCountdown(sched.RoleOtpExpiry, e.policy.ExpirySeconds)
	e.timers.StartCountdown(sched.RoleResendCooldown, e.policy.ResendCooldownSeconds)
}

func (e *Engine) handleBackToLogin() {
	if _, ok := e.state.(OtpPending); !ok {
		return
	}
	e.cancelAllTimers()
	e.setState(Login{})
}

func (e *Engine) handleLogout() {
	st, ok := e.state.(Session)
	if !ok {
		return
	}

	duration := int64(e.now().Sub(st.StartedAt) / time.Second)
	e.sink.Logout(duration)

	e.cancelAllTimers()
	e.setState(Login{})
}

// cancelAllTimers stops every timer role. Cancelling also invalidates the
// role epochs, so ticks already in flight are dropped.
func (e *Engine) cancelAllTimers() {
	e.timers.Cancel(sched.RoleOtpExpiry)
	e.timers.Cancel(sched.RoleResendCooldown)
	e.timers.Cancel(sched.RoleSessionTick)
}

// =============================================================================
// TICK HANDLING
// =============================================================================

// handleTick re-enters the critical section from a timer goroutine.
// A tick is applied only when its epoch still matches the live timer for
// its role and the state variant it targets is still current.
func (e *Engine) handleTick(t sched.Tick) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if t.Epoch != e.timers.Epoch(t.Role) {
		return
	}

	switch t.Role {
	case sched.RoleOtpExpiry:
		st, ok := e.state.(OtpPending)
		if !ok {
			return
		}
		st.RemainingSeconds = t.Remaining
		e.setState(st)

	case sched.RoleResendCooldown:
		st, ok := e.state.(OtpPending)
		if !ok {
			return
		}
		st.ResendCooldownSeconds = t.Remaining
		e.setState(st)

	case sched.RoleSessionTick:
		st, ok := e.state.(Session)
		if !ok {
			return
		}
		st.ElapsedSeconds = int64(e.now().Sub(st.StartedAt) / time.Second)
		e.setState(st)
	}
}

// =============================================================================
// STATE PUBLISHING
// =============================================================================

// setState replaces the current state and publishes it on the conflated
// stream. Caller holds e.mu, so there is exactly one publisher: evicting
// the stale value before sending can never race another send.
func (e *Engine) setState(s State) {
	e.state = s

	select {
	case e.updates <- s:
	default:
		select {
		case <-e.updates:
		default:
		}
		select {
		case e.updates <- s:
		default:
		}
	}
}
