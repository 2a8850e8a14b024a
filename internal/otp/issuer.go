// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package otp implements one-time-passcode issuance and validation.
package otp

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/jeranaias/authgate-tui/internal/analytics"
)

// =============================================================================
// VALIDATION OUTCOMES
// =============================================================================

// Outcome classifies a single validation attempt.
type Outcome int

const (
	// OutcomeSuccess means the code matched; the challenge was consumed.
	OutcomeSuccess Outcome = iota

	// OutcomeExpired means the challenge lifetime had elapsed. The record
	// is left in place; a later resend overwrites it.
	OutcomeExpired

	// OutcomeAttemptsExhausted means the attempt budget is used up.
	OutcomeAttemptsExhausted

	// OutcomeInvalidCode means the code did not match and attempts remain.
	OutcomeInvalidCode

	// OutcomeNotFound means no challenge exists for the identifier.
	OutcomeNotFound
)

// String returns a string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeExpired:
		return "EXPIRED"
	case OutcomeAttemptsExhausted:
		return "ATTEMPTS_EXHAUSTED"
	case OutcomeInvalidCode:
		return "INVALID_CODE"
	case OutcomeNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Result is the classified outcome of one validation attempt.
type Result struct {
	// Outcome is the classification.
	Outcome Outcome

	// AttemptsRemaining is the attempt budget left after this call.
	// Zero for OutcomeAttemptsExhausted and OutcomeNotFound.
	AttemptsRemaining int
}

// =============================================================================
// ISSUER
// =============================================================================

// Issuer generates challenge codes and classifies validation attempts.
//
// Randomness and the clock are injectable so tests can be deterministic.
// Every call notifies the analytics sink with a masked identifier; sink
// calls are best-effort and never affect the returned result.
type Issuer struct {
	store *Store
	sink  analytics.Logger

	// mu guards policy and rng. rand.Rand is not safe for concurrent use.
	mu     sync.Mutex
	policy Policy
	rng    *rand.Rand
	now    func() time.Time
}

// IssuerOption is a functional option for configuring an Issuer.
type IssuerOption func(*Issuer)

// WithPolicy overrides the default challenge policy.
func WithPolicy(p Policy) IssuerOption {
	return func(i *Issuer) {
		i.policy = p
	}
}

// WithRandSource sets the randomness source used for code generation.
func WithRandSource(src rand.Source) IssuerOption {
	return func(i *Issuer) {
		i.rng = rand.New(src)
	}
}

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an Issuer backed by the given store. A nil sink is
// replaced with a no-op logger.
func NewIssuer(store *Store, sink analytics.Logger, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		store:  store,
		sink:   sink,
		policy: DefaultPolicy(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	if i.sink == nil {
		i.sink = analytics.NopLogger{}
	}

	return i
}

// Policy returns the current challenge policy.
func (i *Issuer) Policy() Policy {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.policy
}

// SetPolicy replaces the challenge policy. The new limits apply to
// subsequent issuance and validation; existing records are untouched.
func (i *Issuer) SetPolicy(p Policy) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.policy = p
}

// Issue generates a fresh challenge for the identifier, replacing any
// prior record, and returns the generated code.
func (i *Issuer) Issue(id string) string {
	i.mu.Lock()
	// Uniform over [100000, 999999]; no leading zeros by construction.
	code := strconv.Itoa(100000 + i.rng.Intn(900000))
	now := i.now()
	i.mu.Unlock()

	i.store.Put(id, Record{
		Code:         code,
		IssuedAt:     now,
		AttemptCount: 0,
	})

	i.sink.OtpIssued(analytics.MaskEmail(id))

	return code
}

// Validate classifies a single validation attempt for the identifier.
//
// Checks are ordered: absence, expiry, exhaustion, match. A wrong guess
// increments the attempt count; the guess that consumes the last attempt
// reports OutcomeAttemptsExhausted, not OutcomeInvalidCode.
func (i *Issuer) Validate(id, submitted string) Result {
	i.mu.Lock()
	policy := i.policy
	now := i.now()
	i.mu.Unlock()

	masked := analytics.MaskEmail(id)

	rec, ok := i.store.Get(id)
	if !ok {
		i.sink.OtpValidationFailure(masked, analytics.ReasonNoOtpFound)
		return Result{Outcome: OutcomeNotFound}
	}

	if rec.IsExpired(policy, now) {
		i.sink.OtpValidationFailure(masked, analytics.ReasonExpired)
		return Result{Outcome: OutcomeExpired, AttemptsRemaining: rec.AttemptsRemaining(policy)}
	}

	if rec.AttemptsExhausted(policy) {
		i.sink.OtpValidationFailure(masked, analytics.ReasonMaxAttempts)
		return Result{Outcome: OutcomeAttemptsExhausted}
	}

	if submitted == rec.Code {
		i.store.Remove(id)
		i.sink.OtpValidationSuccess(masked)
		return Result{Outcome: OutcomeSuccess, AttemptsRemaining: rec.AttemptsRemaining(policy)}
	}

	rec.AttemptCount++
	i.store.Put(id, rec)

	if rec.AttemptsExhausted(policy) {
		i.sink.OtpValidationFailure(masked, analytics.ReasonMaxAttempts)
		return Result{Outcome: OutcomeAttemptsExhausted}
	}

	i.sink.OtpValidationFailure(masked, analytics.ReasonInvalidOtp)
	return Result{Outcome: OutcomeInvalidCode, AttemptsRemaining: rec.AttemptsRemaining(policy)}
}
