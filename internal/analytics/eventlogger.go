// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics provides the best-effort authentication event sink.
package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// eventBufferSize is the capacity of the in-flight event queue.
	// Events beyond this are dropped rather than blocking the caller.
	eventBufferSize = 256

	// DefaultEventsPerSecond caps the sustained sink write rate.
	DefaultEventsPerSecond = 50

	// DefaultBurst is the rate limiter burst size.
	DefaultBurst = 100
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS auth_events (
	id               TEXT PRIMARY KEY,
	timestamp        INTEGER NOT NULL,
	event_type       TEXT NOT NULL,
	masked_email     TEXT,
	reason           TEXT,
	duration_seconds INTEGER
);
CREATE INDEX IF NOT EXISTS idx_auth_events_type ON auth_events(event_type);
CREATE INDEX IF NOT EXISTS idx_auth_events_time ON auth_events(timestamp);
`

// =============================================================================
// EVENT LOGGER
// =============================================================================

// EventLogger is the concrete sink. It appends pipe-delimited lines to a
// log file and/or inserts rows into a SQLite event store.
//
// Writes happen on a background goroutine fed by a bounded queue: the
// logging methods never block, events are dropped when the queue is full
// or the rate limit is exceeded, and write errors are swallowed.
type EventLogger struct {
	logPath string
	dbPath  string

	limiter *rate.Limiter
	now     func() time.Time

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once

	mu     sync.Mutex
	file   *os.File
	db     *sql.DB
	closed bool
}

// EventLoggerOption is a functional option for configuring an EventLogger.
type EventLoggerOption func(*EventLogger)

// WithLogFile enables the line-log output at the given path.
func WithLogFile(path string) EventLoggerOption {
	return func(l *EventLogger) {
		l.logPath = path
	}
}

// WithDatabase enables the SQLite event store at the given path.
func WithDatabase(path string) EventLoggerOption {
	return func(l *EventLogger) {
		l.dbPath = path
	}
}

// WithRateLimit overrides the sink write rate limit.
func WithRateLimit(eventsPerSecond float64, burst int) EventLoggerOption {
	return func(l *EventLogger) {
		l.limiter = rate.NewLimiter(rate.Limit(eventsPerSecond), burst)
	}
}

// WithEventClock sets the time source used for event timestamps.
func WithEventClock(now func() time.Time) EventLoggerOption {
	return func(l *EventLogger) {
		l.now = now
	}
}

// NewEventLogger creates an EventLogger and starts its writer goroutine.
// At least one output must be configured.
func NewEventLogger(opts ...EventLoggerOption) (*EventLogger, error) {
	l := &EventLogger{
		limiter: rate.NewLimiter(rate.Limit(DefaultEventsPerSecond), DefaultBurst),
		now:     time.Now,
		events:  make(chan Event, eventBufferSize),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logPath == "" && l.dbPath == "" {
		return nil, fmt.Errorf("event logger needs a log file or a database path")
	}

	if l.logPath != "" {
		if err := os.MkdirAll(filepath.Dir(l.logPath), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open event log: %w", err)
		}
		l.file = f
	}

	if l.dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(l.dbPath), 0700); err != nil {
			l.closeOutputs()
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := sql.Open("sqlite", l.dbPath)
		if err != nil {
			l.closeOutputs()
			return nil, fmt.Errorf("failed to open event store: %w", err)
		}
		if _, err := db.Exec(schemaSQL); err != nil {
			db.Close()
			l.closeOutputs()
			return nil, fmt.Errorf("failed to create event schema: %w", err)
		}
		l.db = db
	}

	l.wg.Add(1)
	go l.writeLoop()

	return l, nil
}

// OtpIssued records that a challenge code was generated.
func (l *EventLogger) OtpIssued(maskedEmail string) {
	l.enqueue(Event{Type: EventOtpIssued, MaskedEmail: maskedEmail})
}

// OtpValidationSuccess records a successful validation.
func (l *EventLogger) OtpValidationSuccess(maskedEmail string) {
	l.enqueue(Event{Type: EventOtpValidationSuccess, MaskedEmail: maskedEmail})
}

// OtpValidationFailure records a failed validation with a reason code.
func (l *EventLogger) OtpValidationFailure(maskedEmail string, reason string) {
	l.enqueue(Event{Type: EventOtpValidationFailure, MaskedEmail: maskedEmail, Reason: reason})
}

// Logout records the end of a session and its duration.
func (l *EventLogger) Logout(sessionDurationSeconds int64) {
	l.enqueue(Event{Type: EventLogout, DurationSeconds: sessionDurationSeconds})
}

// Close drains the queue, flushes both outputs, and releases them.
// Safe to call more than once.
func (l *EventLogger) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()

		close(l.done)
		l.wg.Wait()
		l.closeOutputs()
	})
}

// enqueue stamps and queues an event, dropping it if the logger is
// closed, the rate limit is exceeded, or the queue is full.
func (l *EventLogger) enqueue(e Event) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return
	}

	if !l.limiter.Allow() {
		return
	}

	e.ID = uuid.NewString()
	e.Timestamp = l.now()

	select {
	case l.events <- e:
	default:
		// Queue full; best-effort sink drops rather than blocks.
	}
}

// writeLoop consumes the queue until Close, then drains what is left.
func (l *EventLogger) writeLoop() {
	defer l.wg.Done()

	for {
		select {
		case e := <-l.events:
			l.write(e)
		case <-l.done:
			for {
				select {
				case e := <-l.events:
					l.write(e)
				default:
					return
				}
			}
		}
	}
}

// write persists a single event to the configured outputs.
// Errors are intentionally discarded.
func (l *EventLogger) write(e Event) {
	if l.file != nil {
		fmt.Fprintln(l.file, e.ToLogLine())
	}

	if l.db != nil {
		l.db.Exec(
			`INSERT INTO auth_events (id, timestamp, event_type, masked_email, reason, duration_seconds)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Timestamp.Unix(), e.Type, e.MaskedEmail, e.Reason, e.DurationSeconds,
		)
	}
}

func (l *EventLogger) closeOutputs() {
	if l.file != nil {
		l.file.Sync()
		l.file.Close()
		l.file = nil
	}
	if l.db != nil {
		l.db.Close()
		l.db = nil
	}
}

// EventCount returns the number of stored events of the given type, or of
// all types when eventType is empty. Returns zero when no database output
// is configured. Intended for the status surface and tests.
func (l *EventLogger) EventCount(eventType string) (int, error) {
	if l.db == nil {
		return 0, nil
	}

	var count int
	var err error
	if eventType == "" {
		err = l.db.QueryRow(`SELECT COUNT(*) FROM auth_events`).Scan(&count)
	} else {
		err = l.db.QueryRow(`SELECT COUNT(*) FROM auth_events WHERE event_type = ?`, eventType).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("event count query failed: %w", err)
	}
	return count, nil
}
