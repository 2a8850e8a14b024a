// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// authgate-tui.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/authgate-tui/internal/otp"
)

// =============================================================================
// CLAMP LIMITS
// =============================================================================

const (
	// MinExpirySeconds / MaxExpirySeconds bound the challenge lifetime.
	MinExpirySeconds = 10
	MaxExpirySeconds = 600

	// MinMaxAttempts / MaxMaxAttempts bound the attempt budget.
	MinMaxAttempts = 1
	MaxMaxAttempts = 10

	// MaxResendCooldownSeconds bounds the resend cooldown. The lower
	// bound is zero (no cooldown).
	MaxResendCooldownSeconds = 300

	// MinTickInterval / MaxTickInterval bound the timer interval.
	MinTickInterval = 10 * time.Millisecond
	MaxTickInterval = 10 * time.Second
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete authgate-tui configuration.
type Config struct {
	// OTP holds the challenge policy limits.
	OTP OTPConfig `toml:"otp"`

	// Timers holds the tick cadence.
	Timers TimersConfig `toml:"timers"`

	// Analytics holds the event sink settings.
	Analytics AnalyticsConfig `toml:"analytics"`
}

// OTPConfig contains the challenge policy limits.
type OTPConfig struct {
	// ExpirySeconds is the challenge lifetime in seconds.
	ExpirySeconds int `toml:"expiry_seconds"`

	// MaxAttempts is the validation attempt budget per challenge.
	MaxAttempts int `toml:"max_attempts"`

	// ResendCooldownSeconds is the minimum wait between resends.
	ResendCooldownSeconds int `toml:"resend_cooldown_seconds"`
}

// TimersConfig contains the timer cadence settings.
type TimersConfig struct {
	// TickInterval is the countdown/ticker interval as a duration string,
	// e.g. "1s". Anything but one second distorts the displayed
	// countdowns; sub-second values exist for tests.
	TickInterval string `toml:"tick_interval"`
}

// AnalyticsConfig contains the event sink settings.
type AnalyticsConfig struct {
	// Enabled turns the concrete sink on. When false the engine gets a
	// no-op sink.
	Enabled bool `toml:"enabled"`

	// LogPath is the pipe-delimited event log file. Empty disables it.
	LogPath string `toml:"log_path"`

	// DatabasePath is the SQLite event store. Empty disables it.
	DatabasePath string `toml:"db_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OTP: OTPConfig{
			ExpirySeconds:         otp.DefaultExpirySeconds,
			MaxAttempts:           otp.DefaultMaxAttempts,
			ResendCooldownSeconds: otp.DefaultResendCooldownSeconds,
		},
		Timers: TimersConfig{
			TickInterval: "1s",
		},
		Analytics: AnalyticsConfig{
			Enabled:      true,
			LogPath:      filepath.Join(defaultStateDir(), "events.log"),
			DatabasePath: filepath.Join(defaultStateDir(), "events.db"),
		},
	}
}

// defaultStateDir is where the sink outputs live unless configured.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".authgate"
	}
	return filepath.Join(home, ".authgate")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate clamps out-of-range values into their legal ranges, logging
// each adjustment. The config is always usable afterwards.
func (c *Config) Validate() {
	if c.OTP.ExpirySeconds < MinExpirySeconds {
		log.Printf("CONFIG: otp.expiry_seconds %d below minimum %d, using minimum", c.OTP.ExpirySeconds, MinExpirySeconds)
		c.OTP.ExpirySeconds = MinExpirySeconds
	}
	if c.OTP.ExpirySeconds > MaxExpirySeconds {
		log.Printf("CONFIG: otp.expiry_seconds %d above maximum %d, clamped", c.OTP.ExpirySeconds, MaxExpirySeconds)
		c.OTP.ExpirySeconds = MaxExpirySeconds
	}

	if c.OTP.MaxAttempts < MinMaxAttempts {
		log.Printf("CONFIG: otp.max_attempts %d below minimum %d, using minimum", c.OTP.MaxAttempts, MinMaxAttempts)
		c.OTP.MaxAttempts = MinMaxAttempts
	}
	if c.OTP.MaxAttempts > MaxMaxAttempts {
		log.Printf("CONFIG: otp.max_attempts %d above maximum %d, clamped", c.OTP.MaxAttempts, MaxMaxAttempts)
		c.OTP.MaxAttempts = MaxMaxAttempts
	}

	if c.OTP.ResendCooldownSeconds < 0 {
		log.Printf("CONFIG: otp.resend_cooldown_seconds %d negative, using 0", c.OTP.ResendCooldownSeconds)
		c.OTP.ResendCooldownSeconds = 0
	}
	if c.OTP.ResendCooldownSeconds > MaxResendCooldownSeconds {
		log.Printf("CONFIG: otp.resend_cooldown_seconds %d above maximum %d, clamped", c.OTP.ResendCooldownSeconds, MaxResendCooldownSeconds)
		c.OTP.ResendCooldownSeconds = MaxResendCooldownSeconds
	}

	if d, err := time.ParseDuration(c.Timers.TickInterval); err != nil {
		log.Printf("CONFIG: timers.tick_interval %q invalid, using 1s", c.Timers.TickInterval)
		c.Timers.TickInterval = "1s"
	} else if d < MinTickInterval {
		log.Printf("CONFIG: timers.tick_interval %v below minimum %v, using minimum", d, MinTickInterval)
		c.Timers.TickInterval = MinTickInterval.String()
	} else if d > MaxTickInterval {
		log.Printf("CONFIG: timers.tick_interval %v above maximum %v, clamped", d, MaxTickInterval)
		c.Timers.TickInterval = MaxTickInterval.String()
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// OTPPolicy converts the OTP section into the issuer's policy type.
func (c *Config) OTPPolicy() otp.Policy {
	return otp.Policy{
		ExpirySeconds:         c.OTP.ExpirySeconds,
		MaxAttempts:           c.OTP.MaxAttempts,
		ResendCooldownSeconds: c.OTP.ResendCooldownSeconds,
	}
}

// TickInterval returns the parsed timer interval, falling back to one
// second if the field does not parse.
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Timers.TickInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}
