// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authgate-tui/internal/otp"
)

// writeConfig drops a TOML file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, otp.DefaultExpirySeconds, cfg.OTP.ExpirySeconds)
	require.Equal(t, otp.DefaultMaxAttempts, cfg.OTP.MaxAttempts)
	require.Equal(t, otp.DefaultResendCooldownSeconds, cfg.OTP.ResendCooldownSeconds)
	require.Equal(t, "1s", cfg.Timers.TickInterval)
	require.True(t, cfg.Analytics.Enabled)
	require.NotEmpty(t, cfg.Analytics.LogPath)
	require.NotEmpty(t, cfg.Analytics.DatabasePath)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[otp]
expiry_seconds = 120
max_attempts = 5

[timers]
tick_interval = "500ms"

[analytics]
enabled = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 120, cfg.OTP.ExpirySeconds)
	require.Equal(t, 5, cfg.OTP.MaxAttempts)
	// Untouched fields keep their defaults.
	require.Equal(t, otp.DefaultResendCooldownSeconds, cfg.OTP.ResendCooldownSeconds)
	require.Equal(t, "500ms", cfg.Timers.TickInterval)
	require.False(t, cfg.Analytics.Enabled)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_ClampsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*testing.T, *Config)
	}{
		{
			name:   "expiry below minimum",
			mutate: func(c *Config) { c.OTP.ExpirySeconds = 1 },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MinExpirySeconds, c.OTP.ExpirySeconds)
			},
		},
		{
			name:   "expiry above maximum",
			mutate: func(c *Config) { c.OTP.ExpirySeconds = 9999 },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MaxExpirySeconds, c.OTP.ExpirySeconds)
			},
		},
		{
			name:   "attempts below minimum",
			mutate: func(c *Config) { c.OTP.MaxAttempts = 0 },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MinMaxAttempts, c.OTP.MaxAttempts)
			},
		},
		{
			name:   "attempts above maximum",
			mutate: func(c *Config) { c.OTP.MaxAttempts = 50 },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MaxMaxAttempts, c.OTP.MaxAttempts)
			},
		},
		{
			name:   "negative cooldown",
			mutate: func(c *Config) { c.OTP.ResendCooldownSeconds = -5 },
			check: func(t *testing.T, c *Config) {
				require.Zero(t, c.OTP.ResendCooldownSeconds)
			},
		},
		{
			name:   "cooldown above maximum",
			mutate: func(c *Config) { c.OTP.ResendCooldownSeconds = 7200 },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MaxResendCooldownSeconds, c.OTP.ResendCooldownSeconds)
			},
		},
		{
			name:   "unparseable tick interval",
			mutate: func(c *Config) { c.Timers.TickInterval = "fast" },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, "1s", c.Timers.TickInterval)
			},
		},
		{
			name:   "tick interval below minimum",
			mutate: func(c *Config) { c.Timers.TickInterval = "1ms" },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MinTickInterval, c.TickInterval())
			},
		},
		{
			name:   "tick interval above maximum",
			mutate: func(c *Config) { c.Timers.TickInterval = "1m" },
			check: func(t *testing.T, c *Config) {
				require.Equal(t, MaxTickInterval, c.TickInterval())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			cfg.Validate()
			tc.check(t, cfg)
		})
	}
}

func TestValidate_DefaultsAreAlreadyLegal(t *testing.T) {
	cfg := Default()
	cfg.Validate()
	require.Equal(t, Default(), cfg)
}

// =============================================================================
// ACCESSORS
// =============================================================================

func TestOTPPolicy(t *testing.T) {
	cfg := Default()
	cfg.OTP.ExpirySeconds = 90
	cfg.OTP.MaxAttempts = 4
	cfg.OTP.ResendCooldownSeconds = 15

	p := cfg.OTPPolicy()
	require.Equal(t, 90, p.ExpirySeconds)
	require.Equal(t, 4, p.MaxAttempts)
	require.Equal(t, 15, p.ResendCooldownSeconds)
}

func TestTickInterval(t *testing.T) {
	cfg := Default()
	require.Equal(t, time.Second, cfg.TickInterval())

	cfg.Timers.TickInterval = "250ms"
	require.Equal(t, 250*time.Millisecond, cfg.TickInterval())

	// Garbage falls back rather than breaking the timers.
	cfg.Timers.TickInterval = "???"
	require.Equal(t, time.Second, cfg.TickInterval())
}
