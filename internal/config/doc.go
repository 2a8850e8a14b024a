// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// authgate-tui.
//
// Configuration is TOML with sensible defaults and clamping validation:
// out-of-range values are pulled back into their legal range rather than
// rejected. A missing config file is not an error; defaults apply.
//
// An optional fsnotify-based watcher re-loads the file on change so
// policy updates (expiry, attempt budget, cooldown) apply to subsequent
// issuances without a restart.
//
// # Key Types
//
//   - Config: The complete configuration tree
//   - Watcher: Debounced file watcher invoking a reload callback
//
// # Usage
//
//	cfg, err := config.Load(path)
//	cfg.Validate()
//
//	w, err := config.NewWatcher(path, func(c *config.Config) {
//	    engine.SetPolicy(c.OTPPolicy())
//	})
//	defer w.Close()
package config
