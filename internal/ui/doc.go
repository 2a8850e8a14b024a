// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal presentation layer for authgate-tui.
//
// The UI owns no authentication state. It dispatches events into the
// auth engine and re-renders whenever the engine publishes a new state
// value on its conflated stream. One view exists per state variant:
// email entry, OTP entry, and the live session screen.
package ui
