// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helper functions for the authgate-tui
// application.
//
// # Key Functions
//
// Input Sanitizing:
//   - DigitsOnly: Keep digit characters and truncate to a maximum length
//
// Display Formatting:
//   - FormatSeconds: Render a second count as mm:ss
//
// # Usage
//
//	code := util.DigitsOnly(raw, 6)
//	label := util.FormatSeconds(125) // "02:05"
package util
