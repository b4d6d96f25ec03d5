// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the pathforge application.
//
// This package contains common helpers used throughout the application for
// string display and crash-safe file operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - StringWidth: terminal display width (CJK-aware)
//   - PadRight: width-aware column padding
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - AtomicWriteFileWithDir: same, with explicit directory permissions
//
// # Usage
//
//	// Truncate long topics safely for display
//	display := util.TruncateRunes(topic, 50)
//
//	// Write artifacts atomically to prevent partial files
//	err := util.AtomicWriteFile(path, data, 0644)
package util
