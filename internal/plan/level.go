// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// level.go - skill levels, duration parsing, and step-count sizing

package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// SKILL LEVEL
// =============================================================================

// Level represents the learner's starting skill level.
type Level int

const (
	// LevelBeginner - no prior experience, shortest roadmaps
	LevelBeginner Level = iota

	// LevelIntermediate - working knowledge, mid-length roadmaps
	LevelIntermediate

	// LevelAdvanced - deep experience, longest roadmaps
	LevelAdvanced
)

// String returns the string representation of a level.
func (l Level) String() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return "Unknown"
	}
}

// MaxSteps returns the step cap for this level. A flowchart past the
// cap stops being readable as a single column.
func (l Level) MaxSteps() int {
	switch l {
	case LevelBeginner:
		return 6
	case LevelIntermediate:
		return 10
	case LevelAdvanced:
		return 14
	default:
		return 6
	}
}

// ParseLevel parses a level name case-insensitively. Unknown names are
// an error, not a silent default.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return LevelBeginner, nil
	case "intermediate":
		return LevelIntermediate, nil
	case "advanced":
		return LevelAdvanced, nil
	default:
		return 0, fmt.Errorf("unknown level %q (valid: beginner, intermediate, advanced)", s)
	}
}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// MarshalJSON encodes a level as its display name.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its display name, case-insensitively.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("level must be a string: %w", err)
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// =============================================================================
// DURATION
// =============================================================================

// DefaultMonths is assumed when duration text contains no number.
const DefaultMonths = 3

var monthsPattern = regexp.MustCompile(`\d+`)

// ParseMonths extracts a month count from free-form duration text such
// as "6 months" or "about 2 mo". The first integer found wins; text
// with no integer falls back to DefaultMonths.
func ParseMonths(duration string) int {
	match := monthsPattern.FindString(duration)
	if match == "" {
		return DefaultMonths
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return DefaultMonths
	}
	return n
}

// StepCount computes how many roadmap steps to request: two per month,
// at least three, capped by the level.
func StepCount(level Level, months int) int {
	n := months * 2
	if n < 3 {
		n = 3
	}
	if limit := level.MaxSteps(); n > limit {
		n = limit
	}
	return n
}
