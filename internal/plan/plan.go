// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plan.go - roadmap request and plan types

package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/pathforge/internal/util"
)

// =============================================================================
// REQUEST
// =============================================================================

// MaxTopicLen caps topic length. Longer input is almost always a paste
// accident and produces unusable prompts.
const MaxTopicLen = 200

// Request describes one roadmap to generate.
type Request struct {
	// Topic is the subject to build a roadmap for (e.g. "Rust", "MLOps")
	Topic string

	// Level is the learner's starting point
	Level Level

	// Duration is free-form duration text (e.g. "6 months")
	Duration string
}

// Validate checks the request before any LLM call is made.
func (r Request) Validate() error {
	topic := strings.TrimSpace(r.Topic)
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	// Rune count, not byte count; CJK topics are legitimate input.
	if n := util.RuneLen(topic); n > MaxTopicLen {
		return fmt.Errorf("topic too long: %d characters (max: %d)", n, MaxTopicLen)
	}
	return nil
}

// Months returns the parsed duration in months.
func (r Request) Months() int {
	return ParseMonths(r.Duration)
}

// =============================================================================
// PLAN
// =============================================================================

// Plan is a generated learning roadmap.
type Plan struct {
	// Topic the roadmap covers
	Topic string `json:"topic"`

	// Level the roadmap assumes
	Level Level `json:"level"`

	// Duration as originally requested
	Duration string `json:"duration"`

	// Steps are the ordered milestones, one rendered box each
	Steps []string `json:"steps"`

	// GeneratedAt is when the plan was produced
	GeneratedAt time.Time `json:"generated_at"`

	// Fallback is true when this plan came from FallbackPlan rather
	// than the model
	Fallback bool `json:"fallback"`
}

// IsEmpty reports whether the plan has no steps.
func (p *Plan) IsEmpty() bool {
	return len(p.Steps) == 0
}

// Summary returns a one-line description for logs and status output.
func (p *Plan) Summary() string {
	return fmt.Sprintf("%s (%s, %s): %d steps", p.Topic, p.Level, p.Duration, len(p.Steps))
}
