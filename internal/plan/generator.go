// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// generator.go - roadmap generation from an LLM

package plan

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrGenerationFailed indicates the LLM call or its response parsing
// failed. Kept distinct from render and configuration errors so callers
// can report "generation failed" on its own.
var ErrGenerationFailed = errors.New("roadmap generation failed")

// IsGenerationFailed reports whether err came from plan generation.
func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

// =============================================================================
// LLM CLIENT INTERFACE
// =============================================================================

// LLMClient is the narrow interface the generator needs from an LLM
// backend.
type LLMClient interface {
	// GenerateCompletion generates a text completion from the LLM
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// =============================================================================
// PLAN GENERATOR
// =============================================================================

// minUsableSteps is the floor below which a parsed response counts as a
// generation failure. StepCount never requests fewer than three steps,
// so a response with fewer usable lines did not follow instructions.
const minUsableSteps = 3

// maxResponseSize bounds the raw model response accepted by the parser.
const maxResponseSize = 1024 * 1024

// Generator generates learning roadmaps from requests using an LLM.
type Generator struct {
	client LLMClient
	rng    *rand.Rand
}

// NewGenerator creates a new roadmap generator.
func NewGenerator(client LLMClient) *Generator {
	return &Generator{
		client: client,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the style-picking RNG. Tests use this to make
// prompt construction deterministic.
func (g *Generator) WithRand(rng *rand.Rand) *Generator {
	g.rng = rng
	return g
}

// Generate creates a roadmap for the request.
func (g *Generator) Generate(ctx context.Context, req Request) (*Plan, error) {
	if g.client == nil {
		return nil, fmt.Errorf("%w: LLM client not configured", ErrGenerationFailed)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	months := ParseMonths(req.Duration)
	steps := StepCount(req.Level, months)
	style := promptStyles[g.rng.Intn(len(promptStyles))]
	prompt := buildPrompt(req, months, steps, style)

	response, err := g.client.GenerateCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	parsed, err := parseSteps(response, steps)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return &Plan{
		Topic:       strings.TrimSpace(req.Topic),
		Level:       req.Level,
		Duration:    req.Duration,
		Steps:       parsed,
		GeneratedAt: time.Now(),
	}, nil
}

// =============================================================================
// RESPONSE PARSING
// =============================================================================

// stepPrefixPattern matches leading bullets ("- ", "* ") and numbering
// ("1. ", "2) ") that models emit despite the prompt rules.
var stepPrefixPattern = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// parseSteps turns raw model output into clean step strings. Models
// ignore formatting rules often enough that fences, bullets and
// numbering are stripped rather than rejected. At most n steps are
// kept; fewer than minUsableSteps is an error.
func parseSteps(response string, n int) ([]string, error) {
	if len(response) > maxResponseSize {
		return nil, fmt.Errorf("response too large: %d bytes (max: %d)", len(response), maxResponseSize)
	}

	var steps []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = stepPrefixPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		// Separator lines ("---", "===") survive the prefix strip.
		if strings.Trim(line, "-=*") == "" {
			continue
		}
		steps = append(steps, line)
		if len(steps) == n {
			break
		}
	}

	if len(steps) < minUsableSteps {
		return nil, fmt.Errorf("model returned %d usable step(s), want %d", len(steps), n)
	}
	return steps, nil
}

// =============================================================================
// FALLBACK
// =============================================================================

// FallbackPlan returns a deterministic roadmap used when generation
// fails and the caller opted in to fallbacks. The generation error is
// still reported to the caller; the fallback only keeps the artifact
// pipeline alive.
func FallbackPlan(req Request) *Plan {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "the topic"
	}
	return &Plan{
		Topic:    strings.TrimSpace(req.Topic),
		Level:    req.Level,
		Duration: req.Duration,
		Steps: []string{
			fmt.Sprintf("Learn the fundamentals of %s", topic),
			fmt.Sprintf("Practice %s with small daily exercises", topic),
			fmt.Sprintf("Build a personal project using %s", topic),
			fmt.Sprintf("Join a community and get feedback on your %s work", topic),
			fmt.Sprintf("Assess your progress and set the next %s goal", topic),
		},
		GeneratedAt: time.Now(),
		Fallback:    true,
	}
}
