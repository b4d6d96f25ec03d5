// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan turns a topic, skill level and duration into an ordered
// list of learning milestones using an LLM.
//
// This package builds the curriculum prompt, calls the model through a
// narrow client interface, and parses the response into clean step
// strings ready for rendering and export.
//
// # Key Types
//
//   - Request: Topic, level and duration for one roadmap
//   - Plan: Generated roadmap with ordered milestone steps
//   - Level: Skill level enumeration (Beginner, Intermediate, Advanced)
//   - Generator: Creates plans from requests via an LLMClient
//
// # Usage
//
// Generate a roadmap from a request:
//
//	generator := plan.NewGenerator(client)
//	p, err := generator.Generate(ctx, plan.Request{
//		Topic:    "Rust",
//		Level:    plan.LevelBeginner,
//		Duration: "6 months",
//	})
//
// # Failure Handling
//
// Generation failures carry the ErrGenerationFailed sentinel so callers
// can distinguish them from rendering or configuration problems.
// FallbackPlan provides a deterministic stand-in for callers that opt
// in; the generation error is still surfaced alongside it.
package plan
