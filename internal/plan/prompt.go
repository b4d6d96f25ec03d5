// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - curriculum prompt construction

package plan

import "fmt"

// =============================================================================
// PROMPT STYLES
// =============================================================================

// promptStyles nudge the model toward a different roadmap shape on each
// generation so repeated requests for the same topic do not converge on
// one template.
var promptStyles = []string{
	"hands-on focused",
	"project-driven",
	"theory-first",
	"tool-oriented",
	"problem-solving based",
	"real-world use cases",
}

// PromptStyles returns a copy of the phrasing styles used to vary
// generations.
func PromptStyles() []string {
	out := make([]string, len(promptStyles))
	copy(out, promptStyles)
	return out
}

// =============================================================================
// PROMPT CONSTRUCTION
// =============================================================================

// buildPrompt constructs the curriculum-designer prompt for one
// request. The step count and month count are precomputed so the
// prompt and the response parser always agree on n.
func buildPrompt(req Request, months, steps int, style string) string {
	return fmt.Sprintf(`You are an expert curriculum designer.

Create a RANDOM learning roadmap.
Domain: %s
Level: %s
Duration: %d months

Style: %s

Rules:
- Steps must vary on every generation
- No generic repeated templates
- Each step is a clear learning milestone
- Return EXACTLY %d steps
- One step per line
- No numbering`, req.Topic, req.Level, months, style, steps)
}
