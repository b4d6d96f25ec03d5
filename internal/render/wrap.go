// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// wrap.go - greedy word wrap under a character budget.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WrapText wraps s into lines no wider than budget display cells, breaking
// only at word boundaries. A single word wider than the budget is emitted
// unsplit on its own line. Width counts terminal cells via go-runewidth, so
// double-width (CJK) characters count as two.
//
// Deterministic: the same input and budget always produce the same lines.
// Empty or all-whitespace input yields no lines, and joining the returned
// lines with spaces reproduces the input's word sequence exactly.
func WrapText(s string, budget int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if budget < 1 {
		budget = 1
	}

	lines := make([]string, 0, 1)
	cur := words[0]
	curWidth := runewidth.StringWidth(cur)

	for _, word := range words[1:] {
		w := runewidth.StringWidth(word)
		if curWidth+1+w > budget {
			lines = append(lines, cur)
			cur = word
			curWidth = w
			continue
		}
		cur += " " + word
		curWidth += 1 + w
	}

	return append(lines, cur)
}
