// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render draws learning roadmaps as vertical flowchart images.
//
// The pipeline is deterministic geometry: each step string is word-wrapped
// under a character budget, sized into a rounded box, and the boxes are
// stacked top to bottom on a vertical axis with arrows joining consecutive
// boxes. Canvas height is computed from content, never fixed.
//
// # Components
//
//   - WrapText: greedy word wrap under a display-cell budget
//   - TextMeasurer: narrow measurement capability the layout depends on
//   - ComputeLayout: the single shared pass that wraps, sizes, and places
//     every box and derives the canvas height
//   - Render / RenderToFile: draw the layout with a Theme into a PNG
//
// Layout depends only on the TextMeasurer interface, so it is independent of
// the drawing backend and testable with a fixed-metric measurer.
//
// # Usage
//
//	theme, err := render.LookupTheme("purple")
//	if err != nil {
//		return err // unknown theme is a configuration error
//	}
//	opts := render.DefaultOptions()
//	opts.Theme = theme
//	err = render.RenderToFile(steps, opts, "roadmap.png")
//
// Concurrent renders are safe as long as callers supply distinct output
// paths; nothing in this package is shared mutable state.
package render
