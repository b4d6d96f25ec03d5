// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// layout.go - the shared sizing and placement pass.
package render

import "math"

// Box is one positioned flowchart node: the wrapped lines of a single step
// and the pixel rectangle that will contain them. Boxes exist only for the
// duration of one render pass.
type Box struct {
	Lines []string
	X     float64 // left edge
	Y     float64 // top edge
	W     float64
	H     float64
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Layout is the fully computed diagram geometry: every box placed, canvas
// dimensions fixed.
type Layout struct {
	Boxes  []Box
	Width  int
	Height int
}

// ComputeLayout wraps, sizes, and places every step in a single pass. The
// same pass yields both the box positions and the total canvas height, so
// the precomputed height and the placement can never disagree.
//
// Geometry: boxes stack top to bottom starting at the top margin, each
// followed by the inter-box gap (including the last, the documented
// convention), then the bottom margin closes the canvas. Box height is the
// fixed vertical padding plus one line height per wrapped line. An empty
// step sequence yields a valid canvas of just the two margins.
func ComputeLayout(steps []string, opts Options, m TextMeasurer) Layout {
	lineHeight := m.LineHeight()
	boxes := make([]Box, 0, len(steps))

	y := opts.TopMargin
	for _, step := range steps {
		lines := WrapText(step, opts.WrapChars)
		h := opts.BoxPadding + float64(len(lines))*lineHeight
		boxes = append(boxes, Box{
			Lines: lines,
			X:     opts.CenterX - opts.BoxWidth/2,
			Y:     y,
			W:     opts.BoxWidth,
			H:     h,
		})
		y += h + opts.Gap
	}

	return Layout{
		Boxes:  boxes,
		Width:  opts.Width,
		Height: int(math.Ceil(y + opts.BottomMargin)),
	}
}
