// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// arrow.go - straight connector lines with triangular heads.
package render

import (
	"math"

	"github.com/fogleman/gg"
)

// connectorFor returns the arrow segment joining two vertically stacked
// boxes: tail at the earlier box's bottom center, head at the later box's
// top center, each inset by the arrow margin.
func connectorFor(from, to Box, opts Options) (x1, y1, x2, y2 float64) {
	return from.CenterX(), from.Bottom() + opts.ArrowMargin,
		to.CenterX(), to.Y - opts.ArrowMargin
}

// arrowHead computes the two back corners of a triangular head for a segment
// ending at (x2,y2). The corners sit headLen behind the tip along the
// segment direction, offset halfW to either side perpendicular to it.
//
// A zero-length segment gives atan2(0,0) = 0, so the degenerate head points
// along +x. That is the accepted edge case, not an error.
func arrowHead(x1, y1, x2, y2, headLen, halfW float64) (p1x, p1y, p2x, p2y float64) {
	angle := math.Atan2(y2-y1, x2-x1)
	sin, cos := math.Sincos(angle)

	bx := x2 - headLen*cos
	by := y2 - headLen*sin

	p1x = bx + halfW*sin
	p1y = by - halfW*cos
	p2x = bx - halfW*sin
	p2y = by + halfW*cos
	return p1x, p1y, p2x, p2y
}

// drawArrow draws the shaft from (x1,y1) to (x2,y2) and a filled head at the
// tip, both in the theme's line color.
func drawArrow(dc *gg.Context, x1, y1, x2, y2 float64, opts Options) {
	dc.SetColor(opts.Theme.Line)
	dc.SetLineWidth(opts.StrokeWidth)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()

	p1x, p1y, p2x, p2y := arrowHead(x1, y1, x2, y2, opts.HeadLength, opts.HeadHalfWidth)
	dc.MoveTo(x2, y2)
	dc.LineTo(p1x, p1y)
	dc.LineTo(p2x, p2y)
	dc.ClosePath()
	dc.Fill()
}
