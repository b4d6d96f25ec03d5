// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - roadmap composition: layout, drawing, PNG output.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/jeranaias/pathforge/internal/util"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options is the explicit configuration for one render pass. Nothing in this
// package reads process-wide state; two renders with different Options are
// fully independent.
type Options struct {
	Theme Theme

	// Canvas geometry.
	Width        int
	CenterX      float64
	TopMargin    float64
	BottomMargin float64
	Gap          float64

	// Box geometry.
	BoxWidth     float64
	WrapChars    int
	BoxPadding   float64 // vertical padding added on top of the line stack
	LineHeight   float64
	TextInset    float64 // first line offset below the box top
	CornerRadius float64
	StrokeWidth  float64

	// Arrow geometry.
	HeadLength    float64
	HeadHalfWidth float64
	ArrowMargin   float64 // gap between a box edge and the arrow end point

	// Font. Empty FontPath uses the embedded Go Regular face.
	FontPath string
	FontSize float64
}

// DefaultOptions returns the stock geometry: a 1000px-wide canvas with
// 620px boxes wrapped at 38 characters.
func DefaultOptions() Options {
	return Options{
		Theme:         ThemePurple,
		Width:         1000,
		CenterX:       500,
		TopMargin:     60,
		BottomMargin:  60,
		Gap:           35,
		BoxWidth:      620,
		WrapChars:     38,
		BoxPadding:    34,
		LineHeight:    18,
		TextInset:     12,
		CornerRadius:  20,
		StrokeWidth:   3,
		HeadLength:    14,
		HeadHalfWidth: 7,
		ArrowMargin:   6,
		FontSize:      15,
	}
}

// =============================================================================
// COMPOSITION
// =============================================================================

// Render lays out and draws the full roadmap, returning the finished image.
// Boxes appear top to bottom in step order; consecutive boxes are joined by
// an arrow from the earlier box's bottom center to the later box's top
// center, inset by the arrow margin. An empty step sequence produces a valid
// background-only image.
//
// Errors from this function are rendering failures (font loading), never
// generation failures; the two are distinct conditions for callers.
func Render(steps []string, opts Options) (image.Image, error) {
	face, err := LoadFontFace(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}
	measurer := NewFaceMeasurer(face, opts.LineHeight)

	// One shared pass produces wrapping, box placement, and canvas height.
	layout := ComputeLayout(steps, opts, measurer)

	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(opts.Theme.Background)
	dc.Clear()
	dc.SetFontFace(face)

	// DrawString positions text by baseline; the inset positions the glyph
	// top, so shift down by the face ascent.
	ascent := float64(face.Metrics().Ascent) / 64

	for _, box := range layout.Boxes {
		drawBox(dc, box, opts, measurer, ascent)
	}

	for i := 0; i+1 < len(layout.Boxes); i++ {
		x1, y1, x2, y2 := connectorFor(layout.Boxes[i], layout.Boxes[i+1], opts)
		drawArrow(dc, x1, y1, x2, y2, opts)
	}

	return dc.Image(), nil
}

// RenderPNG renders the roadmap and returns the encoded PNG bytes. Callers
// that serve the image over HTTP use this directly; file output goes through
// RenderToFile.
func RenderPNG(steps []string, opts Options) ([]byte, error) {
	img, err := Render(steps, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderToFile renders the roadmap and writes it as a PNG to path. The write
// is atomic, so concurrent renders to distinct paths never observe partial
// files. Concurrent renders to the SAME path are a caller error; supply
// distinct paths per invocation.
func RenderToFile(steps []string, opts Options, path string) error {
	data, err := RenderPNG(steps, opts)
	if err != nil {
		return err
	}

	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func drawBox(dc *gg.Context, box Box, opts Options, m TextMeasurer, ascent float64) {
	dc.SetColor(opts.Theme.BoxFill)
	dc.DrawRoundedRectangle(box.X, box.Y, box.W, box.H, opts.CornerRadius)
	dc.FillPreserve()
	dc.SetColor(opts.Theme.Line)
	dc.SetLineWidth(opts.StrokeWidth)
	dc.Stroke()

	dc.SetColor(opts.Theme.Text)
	baseline := box.Y + opts.TextInset + ascent
	for _, line := range box.Lines {
		// Center each line on the measured width, not a character estimate.
		lineW := m.MeasureWidth(line)
		dc.DrawString(line, box.CenterX()-lineW/2, baseline)
		baseline += m.LineHeight()
	}
}
