// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// measure.go - text measurement capability behind a narrow interface.
package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// TextMeasurer is the measurement capability the layout algorithm depends
// on. Keeping it narrow keeps layout independent of any drawing backend.
type TextMeasurer interface {
	// MeasureWidth returns the rendered width of s in pixels.
	MeasureWidth(s string) float64
	// LineHeight returns the fixed vertical advance per text line in pixels.
	LineHeight() float64
}

type faceMeasurer struct {
	face       font.Face
	lineHeight float64
}

// NewFaceMeasurer wraps a font face as a TextMeasurer with a fixed line
// height. The line height is configured rather than derived from the face so
// box sizing stays stable across font substitutions.
func NewFaceMeasurer(face font.Face, lineHeight float64) TextMeasurer {
	return &faceMeasurer{face: face, lineHeight: lineHeight}
}

func (m *faceMeasurer) MeasureWidth(s string) float64 {
	// MeasureString returns 26.6 fixed point; 64 units per pixel.
	return float64(font.MeasureString(m.face, s)) / 64
}

func (m *faceMeasurer) LineHeight() float64 {
	return m.lineHeight
}

// LoadFontFace parses a TrueType font and returns a face at the given size.
// An empty path loads the embedded Go Regular font, so rendering works with
// no font files installed.
func LoadFontFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		data = b
	}

	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
