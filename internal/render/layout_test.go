// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"math"
	"testing"
)

// fixedMeasurer gives every rune a constant width so layout tests are
// independent of any real font.
type fixedMeasurer struct {
	runeWidth  float64
	lineHeight float64
}

func (m fixedMeasurer) MeasureWidth(s string) float64 {
	return float64(len([]rune(s))) * m.runeWidth
}

func (m fixedMeasurer) LineHeight() float64 { return m.lineHeight }

func testMeasurer() TextMeasurer {
	return fixedMeasurer{runeWidth: 7, lineHeight: 18}
}

func TestComputeLayout_Empty(t *testing.T) {
	layout := ComputeLayout(nil, DefaultOptions(), testMeasurer())

	if len(layout.Boxes) != 0 {
		t.Errorf("boxes = %d, want 0", len(layout.Boxes))
	}
	if layout.Width != 1000 {
		t.Errorf("width = %d, want 1000", layout.Width)
	}
	// Just the two margins; still a valid positive height.
	if layout.Height != 120 {
		t.Errorf("height = %d, want 120", layout.Height)
	}
}

func TestComputeLayout_SingleStep(t *testing.T) {
	layout := ComputeLayout([]string{"Learn variables"}, DefaultOptions(), testMeasurer())

	if len(layout.Boxes) != 1 {
		t.Fatalf("boxes = %d, want 1", len(layout.Boxes))
	}
	box := layout.Boxes[0]
	if box.Y != 60 {
		t.Errorf("box top = %v, want top margin 60", box.Y)
	}
	// One wrapped line: padding 34 + 18.
	if box.H != 52 {
		t.Errorf("box height = %v, want 52", box.H)
	}
	// 60 + (52 + 35) + 60, gap after the last box included.
	if layout.Height != 207 {
		t.Errorf("height = %d, want 207", layout.Height)
	}
}

func TestComputeLayout_ThreeSteps(t *testing.T) {
	steps := []string{"Learn variables", "Learn loops", "Build a project"}
	layout := ComputeLayout(steps, DefaultOptions(), testMeasurer())

	if len(layout.Boxes) != 3 {
		t.Fatalf("boxes = %d, want 3", len(layout.Boxes))
	}

	// Each step wraps to one line at budget 38: height 52 each.
	wantY := []float64{60, 147, 234}
	for i, box := range layout.Boxes {
		if box.Y != wantY[i] {
			t.Errorf("box[%d].Y = %v, want %v", i, box.Y, wantY[i])
		}
		if got := len(box.Lines); got != 1 {
			t.Errorf("box[%d] has %d lines, want 1", i, got)
		}
	}

	// 60 + 3*(52+35) + 60.
	if layout.Height != 381 {
		t.Errorf("height = %d, want 381", layout.Height)
	}
}

func TestComputeLayout_CenterAligned(t *testing.T) {
	layout := ComputeLayout([]string{"a", "bb"}, DefaultOptions(), testMeasurer())
	for i, box := range layout.Boxes {
		if box.X != 190 {
			t.Errorf("box[%d].X = %v, want 190 (centered 620 box at x=500)", i, box.X)
		}
		if box.CenterX() != 500 {
			t.Errorf("box[%d] center = %v, want 500", i, box.CenterX())
		}
	}
}

func TestComputeLayout_MultiLineStep(t *testing.T) {
	long := "Understand memory management garbage collection and runtime internals deeply"
	layout := ComputeLayout([]string{long}, DefaultOptions(), testMeasurer())

	box := layout.Boxes[0]
	if len(box.Lines) < 2 {
		t.Fatalf("expected wrapped step, got lines %v", box.Lines)
	}
	want := 34 + float64(len(box.Lines))*18
	if box.H != want {
		t.Errorf("box height = %v, want %v for %d lines", box.H, want, len(box.Lines))
	}
}

// Height must equal the placement cursor's final position plus the bottom
// margin for any step sequence: the two derive from one pass and may never
// diverge.
func TestComputeLayout_HeightMatchesPlacement(t *testing.T) {
	cases := [][]string{
		nil,
		{"one"},
		{"one", "two", "three", "four"},
		{"a very long step that should wrap across several lines when measured against the budget", "short"},
	}
	opts := DefaultOptions()

	for _, steps := range cases {
		layout := ComputeLayout(steps, opts, testMeasurer())

		cursor := opts.TopMargin
		for _, box := range layout.Boxes {
			if box.Y != cursor {
				t.Errorf("steps %d: box at %v, cursor at %v", len(steps), box.Y, cursor)
			}
			cursor = box.Bottom() + opts.Gap
		}

		want := int(math.Ceil(cursor + opts.BottomMargin))
		if layout.Height != want {
			t.Errorf("steps %d: height %d, want %d", len(steps), layout.Height, want)
		}
	}
}

func TestComputeLayout_OrderPreserved(t *testing.T) {
	steps := []string{"first", "second", "third"}
	layout := ComputeLayout(steps, DefaultOptions(), testMeasurer())

	for i := 1; i < len(layout.Boxes); i++ {
		if layout.Boxes[i].Y <= layout.Boxes[i-1].Bottom() {
			t.Errorf("box[%d] overlaps box[%d]", i, i-1)
		}
		if layout.Boxes[i].Lines[0] != steps[i] {
			t.Errorf("box[%d] holds %q, want %q", i, layout.Boxes[i].Lines[0], steps[i])
		}
	}
}
