// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// theme.go - the fixed diagram color palettes.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// ErrUnknownTheme is returned when a theme name is not in the registry.
// Callers must treat this as a configuration error and fail fast; there is
// no silent fallback to a default palette.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is an immutable set of four colors controlling diagram appearance.
// The line color is used for both box outlines and arrows.
type Theme struct {
	Name       string
	Background color.RGBA
	BoxFill    color.RGBA
	Line       color.RGBA
	Text       color.RGBA
}

var (
	white = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	black = color.RGBA{0x00, 0x00, 0x00, 0xFF}

	// ThemePurple is the default light palette.
	ThemePurple = Theme{
		Name:       "purple",
		Background: white,
		BoxFill:    color.RGBA{0xE1, 0xBE, 0xE7, 0xFF}, // #E1BEE7
		Line:       color.RGBA{0x6A, 0x1B, 0x9A, 0xFF}, // #6A1B9A
		Text:       black,
	}

	// ThemeBlue is the second light palette.
	ThemeBlue = Theme{
		Name:       "blue",
		Background: white,
		BoxFill:    color.RGBA{0xBB, 0xDE, 0xFB, 0xFF}, // #BBDEFB
		Line:       color.RGBA{0x1E, 0x88, 0xE5, 0xFF}, // #1E88E5
		Text:       black,
	}

	// ThemeDark is the dark palette.
	ThemeDark = Theme{
		Name:       "dark",
		Background: color.RGBA{0x1E, 0x1E, 0x1E, 0xFF}, // #1E1E1E
		BoxFill:    color.RGBA{0x2D, 0x2D, 0x2D, 0xFF}, // #2D2D2D
		Line:       color.RGBA{0xB0, 0xB0, 0xB0, 0xFF}, // #B0B0B0
		Text:       white,
	}
)

// themes is the fixed enumerated registry. There is no mechanism to add
// user-defined palettes.
var themes = map[string]Theme{
	ThemePurple.Name: ThemePurple,
	ThemeBlue.Name:   ThemeBlue,
	ThemeDark.Name:   ThemeDark,
}

// LookupTheme resolves a theme name case-insensitively. Unknown names return
// ErrUnknownTheme wrapped with the offending name and the valid set.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (valid: %s)",
			ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames returns the registered theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
