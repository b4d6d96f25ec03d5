// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// themes.go - theme listing command.
//
// Command: pathforge themes
// Short:   List diagram themes with color swatches
//
// Examples:
//   pathforge themes
//   pathforge themes --json

package cli

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/render"
)

// HandleThemes handles the "themes" command.
func HandleThemes(args Args) error {
	// A broken config file should not break a listing command, so this
	// takes the warn-and-default Global() path instead of loadConfig.
	cfg := config.Global()
	defaultTheme := strings.ToLower(strings.TrimSpace(cfg.Render.Theme))

	entries := make([]ThemeEntry, 0, len(render.ThemeNames()))
	for _, name := range render.ThemeNames() {
		t, err := render.LookupTheme(name)
		if err != nil {
			return err
		}
		entries = append(entries, ThemeEntry{
			Name:       t.Name,
			Background: hexRGBA(t.Background),
			BoxFill:    hexRGBA(t.BoxFill),
			Line:       hexRGBA(t.Line),
			Text:       hexRGBA(t.Text),
		})
	}

	if args.JSON {
		NewJSONResponse("themes", ThemesData{Themes: entries, Default: defaultTheme}).Print()
		return nil
	}

	fmt.Println(TitleStyle.Render("Diagram Themes"))
	for _, e := range entries {
		name := ValueStyle.Render(e.Name)
		if e.Name == defaultTheme {
			name += HighlightStyle.Render(" (default)")
		}
		fmt.Println(name)
		fmt.Printf("  %s %s  %s %s  %s %s  %s %s\n",
			swatch(e.Background), DimStyle.Render("background "+e.Background),
			swatch(e.BoxFill), DimStyle.Render("box "+e.BoxFill),
			swatch(e.Line), DimStyle.Render("line "+e.Line),
			swatch(e.Text), DimStyle.Render("text "+e.Text))
	}
	return nil
}

// hexRGBA formats a color as a #RRGGBB hex string.
func hexRGBA(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// swatch renders a small colored block for a hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
