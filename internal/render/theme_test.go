// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"errors"
	"image/color"
	"testing"
)

func TestLookupTheme_Known(t *testing.T) {
	theme, err := LookupTheme("purple")
	if err != nil {
		t.Fatalf("LookupTheme failed: %v", err)
	}
	if theme.BoxFill != (color.RGBA{0xE1, 0xBE, 0xE7, 0xFF}) {
		t.Errorf("purple box fill = %v", theme.BoxFill)
	}
	if theme.Background != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("purple background = %v, want white", theme.Background)
	}
}

func TestLookupTheme_Dark(t *testing.T) {
	theme, err := LookupTheme("dark")
	if err != nil {
		t.Fatalf("LookupTheme failed: %v", err)
	}
	if theme.Background != (color.RGBA{0x1E, 0x1E, 0x1E, 0xFF}) {
		t.Errorf("dark background = %v", theme.Background)
	}
	if theme.Text != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("dark text = %v, want white", theme.Text)
	}
}

func TestLookupTheme_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"Purple", "BLUE", " dark "} {
		if _, err := LookupTheme(name); err != nil {
			t.Errorf("LookupTheme(%q) failed: %v", name, err)
		}
	}
}

func TestLookupTheme_Unknown(t *testing.T) {
	_, err := LookupTheme("neon")
	if err == nil {
		t.Fatal("LookupTheme accepted an unknown theme")
	}
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("error = %v, want ErrUnknownTheme", err)
	}
}

func TestLookupTheme_EmptyName(t *testing.T) {
	if _, err := LookupTheme(""); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("empty name error = %v, want ErrUnknownTheme", err)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"blue", "dark", "purple"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("ThemeNames[%d] = %q, want %q", i, names[i], name)
		}
	}
}
