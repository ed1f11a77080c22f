// Package widgets renders console views on a terminal: tables, status
// badges, pager lines, toasts and detail drawers.
package widgets

import (
	"fmt"
	"strings"
)

// Theme selects the colour palette. Plain disables ANSI escapes entirely.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemePlain Theme = "plain"
)

// ParseTheme accepts any casing; empty input is the light theme.
func ParseTheme(v string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(v))); t {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark, ThemePlain:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light, dark or plain)", v)
	}
}

// Colored reports whether the theme emits ANSI escapes.
func (t Theme) Colored() bool {
	return t != ThemePlain
}

const reset = "\033[0m"

type palette struct {
	pass, fail, waived, na, info, errorC, dim string
}

var palettes = map[Theme]palette{
	ThemeLight: {
		pass: "\033[32m", fail: "\033[31m", waived: "\033[33m", na: "\033[90m",
		info: "\033[34m", errorC: "\033[31m", dim: "\033[90m",
	},
	ThemeDark: {
		pass: "\033[92m", fail: "\033[91m", waived: "\033[93m", na: "\033[37m",
		info: "\033[96m", errorC: "\033[91m", dim: "\033[37m",
	},
}

func (t Theme) paint(code, s string) string {
	if !t.Colored() || code == "" {
		return s
	}
	return code + s + reset
}

func (t Theme) palette() palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeLight]
}

// Dim renders secondary text such as disabled controls.
func (t Theme) Dim(s string) string {
	return t.paint(t.palette().dim, s)
}
