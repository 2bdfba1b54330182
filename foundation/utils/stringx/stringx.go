// File: stringx.go
// Title: Display-Aware String Utilities
// Description: String helpers measured in terminal cells rather than runes,
//              used wherever output is aligned or limited by column.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Widths in display cells via go-runewidth

package stringx

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s in terminal cells. East Asian wide
// characters count two cells, combining marks none.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Truncate shortens s to at most maxWidth cells, ending in ellipsis when
// anything was cut. It never splits a character.
func Truncate(s string, maxWidth int, ellipsis string) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	if Width(ellipsis) >= maxWidth {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// PadRight pads s with pad up to width cells. Longer strings are returned
// unchanged.
func PadRight(s string, width int, pad rune) string {
	missing := width - Width(s)
	if missing <= 0 {
		return s
	}
	padWidth := max(runewidth.RuneWidth(pad), 1)
	return s + strings.Repeat(string(pad), missing/padWidth)
}
