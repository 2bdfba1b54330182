// File: doc.go
// Title: Package Documentation for stringx
// Description: Package stringx provides string helpers measured in display
//              cells.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core string utilities
// - 2026-10-18 v0.2.0: Reduced to display-width helpers

// Package stringx provides string helpers measured in terminal cells.
//
// The formatter and the linter both limit lines by columns as a terminal or
// editor shows them, so a CJK identifier occupies two columns per character
// and a combining accent none. Width, Truncate and PadRight use that
// measure.
//
// Usage:
//
//	if stringx.Width(line) > limit {
//		...
//	}
//	fmt.Println(stringx.PadRight(key, 32, ' ') + value)
package stringx
