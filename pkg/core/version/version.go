// ============================================================================
// listfmt - CMake listfile formatter
// ============================================================================
//
// Package:     version
// Description: Central version management for the tool and its components
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for listfmt
const (
	// Tool version
	Listfmt = "0.2.0"

	// Component versions. Formatter changes alter output, so a bump means
	// previously formatted files may be reformatted.
	Formatter = "0.2.0"
	Linter    = "0.2.0"
	Registry  = "0.1.0"
)

// Build information, set with -ldflags at release time
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "format", "formatter":
		return Formatter
	case "lint", "linter":
		return Linter
	case "registry":
		return Registry
	default:
		return Listfmt
	}
}

// Components lists the component names reported by the version command
func Components() []string {
	return []string{"formatter", "linter", "registry"}
}

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("listfmt v%s (%s, built %s)", Listfmt, GitCommit, BuildDate)
}
