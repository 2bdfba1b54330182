// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The CLI maps severity to
//              the log level an error is reported at.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Trimmed alerting helpers

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a condition the run recovers from silently
	SeverityLow Severity = iota

	// SeverityMedium indicates a recovered condition worth a warning
	SeverityMedium

	// SeverityHigh aborts processing of one file
	SeverityHigh

	// SeverityCritical aborts the whole run
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsFatal reports whether the severity aborts processing
func (s Severity) IsFatal() bool {
	return s >= SeverityHigh
}
