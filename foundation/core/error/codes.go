// File: codes.go
// Title: Error Code Definitions
// Description: Defines error codes for listfile processing and the
//              configuration layer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Listfile codes replace service and business codes

package error

// Code represents a structured error code for categorizing errors
type Code string

// Core error codes
const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeIOError      Code = "IO_ERROR"
)

// Listfile processing codes
const (
	// CodeLexError is declared for completeness; tokenizing never fails.
	CodeLexError Code = "LEX_ERROR"

	CodeMalformedStatement Code = "MALFORMED_STATEMENT"
	CodeInvalidSubform     Code = "INVALID_SUBFORM"
	CodeUnknownCommand     Code = "UNKNOWN_COMMAND"
	CodeLayoutOverflow     Code = "LAYOUT_OVERFLOW"
	CodeCheckFailed        Code = "CHECK_FAILED"
)

// Configuration codes
const (
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeIOError,
		CodeLexError, CodeMalformedStatement, CodeInvalidSubform, CodeUnknownCommand,
		CodeLayoutOverflow, CodeCheckFailed,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexError, CodeMalformedStatement, CodeInvalidSubform, CodeUnknownCommand:
		return "parse"
	case CodeLayoutOverflow, CodeCheckFailed:
		return "format"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeMalformedStatement, CodeIOError, CodeInvalidConfig, CodeConfigError:
		return SeverityHigh
	case CodeInvalidSubform, CodeLayoutOverflow, CodeCheckFailed:
		return SeverityMedium
	case CodeUnknownCommand, CodeNotFound, CodeInvalidInput, CodeMissingConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
