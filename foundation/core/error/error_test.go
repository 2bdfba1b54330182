// File: error_test.go
// Title: Core Error Tests
// Description: Tests for coded errors, wrapping and chain lookups.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Rewritten for listfile codes

package error

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	err := New("boom")
	if err.Code() != CodeUnknown {
		t.Errorf("Expected CodeUnknown, got %v", err.Code())
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Expected SeverityMedium, got %v", err.Severity())
	}
	if err.Error() != "boom" {
		t.Errorf("Expected 'boom', got %q", err.Error())
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeMalformedStatement, SeverityHigh},
		{CodeInvalidSubform, SeverityMedium},
		{CodeUnknownCommand, SeverityLow},
		{CodeInternal, SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, err.Severity())
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityLow).WithCode(CodeMalformedStatement)
	if explicit.Severity() != SeverityLow {
		t.Errorf("Expected explicit severity to win, got %v", explicit.Severity())
	}
}

func TestWrapInheritsCodeAndDetails(t *testing.T) {
	inner := New("missing ')'").WithCode(CodeMalformedStatement).WithLocation(3, 4)
	outer := Wrap(inner, "parse failed")

	if outer.Code() != CodeMalformedStatement {
		t.Errorf("Expected inherited code, got %v", outer.Code())
	}
	line, col, ok := outer.Location()
	if !ok || line != 3 || col != 4 {
		t.Errorf("Expected location 3:4, got %d:%d (%v)", line, col, ok)
	}
	if !errors.Is(outer, inner) {
		t.Error("Expected errors.Is to find the wrapped error")
	}
	if outer.Error() != "parse failed: missing ')'" {
		t.Errorf("Unexpected message %q", outer.Error())
	}
	if Wrap(nil, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestLookupsThroughFmtWrapping(t *testing.T) {
	base := New("bad key").WithCode(CodeInvalidConfig)
	err := fmt.Errorf("loading .listfmt.toml: %w", base)

	if !HasCode(err, CodeInvalidConfig) {
		t.Error("Expected HasCode to see through fmt wrapping")
	}
	if GetCode(err) != CodeInvalidConfig {
		t.Errorf("Expected CodeInvalidConfig, got %v", GetCode(err))
	}
	if GetSeverity(err) != SeverityHigh {
		t.Errorf("Expected SeverityHigh, got %v", GetSeverity(err))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("Expected CodeUnknown for plain errors")
	}
}

func TestWrapTruncatesDeepChains(t *testing.T) {
	var err error = errors.New("root")
	for i := 0; i < MaxErrorChainDepth+2; i++ {
		err = Wrap(err, "level")
	}
	if !strings.Contains(err.Error(), "chain truncated") {
		t.Errorf("Expected truncated chain, got %q", err.Error())
	}
}

func TestCodeCategory(t *testing.T) {
	if CodeMalformedStatement.Category() != "parse" {
		t.Errorf("Expected parse, got %s", CodeMalformedStatement.Category())
	}
	if !CodeLayoutOverflow.IsValid() || Code("NOPE").IsValid() {
		t.Error("IsValid mismatch")
	}
}
