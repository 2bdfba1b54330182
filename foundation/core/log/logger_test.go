// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields and foundation
//              error integration of the zap backed logger.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive logger tests
// - 2026-10-18 v0.2.0: Rewritten against the zap backend

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		minLevel Level
		logAt    func(*Logger)
		want     bool
	}{
		{"debug suppressed at info", LevelInfo, func(l *Logger) { l.Debug("x") }, false},
		{"info passes at info", LevelInfo, func(l *Logger) { l.Info("x") }, true},
		{"warn passes at info", LevelInfo, func(l *Logger) { l.Warn("x") }, true},
		{"trace passes at trace", LevelTrace, func(l *Logger) { l.Trace("x") }, true},
		{"audit ignores minimum", LevelFatal, func(l *Logger) { l.Audit("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithConfig(Config{Level: tt.minLevel, Format: FormatJSON, Output: &buf})
			tt.logAt(logger)
			got := buf.Len() > 0
			if got != tt.want {
				t.Errorf("Expected written=%v, got %v (%q)", tt.want, got, buf.String())
			}
		})
	}
}

func TestWithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithConfig(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf, Name: "listfmt"})
	child := base.WithField("component", "listfile-parser").WithCorrelationID("run-1")

	child.Info("parsed", Fields{"statements": 3})
	base.Info("plain")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["component"] != "listfile-parser" {
		t.Errorf("Expected component field, got %v", entries[0]["component"])
	}
	if entries[0]["correlation_id"] != "run-1" {
		t.Errorf("Expected correlation id, got %v", entries[0]["correlation_id"])
	}
	if entries[0]["statements"] != float64(3) {
		t.Errorf("Expected statements=3, got %v", entries[0]["statements"])
	}
	if entries[0]["logger"] != "listfmt" {
		t.Errorf("Expected logger name, got %v", entries[0]["logger"])
	}
	if _, ok := entries[1]["component"]; ok {
		t.Error("WithField() should not modify the parent logger")
	}
}

func TestLevelNames(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelTrace, Format: FormatJSON, Output: &buf})
	logger.Trace("t")
	logger.Audit("a")

	entries := decodeLines(t, &buf)
	if entries[0]["level"] != "trace" || entries[1]["level"] != "audit" {
		t.Errorf("Expected trace/audit level names, got %v/%v", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	err := mdwerror.New("unterminated statement").
		WithCode(mdwerror.CodeMalformedStatement).
		WithDetail("line", 4)
	logger.LogError(err)
	logger.LogError(errors.New("plain"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["error_code"] != string(mdwerror.CodeMalformedStatement) {
		t.Errorf("Expected error_code, got %v", entries[0]["error_code"])
	}
	if entries[0]["level"] != "error" {
		t.Errorf("Expected high severity to log at error, got %v", entries[0]["level"])
	}
	if entries[0]["error_line"] != float64(4) {
		t.Errorf("Expected error_line detail, got %v", entries[0]["error_line"])
	}
}

func TestSetLevelIsShared(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelError, Format: FormatText, Output: &buf})
	child := logger.WithField("k", "v")

	logger.SetLevel(LevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("Expected child to follow SetLevel, got %q", buf.String())
	}
	if logger.GetLevel() != LevelDebug {
		t.Errorf("Expected LevelDebug, got %v", logger.GetLevel())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("WARNING"); err != nil || l != LevelWarn {
		t.Errorf("Expected LevelWarn, got %v (%v)", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
	if f, err := ParseFormat("console"); err != nil || f != FormatText {
		t.Errorf("Expected FormatText, got %v (%v)", f, err)
	}
}
