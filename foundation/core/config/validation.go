// File: validation.go
// Title: Configuration Validation Implementation
// Description: Range, enumeration and pattern checks for formatter
//              configuration values. All violations are reported together.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of validation
// - 2026-10-18 v0.2.0: Typed rules for formatter options

package config

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"go.uber.org/multierr"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
)

// ValidationRule defines validation criteria for an integer option
type ValidationRule struct {
	Min int
	Max int // zero means unbounded
}

// Allowed values of the enumerated options
var (
	LineEndings  = []string{"unix", "windows", "auto"}
	CommandCases = []string{"lower", "upper", "canonical", "unchanged"}
	KeywordCases = []string{"upper", "lower", "unchanged"}
)

// ValidationResult contains the results of configuration validation
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks every option and returns all violations combined into a
// single error with code CodeInvalidConfig, or nil
func (c *Config) Validate() error {
	var errs error

	ints := []struct {
		key   string
		value int
		rule  ValidationRule
	}{
		{"format.line_width", c.Format.LineWidth, ValidationRule{Min: 10, Max: 1000}},
		{"format.tab_size", c.Format.TabSize, ValidationRule{Min: 1, Max: 16}},
		{"format.max_subargs_per_line", c.Format.MaxSubargsPerLine, ValidationRule{Min: 0}},
		{"format.max_empty_lines", c.Format.MaxEmptyLines, ValidationRule{Min: 0}},
		{"markup.hashruler_min_length", c.Markup.HashrulerMinLength, ValidationRule{Min: 0}},
		{"lint.max_line_length", c.Lint.MaxLineLength, ValidationRule{Min: 0}},
	}
	for _, check := range ints {
		errs = multierr.Append(errs, validateInt(check.key, check.value, check.rule))
	}

	errs = multierr.Append(errs, validateEnum("format.line_ending", c.Format.LineEnding, LineEndings))
	errs = multierr.Append(errs, validateEnum("format.command_case", c.Format.CommandCase, CommandCases))
	errs = multierr.Append(errs, validateEnum("format.keyword_case", c.Format.KeywordCase, KeywordCases))

	if strings.TrimSpace(c.Markup.BulletChar) == "" {
		errs = multierr.Append(errs, fmt.Errorf("markup.bullet_char must not be empty"))
	}
	if strings.TrimSpace(c.Markup.EnumChar) == "" {
		errs = multierr.Append(errs, fmt.Errorf("markup.enum_char must not be empty"))
	}
	if !validFence(c.Markup.Fence) {
		errs = multierr.Append(errs, fmt.Errorf("markup.fence must be three or more '`' or '~' characters, got %q", c.Markup.Fence))
	}

	errs = multierr.Append(errs, validatePattern("markup.literal_comment_pattern", c.Markup.LiteralCommentPattern))
	errs = multierr.Append(errs, validatePattern("lint.function_pattern", c.Lint.FunctionPattern))
	errs = multierr.Append(errs, validatePattern("lint.macro_pattern", c.Lint.MacroPattern))

	for name, override := range c.PerCommand {
		if override.MaxSubargsPerLine != nil {
			errs = multierr.Append(errs, validateInt("per_command."+name+".max_subargs_per_line",
				*override.MaxSubargsPerLine, ValidationRule{Min: 0}))
		}
	}

	if errs == nil {
		return nil
	}
	return mdwerror.Wrap(errs, "invalid configuration").
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("violations", len(multierr.Errors(errs)))
}

// Check runs Validate and reports the violations one per entry
func (c *Config) Check() *ValidationResult {
	result := &ValidationResult{Valid: true}
	err := c.Validate()
	if err == nil {
		return result
	}
	result.Valid = false
	var inner error = err
	if mdwErr, ok := err.(*mdwerror.Error); ok && mdwErr.Unwrap() != nil {
		inner = mdwErr.Unwrap()
	}
	for _, e := range multierr.Errors(inner) {
		result.Errors = append(result.Errors, e.Error())
	}
	return result
}

func validateInt(key string, value int, rule ValidationRule) error {
	if value < rule.Min {
		return fmt.Errorf("%s must be at least %d, got %d", key, rule.Min, value)
	}
	if rule.Max > 0 && value > rule.Max {
		return fmt.Errorf("%s must be at most %d, got %d", key, rule.Max, value)
	}
	return nil
}

func validateEnum(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
}

func validatePattern(key, pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
		return fmt.Errorf("%s is not a valid pattern: %v", key, err)
	}
	return nil
}

func validFence(fence string) bool {
	if len(fence) < 3 {
		return false
	}
	return strings.Trim(fence, "`") == "" || strings.Trim(fence, "~") == ""
}
