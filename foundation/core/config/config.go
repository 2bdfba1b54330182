// File: config.go
// Title: Formatter Configuration
// Description: Typed configuration for the listfile formatter and linter,
//              loaded from TOML, YAML or JSON files. Unknown keys are
//              rejected with a suggestion for the closest known key.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-18 v0.2.0: Typed formatter configuration, JSON support, key
//                      suggestions and legacy flat layout

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatJSON represents JSON format
	FormatJSON

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "auto", "":
		return FormatAuto, nil
	}
	return FormatAuto, mdwerror.Newf("unsupported config format %q", name).
		WithCode(mdwerror.CodeInvalidInput).
		WithDetail("format", name)
}

// Config is the complete formatter and linter configuration
type Config struct {
	Format FormatConfig `toml:"format" yaml:"format" json:"format"`
	Markup MarkupConfig `toml:"markup" yaml:"markup" json:"markup"`
	Lint   LintConfig   `toml:"lint" yaml:"lint" json:"lint"`

	// AdditionalCommands declares argument grammars for commands the
	// builtin registry does not know, keyed by command name
	AdditionalCommands map[string]map[string]interface{} `toml:"additional_commands,omitempty" yaml:"additional_commands,omitempty" json:"additional_commands,omitempty"`

	// PerCommand overrides format options for individual commands
	PerCommand map[string]CommandOverride `toml:"per_command,omitempty" yaml:"per_command,omitempty" json:"per_command,omitempty"`

	// Path is the file the configuration was loaded from, empty for defaults
	Path string `toml:"-" yaml:"-" json:"-"`
}

// FormatConfig controls layout and rendering
type FormatConfig struct {
	LineWidth                 int    `toml:"line_width" yaml:"line_width" json:"line_width"`
	TabSize                   int    `toml:"tab_size" yaml:"tab_size" json:"tab_size"`
	MaxSubargsPerLine         int    `toml:"max_subargs_per_line" yaml:"max_subargs_per_line" json:"max_subargs_per_line"`
	Autosort                  bool   `toml:"autosort" yaml:"autosort" json:"autosort"`
	DanglingParens            bool   `toml:"dangle_parens" yaml:"dangle_parens" json:"dangle_parens"`
	LineEnding                string `toml:"line_ending" yaml:"line_ending" json:"line_ending"`
	CommandCase               string `toml:"command_case" yaml:"command_case" json:"command_case"`
	KeywordCase               string `toml:"keyword_case" yaml:"keyword_case" json:"keyword_case"`
	SeparateCtrlNameWithSpace bool   `toml:"separate_ctrl_name_with_space" yaml:"separate_ctrl_name_with_space" json:"separate_ctrl_name_with_space"`
	SeparateFnNameWithSpace   bool   `toml:"separate_fn_name_with_space" yaml:"separate_fn_name_with_space" json:"separate_fn_name_with_space"`
	MaxEmptyLines             int    `toml:"max_empty_lines" yaml:"max_empty_lines" json:"max_empty_lines"`
	EmitByteOrderMark         bool   `toml:"emit_byteorder_mark" yaml:"emit_byteorder_mark" json:"emit_byteorder_mark"`
}

// MarkupConfig controls comment reflow
type MarkupConfig struct {
	EnableMarkup           bool   `toml:"enable_markup" yaml:"enable_markup" json:"enable_markup"`
	BulletChar             string `toml:"bullet_char" yaml:"bullet_char" json:"bullet_char"`
	EnumChar               string `toml:"enum_char" yaml:"enum_char" json:"enum_char"`
	Fence                  string `toml:"fence" yaml:"fence" json:"fence"`
	FirstCommentIsLiteral  bool   `toml:"first_comment_is_literal" yaml:"first_comment_is_literal" json:"first_comment_is_literal"`
	LiteralCommentPattern  string `toml:"literal_comment_pattern" yaml:"literal_comment_pattern" json:"literal_comment_pattern"`
	HashrulerMinLength     int    `toml:"hashruler_min_length" yaml:"hashruler_min_length" json:"hashruler_min_length"`
	CanonicalizeHashrulers bool   `toml:"canonicalize_hashrulers" yaml:"canonicalize_hashrulers" json:"canonicalize_hashrulers"`
}

// LintConfig controls the lint rules
type LintConfig struct {
	Disabled        []string `toml:"disabled_codes" yaml:"disabled_codes" json:"disabled_codes"`
	FunctionPattern string   `toml:"function_pattern" yaml:"function_pattern" json:"function_pattern"`
	MacroPattern    string   `toml:"macro_pattern" yaml:"macro_pattern" json:"macro_pattern"`
	// MaxLineLength of zero uses the format line width
	MaxLineLength int `toml:"max_line_length" yaml:"max_line_length" json:"max_line_length"`
}

// CommandOverride replaces format options for a single command. Nil
// fields keep the global value.
type CommandOverride struct {
	MaxSubargsPerLine *int  `toml:"max_subargs_per_line,omitempty" yaml:"max_subargs_per_line,omitempty" json:"max_subargs_per_line,omitempty"`
	DanglingParens    *bool `toml:"dangle_parens,omitempty" yaml:"dangle_parens,omitempty" json:"dangle_parens,omitempty"`
	Autosort          *bool `toml:"autosort,omitempty" yaml:"autosort,omitempty" json:"autosort,omitempty"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			LineWidth:         80,
			TabSize:           2,
			MaxSubargsPerLine: 3,
			LineEnding:        "unix",
			CommandCase:       "canonical",
			KeywordCase:       "unchanged",
			MaxEmptyLines:     1,
		},
		Markup: MarkupConfig{
			EnableMarkup:       true,
			BulletChar:         "*",
			EnumChar:           ".",
			Fence:              "~~~",
			HashrulerMinLength: 10,
		},
		Lint: LintConfig{
			FunctionPattern: `^[0-9a-z_]+$`,
			MacroPattern:    `^[0-9A-Z_]+$`,
		},
	}
}

// ForCommand returns the format options in effect for a command
func (c *Config) ForCommand(name string) FormatConfig {
	out := c.Format
	override, ok := c.PerCommand[strings.ToLower(name)]
	if !ok {
		return out
	}
	if override.MaxSubargsPerLine != nil {
		out.MaxSubargsPerLine = *override.MaxSubargsPerLine
	}
	if override.DanglingParens != nil {
		out.DanglingParens = *override.DanglingParens
	}
	if override.Autosort != nil {
		out.Autosort = *override.Autosort
	}
	return out
}

// EffectiveLintLineLength returns the line length limit of the linter
func (c *Config) EffectiveLintLineLength() int {
	if c.Lint.MaxLineLength > 0 {
		return c.Lint.MaxLineLength
	}
	return c.Format.LineWidth
}

// Load loads and validates configuration from a file, detecting the
// format from the extension
func Load(filePath string) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeInvalidInput)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeMissingConfig
		}
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithDetail("filePath", filePath)
	}

	cfg, err := LoadFromString(string(content), detectFormat(filePath))
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("config file %s", filePath)).
			WithDetail("filePath", filePath)
	}
	cfg.Path = filePath
	return cfg, nil
}

// LoadFromString parses configuration content on top of the defaults
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}

	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, err
	}
	data, err = normalizeSections(data)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := decodeInto(cfg, data); err != nil {
		return nil, err
	}
	if len(cfg.PerCommand) > 0 {
		lowered := make(map[string]CommandOverride, len(cfg.PerCommand))
		for name, override := range cfg.PerCommand {
			lowered[strings.ToLower(name)] = override
		}
		cfg.PerCommand = lowered
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// detectFormat determines the configuration format from file extension
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// parseContent parses configuration content based on format
func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").WithCode(mdwerror.CodeInvalidConfig)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, mdwerror.Wrap(err, "YAML parse error").WithCode(mdwerror.CodeInvalidConfig)
		}
		if data == nil {
			data = make(map[string]interface{})
		}
	case FormatJSON:
		if len(bytes.TrimSpace(content)) == 0 {
			return data, nil
		}
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, mdwerror.Wrap(err, "JSON parse error").WithCode(mdwerror.CodeInvalidConfig)
		}
	default:
		return nil, mdwerror.Newf("unsupported format: %s", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("format", format.String())
	}
	return data, nil
}

// sectionTypes maps each sectioned table to the struct holding its keys
var sectionTypes = map[string]reflect.Type{
	"format": reflect.TypeOf(FormatConfig{}),
	"markup": reflect.TypeOf(MarkupConfig{}),
	"lint":   reflect.TypeOf(LintConfig{}),
}

// freeSections hold user defined keys
var freeSections = map[string]bool{
	"additional_commands": true,
	"per_command":         true,
}

// keysOf returns the json tag names of a struct type
func keysOf(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// KnownKeys returns every accepted key as "section.key", sorted
func KnownKeys() []string {
	var out []string
	for section, t := range sectionTypes {
		for _, key := range keysOf(t) {
			out = append(out, section+"."+key)
		}
	}
	for section := range freeSections {
		out = append(out, section)
	}
	sort.Strings(out)
	return out
}

// normalizeSections moves keys written at the top level, the layout used
// by .cmake-format files, into their section and rejects unknown keys.
func normalizeSections(data map[string]interface{}) (map[string]interface{}, error) {
	owner := make(map[string]string)
	for section, t := range sectionTypes {
		for _, key := range keysOf(t) {
			owner[key] = section
		}
	}

	out := make(map[string]interface{}, len(data))
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := data[key]
		switch {
		case freeSections[key]:
			out[key] = value
		case sectionTypes[key] != nil:
			table, ok := value.(map[string]interface{})
			if !ok {
				return nil, mdwerror.Newf("%s must be a table, got %T", key, value).
					WithCode(mdwerror.CodeInvalidConfig).
					WithDetail("key", key)
			}
			allowed := keysOf(sectionTypes[key])
			for sub := range table {
				if !contains(allowed, sub) {
					return nil, unknownKey(key+"."+sub, KnownKeys())
				}
			}
			merged := sectionMap(out, key)
			for sub, v := range table {
				merged[sub] = v
			}
		case owner[key] != "":
			sectionMap(out, owner[key])[key] = value
		default:
			return nil, unknownKey(key, KnownKeys())
		}
	}
	return out, nil
}

func sectionMap(data map[string]interface{}, section string) map[string]interface{} {
	if m, ok := data[section].(map[string]interface{}); ok {
		return m
	}
	m := make(map[string]interface{})
	data[section] = m
	return m
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// unknownKey builds the error for an unrecognized key, suggesting the
// closest known key when one matches
func unknownKey(key string, known []string) error {
	err := mdwerror.Newf("unknown configuration key %q", key).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("key", key)
	if suggestion := Suggest(key, known); suggestion != "" {
		err = mdwerror.Newf("unknown configuration key %q, did you mean %q?", key, suggestion).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("key", key).
			WithDetail("suggestion", suggestion)
	}
	return err
}

// Suggest returns the best fuzzy match for key among known, or "". The
// section prefix is ignored when matching.
func Suggest(key string, known []string) string {
	short := key
	if i := strings.LastIndex(key, "."); i >= 0 {
		short = key[i+1:]
	}
	if short == "" {
		return ""
	}
	matches := fuzzy.Find(short, known)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// decodeInto applies normalized data on top of cfg
func decodeInto(cfg *Config, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return mdwerror.Wrap(err, "failed to encode configuration").WithCode(mdwerror.CodeInvalidConfig)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return mdwerror.Newf("configuration key %q expects %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value).
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("key", typeErr.Field)
		}
		return mdwerror.Wrap(err, "failed to decode configuration").WithCode(mdwerror.CodeInvalidConfig)
	}
	return nil
}

// Dump writes the configuration in the given format
func (c *Config) Dump(w io.Writer, format Format) error {
	switch format {
	case FormatTOML, FormatAuto:
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return mdwerror.Wrap(err, "failed to encode TOML").WithCode(mdwerror.CodeIOError)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return mdwerror.Wrap(err, "failed to encode YAML").WithCode(mdwerror.CodeIOError)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return mdwerror.Wrap(err, "failed to encode JSON").WithCode(mdwerror.CodeIOError)
		}
	default:
		return mdwerror.Newf("unsupported format: %s", format).WithCode(mdwerror.CodeInvalidInput)
	}
	return nil
}
