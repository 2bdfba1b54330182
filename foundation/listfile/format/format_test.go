// File: format_test.go
// Title: Listfile Formatter Tests
// Description: Tests for statement layout selection, packing, comments,
//              format-off regions, options and the idempotence and width
//              properties.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/listfmt/foundation/core/config"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/parser"
)

func formatWith(t *testing.T, text string, mutate func(cfg *config.Config)) Result {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	result, err := Format(text, cfg, nil)
	if err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	return result
}

func width(w int) func(cfg *config.Config) {
	return func(cfg *config.Config) { cfg.Format.LineWidth = w }
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mutate   func(cfg *config.Config)
		expected string
	}{
		{
			name:     "Canonical case and spacing",
			input:    "PROJECT( foo )\n",
			expected: "project(foo)\n",
		},
		{
			name:     "Flow control indents bodies",
			input:    "if(A)\nmessage(STATUS \"hi\")\nelse()\nmessage(STATUS \"ho\")\nendif()\n",
			expected: "if(A)\n  message(STATUS \"hi\")\nelse()\n  message(STATUS \"ho\")\nendif()\n",
		},
		{
			name:     "Blank lines collapse",
			input:    "\n\na()\n\n\n\nb()\n\n",
			expected: "a()\n\nb()\n",
		},
		{
			name:     "Statements on one line are split",
			input:    "a() b()\n",
			expected: "a()\nb()\n",
		},
		{
			name:     "Empty argument list",
			input:    "foo(\n  )\n",
			expected: "foo()\n",
		},
		{
			name:   "Too many arguments go one per line",
			input:  "set(SOURCES alpha.cc beta.cc gamma.cc delta.cc epsilon.cc)\n",
			mutate: width(40),
			expected: "set(SOURCES\n" +
				"    alpha.cc\n" +
				"    beta.cc\n" +
				"    gamma.cc\n" +
				"    delta.cc\n" +
				"    epsilon.cc)\n",
		},
		{
			name:     "Argument limit applies when the line fits",
			input:    "foo(a b c d e)\n",
			mutate:   func(cfg *config.Config) { cfg.Format.MaxSubargsPerLine = 3 },
			expected: "foo(a\n    b\n    c\n    d\n    e)\n",
		},
		{
			name:     "Argument limit reached stays on one line",
			input:    "foo(a b c)\n",
			mutate:   func(cfg *config.Config) { cfg.Format.MaxSubargsPerLine = 3 },
			expected: "foo(a b c)\n",
		},
		{
			name:     "Argument limit disabled",
			input:    "foo(a b c d e)\n",
			mutate:   func(cfg *config.Config) { cfg.Format.MaxSubargsPerLine = 0 },
			expected: "foo(a b c d e)\n",
		},
		{
			name:     "Greedy packing",
			input:    "foo(aaaaaaaaaa bbbbbbbbbb cccccccccc)\n",
			mutate:   width(30),
			expected: "foo(aaaaaaaaaa bbbbbbbbbb\n    cccccccccc)\n",
		},
		{
			name:     "Indented when aligned overflows",
			input:    "a_very_long_command_name(argument_one argument_two)\n",
			mutate:   width(30),
			expected: "a_very_long_command_name(\n  argument_one argument_two)\n",
		},
		{
			name:   "Shell command runs",
			input:  "add_custom_command(OUTPUT out.txt COMMAND tool --input in.txt --output out.txt -v)\n",
			mutate: width(60),
			expected: "add_custom_command(OUTPUT out.txt\n" +
				"                   COMMAND tool\n" +
				"                           --input in.txt\n" +
				"                           --output out.txt\n" +
				"                           -v)\n",
		},
		{
			name:     "Statement comment stays on the line",
			input:    "foo(a)   # note\n",
			expected: "foo(a) # note\n",
		},
		{
			name:   "Statement comment wraps under itself",
			input:  "foo(a) # one two three four five six seven eight\n",
			mutate: width(40),
			expected: "foo(a) # one two three four five six\n" +
				"       # seven eight\n",
		},
		{
			name:   "Statement comment moves beneath",
			input:  "foo(aaaaaaa bbbbbbb ccccccc) # this comment is rather long indeed\n",
			mutate: width(30),
			expected: "foo(aaaaaaa bbbbbbb ccccccc)\n" +
				"# this comment is rather long\n" +
				"# indeed\n",
		},
		{
			name:     "Argument comments keep their line",
			input:    "foo(a # first\n    b)\n",
			expected: "foo(a # first\n    b)\n",
		},
		{
			name:     "Comment reflow",
			input:    "# one two three four five\n",
			mutate:   width(20),
			expected: "# one two three four\n# five\n",
		},
		{
			name:     "Comment lists",
			input:    "# Items:\n#\n#  - first\n#  - second\n",
			expected: "# Items:\n#\n# * first\n# * second\n",
		},
		{
			name:     "Format off region is verbatim",
			input:    "foo( a )\n# cmake-format: off\nFOO(  a   b )\n# cmake-format: on\nbar( b )\n",
			expected: "foo(a)\n# cmake-format: off\nFOO(  a   b )\n# cmake-format: on\nbar(b)\n",
		},
		{
			name:     "Byte order mark dropped",
			input:    "\uFEFFfoo()\n",
			expected: "foo()\n",
		},
		{
			name:     "Byte order mark emitted",
			input:    "foo()\n",
			mutate:   func(cfg *config.Config) { cfg.Format.EmitByteOrderMark = true },
			expected: "\uFEFFfoo()\n",
		},
		{
			name:     "Upper command case",
			input:    "foo()\nMessage(hi)\n",
			mutate:   func(cfg *config.Config) { cfg.Format.CommandCase = "upper" },
			expected: "FOO()\nMESSAGE(hi)\n",
		},
		{
			name:     "Canonical case keeps unknown commands",
			input:    "My_Func()\nMESSAGE(hi)\n",
			expected: "My_Func()\nmessage(hi)\n",
		},
		{
			name:     "Upper keyword case",
			input:    "cmake_minimum_required(version 3.10 fatal_error)\n",
			mutate:   func(cfg *config.Config) { cfg.Format.KeywordCase = "upper" },
			expected: "cmake_minimum_required(VERSION 3.10 FATAL_ERROR)\n",
		},
		{
			name:     "Control names separated",
			input:    "if(A)\nendif()\nfoo()\n",
			mutate:   func(cfg *config.Config) { cfg.Format.SeparateCtrlNameWithSpace = true },
			expected: "if (A)\nendif ()\nfoo()\n",
		},
		{
			name:  "Dangling parenthesis",
			input: "set(SOURCES alpha.cc beta.cc gamma.cc delta.cc)\n",
			mutate: func(cfg *config.Config) {
				cfg.Format.LineWidth = 30
				cfg.Format.DanglingParens = true
			},
			expected: "set(SOURCES\n" +
				"    alpha.cc\n" +
				"    beta.cc\n" +
				"    gamma.cc\n" +
				"    delta.cc\n" +
				")\n",
		},
		{
			name:     "Autosort sortable sources",
			input:    "add_library(foo STATIC c.cc a.cc b.cc)\n",
			mutate:   func(cfg *config.Config) { cfg.Format.Autosort = true },
			expected: "add_library(foo STATIC a.cc b.cc c.cc)\n",
		},
		{
			name:     "Autosort off keeps order",
			input:    "add_library(foo STATIC c.cc a.cc b.cc)\n",
			expected: "add_library(foo STATIC c.cc a.cc b.cc)\n",
		},
		{
			name:     "Canonical hash rulers",
			input:    "##########\n",
			mutate:   func(cfg *config.Config) { cfg.Format.LineWidth = 20; cfg.Markup.CanonicalizeHashrulers = true },
			expected: "####################\n",
		},
		{
			name:     "Markup disabled",
			input:    "#   a    b\n",
			mutate:   func(cfg *config.Config) { cfg.Markup.EnableMarkup = false },
			expected: "#   a    b\n",
		},
		{
			name:     "First comment literal",
			input:    "#   keep    this\n\nfoo()\n#   a    b\n",
			mutate:   func(cfg *config.Config) { cfg.Markup.FirstCommentIsLiteral = true },
			expected: "#   keep    this\n\nfoo()\n# a b\n",
		},
		{
			name:     "Literal comment pattern",
			input:    "#!   keep    this\n",
			mutate:   func(cfg *config.Config) { cfg.Markup.LiteralCommentPattern = `^!` },
			expected: "#!   keep    this\n",
		},
		{
			name:     "Windows line endings",
			input:    "foo()\nbar()\n",
			mutate:   func(cfg *config.Config) { cfg.Format.LineEnding = "windows" },
			expected: "foo()\r\nbar()\r\n",
		},
		{
			name:     "Auto line endings follow the majority",
			input:    "foo()\r\nbar()\r\nbaz()\n",
			mutate:   func(cfg *config.Config) { cfg.Format.LineEnding = "auto" },
			expected: "foo()\r\nbar()\r\nbaz()\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatWith(t, tt.input, tt.mutate)
			if diff := cmp.Diff(tt.expected, got.Text); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnsortTagKeepsOrder(t *testing.T) {
	got := formatWith(t, "add_library(foo #[[cmake-format: unsort]] c.cc a.cc)\n", func(cfg *config.Config) {
		cfg.Format.Autosort = true
	})
	if !strings.Contains(got.Text, "c.cc a.cc") {
		t.Errorf("Expected source order kept, got:\n%s", got.Text)
	}
}

func TestSortableTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Sortable tag sorts on one line",
			input:    "set(X #[[cmf:sortable]] c.cc a.cc b.cc)\n",
			expected: "set(X #[[cmf:sortable]] a.cc b.cc c.cc)\n",
		},
		{
			name:     "Unsort tag keeps source order",
			input:    "set(X #[[cmf:sortable]] c.cc a.cc b.cc #[[cmf:unsort]])\n",
			expected: "set(X #[[cmf:sortable]] c.cc a.cc b.cc #[[cmf:unsort]])\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatWith(t, tt.input, func(cfg *config.Config) { cfg.Format.Autosort = true })
			if diff := cmp.Diff(tt.expected, got.Text); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}


var corpus = []string{
	"cmake_minimum_required(VERSION 3.10)\nproject(demo LANGUAGES C CXX)\n",
	"set(SOURCES alpha.cc beta.cc gamma.cc delta.cc epsilon.cc zeta.cc eta.cc theta.cc)\n",
	"if((A AND B) OR (C AND NOT D) OR EXISTS ${CMAKE_CURRENT_SOURCE_DIR}/some/rather/long/path.txt)\n" +
		"  message(STATUS \"found\")\nelseif(E)\nelse()\nendif()\n",
	"install(TARGETS foo bar baz ARCHIVE DESTINATION lib LIBRARY DESTINATION lib RUNTIME DESTINATION bin COMPONENT runtime)\n",
	"add_custom_command(OUTPUT ${CMAKE_BINARY_DIR}/generated.h COMMAND ${PYTHON_EXECUTABLE} generate.py --output ${CMAKE_BINARY_DIR}/generated.h --verbose DEPENDS generate.py template.h.in WORKING_DIRECTORY ${CMAKE_SOURCE_DIR} COMMENT \"Generating header\" VERBATIM)\n",
	"function(my_function arg1 arg2)\n  foreach(item ${ARGN})\n    list(APPEND result ${item}) # collect\n  endforeach()\nendfunction()\n",
	"# This is a long comment paragraph that certainly needs to be wrapped at some column because it is long.\n#\n# * bullet one\n# * bullet two that is also quite long and will need wrapping at the configured width\n\nfoo(a # trailing comment on an argument that is long enough to wrap around the line\n    b c)\n",
	"target_link_libraries(mytarget PUBLIC some::library another::library PRIVATE internal::thing yet::another::library and::more)\n",
	"file(WRITE ${CMAKE_BINARY_DIR}/out.txt \"line one\nline two\")\n",
	"execute_process(COMMAND git rev-parse --short HEAD WORKING_DIRECTORY ${CMAKE_SOURCE_DIR} OUTPUT_VARIABLE GIT_HASH OUTPUT_STRIP_TRAILING_WHITESPACE)\n",
}

func TestIdempotence(t *testing.T) {
	for _, w := range []int{40, 80} {
		for i, input := range corpus {
			first := formatWith(t, input, width(w))
			second := formatWith(t, first.Text, width(w))
			if diff := cmp.Diff(first.Text, second.Text); diff != "" {
				t.Errorf("Corpus %d at width %d not idempotent (-first +second):\n%s", i, w, diff)
			}
		}
	}
}

func TestWidthRespected(t *testing.T) {
	for i, input := range corpus {
		if strings.Contains(input, "\"line one\n") {
			continue
		}
		result := formatWith(t, input, width(60))
		if !result.ReflowValid {
			continue
		}
		for _, l := range strings.Split(strings.TrimSuffix(result.Text, "\n"), "\n") {
			if textWidth(l) > 60 {
				t.Errorf("Corpus %d: line exceeds width: %q", i, l)
			}
		}
	}
}

func TestOverflowReported(t *testing.T) {
	result := formatWith(t, "foo(an_argument_that_is_much_longer_than_the_line)\n", width(20))
	if result.ReflowValid {
		t.Error("Expected ReflowValid to be false for an unbreakable argument")
	}
	if !strings.Contains(result.Text, "an_argument_that_is_much_longer_than_the_line") {
		t.Errorf("Expected best effort output, got %q", result.Text)
	}
}

func TestFormatOffRoundTrip(t *testing.T) {
	for i, input := range corpus {
		wrapped := "# cmake-format: off\n" + input + "# cmake-format: on\n"
		got := formatWith(t, wrapped, width(40))
		if got.Text != wrapped {
			t.Errorf("Corpus %d: format-off region changed:\n%s", i, cmp.Diff(wrapped, got.Text))
		}
	}
}

func TestFormatOffKeepsLineEndings(t *testing.T) {
	input := "# cmake-format: off\r\nfoo(  a )\r\n# cmake-format: on\nbar()\n"
	got := formatWith(t, input, nil)
	expected := "# cmake-format: off\r\nfoo(  a )\r\n# cmake-format: on\nbar()\n"
	if diff := cmp.Diff(expected, got.Text); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatOffIndentedInBody(t *testing.T) {
	input := "if(X)\n# cmake-format: off\n  foo(  a )\n  # cmake-format: on\n  bar( b )\nendif()\n"
	expected := "if(X)\n  # cmake-format: off\n  foo(  a )\n  # cmake-format: on\n  bar(b)\nendif()\n"
	got := formatWith(t, input, nil)
	if diff := cmp.Diff(expected, got.Text); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestMultilineStringUntouched(t *testing.T) {
	input := "file(WRITE out.txt \"first\n  second\")\n"
	got := formatWith(t, input, nil)
	if got.Text != input {
		t.Errorf("Expected multi-line string kept, got %q", got.Text)
	}
}

func TestLineEnding(t *testing.T) {
	tests := []struct {
		mode     string
		source   string
		expected string
	}{
		{"unix", "a\r\nb\r\n", "\n"},
		{"windows", "a\nb\n", "\r\n"},
		{"auto", "a\r\nb\r\nc\n", "\r\n"},
		{"auto", "a\r\nb\nc\n", "\n"},
		{"auto", "a\r\nb\n", "\n"},
		{"auto", "", "\n"},
	}
	for _, tt := range tests {
		if got := LineEnding(tt.mode, tt.source); got != tt.expected {
			t.Errorf("LineEnding(%q, %q): expected %q, got %q", tt.mode, tt.source, tt.expected, got)
		}
	}
}

func TestLayoutDump(t *testing.T) {
	tree, err := parser.Parse(lexer.Tokenize("a_very_long_command_name(argument_one argument_two)\n"), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg := config.Default()
	cfg.Format.LineWidth = 30
	root, lines, valid := Layout(tree, cfg)
	if !valid {
		t.Error("Expected a valid layout")
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %v", lines)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, root); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	dump := buf.String()
	for _, want := range []string{"BODY[VERTICAL] (0,0)", "STATEMENT[INDENTED] (0,0)", "ARGGROUP[HORIZONTAL] (1,2) extent:27"} {
		if !strings.Contains(dump, want) {
			t.Errorf("Expected %q in dump:\n%s", want, dump)
		}
	}
}

func TestInvalidLiteralPattern(t *testing.T) {
	cfg := config.Default()
	cfg.Markup.LiteralCommentPattern = "([a-"
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("Expected error for invalid literal comment pattern")
	}
}
