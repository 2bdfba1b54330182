// File: markup_test.go
// Title: Comment Markup Engine Tests
// Description: Tests for item classification, list nesting and rendering.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func itemKinds(items []Item) []Kind {
	out := make([]Kind, len(items))
	for i, item := range items {
		out[i] = item.Kind
	}
	return out
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []Kind
	}{
		{
			name:     "Paragraphs",
			lines:    []string{"Hello world", "", "Hello world"},
			expected: []Kind{Paragraph, Separator, Paragraph},
		},
		{
			name: "Lists",
			lines: []string{
				"This is a paragraph",
				"",
				"* this is a",
				"* bulleted list",
				"",
				"  1. this is another list",
				"  2. of two items",
				"",
				"This is a paragraph",
			},
			expected: []Kind{Paragraph, Separator, BulletList, Separator, EnumList, Separator, Paragraph},
		},
		{
			name: "Notes",
			lines: []string{
				"This is a comment",
				"that should be joined but",
				"TODO(josh): This todo should not be joined.",
				"NOTE(josh): Nor this note.",
				"",
			},
			expected: []Kind{Paragraph, Note, Note, Separator},
		},
		{
			name: "Rulers",
			lines: []string{
				"--------------------",
				"This is some",
				"text that reflows",
				"--------------------",
				"",
			},
			expected: []Kind{Ruler, Paragraph, Ruler, Separator},
		},
		{
			name: "Fences",
			lines: []string{
				"~~~",
				"this is some",
				"   verbatim text",
				"~~~~~~",
				"",
			},
			expected: []Kind{Fence, Verbatim, Fence, Separator},
		},
		{
			name:     "Consecutive blanks collapse",
			lines:    []string{"a", "", "", "", "b"},
			expected: []Kind{Paragraph, Separator, Paragraph},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemKinds(Parse(tt.lines))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListIndentation(t *testing.T) {
	items := Parse([]string{
		"* this is a",
		"* bulleted list",
		"",
		"  * this is another list",
		"  * of two items",
		"",
		"    * this is a third list",
	})
	expected := []struct {
		index  int
		indent int
	}{{0, 0}, {2, 2}, {4, 4}}
	for _, e := range expected {
		if items[e.index].Kind != BulletList {
			t.Errorf("Item %d: expected BULLET_LIST, got %s", e.index, items[e.index].Kind)
		}
		if items[e.index].Indent != e.indent {
			t.Errorf("Item %d: expected indent %d, got %d", e.index, e.indent, items[e.index].Indent)
		}
	}
}

func TestUnalignedContinuation(t *testing.T) {
	items := Parse([]string{"* first item", "continues here", "* second"})
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if len(items[0].Lines) != 2 {
		t.Fatalf("Expected 2 list elements, got %v", items[0].Lines)
	}
	if !strings.Contains(items[0].Lines[0], "continues here") {
		t.Errorf("Expected continuation folded into first element, got %q", items[0].Lines[0])
	}
}

func TestVerbatimPreserved(t *testing.T) {
	items := Parse([]string{"```cmake", " keep   this", "```"})
	lines := FormatItems(DefaultOptions(), 20, items)
	expected := []string{"~~~ cmake", "keep   this", "~~~"}
	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Errorf("FormatItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestFenceLanguageTag(t *testing.T) {
	tests := []struct {
		name     string
		fence    string
		expected string
	}{
		{name: "Spaced tag kept", fence: "~~~ cmake", expected: "~~~ cmake"},
		{name: "Attached tag spaced", fence: "```cmake", expected: "~~~ cmake"},
		{name: "Long fence without tag", fence: "~~~~~~", expected: "~~~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Parse([]string{tt.fence, "body", "~~~"})
			lines := FormatItems(DefaultOptions(), 40, items)
			if len(lines) == 0 || lines[0] != tt.expected {
				t.Errorf("Expected opening fence %q, got %v", tt.expected, lines)
			}
		})
	}
}

func TestFormatItems(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		width    int
		expected []string
	}{
		{
			name:     "Paragraph wraps",
			lines:    []string{"one two three", "four five"},
			width:    10,
			expected: []string{"one two", "three four", "five"},
		},
		{
			name:     "Bullets hang",
			lines:    []string{"- alpha beta gamma"},
			width:    12,
			expected: []string{"* alpha beta", "  gamma"},
		},
		{
			name:     "Enum renumbers",
			lines:    []string{"3. a", "7. b"},
			width:    20,
			expected: []string{"1. a", "2. b"},
		},
		{
			name:     "Nested bullets indent",
			lines:    []string{"* a", "", "  * b"},
			width:    20,
			expected: []string{"* a", "", "  * b"},
		},
		{
			name:     "Ruler untouched",
			lines:    []string{"=== Section ==="},
			width:    5,
			expected: []string{"=== Section ==="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatItems(DefaultOptions(), tt.width, Parse(tt.lines))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("FormatItems() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapLongWord(t *testing.T) {
	got := Wrap("a verylongword b", 5)
	expected := []string{"a", "verylongword", "b"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
	}
}
