// File: parser_test.go
// Title: Listfile Parser Tests
// Description: Tests for scope matching, comment attachment, keyword
//              dispatch, sortable groups and error locations.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser tests
// - 2026-10-18 v0.2.0: Listfile parser tests

package parser

import (
	"errors"
	"testing"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/registry"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New(Options{Registry: registry.MustNew(registry.Options{})})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	body, err := newTestParser(t).ParseText(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return body
}

func firstStatement(t *testing.T, body *ast.Node) *ast.Node {
	t.Helper()
	var stmt *ast.Node
	ast.Inspect(body, func(n *ast.Node) bool {
		if stmt == nil && n.Kind == ast.Statement {
			stmt = n
		}
		return stmt == nil
	})
	if stmt == nil {
		t.Fatal("Expected a statement")
	}
	return stmt
}

func countKind(n *ast.Node, kind ast.Kind) int {
	count := 0
	ast.Inspect(n, func(c *ast.Node) bool {
		if c.Kind == kind {
			count++
		}
		return true
	})
	return count
}

func TestParseLossless(t *testing.T) {
	inputs := []string{
		"",
		"project(demo)\n",
		"\uFEFFset(A 1)\r\n",
		"if(A AND (B OR NOT C))\n  message(STATUS \"x\") # why\nelseif(D)\nelse()\nendif()\n",
		"# leading\n# block\nfoo(a b # one\n    c) # two\n",
		"install(TARGETS foo bar\n  RUNTIME DESTINATION bin\n  LIBRARY DESTINATION lib)\n",
		"# cmake-format: off\nfoo(   a )\n# cmake-format: on\nbar()\n",
		"function(f a b)\n  foreach(x IN LISTS a)\n  endforeach()\nendfunction()\n",
		"set(X #[[cmf:sortable]] b.cc a.cc)\n",
		"file(WRITE out.txt \"hi\")\nfile(BOGUS x)\n",
		"message([==[bracket ]] text]==])\n",
	}
	for _, src := range inputs {
		body := parse(t, src)
		if body.Text() != src {
			t.Errorf("Expected lossless round trip for %q, got %q", src, body.Text())
		}
		if errs := ast.Validate(body); len(errs) > 0 {
			t.Errorf("Validate(%q) reported %v", src, errs)
		}
	}
}

func TestFlowControlScopes(t *testing.T) {
	body := parse(t, "if(A)\n  foo()\nelse()\n  bar()\nendif()\n")

	flows := body.Nodes()
	var flow *ast.Node
	for _, n := range flows {
		if n.Kind == ast.FlowControl {
			flow = n
		}
	}
	if flow == nil {
		t.Fatal("Expected a FlowControl node")
	}

	var kinds []ast.Kind
	for _, n := range flow.Nodes() {
		kinds = append(kinds, n.Kind)
	}
	expected := []ast.Kind{ast.Statement, ast.Body, ast.Statement, ast.Body, ast.Statement}
	if len(kinds) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("Child %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}
}

func TestScopeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"mismatched closer", "if(A)\nendwhile()\n", 1, 0},
		{"nested mismatch", "foreach(x a)\n  while(B)\n  endforeach()\nendforeach()\n", 2, 2},
		{"unclosed", "\nfunction(f)\n", 2, 0},
		{"closer without opener", "foo()\nendif()\n", 2, 0},
		{"else outside if", "while(A)\nelse()\nendwhile()\n", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser(t).ParseText(tt.input)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !mdwerror.HasCode(err, mdwerror.CodeMalformedStatement) {
				t.Errorf("Expected MALFORMED_STATEMENT, got %v", mdwerror.GetCode(err))
			}
			var mdwErr *mdwerror.Error
			if !errors.As(err, &mdwErr) {
				t.Fatalf("Expected *mdwerror.Error, got %T", err)
			}
			line, column, ok := mdwErr.Location()
			if !ok || line != tt.line || column != tt.column {
				t.Errorf("Expected location %d:%d, got %d:%d", tt.line, tt.column, line, column)
			}
		})
	}
}

func TestMalformedStatements(t *testing.T) {
	inputs := []string{
		"foo bar",
		"foo",
		"foo(a b",
		"foo(a (b c)",
		")",
		"\"quoted\"()",
	}
	for _, src := range inputs {
		if _, err := newTestParser(t).ParseText(src); err == nil {
			t.Errorf("Expected error for %q", src)
		} else if !mdwerror.HasCode(err, mdwerror.CodeMalformedStatement) {
			t.Errorf("Expected MALFORMED_STATEMENT for %q, got %v", src, mdwerror.GetCode(err))
		}
	}
}

func TestTrailingComments(t *testing.T) {
	t.Run("same line folds into statement", func(t *testing.T) {
		body := parse(t, "foo() # bar\n")
		stmt := firstStatement(t, body)
		comment := stmt.TrailingComment()
		if comment == nil {
			t.Fatal("Expected a trailing comment")
		}
		if comment.Text() != "# bar" {
			t.Errorf("Expected '# bar', got %q", comment.Text())
		}
	})

	t.Run("next line stays in body", func(t *testing.T) {
		body := parse(t, "foo()\n# bar\n")
		stmt := firstStatement(t, body)
		if stmt.TrailingComment() != nil {
			t.Error("Expected no trailing comment")
		}
		if countKind(body, ast.Comment) != 1 {
			t.Errorf("Expected one body comment, got %d", countKind(body, ast.Comment))
		}
	})

	t.Run("aligned continuation joins", func(t *testing.T) {
		body := parse(t, "foo(a # one\n      # two\n    b)\n")
		stmt := firstStatement(t, body)
		var arg *ast.Node
		ast.Inspect(stmt, func(n *ast.Node) bool {
			if arg == nil && n.Kind == ast.Argument {
				arg = n
			}
			return true
		})
		if arg == nil || arg.TrailingComment() == nil {
			t.Fatal("Expected argument with trailing comment")
		}
		if got := arg.TrailingComment().Text(); got != "# one\n      # two" {
			t.Errorf("Expected merged comment, got %q", got)
		}
	})

	t.Run("body comments merge", func(t *testing.T) {
		body := parse(t, "# one\n# two\n\n# three\n")
		if got := countKind(body, ast.Comment); got != 2 {
			t.Errorf("Expected 2 comment blocks, got %d", got)
		}
	})
}

func TestKeywordDispatch(t *testing.T) {
	body := parse(t, "add_custom_command(OUTPUT out.txt COMMAND echo hi)\n")
	args := firstStatement(t, body).ArgGroup()
	if args == nil {
		t.Fatal("Expected an argument group")
	}

	var keywords []string
	for _, n := range args.Nodes() {
		if n.Kind == ast.KeywordGroup {
			keywords = append(keywords, n.Child(ast.Keyword).Text())
		}
	}
	if len(keywords) != 2 || keywords[0] != "OUTPUT" || keywords[1] != "COMMAND" {
		t.Errorf("Expected [OUTPUT COMMAND], got %v", keywords)
	}
}

func TestFlagsAndPositionals(t *testing.T) {
	body := parse(t, "cmake_minimum_required(VERSION 3.5 FATAL_ERROR)\n")
	stmt := firstStatement(t, body)
	if got := countKind(stmt, ast.Flag); got != 1 {
		t.Errorf("Expected 1 flag, got %d", got)
	}
	if got := countKind(stmt, ast.KeywordGroup); got != 1 {
		t.Errorf("Expected 1 keyword group, got %d", got)
	}
}

func TestInvalidSubformFallsBack(t *testing.T) {
	body := parse(t, "install(BOGUS a b)\n")
	stmt := firstStatement(t, body)
	if got := countKind(stmt, ast.Argument); got != 3 {
		t.Errorf("Expected 3 arguments, got %d", got)
	}
	if got := countKind(stmt, ast.KeywordGroup); got != 0 {
		t.Errorf("Expected no keyword groups, got %d", got)
	}
}

func TestSortableGroups(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sortable bool
	}{
		{"tagged set", "set(X #[[cmf:sortable]] b.cc a.cc)\n", true},
		{"untagged set", "set(X b.cc a.cc)\n", false},
		{"library sources", "add_library(foo STATIC b.cc a.cc)\n", true},
		{"imported library", "add_library(foo SHARED IMPORTED)\n", false},
		{"unsort tag", "add_executable(foo #[[cmf:unsort]] b.cc a.cc)\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := parse(t, tt.input)
			found := false
			ast.Inspect(body, func(n *ast.Node) bool {
				if n.Kind == ast.PositionalGroup && n.Sortable {
					found = true
				}
				return true
			})
			if found != tt.sortable {
				t.Errorf("Expected sortable=%v, got %v", tt.sortable, found)
			}
		})
	}
}

func TestFormatOffRegion(t *testing.T) {
	src := "# cmake-format: off\nfoo(   a )\n# cmake-format: on\nbar()\n"
	body := parse(t, src)

	switches := 0
	for _, n := range body.Nodes() {
		if n.Kind == ast.OnOffSwitch {
			switches++
			if n.Text() != "# cmake-format: off\nfoo(   a )\n# cmake-format: on" {
				t.Errorf("Unexpected region text %q", n.Text())
			}
		}
	}
	if switches != 1 {
		t.Errorf("Expected 1 region, got %d", switches)
	}
	if got := countKind(body, ast.Statement); got != 1 {
		t.Errorf("Expected only bar() parsed, got %d statements", got)
	}
}

func TestParenGroups(t *testing.T) {
	body := parse(t, "if((A OR B) AND NOT C)\nendif()\n")
	if got := countKind(body, ast.ParenGroup); got != 1 {
		t.Errorf("Expected 1 paren group, got %d", got)
	}
	if got := countKind(body, ast.KeywordGroup); got != 2 {
		t.Errorf("Expected OR and AND keyword groups, got %d", got)
	}
}
