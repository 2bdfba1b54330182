// File: ast_test.go
// Title: Listfile Syntax Tree Tests
// Description: Tests for node helpers, traversal and the tree dump.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST tests
// - 2026-10-18 v0.2.0: Listfile tree tests

package ast

import (
	"strings"
	"testing"

	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// statement builds "name(args...)" by hand from a token stream
func statement(t *testing.T, src string) *Node {
	t.Helper()
	toks := lexer.Tokenize(src)
	if len(toks) < 3 {
		t.Fatalf("Expected at least 3 tokens in %q", src)
	}
	stmt := New(Statement,
		NewLeaf(FunctionName, toks[0]),
		NewLeaf(LeftParen, toks[1]),
	)
	args := New(ArgGroup)
	pargs := New(PositionalGroup)
	for _, tok := range toks[2 : len(toks)-1] {
		if tok.Kind == lexer.Whitespace {
			pargs.Add(NewLeaf(Whitespace, tok))
			continue
		}
		pargs.Add(NewLeaf(Argument, tok))
	}
	args.Add(pargs)
	stmt.Add(args, NewLeaf(RightParen, toks[len(toks)-1]))
	return stmt
}

func TestNodeText(t *testing.T) {
	src := "Add_Library(foo a.cc b.cc)"
	stmt := statement(t, src)

	if stmt.Text() != src {
		t.Errorf("Expected %q, got %q", src, stmt.Text())
	}
	if stmt.FuncName() != "add_library" {
		t.Errorf("Expected add_library, got %q", stmt.FuncName())
	}
	if len(SemanticTokens(stmt)) != 6 {
		t.Errorf("Expected 6 semantic tokens, got %d", len(SemanticTokens(stmt)))
	}
	if stmt.ArgGroup() == nil {
		t.Fatal("Expected an argument group")
	}
	if loc := stmt.Location(); loc.Line != 1 || loc.Column != 0 {
		t.Errorf("Expected 1:0, got %s", loc)
	}
}

func TestTrailingComment(t *testing.T) {
	toks := lexer.Tokenize("foo # note")
	arg := NewLeaf(Argument, toks[0])
	if arg.TrailingComment() != nil {
		t.Error("Expected no comment before folding")
	}
	arg.Add(New(Comment, &Leaf{Token: toks[1]}, &Leaf{Token: toks[2]}))
	if arg.TrailingComment() == nil {
		t.Fatal("Expected folded comment")
	}
	if arg.TrailingComment().IsBracketComment() {
		t.Error("Line comment reported as bracket comment")
	}
}

func TestCollectorVisitor(t *testing.T) {
	body := New(Body, statement(t, "set(A b)"), statement(t, "message(x)"), statement(t, "SET(C d)"))

	all := NewCollectorVisitor()
	Walk(all, body)
	if len(all.Statements) != 3 {
		t.Errorf("Expected 3 statements, got %d", len(all.Statements))
	}

	sets := NewCollectorVisitor("set")
	Walk(sets, body)
	if len(sets.Statements) != 2 {
		t.Errorf("Expected 2 set statements, got %d", len(sets.Statements))
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	body := New(Body, statement(t, "set(A b)"))
	var seen []Kind
	Inspect(body, func(n *Node) bool {
		seen = append(seen, n.Kind)
		return n.Kind != Statement
	})
	if len(seen) != 2 || seen[1] != Statement {
		t.Errorf("Expected [BODY STATEMENT], got %v", seen)
	}
}

func TestValidate(t *testing.T) {
	good := New(Body, statement(t, "set(A b)"))
	if errs := Validate(good); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}

	broken := statement(t, "set(A b)")
	broken.Children = broken.Children[:2]
	if errs := Validate(New(Body, broken)); len(errs) == 0 {
		t.Error("Expected a statement shape error")
	}

	flow := New(FlowControl, statement(t, "if(A)"), statement(t, "endif()"))
	if errs := Validate(flow); len(errs) == 0 {
		t.Error("Expected a flow control error for missing body")
	}
}

func TestDump(t *testing.T) {
	var b strings.Builder
	if err := Dump(&b, New(Body, statement(t, "foo(a)"))); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{"BODY: 1:0", "└─ STATEMENT: 1:0", "FUNNAME: 1:0", `WORD: 1:4 "a"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected dump to contain %q, got:\n%s", want, out)
		}
	}
}
