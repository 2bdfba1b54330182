// File: visitor.go
// Title: Listfile Syntax Tree Visitors
// Description: Traversal helpers for the syntax tree: a visitor interface with
//              a no-op base, a statement collector, an invariant checker and
//              the tree dump used by the dump subcommand.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2026-10-18 v0.2.0: Generic node/leaf visitor for the listfile tree

package ast

import (
	"fmt"
	"io"

	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// Visitor is called for every node and leaf in source order. Returning false
// from VisitNode skips the node's children.
type Visitor interface {
	VisitNode(n *Node) bool
	VisitLeaf(l *Leaf)
}

// BaseVisitor visits everything and does nothing.
// Embed this in concrete visitors to only override needed methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitNode(*Node) bool { return true }
func (BaseVisitor) VisitLeaf(*Leaf)      {}

// Walk traverses n depth first
func Walk(v Visitor, n *Node) {
	if !v.VisitNode(n) {
		return
	}
	for _, c := range n.Children {
		switch c := c.(type) {
		case *Node:
			Walk(v, c)
		case *Leaf:
			v.VisitLeaf(c)
		}
	}
}

type inspector func(*Node) bool

func (f inspector) VisitNode(n *Node) bool { return f(n) }
func (inspector) VisitLeaf(*Leaf)          {}

// Inspect calls f for every node of the subtree
func Inspect(n *Node, f func(*Node) bool) {
	Walk(inspector(f), n)
}

// CollectorVisitor gathers statements, optionally filtered by command name
type CollectorVisitor struct {
	BaseVisitor
	names      map[string]bool
	Statements []*Node
}

// NewCollectorVisitor collects statements whose lowercased name is in names;
// with no names every statement is collected.
func NewCollectorVisitor(names ...string) *CollectorVisitor {
	cv := &CollectorVisitor{names: make(map[string]bool, len(names))}
	for _, name := range names {
		cv.names[name] = true
	}
	return cv
}

func (cv *CollectorVisitor) VisitNode(n *Node) bool {
	if n.Kind == Statement && (len(cv.names) == 0 || cv.names[n.FuncName()]) {
		cv.Statements = append(cv.Statements, n)
	}
	return true
}

// ValidationVisitor checks the structural invariants of a parsed tree
type ValidationVisitor struct {
	BaseVisitor
	errors []error
	last   int
}

// NewValidationVisitor creates an empty validation visitor
func NewValidationVisitor() *ValidationVisitor {
	return &ValidationVisitor{last: -1}
}

// Errors returns the invariant violations found
func (vv *ValidationVisitor) Errors() []error {
	return vv.errors
}

func (vv *ValidationVisitor) addError(n *Node, format string, args ...interface{}) {
	vv.errors = append(vv.errors, fmt.Errorf("%s at %s: %s", n.Kind, n.Location(), fmt.Sprintf(format, args...)))
}

func (vv *ValidationVisitor) VisitNode(n *Node) bool {
	switch n.Kind {
	case Statement:
		vv.checkStatement(n)
	case FlowControl:
		vv.checkFlowControl(n)
	}
	return true
}

func (vv *ValidationVisitor) VisitLeaf(l *Leaf) {
	if l.Token.Offset < vv.last {
		vv.errors = append(vv.errors, fmt.Errorf("token %s out of source order", l.Token))
	}
	vv.last = l.Token.Offset
}

func (vv *ValidationVisitor) checkStatement(n *Node) {
	want := []Kind{FunctionName, LeftParen, ArgGroup, RightParen}
	var got []Kind
	for _, child := range n.Nodes() {
		if child.Kind != Whitespace && child.Kind != Comment {
			got = append(got, child.Kind)
		}
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		vv.addError(n, "expected children %v, got %v", want, got)
	}
}

func (vv *ValidationVisitor) checkFlowControl(n *Node) {
	nodes := n.Nodes()
	if len(nodes) < 3 || nodes[0].Kind != Statement || nodes[len(nodes)-1].Kind != Statement {
		vv.addError(n, "flow control must open and close with a statement")
		return
	}
	for i, child := range nodes[1 : len(nodes)-1] {
		wantBody := i%2 == 0
		if (child.Kind == Body) != wantBody {
			vv.addError(n, "flow control interior out of order at child %d", i+1)
		}
	}
}

// Validate returns the invariant violations of the tree rooted at n
func Validate(n *Node) []error {
	vv := NewValidationVisitor()
	Walk(vv, n)
	return vv.Errors()
}

// Dump writes an indented tree, one node or token per line
func Dump(w io.Writer, n *Node) error {
	if _, err := fmt.Fprintln(w, n); err != nil {
		return err
	}
	return dumpChildren(w, n.Children, "")
}

func dumpChildren(w io.Writer, children []Child, indent string) error {
	for idx, c := range children {
		branch, increment := "├─ ", "│   "
		if idx+1 == len(children) {
			branch, increment = "└─ ", "    "
		}

		var label string
		switch c := c.(type) {
		case *Node:
			label = c.String()
		case *Leaf:
			label = leafLabel(c.Token)
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, branch, label); err != nil {
			return err
		}
		if node, ok := c.(*Node); ok {
			if err := dumpChildren(w, node.Children, indent+increment); err != nil {
				return err
			}
		}
	}
	return nil
}

func leafLabel(tok lexer.Token) string {
	return fmt.Sprintf("%s: %d:%d %q", tok.Kind, tok.Line, tok.Column, tok.Spelling)
}
