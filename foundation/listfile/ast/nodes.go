// File: nodes.go
// Title: Listfile Syntax Tree Node Definitions
// Description: Defines the concrete syntax tree produced by the parser. Every
//              input token is owned by exactly one node, in source order, so
//              the original text can be rebuilt from the tree.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-18 v0.2.0: Lossless listfile tree with token leaves

package ast

import (
	"fmt"
	"strings"

	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// Kind tags a syntax tree node
type Kind int

const (
	Body Kind = iota
	Statement
	FunctionName
	LeftParen
	RightParen
	ArgGroup
	PositionalGroup
	KeywordGroup
	Keyword
	Argument
	Flag
	FlagGroup
	Comment
	Whitespace
	FlowControl
	OnOffSwitch
	ParenGroup
)

var kindNames = [...]string{
	Body:            "BODY",
	Statement:       "STATEMENT",
	FunctionName:    "FUNNAME",
	LeftParen:       "LPAREN",
	RightParen:      "RPAREN",
	ArgGroup:        "ARGGROUP",
	PositionalGroup: "PARGGROUP",
	KeywordGroup:    "KWARGGROUP",
	Keyword:         "KEYWORD",
	Argument:        "ARGUMENT",
	Flag:            "FLAG",
	FlagGroup:       "FLAGGROUP",
	Comment:         "COMMENT",
	Whitespace:      "WHITESPACE",
	FlowControl:     "FLOW_CONTROL",
	OnOffSwitch:     "ONOFFSWITCH",
	ParenGroup:      "PARENGROUP",
}

// String returns the dump name of the kind
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position represents a location in the source
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Child is either a *Node or a *Leaf
type Child interface {
	Location() Position
	isChild()
}

// Leaf wraps a token owned by a node
type Leaf struct {
	Token lexer.Token
}

// Location returns the token position
func (l *Leaf) Location() Position {
	return Position{Line: l.Token.Line, Column: l.Token.Column, Offset: l.Token.Offset}
}

func (*Leaf) isChild() {}

// Node is one syntax tree node
type Node struct {
	Kind     Kind
	Children []Child

	// Sortable marks a positional group whose arguments may be reordered
	Sortable bool
}

func (*Node) isChild() {}

// New creates a node of kind with the given children
func New(kind Kind, children ...Child) *Node {
	return &Node{Kind: kind, Children: children}
}

// NewLeaf creates a node of kind owning a single token
func NewLeaf(kind Kind, tok lexer.Token) *Node {
	return &Node{Kind: kind, Children: []Child{&Leaf{Token: tok}}}
}

// Add appends children
func (n *Node) Add(children ...Child) {
	n.Children = append(n.Children, children...)
}

// AddToken appends a token leaf
func (n *Node) AddToken(tok lexer.Token) {
	n.Children = append(n.Children, &Leaf{Token: tok})
}

// Location returns the position of the first token in the subtree
func (n *Node) Location() Position {
	for _, c := range n.Children {
		return c.Location()
	}
	return Position{}
}

// Nodes returns the child nodes, skipping leaves
func (n *Node) Nodes() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok {
			out = append(out, child)
		}
	}
	return out
}

// Child returns the first child node of kind, or nil
func (n *Node) Child(kind Kind) *Node {
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok && child.Kind == kind {
			return child
		}
	}
	return nil
}

// Tokens returns every token of the subtree in source order
func (n *Node) Tokens() []lexer.Token {
	var out []lexer.Token
	n.collect(&out, func(lexer.Token) bool { return true })
	return out
}

func (n *Node) collect(out *[]lexer.Token, keep func(lexer.Token) bool) {
	for _, c := range n.Children {
		switch c := c.(type) {
		case *Leaf:
			if keep(c.Token) {
				*out = append(*out, c.Token)
			}
		case *Node:
			c.collect(out, keep)
		}
	}
}

// Text concatenates the spellings of all tokens in the subtree
func (n *Node) Text() string {
	var b strings.Builder
	for _, tok := range n.Tokens() {
		b.WriteString(tok.Spelling)
	}
	return b.String()
}

// SemanticTokens returns the tokens of n excluding whitespace and comments
func SemanticTokens(n *Node) []lexer.Token {
	var out []lexer.Token
	n.collect(&out, func(tok lexer.Token) bool {
		return !tok.IsTrivia() && !tok.IsComment()
	})
	return out
}

// FuncName returns the lowercased command name of a statement
func (n *Node) FuncName() string {
	if name := n.Child(FunctionName); name != nil {
		return strings.ToLower(name.Text())
	}
	return ""
}

// ArgGroup returns the argument group of a statement
func (n *Node) ArgGroup() *Node {
	return n.Child(ArgGroup)
}

// TrailingComment returns the comment folded into a statement, argument or flag
func (n *Node) TrailingComment() *Node {
	switch n.Kind {
	case Statement, Argument, Flag:
		return n.Child(Comment)
	}
	return nil
}

// Token returns the first token of a leaf-owning node such as Argument
func (n *Node) Token() (lexer.Token, bool) {
	for _, c := range n.Children {
		if leaf, ok := c.(*Leaf); ok {
			return leaf.Token, true
		}
	}
	return lexer.Token{}, false
}

// IsBracketComment reports whether a Comment node is a single bracket comment
func (n *Node) IsBracketComment() bool {
	if n.Kind != Comment {
		return false
	}
	toks := n.Tokens()
	return len(toks) == 1 && toks[0].Kind == lexer.BracketComment
}

// String returns the dump representation of the node
func (n *Node) String() string {
	pos := n.Location()
	if n.Kind == PositionalGroup && n.Sortable {
		return fmt.Sprintf("%s(sortable): %s", n.Kind, pos)
	}
	return fmt.Sprintf("%s: %s", n.Kind, pos)
}
