// File: body.go
// Title: Body and Flow Control Parsing
// Description: Parses the top level sequence of statements, comments and
//              whitespace, and nests flow control blocks using a scope stack.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package parser

import (
	"strings"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/registry"
)

// closers maps each block closing command to its opener
var closers = map[string]string{
	"endif":       "if",
	"endforeach":  "foreach",
	"endwhile":    "while",
	"endfunction": "function",
	"endmacro":    "macro",
	"endblock":    "block",
}

var openers = map[string]bool{
	"if":       true,
	"foreach":  true,
	"while":    true,
	"function": true,
	"macro":    true,
	"block":    true,
}

// scope is one open flow control block
type scope struct {
	flow   *ast.Node
	body   *ast.Node
	opener lexer.Token
	kind   string
}

func (s *session) parseBody() (*ast.Node, error) {
	root := ast.New(ast.Body)
	stack := []*scope{{body: root}}

	for !s.atEnd() {
		top := stack[len(stack)-1]
		tok, _ := s.peekRaw()

		switch tok.Kind {
		case lexer.Whitespace, lexer.Newline:
			top.body.Add(s.consumeWhitespace())
			continue
		case lexer.Comment, lexer.BracketComment:
			top.body.Add(s.consumeComment())
			continue
		case lexer.FormatOff, lexer.FormatOn:
			top.body.Add(s.consumeOnOff())
			continue
		case lexer.ByteOrderMark:
			top.body.AddToken(s.next())
			continue
		case lexer.Word:
		default:
			return nil, s.malformed(tok, "unexpected %s, expected a command", tok.Kind)
		}

		stmt, err := s.parseStatement()
		if err != nil {
			return nil, err
		}
		name := strings.ToLower(tok.Spelling)

		switch {
		case openers[name]:
			flow := ast.New(ast.FlowControl, stmt)
			body := ast.New(ast.Body)
			flow.Add(body)
			top.body.Add(flow)
			stack = append(stack, &scope{flow: flow, body: body, opener: tok, kind: name})

		case name == "elseif" || name == "else":
			if top.kind != "if" {
				return nil, s.mismatch(tok, top)
			}
			body := ast.New(ast.Body)
			top.flow.Add(stmt, body)
			top.body = body

		case closers[name] != "":
			if top.kind != closers[name] {
				return nil, s.mismatch(tok, top)
			}
			top.flow.Add(stmt)
			stack = stack[:len(stack)-1]

		default:
			top.body.Add(stmt)
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, s.malformed(open.opener, "%s() opened at line %d, column %d is never closed",
			open.kind, open.opener.Line, open.opener.Column)
	}
	return root, nil
}

// mismatch reports a closer that does not match the innermost scope. The
// error is located at the opener when there is one.
func (s *session) mismatch(closer lexer.Token, top *scope) error {
	if top.flow == nil {
		return s.malformed(closer, "%s() without a matching opener", strings.ToLower(closer.Spelling))
	}
	return s.malformed(top.opener, "%s() at line %d, column %d does not close %s()",
		strings.ToLower(closer.Spelling), closer.Line, closer.Column, top.kind).
		WithDetail("closer_line", closer.Line).
		WithDetail("closer_column", closer.Column)
}

func (s *session) consumeWhitespace() *ast.Node {
	node := ast.New(ast.Whitespace)
	for tok, ok := s.peekRaw(); ok && (tok.Kind == lexer.Whitespace || tok.Kind == lexer.Newline); tok, ok = s.peekRaw() {
		node.AddToken(s.next())
	}
	return node
}

// consumeComment gathers a comment block: line comments on consecutive
// lines starting at the same column. Tags and bracket comments stand alone.
func (s *session) consumeComment() *ast.Node {
	node := ast.New(ast.Comment)
	first := s.next()
	node.AddToken(first)
	if !isLineComment(first) {
		return node
	}

	for {
		end, ok := s.continuation(first.Column, isLineComment)
		if !ok {
			return node
		}
		for s.pos <= end {
			node.AddToken(s.next())
		}
	}
}

// continuation looks for newline, optional whitespace, then a token
// accepted by match at column. It returns the index of that token.
func (s *session) continuation(column int, match func(lexer.Token) bool) (int, bool) {
	i := s.pos
	if i >= len(s.tokens) || s.tokens[i].Kind != lexer.Newline {
		return 0, false
	}
	i++
	if i < len(s.tokens) && s.tokens[i].Kind == lexer.Whitespace {
		i++
	}
	if i < len(s.tokens) && match(s.tokens[i]) && s.tokens[i].Column == column {
		return i, true
	}
	return 0, false
}

// consumeOnOff takes a format-off sentinel and every token up to and
// including the matching format-on sentinel. A stray format-on stands alone.
func (s *session) consumeOnOff() *ast.Node {
	node := ast.New(ast.OnOffSwitch)
	first := s.next()
	node.AddToken(first)
	if first.Kind == lexer.FormatOn {
		return node
	}
	for !s.atEnd() {
		tok := s.next()
		node.AddToken(tok)
		if tok.Kind == lexer.FormatOn {
			return node
		}
	}
	s.logger.Debug("Format-off region runs to end of input", mdwlog.Fields{
		"line": first.Line,
	})
	return node
}

func (s *session) parseStatement() (*ast.Node, error) {
	stmt := ast.New(ast.Statement)
	nameTok := s.next()
	stmt.Add(ast.NewLeaf(ast.FunctionName, nameTok))

	for tok, ok := s.peekRaw(); ok && (tok.Kind == lexer.Whitespace || tok.Kind == lexer.Newline); tok, ok = s.peekRaw() {
		stmt.AddToken(s.next())
	}
	tok, ok := s.peekRaw()
	if !ok {
		return nil, s.malformed(nameTok, "expected '(' after %s, got end of input", nameTok.Spelling)
	}
	if tok.Kind != lexer.LeftParen {
		return nil, s.malformed(tok, "expected '(' after %s", nameTok.Spelling)
	}
	stmt.Add(ast.NewLeaf(ast.LeftParen, s.next()))

	bs := registry.Breakstack{registry.ParenBreaker()}
	args, err := s.parseArguments(nameTok, bs)
	if err != nil {
		return nil, err
	}

	// An exact top level count can stop short of the closing parenthesis;
	// the rest is taken permissively.
	if tok, ok := s.peekRaw(); ok && tok.Kind != lexer.RightParen {
		if sem, ok := s.Peek(); ok && sem.Kind != lexer.RightParen {
			s.logger.Debug("Extra arguments after command grammar", mdwlog.Fields{
				"command": nameTok.Spelling,
				"line":    sem.Line,
				"column":  sem.Column,
			})
		}
		if err := s.ParseStandardInto(args, registry.DefaultSpec, bs); err != nil {
			return nil, err
		}
	}
	stmt.Add(args)

	tok, ok = s.peekRaw()
	if !ok {
		return nil, s.malformed(nameTok, "unterminated %s(), expected ')' before end of input", nameTok.Spelling)
	}
	if tok.Kind != lexer.RightParen {
		return nil, s.malformed(tok, "expected ')' to close %s()", nameTok.Spelling)
	}
	stmt.Add(ast.NewLeaf(ast.RightParen, s.next()))
	s.consumeTrailingComment(stmt)
	return stmt, nil
}

// parseArguments dispatches to the grammar registered for the command
func (s *session) parseArguments(nameTok lexer.Token, bs registry.Breakstack) (*ast.Node, error) {
	grammar, ok := s.registry.Lookup(nameTok.Spelling)
	if !ok {
		s.logger.Trace("Unknown command, using default grammar", mdwlog.Fields{
			"command": strings.ToLower(nameTok.Spelling),
			"code":    mdwerror.CodeUnknownCommand.String(),
		})
		return s.ParseStandard(registry.DefaultSpec, bs)
	}
	if fn, ok := grammar.Func(); ok {
		node, err := fn(s, bs)
		if err != nil {
			return nil, err
		}
		if node.Kind != ast.ArgGroup {
			node = ast.New(ast.ArgGroup, node)
		}
		return node, nil
	}
	spec, _ := grammar.Spec()
	return s.ParseStandard(spec, bs)
}
