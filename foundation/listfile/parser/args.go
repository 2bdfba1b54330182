// File: args.go
// Title: Argument Parsing
// Description: The registry.ArgParser implementation: standard keyword and
//              positional parsing, flag runs, parenthesized groups and
//              trailing comment attachment.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package parser

import (
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/registry"
)

// ParseStandard implements registry.ArgParser
func (s *session) ParseStandard(spec *registry.Spec, bs registry.Breakstack) (*ast.Node, error) {
	group := ast.New(ast.ArgGroup)
	if err := s.ParseStandardInto(group, spec, bs); err != nil {
		return nil, err
	}
	return group, nil
}

// ParseStandardInto implements registry.ArgParser. Keywords open keyword
// groups, everything else is collected into positional groups.
func (s *session) ParseStandardInto(into *ast.Node, spec *registry.Spec, bs registry.Breakstack) error {
	kwargs := spec.KwargNames()
	kwargBS := bs.Push(registry.KwargBreaker(append(append([]string(nil), kwargs...), spec.Flags...)))
	posBS := bs.Push(registry.KwargBreaker(kwargs))

	for {
		tok, ok := s.peekRaw()
		if !ok || bs.ShouldBreak(tok) {
			return nil
		}

		if tok.IsTrivia() {
			into.AddToken(s.next())
			continue
		}
		if tok.IsComment() && !isSortTag(tok) {
			into.Add(s.consumeComment())
			continue
		}

		if sub, ok := spec.Kwargs[registry.NormalizeKeyword(tok)]; ok {
			kwarg, err := s.ParseKeyword(sub, kwargBS)
			if err != nil {
				return err
			}
			into.Add(kwarg)
			continue
		}

		start := s.pos
		group, err := s.ParsePositionals(spec.Pargs, spec.Flags, posBS)
		if err != nil {
			return err
		}
		if s.pos == start {
			// The positional count is exhausted but arguments remain
			s.logger.Trace("Positional arguments exceed grammar", mdwlog.Fields{
				"grammar": spec.Name,
				"line":    tok.Line,
				"column":  tok.Column,
			})
			group, err = s.ParsePositionals(registry.ZeroOrMore, spec.Flags, posBS)
			if err != nil {
				return err
			}
			if s.pos == start {
				return nil
			}
		}
		into.Add(group)
	}
}

// ParsePositionals implements registry.ArgParser. Flags count toward pargs.
func (s *session) ParsePositionals(pargs registry.Pargs, flags []string, bs registry.Breakstack) (*ast.Node, error) {
	group := ast.New(ast.PositionalGroup)

	for tok, ok := s.peekRaw(); ok && tok.IsTrivia(); tok, ok = s.peekRaw() {
		group.AddToken(s.next())
	}
	if tok, ok := s.peekRaw(); ok && isSortTag(tok) {
		group.Sortable = lexer.IsSortTag(tok.Tag())
		group.Add(ast.NewLeaf(ast.Comment, s.next()))
	}

	count := 0
	for {
		tok, ok := s.peekRaw()
		if !ok || pargs.Full(count) {
			break
		}
		if tok.IsTrivia() {
			group.AddToken(s.next())
			continue
		}
		if tok.IsComment() {
			group.Add(s.consumeComment())
			continue
		}
		if bs.ShouldBreak(tok) && (!pargs.IsExact() || tok.Kind == lexer.RightParen) {
			break
		}
		if tok.Kind == lexer.RightParen {
			break
		}
		if tok.Kind == lexer.LeftParen {
			paren, err := s.parseParenGroup()
			if err != nil {
				return nil, err
			}
			group.Add(paren)
			continue
		}

		kind := ast.Argument
		if isFlag(tok, flags) {
			kind = ast.Flag
		}
		arg := ast.NewLeaf(kind, s.next())
		s.consumeTrailingComment(arg)
		group.Add(arg)
		count++
	}
	return group, nil
}

// ParseFlags implements registry.ArgParser. Trivia is only consumed when a
// flag follows it.
func (s *session) ParseFlags(flags []string, bs registry.Breakstack) *ast.Node {
	group := ast.New(ast.FlagGroup)
	for {
		idx := s.semanticIndex()
		if idx < 0 || bs.ShouldBreak(s.tokens[idx]) || !isFlag(s.tokens[idx], flags) {
			return group
		}
		for s.pos < idx {
			if s.tokens[s.pos].IsComment() {
				group.Add(s.consumeComment())
			} else {
				group.AddToken(s.next())
			}
		}
		flag := ast.NewLeaf(ast.Flag, s.next())
		s.consumeTrailingComment(flag)
		group.Add(flag)
	}
}

// ParseKeyword implements registry.ArgParser. The current token is the
// keyword; sub parses what follows it.
func (s *session) ParseKeyword(sub registry.Grammar, bs registry.Breakstack) (*ast.Node, error) {
	group := ast.New(ast.KeywordGroup)
	group.Add(ast.NewLeaf(ast.Keyword, s.next()))
	for tok, ok := s.peekRaw(); ok && tok.IsTrivia(); tok, ok = s.peekRaw() {
		group.AddToken(s.next())
	}

	start := s.pos
	var (
		child *ast.Node
		err   error
	)
	if fn, ok := sub.Func(); ok {
		child, err = fn(s, bs)
	} else if spec, ok := sub.Spec(); ok && len(spec.Kwargs) == 0 {
		child, err = s.ParsePositionals(spec.Pargs, spec.Flags, bs)
	} else if ok {
		child, err = s.ParseStandard(spec, bs)
	}
	if err != nil {
		return nil, err
	}
	if child != nil && s.pos > start {
		group.Add(child)
	}
	return group, nil
}

// ConsumeTrivia implements registry.ArgParser. It stops at sort tags so the
// next positional group can claim them.
func (s *session) ConsumeTrivia(node *ast.Node) {
	for tok, ok := s.peekRaw(); ok; tok, ok = s.peekRaw() {
		switch {
		case tok.IsTrivia():
			node.AddToken(s.next())
		case tok.IsComment() && !isSortTag(tok):
			node.Add(s.consumeComment())
		default:
			return
		}
	}
}

// parseParenGroup parses a parenthesized sub expression with the
// conditional grammar.
func (s *session) parseParenGroup() (*ast.Node, error) {
	open := s.next()
	group := ast.New(ast.ParenGroup, ast.NewLeaf(ast.LeftParen, open))

	inner, err := registry.ParseConditional(s, registry.Breakstack{registry.ParenBreaker()})
	if err != nil {
		return nil, err
	}
	group.Add(inner)

	tok, ok := s.peekRaw()
	if !ok || tok.Kind != lexer.RightParen {
		return nil, s.malformed(open, "unbalanced parenthesis")
	}
	group.Add(ast.NewLeaf(ast.RightParen, s.next()))
	return group, nil
}

// consumeTrailingComment folds a line comment on the same line as the end
// of node into node, together with its continuation lines.
func (s *session) consumeTrailingComment(node *ast.Node) {
	i := s.pos
	if i < len(s.tokens) && s.tokens[i].Kind == lexer.Whitespace {
		i++
	}
	if i >= len(s.tokens) || !isLineComment(s.tokens[i]) {
		return
	}
	for s.pos < i {
		node.AddToken(s.next())
	}

	first := s.next()
	comment := ast.New(ast.Comment)
	comment.AddToken(first)
	for {
		end, ok := s.continuation(first.Column, isLineComment)
		if !ok {
			break
		}
		for s.pos <= end {
			comment.AddToken(s.next())
		}
	}
	node.Add(comment)
}

// semanticIndex returns the index of the next token that is neither trivia
// nor a comment, or -1
func (s *session) semanticIndex() int {
	for i := s.pos; i < len(s.tokens); i++ {
		if !s.tokens[i].IsTrivia() && !s.tokens[i].IsComment() {
			return i
		}
	}
	return -1
}

func isLineComment(tok lexer.Token) bool {
	return tok.Kind == lexer.Comment && !tok.IsTag()
}

func isSortTag(tok lexer.Token) bool {
	tag := tok.Tag()
	return lexer.IsSortTag(tag) || lexer.IsUnsortTag(tag)
}

func isFlag(tok lexer.Token, flags []string) bool {
	word := registry.NormalizeKeyword(tok)
	return word != "" && registry.IsFlag(flags, word)
}
