// File: parser.go
// Title: Listfile Parser
// Description: Converts a token stream into a lossless syntax tree. Statement
//              arguments are classified by the grammar the command registry
//              returns for the statement name; flow control statements are
//              matched through an explicit scope stack.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-18 v0.2.0: Listfile body, statement and argument parsing

package parser

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/registry"
)

// Parser parses listfiles. A Parser holds no per-parse state and may be
// used from several goroutines.
type Parser struct {
	logger   *mdwlog.Logger
	registry *registry.Registry
}

// Options configures parser behavior
type Options struct {
	Logger   *mdwlog.Logger
	Registry *registry.Registry
}

// ParseError represents a parsing error with position information
type ParseError struct {
	Message string
	Line    int
	Column  int
	Token   lexer.Token
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s (near '%s')",
		pe.Line, pe.Column, pe.Message, strings.TrimSpace(pe.Token.Spelling))
}

// New creates a new parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Registry == nil {
		reg, err := registry.New(registry.Options{Logger: opts.Logger})
		if err != nil {
			return nil, fmt.Errorf("failed to build command registry: %w", err)
		}
		opts.Registry = reg
	}

	return &Parser{
		logger:   opts.Logger.WithField("component", "listfile-parser"),
		registry: opts.Registry,
	}, nil
}

// Parse parses tokens into a Body node
func (p *Parser) Parse(tokens []lexer.Token) (*ast.Node, error) {
	s := &session{tokens: tokens, registry: p.registry, logger: p.logger}

	p.logger.Trace("Starting listfile parsing", mdwlog.Fields{"tokens": len(tokens)})

	body, err := s.parseBody()
	if err != nil {
		p.logger.Debug("Listfile parsing failed", mdwlog.Fields{"error": err.Error()})
		return nil, err
	}

	p.logger.Trace("Listfile parsing completed", mdwlog.Fields{"children": len(body.Children)})
	return body, nil
}

// ParseText tokenizes and parses text
func (p *Parser) ParseText(text string) (*ast.Node, error) {
	return p.Parse(lexer.Tokenize(text))
}

// Parse parses tokens with reg, using the default logger
func Parse(tokens []lexer.Token, reg *registry.Registry) (*ast.Node, error) {
	p, err := New(Options{Registry: reg})
	if err != nil {
		return nil, err
	}
	return p.Parse(tokens)
}

// session is the state of one parse: a cursor over an immutable token slice
type session struct {
	tokens   []lexer.Token
	pos      int
	registry *registry.Registry
	logger   *mdwlog.Logger
}

func (s *session) atEnd() bool {
	return s.pos >= len(s.tokens)
}

func (s *session) peekRaw() (lexer.Token, bool) {
	if s.atEnd() {
		return lexer.Token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *session) next() lexer.Token {
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

func (s *session) malformed(tok lexer.Token, format string, args ...interface{}) *mdwerror.Error {
	pe := &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
		Token:   tok,
	}
	return mdwerror.Wrap(pe, "malformed statement").
		WithCode(mdwerror.CodeMalformedStatement).
		WithLocation(tok.Line, tok.Column)
}

// Logger implements registry.ArgParser
func (s *session) Logger() *mdwlog.Logger {
	return s.logger
}

// Peek implements registry.ArgParser
func (s *session) Peek() (lexer.Token, bool) {
	if i := s.semanticIndex(); i >= 0 {
		return s.tokens[i], true
	}
	return lexer.Token{}, false
}
