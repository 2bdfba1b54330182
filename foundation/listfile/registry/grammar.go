// File: grammar.go
// Title: Command Argument Grammars
// Description: Command specifications and the closed set of grammar
//              variants a command name can resolve to: a table driven
//              standard spec or a hand written parse function.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package registry

import (
	"sort"
	"strings"

	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// Spec is the argument specification of a command or keyword
type Spec struct {
	Name   string
	Pargs  Pargs
	Flags  []string
	Kwargs map[string]Grammar
}

// KwargNames returns the keyword names in sorted order
func (s *Spec) KwargNames() []string {
	names := make([]string, 0, len(s.Kwargs))
	for name := range s.Kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFlag reports whether word is one of flags, ignoring case
func IsFlag(flags []string, word string) bool {
	for _, flag := range flags {
		if strings.EqualFold(flag, word) {
			return true
		}
	}
	return false
}

// ParseFunc parses the argument group of an irregular command. It returns
// an ArgGroup node or, when used as a keyword sub-grammar, any group node.
type ParseFunc func(p ArgParser, bs Breakstack) (*ast.Node, error)

// Grammar is either a Standard spec or a Custom parse function
type Grammar struct {
	spec *Spec
	fn   ParseFunc
}

// Standard returns a grammar driven by spec
func Standard(spec *Spec) Grammar {
	return Grammar{spec: spec}
}

// Custom returns a grammar driven by fn
func Custom(fn ParseFunc) Grammar {
	return Grammar{fn: fn}
}

// Positional is shorthand for a keyword taking a positional run
func Positional(p Pargs, flags ...string) Grammar {
	return Standard(&Spec{Pargs: p, Flags: flags})
}

// Spec returns the standard spec, if this is a Standard grammar
func (g Grammar) Spec() (*Spec, bool) {
	return g.spec, g.spec != nil
}

// Func returns the parse function, if this is a Custom grammar
func (g Grammar) Func() (ParseFunc, bool) {
	return g.fn, g.fn != nil
}

// ArgParser is the part of the parser that grammars drive. All methods
// consume from the same token cursor.
type ArgParser interface {
	// Peek returns the next token that is neither trivia nor a comment
	Peek() (lexer.Token, bool)

	// ParseStandard parses a keyword/flag/positional argument group
	ParseStandard(spec *Spec, bs Breakstack) (*ast.Node, error)

	// ParseStandardInto is ParseStandard appending to an existing group
	ParseStandardInto(into *ast.Node, spec *Spec, bs Breakstack) error

	// ParsePositionals parses one positional group
	ParsePositionals(p Pargs, flags []string, bs Breakstack) (*ast.Node, error)

	// ParseFlags parses a run of known flags into a FlagGroup
	ParseFlags(flags []string, bs Breakstack) *ast.Node

	// ParseKeyword parses "KEYWORD <sub grammar>" at the cursor
	ParseKeyword(sub Grammar, bs Breakstack) (*ast.Node, error)

	// ConsumeTrivia moves whitespace and comments into node
	ConsumeTrivia(node *ast.Node)

	// Logger returns the parse logger
	Logger() *mdwlog.Logger
}
