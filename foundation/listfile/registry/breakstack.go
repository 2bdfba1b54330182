// File: breakstack.go
// Title: Argument Parse Breakstack
// Description: Predicates that tell a nested argument parse which tokens
//              belong to an enclosing grammar.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package registry

import (
	"strings"

	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// Breaker reports whether tok terminates the current argument run
type Breaker func(tok lexer.Token) bool

// Breakstack is an immutable stack of breakers. Push returns a new stack so
// a frame only lives as long as the call chain holding it.
type Breakstack []Breaker

// Push returns bs with b on top
func (bs Breakstack) Push(b Breaker) Breakstack {
	out := make(Breakstack, len(bs)+1)
	copy(out, bs)
	out[len(bs)] = b
	return out
}

// ShouldBreak evaluates the breakers innermost first
func (bs Breakstack) ShouldBreak(tok lexer.Token) bool {
	for i := len(bs) - 1; i >= 0; i-- {
		if bs[i](tok) {
			return true
		}
	}
	return false
}

// NormalizeKeyword returns the spelling used to match flags and keywords:
// words upper cased, dash-prefixed literals lower cased, otherwise "".
func NormalizeKeyword(tok lexer.Token) string {
	if tok.Kind == lexer.UnquotedLiteral && strings.HasPrefix(tok.Spelling, "-") {
		return strings.ToLower(tok.Spelling)
	}
	if tok.Kind != lexer.Word {
		return ""
	}
	return strings.ToUpper(tok.Spelling)
}

// KwargBreaker breaks on any of the given keywords
func KwargBreaker(words []string) Breaker {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return func(tok lexer.Token) bool {
		kw := NormalizeKeyword(tok)
		return kw != "" && set[kw]
	}
}

// ParenBreaker breaks on a closing parenthesis
func ParenBreaker() Breaker {
	return func(tok lexer.Token) bool {
		return tok.Kind == lexer.RightParen
	}
}
