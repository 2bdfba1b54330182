// File: pargs.go
// Title: Positional Argument Counts
// Description: How many positional arguments a command or keyword consumes,
//              and the conversion from configuration values ("*", "+", "?",
//              integers, "2+").
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package registry

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
)

// PargsKind selects the counting rule of a Pargs value
type PargsKind int

const (
	PargsExact PargsKind = iota
	PargsZeroOrOne
	PargsZeroOrMore
	PargsOneOrMore
	PargsMin
)

// Pargs is a positional argument count specification
type Pargs struct {
	Kind PargsKind
	N    int
}

var (
	ZeroOrOne  = Pargs{Kind: PargsZeroOrOne}
	ZeroOrMore = Pargs{Kind: PargsZeroOrMore}
	OneOrMore  = Pargs{Kind: PargsOneOrMore}
)

// Exact consumes exactly n arguments
func Exact(n int) Pargs {
	return Pargs{Kind: PargsExact, N: n}
}

// Min consumes at least n arguments
func Min(n int) Pargs {
	return Pargs{Kind: PargsMin, N: n}
}

// IsExact reports whether the count is a fixed number. Exact groups do not
// yield to keywords of enclosing grammars, only to a closing parenthesis.
func (p Pargs) IsExact() bool {
	return p.Kind == PargsExact
}

// Full reports whether count consumed arguments satisfy the specification
// so that no further argument may be taken.
func (p Pargs) Full(count int) bool {
	switch p.Kind {
	case PargsExact:
		return count >= p.N
	case PargsZeroOrOne:
		return count >= 1
	default:
		return false
	}
}

// String returns the configuration spelling
func (p Pargs) String() string {
	switch p.Kind {
	case PargsExact:
		return strconv.Itoa(p.N)
	case PargsZeroOrOne:
		return "?"
	case PargsZeroOrMore:
		return "*"
	case PargsOneOrMore:
		return "+"
	case PargsMin:
		return fmt.Sprintf("%d+", p.N)
	}
	return "invalid"
}

// ParsePargs converts a configuration value into a Pargs. Integers of any
// decoder flavour are accepted as exact counts.
func ParsePargs(value interface{}) (Pargs, error) {
	switch v := value.(type) {
	case nil:
		return Exact(0), nil
	case int:
		return exactFromInt(int64(v))
	case int64:
		return exactFromInt(v)
	case float64:
		if v != float64(int64(v)) {
			return Pargs{}, invalidPargs(value)
		}
		return exactFromInt(int64(v))
	case string:
		return parsePargsString(v)
	}
	return Pargs{}, invalidPargs(value)
}

func exactFromInt(n int64) (Pargs, error) {
	if n < 0 {
		return Pargs{}, invalidPargs(n)
	}
	return Exact(int(n)), nil
}

func parsePargsString(s string) (Pargs, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "?":
		return ZeroOrOne, nil
	case "*":
		return ZeroOrMore, nil
	case "+":
		return OneOrMore, nil
	}
	if strings.HasSuffix(s, "+") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
		if err != nil || n < 0 {
			return Pargs{}, invalidPargs(s)
		}
		return Min(n), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Pargs{}, invalidPargs(s)
	}
	return exactFromInt(int64(n))
}

func invalidPargs(value interface{}) error {
	return mdwerror.Newf("invalid positional argument count %v", value).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("value", value)
}
