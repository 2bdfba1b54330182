// File: suppress.go
// Title: Lint Pragmas
// Description: Parses suppression pragmas from body comments. A pragma
//              disables identifiers from its own line to the end of the
//              enclosing block.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package lint

import (
	"math"
	"strings"
	"unicode"

	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

const (
	// pragmaPrefix introduces "# lint_cmake: -C0301,-W0106"
	pragmaPrefix = "lint_cmake:"
	// legacyPrefix introduces "# cmake-lint: disable=C0301,W0106"
	legacyPrefix = "cmake-lint:"
)

// suppression disables id on lines first through last
type suppression struct {
	id    string
	first int
	last  int
}

func collectSuppressions(ctx *Context) []suppression {
	var out []suppression
	ast.Inspect(ctx.Tree, func(n *ast.Node) bool {
		if n.Kind != ast.Body {
			return true
		}
		last := math.MaxInt
		if n != ctx.Tree {
			last = bodyEnd(n)
		}
		for _, child := range n.Nodes() {
			if child.Kind != ast.Comment {
				continue
			}
			for _, tok := range child.Tokens() {
				if tok.Kind != lexer.Comment {
					continue
				}
				for _, id := range parsePragma(ctx, tok) {
					out = append(out, suppression{id: id, first: tok.Line, last: last})
				}
			}
		}
		return true
	})
	return out
}

// bodyEnd returns the last line a nested body covers
func bodyEnd(body *ast.Node) int {
	toks := body.Tokens()
	if len(toks) == 0 {
		return 0
	}
	last := toks[len(toks)-1]
	if last.Kind == lexer.Newline {
		return last.Line
	}
	return last.Line + strings.Count(last.Spelling, "\n")
}

// parsePragma returns the identifiers a comment token disables, reporting
// malformed pragmas
func parsePragma(ctx *Context, tok lexer.Token) []string {
	text := strings.TrimSpace(strings.TrimPrefix(tok.Spelling, "#"))
	var ids []string
	add := func(id string) {
		if IsID(id) {
			ids = append(ids, id)
		} else {
			ctx.ReportToken(IDBadPragmaID, tok, id)
		}
	}

	switch {
	case strings.HasPrefix(text, pragmaPrefix):
		items := strings.FieldsFunc(text[len(pragmaPrefix):], func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, item := range items {
			id, ok := strings.CutPrefix(item, "-")
			if !ok {
				ctx.ReportToken(IDBadPragma, tok, item)
				continue
			}
			add(id)
		}

	case strings.HasPrefix(text, legacyPrefix):
		for _, item := range strings.Fields(text[len(legacyPrefix):]) {
			key, value, ok := strings.Cut(item, "=")
			if !ok || key != "disable" {
				ctx.ReportToken(IDBadPragma, tok, item)
				continue
			}
			for _, id := range strings.Split(value, ",") {
				if id != "" {
					add(id)
				}
			}
		}
	}
	return ids
}

func isSuppressed(scopes []suppression, r Record) bool {
	for _, s := range scopes {
		if s.id == r.ID && r.Line >= s.first && r.Line <= s.last {
			return true
		}
	}
	return false
}
