// File: rules.go
// Title: Lint Rules
// Description: The default rules: physical line checks, statement layout
//              within blocks, function and macro definitions, and command
//              name casing.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package lint

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/utils/stringx"
)

// checkLines runs the checks that need no syntax tree
func checkLines(ctx *Context) {
	limit := ctx.Config.EffectiveLintLineLength()
	mode := ctx.Config.Format.LineEnding
	lines := strings.Split(ctx.Text, "\n")

	for i, text := range lines {
		lineno := i + 1
		crlf := strings.HasSuffix(text, "\r")
		text = strings.TrimSuffix(text, "\r")

		if w := stringx.Width(text); w > limit {
			ctx.Report(IDLineTooLong, lineno, 0, w, limit)
		}
		// the piece after the final newline has no line ending
		if i < len(lines)-1 {
			switch {
			case crlf && mode == "unix":
				ctx.Report(IDWrongLineEnding, lineno, 0, "windows")
			case !crlf && mode == "windows":
				ctx.Report(IDWrongLineEnding, lineno, 0, "unix")
			}
		}
		if strings.TrimRight(text, " \t") != text {
			ctx.Report(IDTrailingWhitespace, lineno, 0)
		}
	}

	if ctx.Text != "" && !strings.HasSuffix(ctx.Text, "\n") {
		ctx.Report(IDMissingNewline, len(lines), 0)
	}
}

// checkBodies inspects the statements of every block
func checkBodies(ctx *Context) {
	ast.Inspect(ctx.Tree, func(n *ast.Node) bool {
		if n.Kind == ast.Body {
			checkBody(ctx, n)
		}
		return true
	})
}

func checkBody(ctx *Context, body *ast.Node) {
	children := body.Nodes()
	for idx, child := range children {
		if !isStatement(child) {
			continue
		}
		stmt := opener(child)

		if sharesLine(children, idx) {
			ctx.Report(IDMultipleStatements, child.Location().Line, child.Location().Column)
		}

		if child.Kind == ast.FlowControl && isDefinition(stmt) {
			name := nameToken(stmt)
			switch doc := docstring(children, idx); {
			case doc == nil:
				ctx.ReportToken(IDMissingDocstring, name)
			case stringx.IsBlank(commentBody(doc)):
				ctx.ReportToken(IDEmptyDocstring, name)
			}
		}

		switch stmt.FuncName() {
		case "return", "break", "continue":
			for _, rest := range children[idx+1:] {
				if isStatement(rest) {
					ctx.ReportToken(IDUnreachableCode, nameToken(stmt))
					break
				}
			}
		}
	}
}

func isStatement(n *ast.Node) bool {
	return n.Kind == ast.Statement || n.Kind == ast.FlowControl
}

// opener returns the statement itself, or the opening statement of a block
func opener(n *ast.Node) *ast.Node {
	if n.Kind == ast.FlowControl {
		if nodes := n.Nodes(); len(nodes) > 0 {
			return nodes[0]
		}
	}
	return n
}

func nameToken(stmt *ast.Node) lexer.Token {
	if name := stmt.Child(ast.FunctionName); name != nil {
		tok, _ := name.Token()
		return tok
	}
	return lexer.Token{}
}

func isDefinition(stmt *ast.Node) bool {
	name := stmt.FuncName()
	return name == "function" || name == "macro"
}

// sharesLine reports whether the statement at idx starts on the line a
// previous statement ends on
func sharesLine(children []*ast.Node, idx int) bool {
	for j := idx - 1; j >= 0; j-- {
		prev := children[j]
		switch {
		case prev.Kind == ast.Whitespace && countNewlines(prev) == 0:
			continue
		case isStatement(prev):
			return true
		default:
			return false
		}
	}
	return false
}

// docstring returns the comment directly above the statement at idx, with
// no blank line in between
func docstring(children []*ast.Node, idx int) *ast.Node {
	if idx < 2 {
		return nil
	}
	gap, doc := children[idx-1], children[idx-2]
	if gap.Kind != ast.Whitespace || countNewlines(gap) > 1 || doc.Kind != ast.Comment {
		return nil
	}
	return doc
}

func countNewlines(n *ast.Node) int {
	count := 0
	for _, tok := range n.Tokens() {
		if tok.Kind == lexer.Newline {
			count++
		}
	}
	return count
}

// commentBody returns the text of a comment without its delimiters
func commentBody(n *ast.Node) string {
	var b strings.Builder
	for _, tok := range n.Tokens() {
		switch tok.Kind {
		case lexer.Comment:
			b.WriteString(strings.TrimPrefix(tok.Spelling, "#"))
		case lexer.BracketComment:
			b.WriteString(strings.Trim(tok.Spelling, "#[]="))
		}
	}
	return b.String()
}

// checkDefinitions matches function and macro names against the
// configured patterns
func checkDefinitions(ctx *Context) {
	patterns := map[string]string{
		"function": ctx.Config.Lint.FunctionPattern,
		"macro":    ctx.Config.Lint.MacroPattern,
	}
	compiled := make(map[string]*regexp2.Regexp, len(patterns))
	for kind, pattern := range patterns {
		if pattern == "" {
			continue
		}
		// patterns were checked when the configuration was validated
		if re, err := regexp2.Compile(pattern, regexp2.None); err == nil {
			compiled[kind] = re
		}
	}

	ast.Inspect(ctx.Tree, func(n *ast.Node) bool {
		if n.Kind != ast.FlowControl {
			return true
		}
		stmt := opener(n)
		kind := stmt.FuncName()
		re := compiled[kind]
		if re == nil || stmt.ArgGroup() == nil {
			return true
		}
		toks := ast.SemanticTokens(stmt.ArgGroup())
		if len(toks) == 0 {
			return true
		}
		if ok, err := re.MatchString(toks[0].Spelling); err == nil && !ok {
			ctx.ReportToken(IDInvalidName, toks[0], kind, toks[0].Spelling, patterns[kind])
		}
		return true
	})
}

// checkCommandCase flags command names that are not lower case
func checkCommandCase(ctx *Context) {
	statements := ast.NewCollectorVisitor()
	ast.Walk(statements, ctx.Tree)
	for _, stmt := range statements.Statements {
		tok := nameToken(stmt)
		if tok.Spelling != strings.ToLower(tok.Spelling) {
			ctx.ReportToken(IDCommandCase, tok, tok.Spelling)
		}
	}
}
