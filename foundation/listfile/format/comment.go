// File: comment.go
// Title: Comment Layout
// Description: Renders comment blocks through the markup engine, keeping
//              tags, bracket comments, literal comments and hash rulers
//              intact.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package format

import (
	"strings"

	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/markup"
)

// minCommentWidth keeps reflowed comments readable in deep nesting
const minCommentWidth = 10

// layoutComment renders a comment block. first marks the first comment of
// the file, which FirstCommentIsLiteral keeps as written.
func (s *session) layoutComment(n *ast.Node, width int, first bool) *LayoutNode {
	node := newLayout(ast.Comment, Packed)
	var toks []lexer.Token
	for _, tok := range n.Tokens() {
		if tok.IsComment() {
			toks = append(toks, tok)
		}
	}
	if len(toks) == 0 {
		node.lines = []line{{}}
		return node
	}

	if len(toks) == 1 && (toks[0].Kind == lexer.BracketComment || toks[0].IsTag()) {
		node.Algorithm = Verbatim
		node.lines = textLines(strings.TrimRight(toks[0].Spelling, " \t"))
		node.endComment = toks[0].Kind != lexer.BracketComment
		return node.check(width)
	}

	source := make([]string, len(toks))
	for i, tok := range toks {
		source[i] = strings.TrimRight(tok.Spelling, " \t")
	}
	node.endComment = true

	if s.isLiteral(source, first) {
		node.Algorithm = Verbatim
		for _, text := range source {
			node.lines = append(node.lines, line{text: text})
		}
		return node.check(width)
	}

	var segment []string
	flush := func() {
		if len(segment) > 0 {
			node.lines = append(node.lines, s.renderMarkup(segment, width)...)
			segment = nil
		}
	}
	for _, text := range source {
		if s.isHashruler(text) {
			flush()
			if s.cfg.Markup.CanonicalizeHashrulers {
				text = strings.Repeat("#", width)
			}
			node.lines = append(node.lines, line{text: text})
			continue
		}
		segment = append(segment, strings.TrimPrefix(text, "#"))
	}
	flush()
	return node.check(width)
}

// isLiteral reports whether a comment block is copied unchanged
func (s *session) isLiteral(source []string, first bool) bool {
	if !s.cfg.Markup.EnableMarkup {
		return true
	}
	if first && s.cfg.Markup.FirstCommentIsLiteral {
		return true
	}
	if s.literal == nil {
		return false
	}
	stripped := make([]string, len(source))
	for i, text := range source {
		stripped[i] = strings.TrimPrefix(text, "#")
	}
	ok, err := s.literal.MatchString(strings.Join(stripped, "\n"))
	return err == nil && ok
}

// isHashruler reports whether a comment line consists of hashes only
func (s *session) isHashruler(text string) bool {
	return len(text) >= max(s.cfg.Markup.HashrulerMinLength, 3) && strings.Trim(text, "#") == ""
}

// renderMarkup reflows comment lines, given without their hash, and puts
// the prefix back
func (s *session) renderMarkup(segment []string, width int) []line {
	items := markup.Parse(segment)
	rendered := markup.FormatItems(s.markup, max(width-2, minCommentWidth), items)
	out := make([]line, len(rendered))
	for i, text := range rendered {
		if text == "" {
			out[i] = line{text: "#"}
		} else {
			out[i] = line{text: "# " + text}
		}
	}
	return out
}

// commentText joins the lines of a trailing comment into one paragraph
func commentText(n *ast.Node) string {
	var parts []string
	for _, tok := range n.Tokens() {
		if tok.Kind == lexer.Comment {
			parts = append(parts, strings.TrimSpace(strings.TrimPrefix(tok.Spelling, "#")))
		}
	}
	return strings.Join(parts, " ")
}

// commentParagraph wraps text to width with a "# " prefix on every line
func commentParagraph(text string, width int) []line {
	if strings.TrimSpace(text) == "" {
		return []line{{text: "#"}}
	}
	wrapped := markup.Wrap(text, max(width-2, 1))
	out := make([]line, len(wrapped))
	for i, w := range wrapped {
		out[i] = line{text: "# " + w}
	}
	return out
}
