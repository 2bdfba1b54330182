// File: args.go
// Title: Argument Layout
// Description: Layout of argument groups: single line when everything
//              fits, otherwise one line per group with greedy packing of
//              positional runs, keyword sub layouts and shell command runs.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package format

import (
	"sort"
	"strings"

	"github.com/msto63/listfmt/foundation/core/config"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/registry"
)

// shellKeyword is the keyword whose arguments form a shell command line
const shellKeyword = "COMMAND"

// layoutGroup dispatches on the node kind
func (s *session) layoutGroup(n *ast.Node, width int, opts config.FormatConfig) *LayoutNode {
	width = max(width, 1)
	switch n.Kind {
	case ast.ArgGroup:
		return s.layoutArgGroup(n, width, opts)
	case ast.PositionalGroup, ast.FlagGroup:
		return s.layoutPositional(n, width, opts, false)
	case ast.KeywordGroup:
		return s.layoutKeyword(n, width, opts)
	default:
		return s.layoutAtom(n, width)
	}
}

// horizontal renders n on one line. It fails when n holds a line comment,
// a token spanning several lines or a positional group with more arguments
// than the per line limit. Shell groups are exempt from the limit.
func (s *session) horizontal(n *ast.Node) (string, bool) {
	var parts []string
	for _, child := range s.children(n) {
		switch child.Kind {
		case ast.Comment:
			text, ok := inlineComment(child)
			if !ok {
				return "", false
			}
			parts = append(parts, text)
		case ast.Argument, ast.Flag, ast.Keyword:
			tok, _ := child.Token()
			if strings.ContainsAny(tok.Spelling, "\r\n") || child.TrailingComment() != nil {
				return "", false
			}
			parts = append(parts, s.atomText(child, tok))
		case ast.LeftParen, ast.RightParen:
			tok, _ := child.Token()
			parts = append(parts, tok.Spelling)
		default:
			if !isShellGroup(n) && s.crowded(child, s.subargs) {
				return "", false
			}
			text, ok := s.horizontal(child)
			if !ok {
				return "", false
			}
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	if n.Kind == ast.ParenGroup && len(parts) >= 2 {
		// no space inside the parentheses
		inner := strings.Join(parts[1:len(parts)-1], " ")
		return parts[0] + inner + parts[len(parts)-1], true
	}
	return strings.Join(parts, " "), true
}

// inlineComment returns the spelling of a comment that can sit between
// arguments: a single bracket comment without line breaks
func inlineComment(n *ast.Node) (string, bool) {
	toks := n.Tokens()
	if len(toks) != 1 || toks[0].Kind != lexer.BracketComment || strings.ContainsAny(toks[0].Spelling, "\r\n") {
		return "", false
	}
	return toks[0].Spelling, true
}

// crowded reports whether a positional or flag group holds more than limit
// arguments. A limit of zero or less never crowds.
func (s *session) crowded(n *ast.Node, limit int) bool {
	if limit <= 0 || (n.Kind != ast.PositionalGroup && n.Kind != ast.FlagGroup) {
		return false
	}
	return countArgs(n.Nodes()) > limit
}

func countArgs(nodes []*ast.Node) int {
	count := 0
	for _, c := range nodes {
		if c.Kind == ast.Argument || c.Kind == ast.Flag || c.Kind == ast.ParenGroup {
			count++
		}
	}
	return count
}

// isShellGroup reports whether n is a COMMAND keyword group
func isShellGroup(n *ast.Node) bool {
	if n.Kind != ast.KeywordGroup {
		return false
	}
	kw := n.Child(ast.Keyword)
	if kw == nil {
		return false
	}
	tok, _ := kw.Token()
	return strings.EqualFold(registry.NormalizeKeyword(tok), shellKeyword)
}

// children returns the child nodes of n in render order. Arguments of a
// sortable positional group are sorted when autosort is on.
func (s *session) children(n *ast.Node) []*ast.Node {
	nodes := n.Nodes()
	if n.Kind != ast.PositionalGroup || !n.Sortable || s.unsort || !s.cfg.Format.Autosort {
		return nodes
	}

	var slots []int
	var args []*ast.Node
	for i, c := range nodes {
		if c.Kind == ast.Argument {
			slots = append(slots, i)
			args = append(args, c)
		}
	}
	sort.SliceStable(args, func(i, j int) bool {
		return sortKey(args[i]) < sortKey(args[j])
	})
	out := append([]*ast.Node(nil), nodes...)
	for i, slot := range slots {
		out[slot] = args[i]
	}
	return out
}

// sortKey orders case insensitively, ties broken by spelling
func sortKey(n *ast.Node) string {
	tok, _ := n.Token()
	return strings.ToLower(tok.Spelling) + "\x00" + tok.Spelling
}

func (s *session) atomText(n *ast.Node, tok lexer.Token) string {
	if n.Kind == ast.Keyword || n.Kind == ast.Flag {
		return s.keywordText(tok)
	}
	return tok.Spelling
}

// entries flattens nested argument groups into the units that start a
// new line when the group wraps
func entries(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range n.Nodes() {
		if c.Kind == ast.ArgGroup {
			out = append(out, entries(c)...)
			continue
		}
		if c.Kind == ast.Whitespace {
			continue
		}
		out = append(out, c)
	}
	return out
}

// layoutArgGroup puts the group on one line when it fits, otherwise every
// entry starts its own line
func (s *session) layoutArgGroup(n *ast.Node, width int, opts config.FormatConfig) *LayoutNode {
	if text, ok := s.horizontal(n); ok && textWidth(text) <= width {
		node := newLayout(n.Kind, Horizontal)
		node.lines = []line{{text: text}}
		return node.check(width)
	}

	node := newLayout(n.Kind, Vertical)
	for _, entry := range entries(n) {
		child := s.layoutGroup(entry, width, opts)
		node.attach(child, len(node.lines), 0)
		node.lines = append(node.lines, child.lines...)
		node.endComment = child.endComment
		node.Valid = node.Valid && child.Valid
	}
	if len(node.lines) == 0 {
		node.lines = []line{{}}
	}
	return node.check(width)
}

// layoutKeyword renders KEYWORD followed by its arguments, either aligned
// after the keyword or indented one tab on the following lines
func (s *session) layoutKeyword(n *ast.Node, width int, opts config.FormatConfig) *LayoutNode {
	if text, ok := s.horizontal(n); ok && textWidth(text) <= width {
		node := newLayout(n.Kind, Horizontal)
		node.lines = []line{{text: text}}
		return node.check(width)
	}

	kwNode := n.Child(ast.Keyword)
	tok, _ := kwNode.Token()
	keyword := s.keywordText(tok)
	kwWidth := textWidth(keyword)

	var sub *ast.Node
	for _, c := range n.Nodes() {
		if c.Kind != ast.Keyword {
			sub = c
			break
		}
	}
	if sub == nil {
		node := newLayout(n.Kind, Horizontal)
		node.lines = []line{{text: keyword}}
		return node.check(width)
	}

	shell := isShellGroup(n) && sub.Kind == ast.PositionalGroup
	layoutSub := func(w int) *LayoutNode {
		if shell {
			return s.layoutPositional(sub, max(w, 1), opts, true)
		}
		return s.layoutGroup(sub, w, opts)
	}

	alignedWidth := width - kwWidth - 1
	aligned := layoutSub(alignedWidth)
	indented := layoutSub(width - s.cfg.Format.TabSize)

	node := newLayout(n.Kind, Aligned)
	node.attach(newLayout(ast.Keyword, Horizontal), 0, 0)
	node.Children[0].lines = []line{{text: keyword}}

	if aligned.width() > alignedWidth || 4*(indented.height()+1) <= aligned.height() {
		node.Algorithm = Indented
		node.lines = append([]line{{text: keyword}}, indentLines(s.cfg.Format.TabSize, indented.lines)...)
		node.attach(indented, 1, s.cfg.Format.TabSize)
		node.endComment = indented.endComment
		node.Valid = indented.Valid
	} else {
		node.lines, _ = appendLines([]line{{text: keyword}}, aligned.lines)
		node.attach(aligned, 0, kwWidth+1)
		node.endComment = aligned.endComment
		node.Valid = aligned.Valid
	}
	return node.check(width)
}

// layoutPositional packs the arguments of a positional group. More
// arguments than the per line limit put one argument per line. Shell
// groups start a line at every flag instead.
func (s *session) layoutPositional(n *ast.Node, width int, opts config.FormatConfig, shell bool) *LayoutNode {
	crowded := !shell && s.crowded(n, opts.MaxSubargsPerLine)
	if !crowded {
		if text, ok := s.horizontal(n); ok && textWidth(text) <= width {
			node := newLayout(n.Kind, Horizontal)
			node.lines = []line{{text: text}}
			return node.check(width)
		}
	}

	atoms := s.children(n)
	if shell {
		return s.layoutShell(n.Kind, atoms, width)
	}
	if crowded {
		node := newLayout(n.Kind, Vertical)
		for _, atom := range atoms {
			child := s.layoutAtom(atom, width)
			node.attach(child, len(node.lines), 0)
			node.lines = append(node.lines, child.lines...)
			node.endComment = child.endComment
			node.Valid = node.Valid && child.Valid
		}
		return node.check(width)
	}
	return s.pack(n.Kind, atoms, width)
}

// pack fills lines greedily. An atom moves to a new line when it does not
// fit, when the previous line ends in a comment, or when the new line needs
// at most a quarter of the lines appending would.
func (s *session) pack(kind ast.Kind, atoms []*ast.Node, width int) *LayoutNode {
	node := newLayout(kind, Packed)
	for _, atom := range atoms {
		if len(node.lines) == 0 {
			child := s.layoutAtom(atom, width)
			node.attach(child, 0, 0)
			node.lines = append(node.lines, child.lines...)
			node.endComment = child.endComment
			continue
		}

		col := node.lastWidth() + 1
		fresh := s.layoutAtom(atom, width)
		newLine := node.endComment || atom.Kind == ast.Comment || col >= width
		var appended *LayoutNode
		if !newLine {
			appended = s.layoutAtom(atom, width-col)
			firstWidth := textWidth(appended.lines[0].text)
			newLine = col+firstWidth > width ||
				(fresh.height() < appended.height() && 4*fresh.height() <= appended.height())
		}

		if newLine {
			node.attach(fresh, len(node.lines), 0)
			node.lines = append(node.lines, fresh.lines...)
			node.endComment = fresh.endComment
		} else {
			row := len(node.lines) - 1
			var at int
			node.lines, at = appendLines(node.lines, appended.lines)
			node.attach(appended, row, at)
			node.endComment = appended.endComment
		}
	}
	for _, c := range node.Children {
		node.Valid = node.Valid && c.Valid
	}
	if len(node.lines) == 0 {
		node.lines = []line{{}}
	}
	return node.check(width)
}

// layoutShell splits a command line into runs, each flag starting a new
// run that keeps its operands, and puts every run on its own line
func (s *session) layoutShell(kind ast.Kind, atoms []*ast.Node, width int) *LayoutNode {
	var runs [][]*ast.Node
	for _, atom := range atoms {
		tok, _ := atom.Token()
		startsRun := atom.Kind != ast.Comment && strings.HasPrefix(tok.Spelling, "-")
		if len(runs) == 0 || startsRun || atom.Kind == ast.Comment {
			runs = append(runs, nil)
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], atom)
	}

	node := newLayout(kind, Vertical)
	for _, run := range runs {
		child := s.pack(kind, run, width)
		node.attach(child, len(node.lines), 0)
		node.lines = append(node.lines, child.lines...)
		node.endComment = child.endComment
		node.Valid = node.Valid && child.Valid
	}
	return node.check(width)
}

// layoutAtom renders a single argument, flag, parenthesized group or
// standalone comment
func (s *session) layoutAtom(n *ast.Node, width int) *LayoutNode {
	width = max(width, 1)
	switch n.Kind {
	case ast.ParenGroup:
		return s.layoutParen(n, width)
	case ast.Comment:
		return s.layoutComment(n, width, false)
	case ast.Argument, ast.Flag, ast.Keyword:
		return s.layoutArgument(n, width)
	default:
		return s.layoutGroup(n, width, s.cfg.Format)
	}
}

// layoutArgument renders a token and its trailing comment, the comment
// wrapped into the width left after the token
func (s *session) layoutArgument(n *ast.Node, width int) *LayoutNode {
	tok, _ := n.Token()
	node := newLayout(n.Kind, Horizontal)
	node.lines = textLines(s.atomText(n, tok))

	comment := n.TrailingComment()
	if comment == nil {
		return node.check(width)
	}

	col := node.lastWidth() + 1
	wrapped := commentParagraph(commentText(comment), width-col)
	child := newLayout(ast.Comment, Packed)
	child.lines = wrapped
	child.endComment = true
	row := len(node.lines) - 1
	node.lines, col = appendLines(node.lines, wrapped)
	node.attach(child, row, col)
	node.Algorithm = Packed
	node.endComment = true
	return node.check(width)
}

// layoutParen renders ( <conditional> ) with the inner group aligned after
// the opening parenthesis
func (s *session) layoutParen(n *ast.Node, width int) *LayoutNode {
	node := newLayout(n.Kind, Horizontal)
	if text, ok := s.horizontal(n); ok && textWidth(text) <= width {
		node.lines = []line{{text: text}}
		return node.check(width)
	}

	var inner *ast.Node
	for _, c := range n.Nodes() {
		if c.Kind != ast.LeftParen && c.Kind != ast.RightParen {
			inner = c
		}
	}
	node.Algorithm = Aligned
	node.lines = []line{{text: "("}}
	if inner != nil && !isEmpty(inner) {
		child := s.layoutGroup(inner, width-2, s.cfg.Format)
		first := child.lines[0]
		first.text = "(" + first.text
		node.lines = append([]line{first}, indentLines(1, child.lines[1:])...)
		node.attach(child, 0, 1)
		node.endComment = child.endComment
		node.Valid = child.Valid
	}
	if node.endComment {
		node.lines = append(node.lines, line{text: ")"})
		node.endComment = false
	} else {
		node.lines[len(node.lines)-1].text += ")"
	}
	return node.check(width)
}
