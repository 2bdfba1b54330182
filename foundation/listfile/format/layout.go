// File: layout.go
// Title: Layout Tree
// Description: The layout tree built on every format pass. Each node holds
//              its rendered lines relative to its own start position plus
//              the wrap algorithm that produced them.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/utils/stringx"
)

// Algorithm names the way a layout node arranged its children
type Algorithm int

const (
	// Horizontal puts the whole subtree on one line
	Horizontal Algorithm = iota
	// Vertical puts every child on its own line
	Vertical
	// Packed fills lines greedily
	Packed
	// Aligned continues under the first argument
	Aligned
	// Indented continues one tab in from the start
	Indented
	// Verbatim copies the source text
	Verbatim
)

var algorithmNames = [...]string{
	Horizontal: "HORIZONTAL",
	Vertical:   "VERTICAL",
	Packed:     "PACKED",
	Aligned:    "ALIGNED",
	Indented:   "INDENTED",
	Verbatim:   "VERBATIM",
}

func (a Algorithm) String() string {
	if int(a) >= 0 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// line is one output line. Raw lines continue multi-line tokens or
// format-off regions; they are never indented nor width checked.
type line struct {
	text string
	raw  bool
}

// LayoutNode parallels a syntax tree node. Row and Col are absolute once
// Layout returns; Extent is the widest column the subtree reaches.
type LayoutNode struct {
	Kind      ast.Kind
	Algorithm Algorithm
	Row       int
	Col       int
	Extent    int
	Valid     bool
	Children  []*LayoutNode

	lines []line
	// endComment is set when the last line ends in a line comment, so
	// nothing may follow on that line
	endComment bool
}

func newLayout(kind ast.Kind, algorithm Algorithm) *LayoutNode {
	return &LayoutNode{Kind: kind, Algorithm: algorithm, Valid: true}
}

// textWidth returns the display width of s in terminal cells
func textWidth(s string) int {
	return stringx.Width(s)
}

// width returns the widest non-raw line
func (n *LayoutNode) width() int {
	w := 0
	for _, l := range n.lines {
		if !l.raw {
			w = max(w, textWidth(l.text))
		}
	}
	return w
}

func (n *LayoutNode) height() int {
	return len(n.lines)
}

// lastWidth returns the width of the last line, raw or not
func (n *LayoutNode) lastWidth() int {
	if len(n.lines) == 0 {
		return 0
	}
	return textWidth(n.lines[len(n.lines)-1].text)
}

// attach records child at a position relative to n
func (n *LayoutNode) attach(child *LayoutNode, row, col int) {
	child.Row, child.Col = row, col
	n.Children = append(n.Children, child)
}

// check marks n invalid when it is wider than budget
func (n *LayoutNode) check(budget int) *LayoutNode {
	n.Extent = n.width()
	if n.Extent > budget {
		n.Valid = false
	}
	return n
}

// indentLines prefixes every non-raw line with pad spaces
func indentLines(pad int, lines []line) []line {
	prefix := strings.Repeat(" ", pad)
	out := make([]line, len(lines))
	for i, l := range lines {
		if !l.raw && l.text != "" {
			l.text = prefix + l.text
		}
		out[i] = l
	}
	return out
}

// appendLines continues dst with src, src starting after a single space on
// the last line of dst. It returns the column src starts at.
func appendLines(dst []line, src []line) ([]line, int) {
	if len(dst) == 0 {
		return append(dst, src...), 0
	}
	last := &dst[len(dst)-1]
	col := textWidth(last.text)
	if last.text != "" {
		col++
		last.text += " "
	}
	last.text += src[0].text
	last.raw = last.raw || src[0].raw
	return append(dst, indentLines(col, src[1:])...), col
}

// textLines splits a token spelling into lines. Continuation lines are raw.
func textLines(text string) []line {
	parts := strings.Split(text, "\n")
	out := make([]line, len(parts))
	for i, p := range parts {
		out[i] = line{text: strings.TrimSuffix(p, "\r"), raw: i > 0}
	}
	return out
}

// absolutize converts relative child positions into absolute ones
func absolutize(n *LayoutNode) {
	for _, c := range n.Children {
		c.Row += n.Row
		c.Col += n.Col
		c.Extent = c.Col + c.width()
		absolutize(c)
	}
}

// String returns the dump label of the node
func (n *LayoutNode) String() string {
	label := fmt.Sprintf("%s[%s] (%d,%d) extent:%d", n.Kind, n.Algorithm, n.Row, n.Col, n.Extent)
	if !n.Valid {
		label += " INVALID"
	}
	return label
}

// Dump writes the layout tree with the same tree drawing as the syntax
// tree dump
func Dump(w io.Writer, n *LayoutNode) error {
	if _, err := fmt.Fprintln(w, n); err != nil {
		return err
	}
	return dumpChildren(w, n.Children, "")
}

func dumpChildren(w io.Writer, children []*LayoutNode, indent string) error {
	for idx, c := range children {
		branch, increment := "├─ ", "│   "
		if idx+1 == len(children) {
			branch, increment = "└─ ", "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, branch, c); err != nil {
			return err
		}
		if err := dumpChildren(w, c.Children, indent+increment); err != nil {
			return err
		}
	}
	return nil
}
