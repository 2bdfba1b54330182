// File: markup.go
// Title: Comment Markup Engine
// Description: Classifies comment lines into paragraphs, lists, notes,
//              rulers and verbatim fences, and renders them word wrapped to
//              a column budget.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mitchellh/go-wordwrap"
)

// Kind identifies the type of a comment item
type Kind int

const (
	Paragraph Kind = iota
	BulletList
	EnumList
	Note
	Ruler
	Separator
	Fence
	Verbatim
)

var kindNames = [...]string{
	Paragraph:  "PARAGRAPH",
	BulletList: "BULLET_LIST",
	EnumList:   "ENUM_LIST",
	Note:       "NOTE",
	Ruler:      "RULER",
	Separator:  "SEPARATOR",
	Fence:      "FENCE",
	Verbatim:   "VERBATIM",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Item is one formattable entity of a comment block. List items keep one
// entry in Lines per list element.
type Item struct {
	Kind   Kind
	Indent int
	Lines  []string
}

// Options controls rendering
type Options struct {
	BulletChar string
	EnumChar   string
	Fence      string
}

// DefaultOptions returns the default rendering options
func DefaultOptions() Options {
	return Options{BulletChar: "*", EnumChar: ".", Fence: "~~~"}
}

var (
	noteRegex   = regexp2.MustCompile(`^\s*[A-Z_]+\([^)]+\):.*`, regexp2.None)
	rulerRegex  = regexp2.MustCompile(`^\s*[^\w\s]{3}.*[^\w\s]{3}$`, regexp2.None)
	bulletRegex = regexp2.MustCompile(`^(\s*)([*-])( .+)$`, regexp2.None)
	enumRegex   = regexp2.MustCompile(`^(\s*)\d+([.:])( .+)$`, regexp2.None)
	fenceRegex  = regexp2.MustCompile(`^\s*([`+"`"+`~]{3}[`+"`"+`~]*)(.*)$`, regexp2.None)
)

// groups returns the capture groups of re against s, or nil on no match
func groups(re *regexp2.Regexp, s string) []string {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	gs := m.Groups()
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.String()
	}
	return out
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// none is the parse state before the first item and after a closing fence
const none Kind = -1

// Parse classifies comment lines, with the comment prefix already removed,
// into items. It never fails.
func Parse(lines []string) []Item {
	var items []Item
	current := none
	var listRegex *regexp2.Regexp

	last := func() *Item { return &items[len(items)-1] }
	start := func(kind Kind, indent int, line string) {
		items = append(items, Item{Kind: kind, Indent: indent, Lines: []string{line}})
		current = kind
	}

	for _, line := range lines {
		if g := groups(fenceRegex, line); g != nil {
			// the second line of a fence item is its language tag
			items = append(items, Item{Kind: Fence, Lines: []string{strings.TrimSpace(g[1]), strings.TrimSpace(g[2])}})
			if current == Verbatim {
				current = none
			} else {
				items = append(items, Item{Kind: Verbatim})
				current = Verbatim
			}
			continue
		}

		if current == Verbatim {
			last().Lines = append(last().Lines, strings.TrimPrefix(line, " "))
			continue
		}

		if line == "" {
			if current != Separator {
				items = append(items, Item{Kind: Separator})
				current = Separator
			}
			continue
		}

		switch current {
		case none, Separator, Ruler:
			if g := groups(bulletRegex, line); g != nil {
				start(BulletList, len(g[1]), g[3])
				listRegex = regexp2.MustCompile(
					"^"+regexp2.Escape(g[1]+g[2])+"( .*)$", regexp2.None)
				continue
			}
			if g := groups(enumRegex, line); g != nil {
				start(EnumList, len(g[1]), strings.TrimSpace(g[3]))
				listRegex = regexp2.MustCompile(
					"^"+regexp2.Escape(g[1])+`\d+`+regexp2.Escape(g[2])+"( .*)$", regexp2.None)
				continue
			}
			switch {
			case matches(noteRegex, line):
				start(Note, 0, strings.TrimSpace(line))
			case matches(rulerRegex, line):
				start(Ruler, 0, strings.TrimSpace(line))
			default:
				start(Paragraph, 0, strings.TrimSpace(line))
			}

		case Paragraph, Note:
			switch {
			case matches(noteRegex, line):
				start(Note, 0, strings.TrimSpace(line))
			case matches(rulerRegex, line):
				start(Ruler, 0, strings.TrimSpace(line))
			default:
				last().Lines = append(last().Lines, strings.TrimSpace(line))
			}

		case BulletList, EnumList:
			item := last()
			if g := groups(listRegex, line); g != nil {
				item.Lines = append(item.Lines, strings.TrimSpace(g[1]))
			} else {
				// unaligned continuation text belongs to the previous element
				item.Lines[len(item.Lines)-1] += "\n" + strings.TrimSpace(line)
			}
		}
	}
	return items
}

// Wrap word wraps text to width, collapsing whitespace. A word longer than
// width gets a line of its own.
func Wrap(text string, width int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return []string{""}
	}
	if width < 1 {
		width = 1
	}
	return strings.Split(wordwrap.WrapString(text, uint(width)), "\n")
}

// FormatItem renders a single item
func FormatItem(opts Options, width int, item Item) []string {
	switch item.Kind {
	case Separator:
		return []string{""}
	case Fence:
		if len(item.Lines) > 1 && item.Lines[1] != "" {
			return []string{opts.Fence + " " + item.Lines[1]}
		}
		return []string{opts.Fence}
	case Verbatim:
		out := make([]string, len(item.Lines))
		for i, line := range item.Lines {
			out[i] = strings.TrimRight(line, " \t")
		}
		return out
	case Ruler:
		return append([]string(nil), item.Lines...)
	case Paragraph, Note:
		return Wrap(strings.Join(item.Lines, "\n"), width)
	case BulletList:
		var out []string
		for _, line := range item.Lines {
			wrapped := Wrap(line, width-2)
			out = append(out, opts.BulletChar+" "+wrapped[0])
			for _, rest := range wrapped[1:] {
				out = append(out, "  "+rest)
			}
		}
		return out
	case EnumList:
		digits := len(strconv.Itoa(len(item.Lines)))
		indent := strings.Repeat(" ", digits+len(opts.EnumChar)+1)
		var out []string
		for i, line := range item.Lines {
			wrapped := Wrap(line, width-len(indent))
			marker := fmt.Sprintf("%*d%s ", digits, i+1, opts.EnumChar)
			out = append(out, marker+wrapped[0])
			for _, rest := range wrapped[1:] {
				out = append(out, indent+rest)
			}
		}
		return out
	}
	return nil
}

// FormatItems renders items in order. Nested lists are indented two
// columns per level, where the level comes from comparing each list's
// source indent with the lists seen before it.
func FormatItems(opts Options, width int, items []Item) []string {
	var out []string
	var history []int
	for _, item := range items {
		if item.Kind == BulletList || item.Kind == EnumList {
			for len(history) > 0 && history[len(history)-1] >= item.Indent {
				history = history[:len(history)-1]
			}
			history = append(history, item.Indent)
			pad := strings.Repeat(" ", 2*(len(history)-1))
			for _, line := range FormatItem(opts, width-len(pad), item) {
				out = append(out, pad+line)
			}
			continue
		}
		out = append(out, FormatItem(opts, width, item)...)
		if item.Kind != Separator {
			history = history[:0]
		}
	}
	return out
}
