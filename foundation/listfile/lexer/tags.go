// File: tags.go
// Title: Formatter Tag Comments
// Description: Recognizes comments of the form "# cmake-format: <tag>" and
//              "#[[cmf:<tag>]]" that annotate the surrounding code.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package lexer

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	lineTag    = regexp2.MustCompile(`\A#\s*(?:cmake-format|cmf): ([^\n]*)`, regexp2.None)
	bracketTag = regexp2.MustCompile(`\A#\[(=*)\[(?:cmake-format|cmf):([\s\S]*)\]\1\]`, regexp2.None)
)

// Tag returns the lowercased tag of a tag comment, or "" when the token is
// not one.
func (t Token) Tag() string {
	var (
		m   *regexp2.Match
		err error
		grp int
	)
	switch t.Kind {
	case Comment:
		m, err = lineTag.FindStringMatch(t.Spelling)
		grp = 1
	case BracketComment:
		m, err = bracketTag.FindStringMatch(t.Spelling)
		grp = 2
	default:
		return ""
	}
	if err != nil || m == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(m.GroupByNumber(grp).String()))
}

// IsTag reports whether the token is a tag comment
func (t Token) IsTag() bool {
	return t.Tag() != ""
}

// IsSortTag reports whether the tag enables sorting
func IsSortTag(tag string) bool {
	return tag == "sortable" || tag == "sort"
}

// IsUnsortTag reports whether the tag disables sorting
func IsUnsortTag(tag string) bool {
	return tag == "unsortable" || tag == "unsort"
}
