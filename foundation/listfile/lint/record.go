// File: record.go
// Title: Lint Records
// Description: Lint identifiers with their message formats, the record type
//              and its rendering.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package lint

import (
	"fmt"
	"sort"
)

// Lint identifiers. C is convention, W is warning, E is an error in the
// lint pragmas themselves.
const (
	IDLineTooLong        = "C0301"
	IDTrailingWhitespace = "C0303"
	IDMissingNewline     = "C0304"
	IDMultipleStatements = "C0321"
	IDWrongLineEnding    = "C0327"
	IDInvalidName        = "C0103"
	IDMissingDocstring   = "C0111"
	IDEmptyDocstring     = "C0112"
	IDUnreachableCode    = "W0101"
	IDCommandCase        = "W0106"
	IDBadPragma          = "E0011"
	IDBadPragmaID        = "E0012"
)

// messages holds the format string of every known identifier
var messages = map[string]string{
	IDLineTooLong:        "Line too long (%d/%d)",
	IDTrailingWhitespace: "Trailing whitespace",
	IDMissingNewline:     "Final newline missing",
	IDMultipleStatements: "More than one statement on a single line",
	IDWrongLineEnding:    "Wrong line ending (%s)",
	IDInvalidName:        "Invalid %s name %q doesn't match `%s`",
	IDMissingDocstring:   "Missing docstring on function or macro declaration",
	IDEmptyDocstring:     "Empty docstring on function or macro declaration",
	IDUnreachableCode:    "Unreachable code",
	IDCommandCase:        "Command name %q is not lower case",
	IDBadPragma:          "Unrecognized lint pragma %q",
	IDBadPragmaID:        "Bad lint identifier %q in pragma",
}

// IsID reports whether id names a known lint
func IsID(id string) bool {
	_, ok := messages[id]
	return ok
}

// Describe returns the message format of id, or "" for unknown identifiers
func Describe(id string) string {
	return messages[id]
}

// IDs returns all known identifiers in sorted order
func IDs() []string {
	ids := make([]string, 0, len(messages))
	for id := range messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Record is one lint finding. Line is 1-based and Column 0-based, as in
// the token stream; findings about a whole line use column 0.
type Record struct {
	Path    string
	Line    int
	Column  int
	ID      string
	Message string
}

// String renders the record as "path:line,col: [ID] message"
func (r Record) String() string {
	return fmt.Sprintf("%s:%d,%d: [%s] %s", r.Path, r.Line, r.Column, r.ID, r.Message)
}

// sortRecords orders records by location, then identifier
func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.ID < b.ID
	})
}
