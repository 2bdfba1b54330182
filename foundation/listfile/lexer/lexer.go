// File: lexer.go
// Title: Listfile Lexical Analyzer (Tokenizer)
// Description: Converts listfile text into a flat stream of positioned
//              tokens. Tokenizing is total: a catch-all rule matches any run
//              of characters no other rule accepts, so every input byte ends
//              up in exactly one token.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2026-10-18 v0.2.0: Rule table for listfile syntax on regexp2

package lexer

import (
	"fmt"
	"io"
	"unicode"

	"github.com/dlclark/regexp2"
)

// Kind represents the type of a lexical token
type Kind int

const (
	QuotedString Kind = iota
	BracketString
	Number
	LeftParen
	RightParen
	Word
	Deref
	Newline
	Whitespace
	Comment
	BracketComment
	FormatOff
	FormatOn
	UnquotedLiteral
	ByteOrderMark
)

var kindNames = map[Kind]string{
	QuotedString:    "QUOTED_LITERAL",
	BracketString:   "BRACKET_ARGUMENT",
	Number:          "NUMBER",
	LeftParen:       "LEFT_PAREN",
	RightParen:      "RIGHT_PAREN",
	Word:            "WORD",
	Deref:           "DEREF",
	Newline:         "NEWLINE",
	Whitespace:      "WHITESPACE",
	Comment:         "COMMENT",
	BracketComment:  "BRACKET_COMMENT",
	FormatOff:       "FORMAT_OFF",
	FormatOn:        "FORMAT_ON",
	UnquotedLiteral: "UNQUOTED_LITERAL",
	ByteOrderMark:   "BYTEORDER_MARK",
}

// String returns the dump name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token represents a lexical token with position information
type Token struct {
	Kind     Kind
	Spelling string
	Line     int // 1-based
	Column   int // 0-based, in runes
	Offset   int // byte offset in the input
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s:%d,%d %q", t.Kind, t.Line, t.Column, t.Spelling)
}

// IsTrivia reports whether the token is whitespace or a newline
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Newline || t.Kind == ByteOrderMark
}

// IsComment reports whether the token is any kind of comment
func (t Token) IsComment() bool {
	switch t.Kind {
	case Comment, BracketComment, FormatOff, FormatOn:
		return true
	}
	return false
}

// IsArgument reports whether the token can be a command argument
func (t Token) IsArgument() bool {
	switch t.Kind {
	case QuotedString, BracketString, Number, Word, Deref, UnquotedLiteral:
		return true
	}
	return false
}

type rule struct {
	kind Kind
	re   *regexp2.Regexp
	// flush rules only match after whitespace, '(' or at the start of input
	flush bool
}

func mustRule(kind Kind, flush bool, expr string) rule {
	return rule{kind: kind, re: regexp2.MustCompile(`\A`+expr, regexp2.None), flush: flush}
}

// Order is significant: the first rule that matches wins.
var rules = []rule{
	mustRule(QuotedString, true, `"(?:[^"\\]|\\[\s\S])*"(?![^\s\)])`),
	mustRule(BracketString, true, `\[(=*)\[[\s\S]*?\]\1\](?![^\s\)])`),
	mustRule(Number, true, `-?[0-9]+(?![^\s\)\(])`),
	mustRule(LeftParen, false, `\(`),
	mustRule(RightParen, false, `\)`),
	mustRule(Word, true, `[a-zA-Z_][a-zA-Z0-9_]*(?![^\s\)\(])`),
	mustRule(Deref, true, `\$\{[a-zA-Z_][a-zA-Z0-9_]*\}(?![^\s\)])`),
	mustRule(Newline, false, `(?:\r\n|\n|\r)`),
	mustRule(Whitespace, false, `[^\S\r\n]+`),
	mustRule(FormatOff, false, `#[ \t]*(?:cmake-format|cmf):[ \t]*off(?![^\s])[^\r\n]*`),
	mustRule(FormatOn, false, `#[ \t]*(?:cmake-format|cmf):[ \t]*on(?![^\s])[^\r\n]*`),
	mustRule(BracketComment, false, `#\[(=*)\[[\s\S]*?\]\1\]`),
	mustRule(Comment, false, `#[^\r\n]*`),
	mustRule(UnquotedLiteral, false, `[^\s\(\)]+`),
}

// Lexer produces tokens one at a time
type Lexer struct {
	runes  []rune
	pos    int
	offset int
	line   int
	column int
}

// NewLexer creates a lexer over input
func NewLexer(input string) *Lexer {
	return &Lexer{runes: []rune(input), line: 1}
}

// Next returns the next token, or false at end of input
func (l *Lexer) Next() (Token, bool) {
	if l.pos >= len(l.runes) {
		return Token{}, false
	}

	if l.pos == 0 && l.runes[0] == '\uFEFF' {
		tok := Token{Kind: ByteOrderMark, Spelling: "\uFEFF", Line: 1, Column: 0, Offset: 0}
		l.pos = 1
		l.offset = len(tok.Spelling)
		return tok, true
	}

	kind, length := l.match()
	spelling := string(l.runes[l.pos : l.pos+length])
	tok := Token{
		Kind:     kind,
		Spelling: spelling,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.offset,
	}

	l.pos += length
	l.offset += len(spelling)
	l.line, l.column = advance(l.line, l.column, spelling)
	return tok, true
}

func (l *Lexer) match() (Kind, int) {
	rest := l.runes[l.pos:]
	flushOK := l.pos == 0 || unicode.IsSpace(l.runes[l.pos-1]) || l.runes[l.pos-1] == '(' ||
		(l.pos == 1 && l.runes[0] == '\uFEFF')

	for _, r := range rules {
		if r.flush && !flushOK {
			continue
		}
		m, err := r.re.FindRunesMatch(rest)
		if err != nil || m == nil || m.Length == 0 {
			continue
		}
		return r.kind, m.Length
	}
	// Unreachable for well-formed rule tables; keeps Tokenize total anyway.
	return UnquotedLiteral, 1
}

// advance moves a line/column pair past text. "\r\n" counts as one newline.
func advance(line, column int, text string) (int, int) {
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			line++
			column = 0
		case '\n':
			line++
			column = 0
		default:
			column++
		}
	}
	return line, column
}

// Tokenize converts text into its complete token sequence
func Tokenize(text string) []Token {
	lexer := NewLexer(text)
	tokens := make([]Token, 0, len(text)/4+1)
	for {
		tok, ok := lexer.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Dump writes one token per line, the format used by the dump subcommand
func Dump(w io.Writer, tokens []Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%s\n", tok); err != nil {
			return err
		}
	}
	return nil
}
