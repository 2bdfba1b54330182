// File: custom.go
// Title: Irregular Command Grammars
// Description: Hand written parse functions for commands whose argument
//              shape depends on their first argument or on positional state.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: install, file, add_library, add_executable, set,
//                      conditionals and positional tuples

package registry

import (
	"strings"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// ConditionalFlags are the operators of if(), elseif() and while()
var ConditionalFlags = []string{
	"COMMAND", "DEFINED", "EQUAL", "EXISTS", "GREATER", "GREATER_EQUAL",
	"IN_LIST", "IS_ABSOLUTE", "IS_DIRECTORY", "IS_NEWER_THAN", "IS_SYMLINK",
	"LESS", "LESS_EQUAL", "MATCHES", "NOT", "POLICY", "STRGREATER",
	"STRGREATER_EQUAL", "STRLESS", "STRLESS_EQUAL", "STREQUAL", "TARGET",
	"TEST", "VERSION_EQUAL", "VERSION_GREATER", "VERSION_GREATER_EQUAL",
	"VERSION_LESS", "VERSION_LESS_EQUAL",
}

// ParseConditional parses a boolean expression. AND and OR open nested
// keyword groups, parentheses open ParenGroup nodes parsed by this same
// function.
func ParseConditional(p ArgParser, bs Breakstack) (*ast.Node, error) {
	return p.ParseStandard(conditionalSpec(), bs)
}

func conditionalSpec() *Spec {
	return &Spec{
		Name:   "conditional",
		Pargs:  ZeroOrMore,
		Flags:  ConditionalFlags,
		Kwargs: map[string]Grammar{
			"AND": Custom(ParseConditional),
			"OR":  Custom(ParseConditional),
		},
	}
}

// warnSubform logs an unrecognized sub form and returns the permissive
// fallback grammar.
func warnSubform(p ArgParser, command string, tok lexer.Token, found bool) *Spec {
	fields := mdwlog.Fields{
		"command": command,
		"code":    mdwerror.CodeInvalidSubform.String(),
	}
	if found {
		fields["line"] = tok.Line
		fields["column"] = tok.Column
		fields["form"] = tok.Spelling
	}
	p.Logger().Warn("Invalid "+command+"() form, parsing permissively", fields)
	return &Spec{Name: command, Pargs: ZeroOrMore}
}

// dispatchForm parses with the grammar selected by the first semantic
// token of the argument list.
func dispatchForm(command string, forms map[string]Grammar) ParseFunc {
	return func(p ArgParser, bs Breakstack) (*ast.Node, error) {
		tok, found := p.Peek()
		if !found || tok.Kind == lexer.RightParen {
			return p.ParseStandard(warnSubform(p, command, tok, false), bs)
		}
		grammar, ok := forms[strings.ToUpper(tok.Spelling)]
		if !ok {
			return p.ParseStandard(warnSubform(p, command, tok, true), bs)
		}
		if fn, ok := grammar.Func(); ok {
			return fn(p, bs)
		}
		spec, _ := grammar.Spec()
		return p.ParseStandard(spec, bs)
	}
}

func installForms() map[string]Grammar {
	targetsSub := Standard(&Spec{
		Pargs:  ZeroOrMore,
		Flags:  []string{"OPTIONAL", "EXCLUDE_FROM_ALL", "NAMELINK_ONLY", "NAMELINK_SKIP"},
		Kwargs: map[string]Grammar{
			"DESTINATION":        Positional(Exact(1)),
			"PERMISSIONS":        Positional(OneOrMore),
			"CONFIGURATIONS":     Positional(OneOrMore),
			"COMPONENT":          Positional(Exact(1)),
			"NAMELINK_COMPONENT": Positional(Exact(1)),
		},
	})
	targets := &Spec{
		Name:   "install",
		Pargs:  ZeroOrMore,
		Kwargs: map[string]Grammar{
			"TARGETS":  Positional(OneOrMore),
			"EXPORT":   Positional(Exact(1)),
			"INCLUDES": Positional(OneOrMore, "DESTINATION"),
		},
	}
	for _, sub := range []string{"ARCHIVE", "LIBRARY", "RUNTIME", "OBJECTS", "FRAMEWORK",
		"BUNDLE", "PRIVATE_HEADER", "PUBLIC_HEADER", "RESOURCE"} {
		targets.Kwargs[sub] = targetsSub
	}

	pattern := Standard(&Spec{
		Pargs:  OneOrMore,
		Flags:  []string{"EXCLUDE"},
		Kwargs: map[string]Grammar{"PERMISSIONS": Positional(OneOrMore)},
	})
	files := &Spec{
		Name:   "install",
		Pargs:  ZeroOrMore,
		Flags:  []string{"OPTIONAL", "EXCLUDE_FROM_ALL"},
		Kwargs: map[string]Grammar{
			"FILES":          Positional(OneOrMore),
			"PROGRAMS":       Positional(OneOrMore),
			"TYPE":           Positional(Exact(1)),
			"DESTINATION":    Positional(Exact(1)),
			"PERMISSIONS":    Positional(OneOrMore),
			"CONFIGURATIONS": Positional(OneOrMore),
			"COMPONENT":      Positional(Exact(1)),
			"RENAME":         Positional(Exact(1)),
		},
	}
	directory := &Spec{
		Name:  "install",
		Pargs: ZeroOrMore,
		Flags: []string{"USE_SOURCE_PERMISSIONS", "OPTIONAL", "MESSAGE_NEVER",
			"FILES_MATCHING", "EXCLUDE_FROM_ALL"},
		Kwargs: map[string]Grammar{
			"DIRECTORY":             Positional(OneOrMore),
			"TYPE":                  Positional(Exact(1)),
			"DESTINATION":           Positional(Exact(1)),
			"FILE_PERMISSIONS":      Positional(OneOrMore),
			"DIRECTORY_PERMISSIONS": Positional(OneOrMore),
			"CONFIGURATIONS":        Positional(OneOrMore),
			"COMPONENT":             Positional(Exact(1)),
			"RENAME":                Positional(Exact(1)),
			"PATTERN":               pattern,
			"REGEX":                 pattern,
		},
	}
	script := &Spec{
		Name:   "install",
		Pargs:  ZeroOrMore,
		Flags:  []string{"EXCLUDE_FROM_ALL"},
		Kwargs: map[string]Grammar{
			"SCRIPT":    Positional(Exact(1)),
			"CODE":      Positional(Exact(1)),
			"COMPONENT": Positional(Exact(1)),
		},
	}
	export := &Spec{
		Name:   "install",
		Pargs:  ZeroOrMore,
		Flags:  []string{"EXCLUDE_FROM_ALL", "EXPORT_LINK_INTERFACE_LIBRARIES"},
		Kwargs: map[string]Grammar{
			"EXPORT":         Positional(Exact(1)),
			"DESTINATION":    Positional(Exact(1)),
			"NAMESPACE":      Positional(Exact(1)),
			"FILE":           Positional(Exact(1)),
			"PERMISSIONS":    Positional(OneOrMore),
			"CONFIGURATIONS": Positional(OneOrMore),
			"COMPONENT":      Positional(Exact(1)),
		},
	}

	return map[string]Grammar{
		"TARGETS":   Standard(targets),
		"FILES":     Standard(files),
		"PROGRAMS":  Standard(files),
		"DIRECTORY": Standard(directory),
		"SCRIPT":    Standard(script),
		"CODE":      Standard(script),
		"EXPORT":    Standard(export),
	}
}

// HashAlgorithms are the file(<HASH>) forms
var HashAlgorithms = []string{
	"MD5", "SHA1", "SHA224", "SHA256", "SHA384", "SHA512",
	"SHA3_224", "SHA3_256", "SHA3_384", "SHA3_512",
}

func fileForms() map[string]Grammar {
	form := func(p Pargs, flags ...string) Grammar {
		return Standard(&Spec{Name: "file", Pargs: p, Flags: flags})
	}
	pattern := Standard(&Spec{
		Pargs:  OneOrMore,
		Flags:  []string{"EXCLUDE"},
		Kwargs: map[string]Grammar{"PERMISSIONS": Positional(OneOrMore)},
	})
	permissions := Positional(OneOrMore,
		"OWNER_READ", "OWNER_WRITE", "OWNER_EXECUTE",
		"GROUP_READ", "GROUP_WRITE", "GROUP_EXECUTE",
		"WORLD_READ", "WORLD_WRITE", "WORLD_EXECUTE", "SETUID", "SETGID")

	read := Standard(&Spec{
		Name:   "file", Pargs: ZeroOrMore, Flags: []string{"READ", "HEX"},
		Kwargs: map[string]Grammar{
			"OFFSET": Positional(Exact(1)),
			"LIMIT":  Positional(Exact(1)),
		},
	})
	strs := Standard(&Spec{
		Name:   "file", Pargs: ZeroOrMore,
		Flags:  []string{"STRINGS", "NEWLINE_CONSUME", "NO_HEX_CONVERSION"},
		Kwargs: map[string]Grammar{
			"LENGTH_MAXIMUM": Positional(Exact(1)),
			"LENGTH_MINIMUM": Positional(Exact(1)),
			"LIMIT_COUNT":    Positional(Exact(1)),
			"LIMIT_INPUT":    Positional(Exact(1)),
			"LIMIT_OUTPUT":   Positional(Exact(1)),
			"REGEX":          Positional(Exact(1)),
			"ENCODING":       Positional(Exact(1), "UTF-8", "UTF-16LE", "UTF-16BE", "UTF-32LE", "UTF-32BE"),
		},
	})
	generate := Standard(&Spec{
		Name:   "file", Pargs: Exact(1), Flags: []string{"GENERATE"},
		Kwargs: map[string]Grammar{
			"OUTPUT":    Positional(Exact(1)),
			"INPUT":     Positional(Exact(1)),
			"CONTENT":   Positional(OneOrMore),
			"CONDITION": Custom(ParseConditional),
		},
	})
	glob := Standard(&Spec{
		Name:   "file", Pargs: OneOrMore,
		Flags:  []string{"GLOB", "GLOB_RECURSE", "CONFIGURE_DEPENDS", "FOLLOW_SYMLINKS"},
		Kwargs: map[string]Grammar{
			"LIST_DIRECTORIES": Positional(Exact(1)),
			"RELATIVE":         Positional(Exact(1)),
		},
	})
	cp := Standard(&Spec{
		Name:   "file", Pargs: ZeroOrMore,
		Flags:  []string{"INSTALL", "NO_SOURCE_PERMISSIONS", "USE_SOURCE_PERMISSIONS", "FILES_MATCHING"},
		Kwargs: map[string]Grammar{
			"COPY":                  Positional(ZeroOrMore),
			"DESTINATION":           Positional(Exact(1)),
			"FILE_PERMISSIONS":      permissions,
			"DIRECTORY_PERMISSIONS": permissions,
			"PATTERN":               pattern,
			"REGEX":                 pattern,
		},
	})
	xfer := Standard(&Spec{
		Name:   "file", Pargs: Exact(3), Flags: []string{"DOWNLOAD", "UPLOAD", "SHOW_PROGRESS"},
		Kwargs: map[string]Grammar{
			"INACTIVITY_TIMEOUT": Positional(Exact(1)),
			"LOG":                Positional(Exact(1)),
			"STATUS":             Positional(Exact(1)),
			"TIMEOUT":            Positional(Exact(1)),
			"USERPWD":            Positional(Exact(1)),
			"HTTPHEADER":         Positional(Exact(1)),
			"NETRC":              Positional(Exact(1), "CMAKE_NETRC", "IGNORED", "OPTIONAL", "REQUIRED"),
			"NETRC_FILE":         Positional(Exact(1)),
			"EXPECTED_HASH":      Positional(Exact(1)),
			"EXPECTED_MD5":       Positional(Exact(1)),
			"TLS_VERIFY":         Positional(Exact(1)),
			"TLS_CAINFO":         Positional(Exact(1)),
		},
	})
	lock := Standard(&Spec{
		Name:   "file", Pargs: OneOrMore, Flags: []string{"LOCK", "DIRECTORY", "RELEASE"},
		Kwargs: map[string]Grammar{
			"GUARD":           Positional(Exact(1), "FUNCTION", "FILE", "PROCESS"),
			"RESULT_VARIABLE": Positional(Exact(1)),
			"TIMEOUT":         Positional(Exact(1)),
		},
	})

	forms := map[string]Grammar{
		"READ":            read,
		"STRINGS":         strs,
		"TIMESTAMP":       form(OneOrMore, "TIMESTAMP", "UTC"),
		"WRITE":           Custom(parseFileWrite),
		"APPEND":          Custom(parseFileWrite),
		"TOUCH":           form(OneOrMore, "TOUCH"),
		"TOUCH_NO_CREATE": form(OneOrMore, "TOUCH_NO_CREATE"),
		"GENERATE":        generate,
		"GLOB":            glob,
		"GLOB_RECURSE":    glob,
		"RENAME":          form(Exact(3), "RENAME"),
		"REMOVE":          form(OneOrMore, "REMOVE"),
		"REMOVE_RECURSE":  form(OneOrMore, "REMOVE_RECURSE"),
		"MAKE_DIRECTORY":  form(OneOrMore, "MAKE_DIRECTORY"),
		"COPY":            cp,
		"INSTALL":         cp,
		"SIZE":            form(Exact(3), "SIZE"),
		"READ_SYMLINK":    form(Exact(3), "READ_SYMLINK"),
		"CREATE_LINK":     form(OneOrMore, "CREATE_LINK", "COPY_ON_ERROR", "SYMBOLIC"),
		"RELATIVE_PATH":   form(Exact(4), "RELATIVE_PATH"),
		"TO_CMAKE_PATH":   form(Exact(3), "TO_CMAKE_PATH"),
		"TO_NATIVE_PATH":  form(Exact(3), "TO_NATIVE_PATH"),
		"DOWNLOAD":        xfer,
		"UPLOAD":          xfer,
		"LOCK":            lock,
	}
	for _, hash := range HashAlgorithms {
		forms[hash] = form(Exact(3), HashAlgorithms...)
	}
	return forms
}

// file(WRITE <filename> <content>...) keeps the file name with the mode
// and gives the content its own group.
func parseFileWrite(p ArgParser, bs Breakstack) (*ast.Node, error) {
	group := ast.New(ast.ArgGroup)
	p.ConsumeTrivia(group)
	head, err := p.ParsePositionals(Exact(2), []string{"WRITE", "APPEND"}, bs)
	if err != nil {
		return nil, err
	}
	group.Add(head)
	p.ConsumeTrivia(group)
	content, err := p.ParsePositionals(ZeroOrMore, nil, bs)
	if err != nil {
		return nil, err
	}
	group.Add(content)
	return group, nil
}

// parseAddTarget handles add_library and add_executable: a name, a run of
// type flags, then the source list which may be sorted.
func parseAddTarget(typeFlags []string) ParseFunc {
	return func(p ArgParser, bs Breakstack) (*ast.Node, error) {
		group := ast.New(ast.ArgGroup)
		p.ConsumeTrivia(group)

		name, err := p.ParsePositionals(Exact(1), nil, bs)
		if err != nil {
			return nil, err
		}
		group.Add(name)

		flags := p.ParseFlags(typeFlags, bs)
		sortable := true
		hasFlag := false
		for _, child := range flags.Nodes() {
			if child.Kind != ast.Flag {
				continue
			}
			hasFlag = true
			switch strings.ToUpper(child.Text()) {
			case "IMPORTED", "ALIAS", "INTERFACE":
				sortable = false
			}
		}
		if hasFlag {
			group.Add(flags)
		} else {
			group.Add(flags.Children...)
		}

		sources, err := p.ParsePositionals(ZeroOrMore, nil, bs)
		if err != nil {
			return nil, err
		}
		if sortable && !hasUnsortTag(sources) {
			sources.Sortable = true
		}
		group.Add(sources)
		return group, nil
	}
}

func hasUnsortTag(group *ast.Node) bool {
	for _, child := range group.Nodes() {
		if child.Kind != ast.Comment {
			continue
		}
		if tok, ok := child.Token(); ok && lexer.IsUnsortTag(tok.Tag()) {
			return true
		}
	}
	return false
}

var setTypes = []string{"BOOL", "FILEPATH", "PATH", "STRING", "INTERNAL"}

// parseSet handles set(<var> <value>... [PARENT_SCOPE]) and
// set(<var> <value>... CACHE <type> <doc> [FORCE]).
func parseSet(p ArgParser, bs Breakstack) (*ast.Node, error) {
	group := ast.New(ast.ArgGroup)
	p.ConsumeTrivia(group)

	name, err := p.ParsePositionals(Exact(1), nil, bs)
	if err != nil {
		return nil, err
	}
	group.Add(name)

	value := &Spec{
		Name:   "set",
		Pargs:  ZeroOrMore,
		Flags:  []string{"PARENT_SCOPE"},
		Kwargs: map[string]Grammar{
			"CACHE": Positional(OneOrMore, append([]string{"FORCE"}, setTypes...)...),
		},
	}
	if err := p.ParseStandardInto(group, value, bs); err != nil {
		return nil, err
	}
	return group, nil
}

// parsePositionalTuples parses repeated groups of size n, one
// PositionalGroup per tuple inside an ArgGroup.
func parsePositionalTuples(n int) ParseFunc {
	return func(p ArgParser, bs Breakstack) (*ast.Node, error) {
		group := ast.New(ast.ArgGroup)
		for {
			tok, ok := p.Peek()
			if !ok || bs.ShouldBreak(tok) {
				break
			}
			tuple, err := p.ParsePositionals(Exact(n), nil, bs)
			if err != nil {
				return nil, err
			}
			group.Add(tuple)
			if tuple.Child(ast.Argument) == nil && tuple.Child(ast.Flag) == nil {
				break
			}
		}
		return group, nil
	}
}
