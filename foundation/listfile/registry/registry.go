// File: registry.go
// Title: Command Spec Registry
// Description: Lookup from lowercased command name to argument grammar.
//              Built once from the builtin tables plus caller supplied
//              extensions, then read-only and safe for concurrent use.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL object registry
// - 2026-10-18 v0.2.0: Listfile command grammar registry

package registry

import (
	"fmt"
	"sort"
	"strings"

	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
)

// Options configures registry construction
type Options struct {
	Logger *mdwlog.Logger

	// Additional declares extra commands or overrides builtins. Each value
	// holds "pargs", "flags" and "kwargs" entries as decoded from a
	// configuration file.
	Additional map[string]map[string]interface{}

	// SkipBuiltins leaves the builtin tables out
	SkipBuiltins bool
}

// Registry maps command names to grammars
type Registry struct {
	grammars map[string]Grammar
}

// DefaultSpec is the permissive grammar used for unregistered commands:
// every token is a positional argument.
var DefaultSpec = &Spec{Name: "default", Pargs: ZeroOrMore}

// New builds a registry
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	logger := opts.Logger.WithField("component", "listfile-registry")

	r := &Registry{grammars: make(map[string]Grammar)}
	if !opts.SkipBuiltins {
		for _, spec := range builtinSpecs() {
			r.grammars[spec.Name] = Standard(spec)
		}
		for name, g := range builtinCustom() {
			r.grammars[name] = g
		}
	}

	names := make([]string, 0, len(opts.Additional))
	for name := range opts.Additional {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec, err := SpecFromConfig(name, opts.Additional[name])
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("additional command %q", name))
		}
		lower := strings.ToLower(name)
		if _, exists := r.grammars[lower]; exists {
			logger.Debug("Overriding builtin command", mdwlog.Fields{"command": lower})
		}
		r.grammars[lower] = Standard(spec)
	}

	logger.Debug("Command registry initialized", mdwlog.Fields{
		"commandCount":    len(r.grammars),
		"additionalCount": len(opts.Additional),
	})
	return r, nil
}

// MustNew is New for callers with static input
func MustNew(opts Options) *Registry {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the grammar of a command. Names are case insensitive.
func (r *Registry) Lookup(name string) (Grammar, bool) {
	g, ok := r.grammars[strings.ToLower(name)]
	return g, ok
}

// Names returns all registered command names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.grammars))
	for name := range r.grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	return len(r.grammars)
}

// SpecFromConfig converts a decoded configuration entry into a Spec
func SpecFromConfig(name string, entry map[string]interface{}) (*Spec, error) {
	spec := &Spec{Name: strings.ToLower(name), Pargs: ZeroOrMore}

	for key, value := range entry {
		switch key {
		case "pargs", "npargs":
			p, err := ParsePargs(value)
			if err != nil {
				return nil, err
			}
			spec.Pargs = p
		case "flags":
			flags, err := stringList(value)
			if err != nil {
				return nil, err
			}
			for i, flag := range flags {
				if strings.HasPrefix(flag, "-") {
					flags[i] = strings.ToLower(flag)
				} else {
					flags[i] = strings.ToUpper(flag)
				}
			}
			spec.Flags = flags
		case "kwargs":
			kw, ok := value.(map[string]interface{})
			if !ok {
				return nil, configError(name, "kwargs must be a table")
			}
			spec.Kwargs = make(map[string]Grammar, len(kw))
			for word, sub := range kw {
				g, err := kwargFromConfig(word, sub)
				if err != nil {
					return nil, err
				}
				spec.Kwargs[strings.ToUpper(word)] = g
			}
		default:
			return nil, configError(name, fmt.Sprintf("unknown key %q", key))
		}
	}
	return spec, nil
}

func kwargFromConfig(word string, value interface{}) (Grammar, error) {
	if nested, ok := value.(map[string]interface{}); ok {
		spec, err := SpecFromConfig(word, nested)
		if err != nil {
			return Grammar{}, err
		}
		return Standard(spec), nil
	}
	p, err := ParsePargs(value)
	if err != nil {
		return Grammar{}, err
	}
	return Positional(p), nil
}

func stringList(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, mdwerror.Newf("expected string, got %T", item).WithCode(mdwerror.CodeInvalidConfig)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, mdwerror.Newf("expected list of strings, got %T", value).WithCode(mdwerror.CodeInvalidConfig)
}

func configError(name, message string) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("command", name)
}
