// File: lint.go
// Title: Listfile Linter
// Description: Runs a chain of lint rules over a source text and its syntax
//              tree, applies pragma and configuration suppressions and
//              returns the findings in source order.
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

	"github.com/msto63/listfmt/foundation/core/config"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
)

// Rule inspects one file and reports findings through the context
type Rule interface {
	Check(ctx *Context)
}

// RuleFunc is a function type that implements the Rule interface
type RuleFunc func(ctx *Context)

// Check implements the Rule interface for RuleFunc
func (f RuleFunc) Check(ctx *Context) {
	f(ctx)
}

// Context carries the file under inspection and collects findings
type Context struct {
	Path   string
	Text   string
	Tree   *ast.Node
	Config *config.Config

	records []Record
}

// Report records a finding with the message format of id
func (c *Context) Report(id string, line, column int, args ...interface{}) {
	format, ok := messages[id]
	if !ok {
		format = id
	}
	c.records = append(c.records, Record{
		Path:    c.Path,
		Line:    line,
		Column:  column,
		ID:      id,
		Message: fmt.Sprintf(format, args...),
	})
}

// ReportToken records a finding at the position of tok
func (c *Context) ReportToken(id string, tok lexer.Token, args ...interface{}) {
	c.Report(id, tok.Line, tok.Column, args...)
}

// Linter is an ordered chain of rules
type Linter struct {
	rules  []Rule
	logger *mdwlog.Logger
}

// New creates a linter with the default rules. A nil logger uses the
// default logger.
func New(logger *mdwlog.Logger) *Linter {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	l := &Linter{logger: logger.WithField("component", "listfile-lint")}
	return l.AddFunc(checkLines).
		AddFunc(checkBodies).
		AddFunc(checkDefinitions).
		AddFunc(checkCommandCase)
}

// Add appends a rule to the chain
func (l *Linter) Add(rule Rule) *Linter {
	l.rules = append(l.rules, rule)
	return l
}

// AddFunc appends a rule function to the chain
func (l *Linter) AddFunc(fn RuleFunc) *Linter {
	return l.Add(fn)
}

// Check runs every rule and returns the unsuppressed findings sorted by
// location. tree may be nil when the text failed to parse; only the line
// rules run then.
func (l *Linter) Check(path, text string, tree *ast.Node, cfg *config.Config) []Record {
	if cfg == nil {
		cfg = config.Default()
	}
	timer := l.logger.StartTimer("lint")
	ctx := &Context{Path: path, Text: text, Tree: tree, Config: cfg}

	var scopes []suppression
	if tree == nil {
		checkLines(ctx)
	} else {
		scopes = collectSuppressions(ctx)
		for _, rule := range l.rules {
			rule.Check(ctx)
		}
	}

	disabled := make(map[string]bool, len(cfg.Lint.Disabled))
	for _, id := range cfg.Lint.Disabled {
		disabled[id] = true
	}
	records := make([]Record, 0, len(ctx.records))
	suppressed := 0
	for _, r := range ctx.records {
		if disabled[r.ID] || isSuppressed(scopes, r) {
			suppressed++
			continue
		}
		records = append(records, r)
	}
	sortRecords(records)

	timer.Stop(mdwlog.Fields{
		"path":       path,
		"records":    len(records),
		"suppressed": suppressed,
	})
	return records
}

// Check lints a file with the default rules
func Check(path, text string, tree *ast.Node, cfg *config.Config) []Record {
	return New(nil).Check(path, text, tree, cfg)
}
