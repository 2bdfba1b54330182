// File: listfile.go
// Title: Listfile Engine
// Description: Facade over lexer, parser, formatter and linter sharing one
//              configuration, command registry and logger. Formats many
//              files concurrently with a bounded worker group.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package listfile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/msto63/listfmt/foundation/core/config"
	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/format"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/lint"
	"github.com/msto63/listfmt/foundation/listfile/parser"
	"github.com/msto63/listfmt/foundation/listfile/registry"
	"github.com/msto63/listfmt/foundation/utils/filex"
)

// Options configures an Engine
type Options struct {
	// Config defaults to config.Default()
	Config *config.Config
	// Registry defaults to the builtins plus Config.AdditionalCommands
	Registry *registry.Registry
	Logger   *mdwlog.Logger
	// Workers bounds FormatFiles; zero uses GOMAXPROCS
	Workers int
	// Cache, when set, keeps formatted results keyed by a digest of the
	// source text. Results depend on Config, so a cache must not be shared
	// between engines with different configurations.
	Cache ResultCache
}

// ResultCache stores formatted results. GetOrSet returns the entry for key
// or stores what fn computes; errors from fn are returned and not stored.
type ResultCache interface {
	GetOrSet(key string, fn func() (format.Result, error)) (format.Result, error)
}

// Engine formats and lints listfiles. It holds no per-file state and is
// safe for concurrent use.
type Engine struct {
	cfg       *config.Config
	registry  *registry.Registry
	logger    *mdwlog.Logger
	parser    *parser.Parser
	formatter *format.Formatter
	linter    *lint.Linter
	workers   int
	results   ResultCache
}

// New creates an engine
func New(opts Options) (*Engine, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Registry == nil {
		reg, err := registry.New(registry.Options{
			Logger:     opts.Logger,
			Additional: opts.Config.AdditionalCommands,
		})
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to build command registry").
				WithCode(mdwerror.CodeConfigError)
		}
		opts.Registry = reg
	}

	p, err := parser.New(parser.Options{Logger: opts.Logger, Registry: opts.Registry})
	if err != nil {
		return nil, err
	}
	f, err := format.New(format.Options{Config: opts.Config, Registry: opts.Registry, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       opts.Config,
		registry:  opts.Registry,
		logger:    opts.Logger.WithField("component", "listfile-engine"),
		parser:    p,
		formatter: f,
		linter:    lint.New(opts.Logger),
		workers:   opts.Workers,
		results:   opts.Cache,
	}, nil
}

// Config returns the configuration in effect
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Parse parses text. Parse errors carry the file name as detail "path".
// With debug logging on, the tree is also checked for structural
// violations, which are logged as warnings.
func (e *Engine) Parse(name, text string) (*ast.Node, error) {
	tree, err := e.parser.ParseText(text)
	if err != nil {
		var mdwErr *mdwerror.Error
		if errors.As(err, &mdwErr) {
			mdwErr.WithDetail("path", name)
		}
		return nil, err
	}
	if e.logger.IsLevelEnabled(mdwlog.LevelDebug) {
		for _, violation := range ast.Validate(tree) {
			e.logger.WarnWithErr("Syntax tree invariant violated", violation, mdwlog.Fields{"path": name})
		}
	}
	return tree, nil
}

// Format formats text. A layout that exceeds the line width is not an
// error; it is reported through Result.ReflowValid.
func (e *Engine) Format(ctx context.Context, name, text string) (format.Result, error) {
	if err := ctx.Err(); err != nil {
		return format.Result{}, err
	}
	if e.results == nil {
		return e.format(name, text)
	}
	computed := false
	result, err := e.results.GetOrSet(digest(text), func() (format.Result, error) {
		computed = true
		return e.format(name, text)
	})
	if err == nil && !computed {
		e.logger.Debug("Formatted result reused", mdwlog.Fields{"path": name})
	}
	return result, err
}

func (e *Engine) format(name, text string) (format.Result, error) {
	tree, err := e.Parse(name, text)
	if err != nil {
		return format.Result{}, err
	}
	result := e.formatter.FormatTree(tree, text)
	if !result.ReflowValid {
		e.logger.Info("Layout exceeds line width", mdwlog.Fields{
			"path":       name,
			"line_width": e.cfg.Format.LineWidth,
			"code":       mdwerror.CodeLayoutOverflow.String(),
		})
	}
	return result, nil
}

// Lint checks text. When text does not parse, the line rules still run
// and their records are returned together with the parse error.
func (e *Engine) Lint(ctx context.Context, name, text string) ([]lint.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := e.Parse(name, text)
	return e.linter.Check(name, text, tree, e.cfg), err
}

// DumpTokens writes the token stream of text
func (e *Engine) DumpTokens(w io.Writer, text string) error {
	return lexer.Dump(w, lexer.Tokenize(text))
}

// DumpTree writes the syntax tree of text
func (e *Engine) DumpTree(w io.Writer, name, text string) error {
	tree, err := e.Parse(name, text)
	if err != nil {
		return err
	}
	return ast.Dump(w, tree)
}

// DumpLayout writes the layout tree of text
func (e *Engine) DumpLayout(w io.Writer, name, text string) error {
	tree, err := e.Parse(name, text)
	if err != nil {
		return err
	}
	root, _, _ := e.formatter.Layout(tree)
	return format.Dump(w, root)
}

// FileResult is the outcome of formatting one file. Err holds read or parse
// failures; the other files are processed regardless.
type FileResult struct {
	Path   string
	Source string
	Result format.Result
	Err    error
}

// Changed reports whether formatting changed the file
func (r FileResult) Changed() bool {
	return r.Err == nil && r.Result.Text != r.Source
}

// FormatFiles formats paths concurrently, at most Workers at a time, and
// then calls fn for each result in the order of paths. Cancelling ctx
// abandons files not yet started. An error returned by fn stops the
// iteration and is returned.
func (e *Engine) FormatFiles(ctx context.Context, paths []string, fn func(FileResult) error) error {
	timer := e.logger.StartTimer("format-files")
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.formatFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	timer.Stop(mdwlog.Fields{"files": len(paths), "failed": failed, "workers": e.workers})
	return nil
}

func (e *Engine) formatFile(ctx context.Context, path string) FileResult {
	r := FileResult{Path: path}
	source, err := ReadSource(path)
	if err != nil {
		r.Err = mdwerror.Wrap(err, "failed to read listfile").
			WithCode(mdwerror.CodeIOError).
			WithDetail("path", path)
		return r
	}
	r.Source = source
	r.Result, r.Err = e.Format(ctx, path, source)
	return r
}

func digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ReadSource reads path, or standard input for "-"
func ReadSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	return filex.ReadString(path)
}
