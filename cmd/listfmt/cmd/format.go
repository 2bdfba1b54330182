package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/msto63/listfmt/foundation/core/config"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile"
	"github.com/msto63/listfmt/foundation/listfile/format"
	"github.com/msto63/listfmt/foundation/utils/filex"
	"github.com/msto63/listfmt/pkg/core/cache"
)

var formatOpts struct {
	inPlace      bool
	outfile      string
	check        bool
	diff         bool
	requireValid bool
	jobs         int
	watch        bool

	lineWidth   int
	tabSize     int
	maxSubargs  int
	autosort    bool
	dangle      bool
	lineEnding  string
	commandCase string
	keywordCase string
}

var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Format listfiles",
	Long: `Format listfiles and write the result to stdout, back to the files
(--in-place) or to a single output file (--outfile).

Directories are searched for CMakeLists.txt and *.cmake files. Without
arguments, or for "-", the listfile is read from stdin.

--check reports files that would change and exits with status 1; --diff
prints a unified diff instead of the formatted text.`,
	RunE: runFormat,
}

func init() {
	f := formatCmd.Flags()
	f.BoolVarP(&formatOpts.inPlace, "in-place", "i", false, "Write the formatted text back to each file")
	f.StringVarP(&formatOpts.outfile, "outfile", "o", "", "Write the formatted text to this file")
	f.BoolVar(&formatOpts.check, "check", false, "Exit with status 1 when a file would be reformatted")
	f.BoolVar(&formatOpts.diff, "diff", false, "Print a unified diff instead of the formatted text")
	f.BoolVar(&formatOpts.requireValid, "require-valid-layout", false, "Fail when a statement cannot fit the line width")
	f.IntVarP(&formatOpts.jobs, "jobs", "j", 0, "Number of files formatted in parallel (default: number of CPUs)")
	f.BoolVarP(&formatOpts.watch, "watch", "w", false, "Keep running and reformat files when they or the config change (needs --in-place)")

	f.IntVar(&formatOpts.lineWidth, "line-width", 0, "Override format.line_width")
	f.IntVar(&formatOpts.tabSize, "tab-size", 0, "Override format.tab_size")
	f.IntVar(&formatOpts.maxSubargs, "max-subargs-per-line", 0, "Override format.max_subargs_per_line")
	f.BoolVar(&formatOpts.autosort, "autosort", false, "Override format.autosort")
	f.BoolVar(&formatOpts.dangle, "dangle-parens", false, "Override format.dangle_parens")
	f.StringVar(&formatOpts.lineEnding, "line-ending", "", "Override format.line_ending (unix, windows, auto)")
	f.StringVar(&formatOpts.commandCase, "command-case", "", "Override format.command_case (lower, upper, canonical, unchanged)")
	f.StringVar(&formatOpts.keywordCase, "keyword-case", "", "Override format.keyword_case (lower, upper, unchanged)")

	rootCmd.AddCommand(formatCmd)
}

// applyOverrides copies the format flags that were set on the command line
// into cfg and validates the result
func applyOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("line-width") {
		cfg.Format.LineWidth = formatOpts.lineWidth
	}
	if flags.Changed("tab-size") {
		cfg.Format.TabSize = formatOpts.tabSize
	}
	if flags.Changed("max-subargs-per-line") {
		cfg.Format.MaxSubargsPerLine = formatOpts.maxSubargs
	}
	if flags.Changed("autosort") {
		cfg.Format.Autosort = formatOpts.autosort
	}
	if flags.Changed("dangle-parens") {
		cfg.Format.DanglingParens = formatOpts.dangle
	}
	if flags.Changed("line-ending") {
		cfg.Format.LineEnding = formatOpts.lineEnding
	}
	if flags.Changed("command-case") {
		cfg.Format.CommandCase = formatOpts.commandCase
	}
	if flags.Changed("keyword-case") {
		cfg.Format.KeywordCase = formatOpts.keywordCase
	}
	return cfg.Validate()
}

func runFormat(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	if formatOpts.inPlace && formatOpts.outfile != "" {
		return errors.New("--in-place and --outfile are mutually exclusive")
	}
	paths, err := filex.ExpandPaths(args)
	if err != nil {
		return err
	}
	if formatOpts.outfile != "" && len(paths) > 1 {
		return fmt.Errorf("--outfile needs exactly one input, got %d", len(paths))
	}
	if formatOpts.watch {
		if !formatOpts.inPlace {
			return errors.New("--watch needs --in-place")
		}
		for _, p := range paths {
			if p == "-" {
				return errors.New("--watch cannot read stdin")
			}
		}
	}

	cfg, err := loadConfig(paths)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd.Flags(), cfg); err != nil {
		return err
	}
	engine, err := newEngine(cfg, formatOpts.jobs, resultCache())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	run := &formatRun{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	if err := engine.FormatFiles(ctx, paths, run.handle); err != nil {
		return err
	}

	if formatOpts.watch {
		return watch(ctx, cmd.Flags(), paths, cfg.Path, engine, run)
	}
	return run.status()
}

// resultCache returns the cache of formatted results used in watch mode,
// where unchanged files are formatted again on every event
func resultCache() listfile.ResultCache {
	if !formatOpts.watch {
		return nil
	}
	return cache.New[format.Result](cache.DefaultConfig())
}

// formatRun handles the results of one invocation
type formatRun struct {
	out    io.Writer
	errOut io.Writer

	failed   int
	findings int
}

func (r *formatRun) handle(res listfile.FileResult) error {
	if res.Err != nil {
		r.failed++
		fmt.Fprintf(r.errOut, "%s: %v\n", paint(r.errOut, pathStyle, res.Path), res.Err)
		return nil
	}
	if formatOpts.requireValid && !res.Result.ReflowValid {
		r.failed++
		fmt.Fprintf(r.errOut, "%s: %s\n", paint(r.errOut, pathStyle, res.Path),
			paint(r.errOut, errorStyle, "layout exceeds the line width"))
		return nil
	}

	if formatOpts.check || formatOpts.diff {
		if !res.Changed() {
			return nil
		}
		r.findings++
		if formatOpts.diff {
			diff, err := unifiedDiff(res.Path, res.Source, res.Result.Text)
			if err != nil {
				return err
			}
			return writeDiff(r.out, diff)
		}
		fmt.Fprintf(r.out, "%s %s\n", paint(r.out, warnStyle, "would reformat"), res.Path)
		return nil
	}

	switch {
	case formatOpts.inPlace:
		if !res.Changed() {
			return nil
		}
		if err := filex.WriteAtomic(res.Path, []byte(res.Result.Text), 0o644); err != nil {
			return fmt.Errorf("%s: %w", res.Path, err)
		}
		logger.Info("Reformatted listfile", mdwlog.Fields{"path": res.Path})
	case formatOpts.outfile != "":
		if err := filex.WriteAtomic(formatOpts.outfile, []byte(res.Result.Text), 0o644); err != nil {
			return fmt.Errorf("%s: %w", formatOpts.outfile, err)
		}
	default:
		_, err := io.WriteString(r.out, res.Result.Text)
		return err
	}
	return nil
}

// status turns the counters into the command result
func (r *formatRun) status() error {
	if r.failed > 0 {
		return fmt.Errorf("%d file(s) could not be formatted", r.failed)
	}
	if r.findings > 0 {
		return errFindings
	}
	return nil
}

// watch reformats paths whenever they change, and rebuilds the engine when
// the configuration file changes, until ctx is cancelled
func watch(ctx context.Context, flags *pflag.FlagSet, paths []string, configPath string,
	engine *listfile.Engine, run *formatRun) error {
	w, err := config.NewWatcher(paths, configPath)
	if err != nil {
		return err
	}
	defer w.Close()

	w.WithLogger(logger.WithName("watch")).
		OnConfigReload(func(next *config.Config) {
			if err := applyOverrides(flags, next); err != nil {
				logger.WarnWithErr("Reloaded configuration rejected", err)
				return
			}
			e, err := newEngine(next, formatOpts.jobs, resultCache())
			if err != nil {
				logger.WarnWithErr("Reloaded configuration rejected", err)
				return
			}
			engine = e
			logger.Audit("Configuration reloaded", mdwlog.Fields{"path": configPath})
		}).
		OnChange(func(changed []string) {
			if err := engine.FormatFiles(ctx, changed, run.handle); err != nil {
				logger.WarnWithErr("Reformatting failed", err, mdwlog.Fields{"files": len(changed)})
			}
		})

	fmt.Fprintf(run.errOut, "%s %d file(s), press Ctrl+C to stop\n",
		paint(run.errOut, titleStyle, "Watching"), len(paths))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
