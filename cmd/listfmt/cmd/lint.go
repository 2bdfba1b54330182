package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/listfmt/foundation/listfile"
	"github.com/msto63/listfmt/foundation/listfile/lint"
	"github.com/msto63/listfmt/foundation/utils/filex"
	"github.com/msto63/listfmt/foundation/utils/stringx"
)

var lintOpts struct {
	list bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Check listfiles against the lint rules",
	Long: `Check listfiles and print one line per finding:

  path:line,column: [ID] message

Exits with status 1 when anything was reported. Use --list to show all
identifiers; disable them with lint.disabled_codes or a comment such as
"# lint_cmake: -C0301".`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintOpts.list, "list", false, "List the lint identifiers and exit")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if lintOpts.list {
		return listLints(out)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	paths, err := filex.ExpandPaths(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(paths)
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg, 0, nil)
	if err != nil {
		return err
	}

	findings, failed := 0, 0
	for _, path := range paths {
		text, err := listfile.ReadSource(path)
		if err != nil {
			failed++
			printError(fmt.Errorf("%s: %w", path, err))
			continue
		}
		records, err := engine.Lint(cmd.Context(), path, text)
		if err != nil {
			// line rules still ran on the unparsable text
			failed++
			printError(fmt.Errorf("%s: %w", path, err))
		}
		for _, r := range records {
			writeRecord(out, r)
		}
		findings += len(records)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be checked", failed)
	}
	if findings > 0 {
		return errFindings
	}
	return nil
}

func writeRecord(w io.Writer, r lint.Record) {
	style := warnStyle
	switch r.ID[0] {
	case 'E':
		style = errorStyle
	case 'C':
		style = mutedStyle
	}
	fmt.Fprintf(w, "%s:%d,%d: %s %s\n",
		paint(w, pathStyle, r.Path), r.Line, r.Column,
		paint(w, style, "["+r.ID+"]"), r.Message)
}

func listLints(w io.Writer) error {
	for _, id := range lint.IDs() {
		msg := stringx.Truncate(lint.Describe(id), 64, "...")
		if _, err := fmt.Fprintf(w, "%s %s\n", paint(w, titleStyle, stringx.PadRight(id, 7, ' ')), msg); err != nil {
			return err
		}
	}
	return nil
}
