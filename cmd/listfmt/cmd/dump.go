package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/listfmt/foundation/listfile"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the internal representation of a listfile",
}

var dumpTokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE: dumpWith(func(e *listfile.Engine, w io.Writer, path, text string) error {
		return e.DumpTokens(w, text)
	}),
}

var dumpParseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: dumpWith(func(e *listfile.Engine, w io.Writer, path, text string) error {
		return e.DumpTree(w, path, text)
	}),
}

var dumpLayoutCmd = &cobra.Command{
	Use:   "layout <file>",
	Short: "Print the layout tree with the chosen wrap modes",
	Args:  cobra.ExactArgs(1),
	RunE: dumpWith(func(e *listfile.Engine, w io.Writer, path, text string) error {
		return e.DumpLayout(w, path, text)
	}),
}

func init() {
	dumpCmd.AddCommand(dumpTokensCmd, dumpParseCmd, dumpLayoutCmd)
	rootCmd.AddCommand(dumpCmd)
}

type dumpFunc func(e *listfile.Engine, w io.Writer, path, text string) error

func dumpWith(fn dumpFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path := args[0]
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		engine, err := newEngine(cfg, 1, nil)
		if err != nil {
			return err
		}
		text, err := listfile.ReadSource(path)
		if err != nil {
			return err
		}
		return fn(engine, cmd.OutOrStdout(), path, text)
	}
}
