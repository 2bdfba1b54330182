package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msto63/listfmt/foundation/core/config"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile"
	"github.com/msto63/listfmt/foundation/utils/filex"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
	colorMode string

	logger = mdwlog.GetDefault()
)

// errFindings signals a clean run that found something to report, e.g.
// files needing reformatting or lint records. It sets the exit status
// without printing an error.
var errFindings = errors.New("findings reported")

var rootCmd = &cobra.Command{
	Use:   "listfmt",
	Short: "listfmt - Formatter and linter for CMake listfiles",
	Long: `listfmt parses CMake listfiles, re-flows their statements and
comments to fit a line width, and checks them for common problems.

Commands:
  format  - Format listfiles (stdout, in place, check or diff)
  lint    - Check listfiles against the lint rules
  dump    - Print tokens, syntax tree or layout tree
  config  - Show, locate and explain configuration`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errFindings) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: discovered from the listfile directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colored output: auto, always or never")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	format, err := mdwlog.ParseFormat(logFormat)
	if err != nil {
		return err
	}
	level := mdwlog.LevelWarn
	if verbose {
		level = mdwlog.LevelDebug
	}
	logger = mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "listfmt",
	}).WithCorrelationID(uuid.NewString())
	mdwlog.SetDefault(logger)
	return nil
}

// loadConfig returns the --config file, or the configuration discovered
// from the directory of the first listfile in paths
func loadConfig(paths []string) (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.Discover(startDir(paths), config.DefaultDiscoveryOptions())
}

func startDir(paths []string) string {
	for _, p := range paths {
		switch {
		case p == "-":
			continue
		case filex.IsDir(p):
			return p
		default:
			return filepath.Dir(p)
		}
	}
	return "."
}

// newEngine builds an engine for cfg; results may be nil
func newEngine(cfg *config.Config, workers int, results listfile.ResultCache) (*listfile.Engine, error) {
	return listfile.New(listfile.Options{Config: cfg, Logger: logger, Workers: workers, Cache: results})
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, paint(os.Stderr, errorStyle, "Error: "+err.Error()))
	if verbose {
		// code, severity and details of foundation errors
		logger.LogError(err)
	}
}
