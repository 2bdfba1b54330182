package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/listfmt/foundation/core/config"
)

var configOpts struct {
	format string
	all    bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, locate and explain configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump [dir]",
	Short: "Print the effective configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := config.ParseFormat(configOpts.format)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		return cfg.Dump(cmd.OutOrStdout(), format)
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the recognized configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.KnownKeys() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
				return err
			}
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path [dir]",
	Short: "Print the configuration file that applies to a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dir := startDir(args)
		if configOpts.all {
			for _, p := range config.ListPossibleConfigFiles(dir, config.DefaultDiscoveryOptions()) {
				fmt.Fprintln(out, p)
			}
			return nil
		}
		if cfgFile != "" {
			fmt.Fprintln(out, cfgFile)
			return nil
		}
		path, ok := config.FindConfigFile(dir, config.DefaultDiscoveryOptions())
		if !ok {
			fmt.Fprintln(out, paint(out, mutedStyle, "no configuration file, using defaults"))
			return nil
		}
		fmt.Fprintln(out, path)
		return nil
	},
}

func init() {
	configDumpCmd.Flags().StringVarP(&configOpts.format, "format", "f", "toml", "Output format: toml, yaml or json")
	configPathCmd.Flags().BoolVar(&configOpts.all, "all", false, "List every candidate path, nearest first")

	configCmd.AddCommand(configDumpCmd, configKeysCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
