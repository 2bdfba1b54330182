package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/listfmt/foundation/utils/stringx"
	"github.com/msto63/listfmt/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "listfmt v%s\n", version.Listfmt)
		fmt.Fprintf(out, "  Git Commit: %s\n", version.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		for _, c := range version.Components() {
			fmt.Fprintf(out, "  %s v%s\n", stringx.PadRight(c+":", 11, ' '), version.ComponentVersion(c))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
