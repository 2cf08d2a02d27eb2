package cmd

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version is set during build time
	Version = "dev"
	// GitCommit is set during build time
	GitCommit = "unknown"
	// BuildDate is set during build time
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appConfig(cmd)
		info := map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go":         runtime.Version(),
		}
		name := color.New(color.FgCyan, color.Bold).Sprint("nodediff")
		ver := color.New(color.FgGreen, color.Bold).Sprint(Version)
		text := fmt.Sprintf("%s %s\ncommit: %s\nbuilt:  %s\ngo:     %s\n", name, ver, GitCommit, BuildDate, runtime.Version())
		return writeOutput(cmd.OutOrStdout(), app.Config.Output, info, text)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
