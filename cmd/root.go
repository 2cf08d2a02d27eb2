package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlawrence/nodediff/internal/config"
	"github.com/getlawrence/nodediff/internal/logger"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nodediff",
	Short: "Generate PHP-Parser construction code from a before/after pair",
	Long: `nodediff parses an original and an expected PHP snippet, finds the first
place where their syntax trees diverge and prints the code that builds the
expected subtree, reusing variables read from the original node.

It is meant for writing AST rewrite rules: give it the code you have and the
code you want, and paste the output into the rule's refactor method.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx := context.WithValue(context.Background(), ConfigKey, NewAppConfig(config.DefaultConfig(), logger.NopLogger{}))
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("config", "", "config file (default: .nodediff.yaml or .nodediff.toml)")
}

// loadAppConfig reads the config file and layers the global flags on top.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	app.Config = cfg

	verbose, _ := cmd.Flags().GetBool("verbose")
	app.Logger = logger.New(verbose)
	return nil
}

func appConfig(cmd *cobra.Command) *AppConfig {
	if app, ok := cmd.Context().Value(ConfigKey).(*AppConfig); ok && app != nil {
		return app
	}
	// Commands run without Execute (tests) get defaults.
	app := NewAppConfig(config.DefaultConfig(), logger.NopLogger{})
	cmd.SetContext(context.WithValue(cmd.Context(), ConfigKey, app))
	return app
}

// stringFlag returns the flag value when set, otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

func exactFiles(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("expected %s, got %d argument(s)", what, len(args))
		}
		return nil
	}
}
