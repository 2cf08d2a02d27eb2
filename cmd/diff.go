package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlawrence/nodediff/internal/source"
	"github.com/getlawrence/nodediff/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff [original-file expected-file]",
	Short: "Print the code that turns the original snippet into the expected one",
	Long: `Diff parses both snippets, locates the first structural divergence and
prints construction statements for the expected side.

Snippets are read from two files (use - for standard input) or passed inline.

Example usage:
  nodediff diff before.php after.php
  nodediff diff --original-code 'foo($bar);' --expected-code 'foo($bar, $bar);'
  nodediff diff before.php after.php --emitter go --output json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("original-code") || cmd.Flags().Changed("expected-code") {
			return cobra.NoArgs(cmd, args)
		}
		return exactFiles(2, "an original and an expected file")(cmd, args)
	},
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	addGeneratorFlags(diffCmd)
	diffCmd.Flags().String("original-code", "", "original code given inline")
	diffCmd.Flags().String("expected-code", "", "expected code given inline")
}

func addGeneratorFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("emitter", "e", "", "output language of generated code (php, go)")
	cmd.Flags().String("dialect", "", "input dialect (fragment, file)")
	cmd.Flags().String("root", "", "name of the variable holding the original node")
}

func generatorFlags(cmd *cobra.Command) generatorOptions {
	return generatorOptions{
		Emitter: stringFlag(cmd, "emitter", ""),
		Dialect: stringFlag(cmd, "dialect", ""),
		Root:    stringFlag(cmd, "root", ""),
	}
}

// readPair returns the original and expected code from inline flags or
// from the two file arguments.
func readPair(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 {
		original, _ := cmd.Flags().GetString("original-code")
		expected, _ := cmd.Flags().GetString("expected-code")
		return original, expected, nil
	}
	if args[0] == "-" && args[1] == "-" {
		return "", "", fmt.Errorf("only one snippet can be read from standard input")
	}
	original, err := source.Load(args[0])
	if err != nil {
		return "", "", err
	}
	expected, err := source.Load(args[1])
	if err != nil {
		return "", "", err
	}
	return original, expected, nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	original, expected, err := readPair(cmd, args)
	if err != nil {
		return err
	}

	gen, err := app.NewGenerator(generatorFlags(cmd))
	if err != nil {
		return err
	}

	res, err := gen.Generate(cmd.Context(), original, expected)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), app.Config.Output, res, ui.RenderResult(res))
}
