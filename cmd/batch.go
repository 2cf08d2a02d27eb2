package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlawrence/nodediff/internal/codegen"
	"github.com/getlawrence/nodediff/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <fixtures-dir>",
	Short: "Run the generator over every .php.inc fixture in a directory",
	Long: `Batch loads every fixture in the directory (original code, a line of five
dashes, expected code) and generates code for each one concurrently.

A fixture that fails is reported and makes the command exit with an error
once all fixtures have been processed.`,
	Args: exactFiles(1, "a fixtures directory"),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addGeneratorFlags(batchCmd)
	batchCmd.Flags().IntP("jobs", "j", 0, "fixtures processed concurrently (0 uses all CPUs)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	fixtures, err := codegen.LoadFixtures(args[0])
	if err != nil {
		return err
	}

	gen, err := app.NewGenerator(generatorFlags(cmd))
	if err != nil {
		return err
	}
	jobs := app.Config.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs, _ = cmd.Flags().GetInt("jobs")
	}

	var results []codegen.BatchResult
	err = ui.RunSpinner(cmd.Context(), fmt.Sprintf("Processing %d fixture(s)...", len(fixtures)), func(ctx context.Context) error {
		var e error
		results, e = gen.RunBatch(ctx, fixtures, jobs)
		return e
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), app.Config.Output, results, ui.RenderBatch(results)); err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fixture(s) failed", failed, len(results))
	}
	return nil
}
