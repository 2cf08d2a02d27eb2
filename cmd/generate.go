package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getlawrence/nodediff/internal/templates"
)

var generateCmd = &cobra.Command{
	Use:   "generate <rule-name> [original-file expected-file]",
	Short: "Scaffold a rewrite rule and its fixture from a before/after pair",
	Long: `Generate runs the same pipeline as diff and renders the result into a rule
skeleton plus a .php.inc test fixture.

Files are written to <out>/rules and <out>/fixtures. With --dry-run the
rendered files are printed instead.

Example usage:
  nodediff generate AddBarArgumentRector before.php after.php --out ./src
  nodediff generate AddBarArgument --emitter go --dry-run \
    --original-code 'foo($bar);' --expected-code 'foo($bar, $bar);'`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("original-code") || cmd.Flags().Changed("expected-code") {
			return exactFiles(1, "a rule name")(cmd, args)
		}
		return exactFiles(3, "a rule name, an original and an expected file")(cmd, args)
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGeneratorFlags(generateCmd)
	generateCmd.Flags().String("original-code", "", "original code given inline")
	generateCmd.Flags().String("expected-code", "", "expected code given inline")
	generateCmd.Flags().String("out", ".", "directory the rules and fixtures directories are created in")
	generateCmd.Flags().String("namespace", "", "PHP namespace of the generated rule")
	generateCmd.Flags().String("description", "", "one-line description of the rule")
	generateCmd.Flags().Bool("dry-run", false, "print generated files without writing them")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	name := args[0]
	original, expected, err := readPair(cmd, args[1:])
	if err != nil {
		return err
	}

	opts := generatorFlags(cmd)
	gen, err := app.NewGenerator(opts)
	if err != nil {
		return err
	}
	res, err := gen.Generate(cmd.Context(), original, expected)
	if err != nil {
		return err
	}
	if res.Empty() {
		return fmt.Errorf("original and expected code are structurally identical, nothing to generate")
	}

	engine, err := templates.NewTemplateEngine()
	if err != nil {
		return err
	}
	description := stringFlag(cmd, "description", "")
	if description == "" {
		description = "rewrites " + firstNonEmpty(res.Hook, "statements") + " nodes"
	}
	data := templates.RuleData{
		Name:          name,
		Namespace:     stringFlag(cmd, "namespace", app.Config.Rule.Namespace),
		NodeNamespace: app.Config.Rule.NodeNamespace,
		Description:   description,
		Hook:          res.Hook,
		Statements:    res.Statements,
		Root:          res.Root,
		Original:      original,
		Expected:      expected,
	}

	outDir, _ := cmd.Flags().GetString("out")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	files, err := engine.Scaffold(data, gen.Emitter().Name(), outDir, dryRun)
	if err != nil {
		return err
	}

	var text strings.Builder
	for _, f := range files {
		if dryRun {
			fmt.Fprintf(&text, "--- %s\n%s\n", f.Path, f.Content)
		} else {
			fmt.Fprintf(&text, "wrote %s\n", f.Path)
		}
	}
	return writeOutput(cmd.OutOrStdout(), app.Config.Output, files, text.String())
}
