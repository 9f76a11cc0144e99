package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regview/pkg/regview"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export PATTERN",
		Short: "Generate Go source declaring the compiled pattern",
		Long: `Export writes a Go file declaring the pattern as a package-level compiled
regexp: the standard library engine when the pattern is RE2-compatible, regexp2
otherwise. Each --test-input adds a case to a generated table test.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			pkg, _ := cmd.Flags().GetString("package")
			output, _ := cmd.Flags().GetString("output")
			inputs, _ := cmd.Flags().GetStringArray("test-input")
			withTest, _ := cmd.Flags().GetBool("test")

			opts := regview.ExportOptions{
				Pattern:          a.viz.Normalize(args[0]),
				Name:             name,
				OutputFile:       output,
				Package:          pkg,
				GenerateTestFile: withTest,
				TestFileInputs:   inputs,
				Verbose:          a.cfg.Verbose,
			}
			if err := regview.Export(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("name", "n", "", "Name of the generated variable (required)")
	cmd.Flags().StringP("package", "p", "main", "Package of the generated file")
	cmd.Flags().StringP("output", "o", "", "Output file (required)")
	cmd.Flags().StringArrayP("test-input", "t", nil, "Input for the generated test (repeatable)")
	cmd.Flags().Bool("test", false, "Generate a test file even without --test-input")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
