package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regview/pkg/regview"
)

func newReplaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace PATTERN TEMPLATE [TEXT]",
		Short: "Preview a substitution",
		Long: `Replace expands TEMPLATE for every match of the pattern and prints the
resulting text. The template may use $0 or ${0} for the whole match, $1..$99 or
${n} for numbered groups, $name or ${name} for named groups and $$ for a
literal dollar sign.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, 2)
			if err != nil {
				return err
			}

			pattern := a.viz.Normalize(args[0])
			result, err := a.viz.Substitute(cmd.Context(), pattern, text, args[1])
			var timeout *regview.TimeoutError
			var compileErr *regview.CompileError
			switch {
			case err == nil, errors.As(err, &compileErr):
			case errors.As(err, &timeout):
				a.warn(err)
			default:
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), result)
			return err
		},
	}
	cmd.Flags().String("file", "", "Read the text from a file")
	return cmd
}
