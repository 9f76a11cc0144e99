package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regview/internal/dialect"
)

func newNormalizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize PATTERN",
		Short: "Rewrite a pattern into the canonical dialect",
		Long: `Normalize strips quoted-literal wrappers (r"...", '...'), verbose-mode
whitespace and comments, inline modifier groups, possessive quantifiers and
atomic groups, printing the pattern the other commands work on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explain, _ := cmd.Flags().GetBool("explain")
			out := cmd.OutOrStdout()

			pattern, steps := dialect.Explain(args[0])
			fmt.Fprintln(out, pattern)
			if explain {
				for _, s := range steps {
					fmt.Fprintf(out, "  %s\n", s)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("explain", "e", false, "List the rewrites that were applied")
	return cmd
}
