package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regview/pkg/regview"
)

func newDiagramCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagram PATTERN",
		Short: "Draw a pattern as a grammar diagram",
		Long: `Diagram normalizes and parses the pattern and prints its grammar diagram
as an indented outline, JSON or YAML. A pattern that does not parse is reported
with a caret under the offending position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format == "" {
				format = a.cfg.Format
			}

			pattern := a.viz.Normalize(args[0])
			n, err := a.viz.Diagram(pattern)
			if err != nil {
				printParseError(cmd.ErrOrStderr(), pattern, err)
				return nil
			}
			return regview.WriteDiagram(format, cmd.OutOrStdout(), n)
		},
	}
	cmd.Flags().StringP("format", "f", "", "Output format: outline, json, yaml (default from config)")
	return cmd
}

// printParseError shows the parser message verbatim, pointing at its
// position when it has one.
func printParseError(w io.Writer, pattern string, err error) {
	var parseErr *regview.ParseError
	if !errors.As(err, &parseErr) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %s\n", parseErr.Message)
	fmt.Fprintf(w, "  %s\n", pattern)
	fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", max(parseErr.Position, 0)))
}
