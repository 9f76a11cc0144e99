package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regview/pkg/regview"
)

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match PATTERN [TEXT]",
		Short: "Highlight the matches of a pattern in text",
		Long: `Match normalizes the pattern and highlights every match in TEXT, the file
given with --file, or standard input. Neighbouring matches alternate between the
two palette colours; without colour they are marked with ^ and ~ below the text.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, 1)
			if err != nil {
				return err
			}
			list, _ := cmd.Flags().GetBool("list")
			out := cmd.OutOrStdout()

			pattern := a.viz.Normalize(args[0])
			segs, err := a.viz.Highlight(cmd.Context(), pattern, text)
			a.warn(err)

			if list {
				return listMatches(out, segs)
			}
			palette := a.cfg.HighlightPalette()
			return regview.RenderHighlight(out, segs, palette.Even, palette.Odd, a.cfg.UseColor(out))
		},
	}
	cmd.Flags().String("file", "", "Read the text from a file")
	cmd.Flags().BoolP("list", "l", false, "List matches and their groups instead of highlighting")
	return cmd
}

// warn surfaces highlight errors that leave the result usable. Compile errors
// are only logged in verbose mode.
func (a *app) warn(err error) {
	if err == nil {
		return
	}
	var compileErr *regview.CompileError
	if errors.As(err, &compileErr) {
		return
	}
	if errors.Is(err, regview.ErrMatchTimeout) {
		a.logger.Warn("%v; showing matches found so far", err)
		return
	}
	a.logger.Warn("%v", err)
}

func listMatches(w io.Writer, segs []regview.Segment) error {
	for _, s := range regview.Matches(segs) {
		if _, err := fmt.Fprintf(w, "%d\t%d-%d\t%s\n", s.Index, s.Start, s.End, strconv.Quote(s.Text)); err != nil {
			return err
		}
		for _, g := range s.Groups {
			label := strconv.Itoa(g.Number)
			if g.Name != "" {
				label = g.Name
			}
			if !g.Matched {
				fmt.Fprintf(w, "\t%s\t-\n", label)
				continue
			}
			fmt.Fprintf(w, "\t%s\t%d-%d\t%s\n", label, g.Start, g.End, strconv.Quote(g.Text))
		}
	}
	return nil
}
