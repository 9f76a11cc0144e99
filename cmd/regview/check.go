package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KromDaniel/regview/internal/config"
	"github.com/KromDaniel/regview/pkg/regview"
)

// checkResult is the outcome for one sample file.
type checkResult struct {
	path    string
	matches int
	warning error
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check PATTERN [FILES...]",
		Short: "Count the matches of a pattern in sample files",
		Long: `Check highlights the pattern in every sample file and prints the number of
matches per file. Files may be globs (** included); without files the samples
listed in the config are used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failEmpty, _ := cmd.Flags().GetBool("fail-empty")
			jobs, _ := cmd.Flags().GetInt("jobs")
			if jobs <= 0 {
				jobs = a.cfg.Concurrency
			}

			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			var paths []string
			if len(args) > 1 {
				paths, err = config.ExpandGlobs(wd, args[1:])
			} else {
				paths, err = a.cfg.ExpandSamples(wd)
			}
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no sample files: pass files or set samples in the config")
			}

			pattern := a.viz.Normalize(args[0])
			results := make([]checkResult, len(paths))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(jobs, 1))
			for i, path := range paths {
				g.Go(func() error {
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					segs, err := a.viz.Highlight(ctx, pattern, string(data))
					results[i] = checkResult{
						path:    path,
						matches: len(regview.Matches(segs)),
						warning: err,
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var empty []string
			for _, r := range results {
				fmt.Fprintf(out, "%s: %d matches\n", r.path, r.matches)
				a.warn(r.warning)
				if r.matches == 0 {
					empty = append(empty, r.path)
				}
			}
			if failEmpty && len(empty) > 0 {
				return fmt.Errorf("no match in %s", strings.Join(empty, ", "))
			}
			return nil
		},
	}
	cmd.Flags().Bool("fail-empty", false, "Exit non-zero when a file has no match")
	cmd.Flags().IntP("jobs", "j", 0, "Files checked at once (default from config)")
	return cmd
}
