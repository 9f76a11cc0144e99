package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/regview/pkg/regview"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze PATTERN",
		Short: "Label a pattern's features and engine requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()

			result, err := regview.Analyze(a.viz.Normalize(args[0]))
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(result); err != nil {
					return err
				}
				return enc.Close()
			case "text":
				fmt.Fprintf(out, "features:       %s\n", strings.Join(result.FeatureLabels, ", "))
				fmt.Fprintf(out, "engine:         %s\n", strings.Join(result.EngineLabels, ", "))
				fmt.Fprintf(out, "re2 compatible: %v\n", result.RE2Compatible)
				if result.RE2Compatible {
					fmt.Fprintf(out, "nfa states:     %d\n", result.NFAStates)
				}
				if result.HasCaptures {
					fmt.Fprintf(out, "captures:       %d\n", len(result.CaptureNames))
				}
				if result.HasCatastrophicRisk {
					fmt.Fprintln(out, "warning:        nested quantifiers may backtrack catastrophically")
				}
				return nil
			default:
				return fmt.Errorf("invalid format %q: want text, json or yaml", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml")
	return cmd
}
