package main

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
)

func getVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}
	return version
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version needs no config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("error reading format flag: %w", err)
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(map[string]string{
					"version":   getVersion(),
					"gitCommit": gitCommit,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("error marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
			default:
				fmt.Fprintf(out, "regview %s\n", getVersion())
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	return cmd
}
