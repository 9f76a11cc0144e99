package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KromDaniel/regview/internal/config"
	"github.com/KromDaniel/regview/internal/logger"
	"github.com/KromDaniel/regview/pkg/regview"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	viz    *regview.Visualizer
	logger *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "regview",
		Short: "Visualize regular expressions",
		Long: `regview normalizes a regular expression written in a foreign dialect,
draws it as a grammar diagram and highlights its matches in sample text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default: .config/regview.{yaml,yml,json,jsonc})")
	flags.BoolP("verbose", "v", false, "Log pipeline stages to stderr")
	flags.Duration("match-timeout", 0, "Limit each engine call (e.g. 500ms)")
	flags.Int("max-steps", 0, "Limit the engine calls of one highlight run")
	flags.String("color", "", "Colour mode: auto, always, never")
	for _, name := range []string{"verbose", "match-timeout", "max-steps", "color"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
	a.v.SetEnvPrefix("REGVIEW")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newNormalizeCmd(a),
		newDiagramCmd(a),
		newMatchCmd(a),
		newReplaceCmd(a),
		newAnalyzeCmd(a),
		newExportCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the config file and applies flag and environment overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	if a.v.IsSet("verbose") {
		cfg.Verbose = a.v.GetBool("verbose")
	}
	if a.v.IsSet("match-timeout") {
		cfg.MatchTimeout = config.Duration(a.v.GetDuration("match-timeout"))
	}
	if a.v.IsSet("max-steps") {
		cfg.MaxSteps = a.v.GetInt("max-steps")
	}
	if a.v.IsSet("color") {
		cfg.Color = a.v.GetString("color")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	caps := cfg.Capabilities()
	opts := cfg.HighlightOptions()
	a.cfg = cfg
	a.viz = regview.New(regview.Options{
		Capabilities: &caps,
		MatchTimeout: opts.MatchTimeout,
		MaxSteps:     opts.MaxSteps,
		Verbose:      cfg.Verbose,
	})
	a.viz.SetLogOutput(cmd.ErrOrStderr())
	a.logger = logger.New(cfg.Verbose)
	a.logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// readText returns args[i] when present, else the --file contents, else
// standard input.
func readText(cmd *cobra.Command, args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading standard input: %w", err)
	}
	return string(data), nil
}
