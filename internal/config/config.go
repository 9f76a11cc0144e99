// Package config provides configuration loading for regview.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/regview/internal/highlight"
	"github.com/KromDaniel/regview/internal/parser"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the regview configuration.
type Config struct {
	// Format is the diagram output format: outline, json or yaml.
	Format string `yaml:"format" json:"format"`

	// Color is one of auto, always, never.
	Color string `yaml:"color" json:"color"`

	// Palette holds the CSS colours of alternating matches.
	Palette Palette `yaml:"palette" json:"palette"`

	// MatchTimeout bounds each engine call; zero means no limit.
	MatchTimeout Duration `yaml:"matchTimeout" json:"matchTimeout"`

	// MaxSteps bounds the engine calls of one highlight run; zero means no limit.
	MaxSteps int `yaml:"maxSteps" json:"maxSteps"`

	// Syntax toggles optional pattern syntax.
	Syntax Syntax `yaml:"syntax" json:"syntax"`

	// Samples are files (globs allowed) checked by `regview check`.
	Samples []string `yaml:"samples" json:"samples"`

	// Concurrency bounds how many samples are checked at once.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Palette is the configured pair of match colours.
type Palette struct {
	Even string `yaml:"even" json:"even"`
	Odd  string `yaml:"odd" json:"odd"`
}

// Syntax mirrors parser.Capabilities.
type Syntax struct {
	UnicodePropertyEscapes bool `yaml:"unicodePropertyEscapes" json:"unicodePropertyEscapes"`
	NamedGroups            bool `yaml:"namedGroups" json:"namedGroups"`
	Lookbehind             bool `yaml:"lookbehind" json:"lookbehind"`
}

// Duration is a time.Duration written as "250ms" or "2s".
type Duration time.Duration

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.set(s)
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %s", data)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// MarshalJSON writes the duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) set(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Format: "outline",
		Color:  ColorAuto,
		Palette: Palette{
			Even: highlight.DefaultPalette.Even,
			Odd:  highlight.DefaultPalette.Odd,
		},
		MatchTimeout: Duration(2 * time.Second),
		MaxSteps:     100000,
		Syntax: Syntax{
			UnicodePropertyEscapes: true,
			NamedGroups:            true,
			Lookbehind:             true,
		},
		Concurrency: 4,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Format {
	case "outline", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q: want outline, json or yaml", c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("matchTimeout must not be negative")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("maxSteps must not be negative")
	}
	if _, err := highlight.NewRenderer(c.HighlightPalette(), false); err != nil {
		return err
	}
	return nil
}

// Capabilities returns the parser capabilities the config enables.
func (c *Config) Capabilities() parser.Capabilities {
	return parser.Capabilities{
		UnicodePropertyEscapes: c.Syntax.UnicodePropertyEscapes,
		NamedGroups:            c.Syntax.NamedGroups,
		Lookbehind:             c.Syntax.Lookbehind,
	}
}

// HighlightOptions returns the highlighter bounds.
func (c *Config) HighlightOptions() highlight.Options {
	return highlight.Options{
		MatchTimeout: time.Duration(c.MatchTimeout),
		MaxSteps:     c.MaxSteps,
	}
}

// HighlightPalette returns the palette, falling back to the default colours
// for empty entries.
func (c *Config) HighlightPalette() highlight.Palette {
	p := highlight.Palette{Even: c.Palette.Even, Odd: c.Palette.Odd}
	if p.Even == "" {
		p.Even = highlight.DefaultPalette.Even
	}
	if p.Odd == "" {
		p.Odd = highlight.DefaultPalette.Odd
	}
	return p
}

// UseColor resolves the colour mode for w. In auto mode colour is used only
// when w is a terminal and NO_COLOR is unset.
func (c *Config) UseColor(w io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
