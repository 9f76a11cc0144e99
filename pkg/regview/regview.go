// Package regview turns regular expressions into grammar diagrams and
// highlights their matches in sample text.
//
// A Visualizer runs two independent branches over a raw pattern: the pattern
// is first normalized into the canonical dialect, then parsed and rendered as
// a diagram on one side and matched against the test text on the other. An
// error in one branch never affects the other.
//
// Example:
//
//	v := regview.New(regview.Options{MatchTimeout: time.Second})
//	report := v.Run(ctx, `r"(\d+)-(\d+)"`, "10-20 and 3-4")
//	if report.DiagramErr == nil {
//	    report.WriteDiagram("outline", os.Stdout)
//	}
//	for _, s := range regview.Matches(report.Segments) {
//	    fmt.Println(s.Start, s.End, s.Text)
//	}
package regview

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KromDaniel/regview/internal/diagram"
	"github.com/KromDaniel/regview/internal/dialect"
	"github.com/KromDaniel/regview/internal/highlight"
	"github.com/KromDaniel/regview/internal/logger"
	"github.com/KromDaniel/regview/internal/parser"
	"github.com/KromDaniel/regview/internal/surface"
	"github.com/KromDaniel/regview/replace"
)

type (
	// Capabilities toggles optional pattern syntax.
	Capabilities = parser.Capabilities
	// ParseError is returned by the diagram branch for invalid patterns.
	ParseError = parser.ParseError
	// DiagramNode is a node of a rendered grammar diagram.
	DiagramNode = diagram.Node
	// Segment is one piece of highlighted text.
	Segment = highlight.Segment
	// CompileError is returned when the engine rejects a pattern.
	CompileError = highlight.CompileError
	// TimeoutError is returned when a highlight run exhausts its budget.
	TimeoutError = highlight.TimeoutError
	// Step names one normalization rewrite.
	Step = dialect.Step
)

// ErrMatchTimeout matches every *TimeoutError with errors.Is.
var ErrMatchTimeout = highlight.ErrMatchTimeout

// Options configures a Visualizer.
type Options struct {
	// Capabilities enables optional syntax; nil means all enabled.
	Capabilities *Capabilities

	// MatchTimeout limits each engine call (0 = no limit).
	MatchTimeout time.Duration

	// MaxSteps limits the engine calls of one highlight run (0 = no limit).
	MaxSteps int

	// Verbose logs each pipeline stage to stderr.
	Verbose bool
}

// Visualizer runs the normalize, diagram and highlight pipeline. It is safe
// for concurrent use.
type Visualizer struct {
	parser      *parser.Parser
	highlighter *highlight.Highlighter
	logger      *logger.Logger
}

// New creates a Visualizer.
func New(opts Options) *Visualizer {
	caps := parser.DefaultCapabilities()
	if opts.Capabilities != nil {
		caps = *opts.Capabilities
	}
	return &Visualizer{
		parser: parser.New(caps),
		highlighter: highlight.New(highlight.Options{
			MatchTimeout: opts.MatchTimeout,
			MaxSteps:     opts.MaxSteps,
		}),
		logger: logger.New(opts.Verbose),
	}
}

// SetLogOutput redirects verbose logging.
func (v *Visualizer) SetLogOutput(w io.Writer) {
	v.logger.SetOutput(w)
}

// Normalize rewrites raw pattern text into the canonical dialect. It never
// fails.
func (v *Visualizer) Normalize(raw string) string {
	pattern, steps := dialect.Explain(raw)
	if len(steps) > 0 {
		v.logger.Log("Normalized %q -> %q (%v)", raw, pattern, steps)
	}
	return pattern
}

// Diagram parses a canonical pattern and renders its grammar diagram.
func (v *Visualizer) Diagram(pattern string) (DiagramNode, error) {
	tree, err := v.parser.Parse(pattern)
	if err != nil {
		v.logger.Log("Diagram: %v", err)
		return nil, err
	}
	return diagram.Render(tree), nil
}

// Highlight partitions text into plain and matched segments. The segments
// always reassemble text, even when an error is returned.
func (v *Visualizer) Highlight(ctx context.Context, pattern, text string) ([]Segment, error) {
	segs, err := v.highlighter.Highlight(ctx, pattern, text)
	if err != nil {
		v.logger.Log("Highlight: %v", err)
	}
	return segs, err
}

// Substitute replaces every match of pattern in text with the expansion of
// template (see package replace for its syntax). Zero-width matches insert
// the expansion at their position. When matching stops early the text after
// the last match is kept unchanged and the error is returned with the result.
func (v *Visualizer) Substitute(ctx context.Context, pattern, text, template string) (string, error) {
	tmpl, err := replace.Parse(template)
	if err != nil {
		return "", err
	}

	segs, err := v.Highlight(ctx, pattern, text)
	var b strings.Builder
	for _, s := range segs {
		if s.Kind == highlight.Plain {
			b.WriteString(s.Text)
			continue
		}
		tmpl.ExpandTo(&b, captures(s))
	}
	return b.String(), err
}

func captures(s Segment) replace.Captures {
	c := replace.Captures{
		Match:  s.Text,
		Groups: make(map[int]string, len(s.Groups)),
		Names:  make(map[string]string),
	}
	for _, g := range s.Groups {
		if !g.Matched {
			continue
		}
		c.Groups[g.Number] = g.Text
		if g.Name != "" {
			c.Names[g.Name] = g.Text
		}
	}
	return c
}

// Report is the outcome of one Run. DiagramErr and HighlightErr are
// independent: either branch may fail while the other succeeds.
type Report struct {
	Raw     string
	Pattern string
	Steps   []Step

	Diagram    DiagramNode
	DiagramErr error

	Segments     []Segment
	HighlightErr error
}

// Run normalizes raw and runs both branches over the result.
func (v *Visualizer) Run(ctx context.Context, raw, text string) *Report {
	pattern, steps := dialect.Explain(raw)
	r := &Report{Raw: raw, Pattern: pattern, Steps: steps}
	if len(steps) > 0 {
		v.logger.Log("Normalized %q -> %q (%v)", raw, pattern, steps)
	}

	r.Diagram, r.DiagramErr = v.Diagram(pattern)
	r.Segments, r.HighlightErr = v.Highlight(ctx, pattern, text)
	return r
}

// WriteDiagram displays the diagram on a fresh surface for format
// ("outline", "json" or "yaml"). It returns DiagramErr when the diagram
// branch failed.
func (r *Report) WriteDiagram(format string, w io.Writer) error {
	if r.DiagramErr != nil {
		return r.DiagramErr
	}
	return WriteDiagram(format, w, r.Diagram)
}

// WriteDiagram displays n on a fresh surface for format.
func WriteDiagram(format string, w io.Writer, n DiagramNode) error {
	s, err := surface.ForFormat(format, w)
	if err != nil {
		return err
	}
	return surface.Display(s, n)
}

// Matches returns only the matched segments.
func Matches(segs []Segment) []Segment {
	return highlight.Matches(segs)
}

// Leaves counts the terminal and non-terminal leaves of a diagram.
func Leaves(n DiagramNode) int {
	return diagram.Leaves(n)
}

// RenderHighlight writes segs to w, with 24-bit ANSI colours when color is
// true and with a marker line under the text otherwise. Empty palette
// entries use the default colours.
func RenderHighlight(w io.Writer, segs []Segment, even, odd string, color bool) error {
	p := highlight.DefaultPalette
	if even != "" {
		p.Even = even
	}
	if odd != "" {
		p.Odd = odd
	}
	r, err := highlight.NewRenderer(p, color)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	return r.Render(w, segs)
}
