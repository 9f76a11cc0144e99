package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"golang.org/x/text/width"
)

// Palette holds the CSS colours of alternating matches.
type Palette struct {
	Even string
	Odd  string
}

// ZeroWidthMarker stands in for an empty match, which covers no text.
const ZeroWidthMarker = "|"

// DefaultPalette is used when no colours are configured.
var DefaultPalette = Palette{Even: "#fde68a", Odd: "#93c5fd"}

type swatch struct {
	bg, fg colorful.Color
}

// Renderer writes highlighted segments to a terminal, either with ANSI
// background colours or as text followed by a marker line.
type Renderer struct {
	color    bool
	swatches [2]swatch
}

// NewRenderer parses the palette colours. With color false the palette is
// still validated but matches are marked with ^ and ~ under the text.
func NewRenderer(p Palette, color bool) (*Renderer, error) {
	r := &Renderer{color: color}
	for i, css := range []string{p.Even, p.Odd} {
		sw, err := parseSwatch(css)
		if err != nil {
			return nil, err
		}
		r.swatches[i] = sw
	}
	return r, nil
}

func parseSwatch(css string) (swatch, error) {
	c, err := csscolorparser.Parse(css)
	if err != nil {
		return swatch{}, fmt.Errorf("highlight colour %q: %w", css, err)
	}
	bg := colorful.Color{R: c.R, G: c.G, B: c.B}
	// pick whichever text colour is further from the background
	black, white := colorful.Color{}, colorful.Color{R: 1, G: 1, B: 1}
	fg := white
	if bg.DistanceLab(black) > bg.DistanceLab(white) {
		fg = black
	}
	return swatch{bg: bg, fg: fg}, nil
}

// Render writes segs to w.
func (r *Renderer) Render(w io.Writer, segs []Segment) error {
	if r.color {
		return r.renderColor(w, segs)
	}
	return renderMarkers(w, segs)
}

func (r *Renderer) renderColor(w io.Writer, segs []Segment) error {
	var b strings.Builder
	for _, s := range segs {
		if s.Kind != Match {
			b.WriteString(s.Text)
			continue
		}
		text := s.Text
		if s.ZeroWidth {
			text = ZeroWidthMarker
		}
		sw := r.swatches[s.Index%2]
		br, bgG, bb := sw.bg.RGB255()
		fr, fg, fb := sw.fg.RGB255()
		fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm%s\x1b[0m", br, bgG, bb, fr, fg, fb, text)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// renderMarkers writes each line of text followed, when it holds a match,
// by a line marking matched columns: ^ for even matches, ~ for odd ones.
// A zero-width match puts ZeroWidthMarker in the column it sits before,
// unless a non-empty match already starts there.
// East Asian wide characters take two marker columns.
func renderMarkers(w io.Writer, segs []Segment) error {
	var out, line, marks strings.Builder
	marked, pending := false, false
	flush := func() {
		if pending {
			marks.WriteString(ZeroWidthMarker)
			pending = false
		}
		out.WriteString(line.String())
		out.WriteByte('\n')
		if marked {
			out.WriteString(strings.TrimRight(marks.String(), " \t"))
			out.WriteByte('\n')
		}
		line.Reset()
		marks.Reset()
		marked = false
	}

	for _, s := range segs {
		if s.Kind == Match && s.ZeroWidth {
			pending, marked = true, true
			continue
		}
		mark := " "
		if s.Kind == Match {
			mark = "^"
			if s.Index%2 == 1 {
				mark = "~"
			}
		}
		for _, c := range s.Text {
			if c == '\n' {
				flush()
				continue
			}
			line.WriteRune(c)
			cols := columns(c)
			switch {
			case c == '\t':
				if pending {
					marks.WriteString(ZeroWidthMarker)
				}
				marks.WriteByte('\t')
			case mark != " ":
				marks.WriteString(strings.Repeat(mark, cols))
				marked = true
			case pending:
				marks.WriteString(ZeroWidthMarker + strings.Repeat(" ", cols-1))
			default:
				marks.WriteString(strings.Repeat(" ", cols))
			}
			pending = false
		}
	}
	if line.Len() > 0 || marked {
		flush()
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func columns(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
