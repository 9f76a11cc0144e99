package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KromDaniel/regview/internal/diagram"
	"gopkg.in/yaml.v3"
)

// Outline writes diagrams as an indented tree, one element per line.
type Outline struct {
	W io.Writer
}

func (o *Outline) Acquire() (Region, error) {
	return newRegion(o.W, writeOutline), nil
}

func writeOutline(w io.Writer, n diagram.Node) error {
	var b strings.Builder
	outline(&b, n, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func outline(b *strings.Builder, n diagram.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind())
	switch n := n.(type) {
	case *diagram.Terminal:
		b.WriteString(" " + strconv.Quote(n.Text))
	case *diagram.NonTerminal:
		b.WriteString(" " + n.Text)
	case *diagram.Comment:
		b.WriteString(" (" + n.Text + ")")
	case *diagram.Choice:
		fmt.Fprintf(b, " default=%d", n.Default)
	case *diagram.OneOrMore:
		if n.Annotation != nil {
			b.WriteString(" [" + n.Annotation.Text + "]")
		}
		b.WriteByte('\n')
		outline(b, n.Child, depth+1)
		return
	}
	b.WriteByte('\n')
	for _, c := range diagram.Children(n) {
		outline(b, c, depth+1)
	}
}

// JSON writes diagrams as a JSON document.
type JSON struct {
	W      io.Writer
	Indent string
}

func (j *JSON) Acquire() (Region, error) {
	return newRegion(j.W, func(w io.Writer, n diagram.Node) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if j.Indent != "" {
			enc.SetIndent("", j.Indent)
		}
		return enc.Encode(diagram.ToWire(n))
	}), nil
}

// YAML writes diagrams as a YAML document.
type YAML struct {
	W io.Writer
}

func (y *YAML) Acquire() (Region, error) {
	return newRegion(y.W, func(w io.Writer, n diagram.Node) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(diagram.ToWire(n)); err != nil {
			return err
		}
		return enc.Close()
	}), nil
}
