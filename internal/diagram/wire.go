package diagram

// Wire is the serializable form of a diagram tree, shared by the JSON and
// YAML surfaces.
type Wire struct {
	Type       string `json:"type" yaml:"type"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	Default    *int   `json:"default,omitempty" yaml:"default,omitempty"`
	Annotation string `json:"annotation,omitempty" yaml:"annotation,omitempty"`
	Children   []Wire `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToWire converts n into its serializable form.
func ToWire(n Node) Wire {
	w := Wire{Type: n.Kind()}
	switch n := n.(type) {
	case *Terminal:
		w.Text = n.Text
		return w
	case *NonTerminal:
		w.Text = n.Text
		return w
	case *Comment:
		w.Text = n.Text
		return w
	case *Choice:
		def := n.Default
		w.Default = &def
	case *OneOrMore:
		if n.Annotation != nil {
			w.Annotation = n.Annotation.Text
		}
		w.Children = []Wire{ToWire(n.Child)}
		return w
	}
	for _, c := range Children(n) {
		w.Children = append(w.Children, ToWire(c))
	}
	return w
}
