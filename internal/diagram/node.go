// Package diagram maps pattern trees onto railroad (grammar) diagram nodes.
package diagram

// Node is one element of a railroad diagram.
type Node interface {
	// Kind names the diagram element, e.g. "choice" or "terminal".
	Kind() string
}

// Choice branches into Children; Default is the index of the main line.
type Choice struct {
	Default  int
	Children []Node
}

// Sequence runs Children one after another.
type Sequence struct {
	Children []Node
}

// Optional may skip Child.
type Optional struct {
	Child Node
}

// ZeroOrMore loops over Child any number of times, including none.
type ZeroOrMore struct {
	Child Node
}

// OneOrMore loops over Child at least once. Annotation labels bounded
// repetitions such as "2..5".
type OneOrMore struct {
	Child      Node
	Annotation *Comment
}

// Terminal is literal text.
type Terminal struct {
	Text string
}

// NonTerminal names a set or construct rather than literal text.
type NonTerminal struct {
	Text string
}

// Comment is an inline label.
type Comment struct {
	Text string
}

func (*Choice) Kind() string      { return "choice" }
func (*Sequence) Kind() string    { return "sequence" }
func (*Optional) Kind() string    { return "optional" }
func (*ZeroOrMore) Kind() string  { return "zeroOrMore" }
func (*OneOrMore) Kind() string   { return "oneOrMore" }
func (*Terminal) Kind() string    { return "terminal" }
func (*NonTerminal) Kind() string { return "nonTerminal" }
func (*Comment) Kind() string     { return "comment" }

// Children returns the direct children of n. A OneOrMore annotation is
// included after the looped child.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Choice:
		return n.Children
	case *Sequence:
		return n.Children
	case *Optional:
		return []Node{n.Child}
	case *ZeroOrMore:
		return []Node{n.Child}
	case *OneOrMore:
		if n.Annotation != nil {
			return []Node{n.Child, n.Annotation}
		}
		return []Node{n.Child}
	}
	return nil
}

// Leaves counts Terminal and NonTerminal nodes in the tree.
func Leaves(n Node) int {
	switch n.(type) {
	case *Terminal, *NonTerminal:
		return 1
	}
	count := 0
	for _, c := range Children(n) {
		count += Leaves(c)
	}
	return count
}
