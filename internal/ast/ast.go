// Package ast defines the canonical syntax tree for a normalized pattern.
//
// The tree is produced by the parser package from whatever the underlying
// syntax parser returns, so nothing outside internal/parser depends on the
// foreign tree shape. Nodes are plain structs behind the sealed Node interface.
package ast

// Unbounded is the Quantifier.Max value for quantifiers without an upper bound.
const Unbounded = -1

// Node is a node of the pattern syntax tree.
type Node interface {
	isNode()
}

// Disjunction is an alternation: a|b|c.
type Disjunction struct {
	Alternatives []Node
}

// Sequence is a concatenation of elements. An empty Sequence matches the empty string.
type Sequence struct {
	Elements []Node
}

// Quantifier repeats Body between Min and Max times.
// Max is Unbounded when the quantifier has no upper limit.
type Quantifier struct {
	Min  int
	Max  int
	Lazy bool
	Body Node
}

// Group is a parenthesized sub-pattern.
// Name is set only for named capture groups.
type Group struct {
	Name      string
	Capturing bool
	Body      Node
}

// CharacterClass is a bracket expression such as [a-z_] or [^0-9].
type CharacterClass struct {
	Negated bool
	Members []ClassMember
}

// Literal matches a single codepoint.
type Literal struct {
	Codepoint rune
}

// Dot matches any character.
type Dot struct{}

// AnchorKind identifies the position an Anchor asserts.
type AnchorKind int

const (
	AnchorStart AnchorKind = iota
	AnchorEnd
	AnchorOther
)

// Anchor is a zero-width position assertion. Raw holds the source text
// for AnchorOther (\b, \B, \A, \z).
type Anchor struct {
	Kind AnchorKind
	Raw  string
}

// UnicodePropertyEscape is \p{Name} or, when Negated, \P{Name}.
type UnicodePropertyEscape struct {
	Name    string
	Negated bool
}

// Escape is a shorthand class escape outside brackets, e.g. \d or \W.
type Escape struct {
	Raw string
}

// Lookaround is a lookahead or lookbehind assertion.
type Lookaround struct {
	Behind  bool
	Negated bool
	Body    Node
}

// Backreference refers to an earlier capture group by number or name.
type Backreference struct {
	Ref string
}

// Unsupported stands in for a construct the parser adapter does not map.
// Kind names the foreign construct.
type Unsupported struct {
	Kind string
	Raw  string
}

func (*Disjunction) isNode()           {}
func (*Sequence) isNode()              {}
func (*Quantifier) isNode()            {}
func (*Group) isNode()                 {}
func (*CharacterClass) isNode()        {}
func (*Literal) isNode()               {}
func (*Dot) isNode()                   {}
func (*Anchor) isNode()                {}
func (*UnicodePropertyEscape) isNode() {}
func (*Escape) isNode()                {}
func (*Lookaround) isNode()            {}
func (*Backreference) isNode()         {}
func (*Unsupported) isNode()           {}

// ClassMember is one entry of a CharacterClass.
type ClassMember interface {
	isClassMember()
}

// ClassLiteral is a single codepoint inside brackets.
type ClassLiteral struct {
	Codepoint rune
}

// ClassRange is an inclusive codepoint range lo-hi. The parser guarantees Low <= High.
type ClassRange struct {
	Low  rune
	High rune
}

// ClassEscape is a named set inside brackets: \d, \p{L}, [:alpha:].
type ClassEscape struct {
	Raw string
}

func (ClassLiteral) isClassMember() {}
func (ClassRange) isClassMember()   {}
func (ClassEscape) isClassMember()  {}
