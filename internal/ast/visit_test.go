package ast

import "testing"

// kindVisitor reports the kind name through the Visitor dispatch.
type kindVisitor struct{}

func (kindVisitor) VisitDisjunction(*Disjunction) string       { return "disjunction" }
func (kindVisitor) VisitSequence(*Sequence) string             { return "sequence" }
func (kindVisitor) VisitQuantifier(*Quantifier) string         { return "quantifier" }
func (kindVisitor) VisitGroup(*Group) string                   { return "group" }
func (kindVisitor) VisitCharacterClass(*CharacterClass) string { return "characterClass" }
func (kindVisitor) VisitLiteral(*Literal) string               { return "literal" }
func (kindVisitor) VisitDot(*Dot) string                       { return "dot" }
func (kindVisitor) VisitAnchor(*Anchor) string                 { return "anchor" }
func (kindVisitor) VisitUnicodePropertyEscape(*UnicodePropertyEscape) string {
	return "unicodePropertyEscape"
}
func (kindVisitor) VisitEscape(*Escape) string               { return "escape" }
func (kindVisitor) VisitLookaround(*Lookaround) string       { return "lookaround" }
func (kindVisitor) VisitBackreference(*Backreference) string { return "backreference" }
func (kindVisitor) VisitUnsupported(u *Unsupported) string   { return u.Kind }

func TestVisitDispatchesEveryKind(t *testing.T) {
	nodes := []Node{
		&Disjunction{},
		&Sequence{},
		&Quantifier{Body: &Dot{}},
		&Group{Body: &Dot{}},
		&CharacterClass{},
		&Literal{Codepoint: 'a'},
		&Dot{},
		&Anchor{Kind: AnchorStart},
		&UnicodePropertyEscape{Name: "L"},
		&Escape{Raw: `\d`},
		&Lookaround{Body: &Dot{}},
		&Backreference{Ref: "1"},
		&Unsupported{Kind: "mystery"},
	}

	for _, n := range nodes {
		got := Visit[string](n, kindVisitor{})
		if want := KindName(n); got != want {
			t.Errorf("Visit(%T) = %q, want %q", n, got, want)
		}
	}
}

func TestVisitNilIsEmptySequence(t *testing.T) {
	if got := Visit[string](nil, kindVisitor{}); got != "sequence" {
		t.Errorf("Visit(nil) = %q, want sequence", got)
	}
}

func TestLeaves(t *testing.T) {
	// ^(a|\d)+[x-z]$
	tree := &Sequence{Elements: []Node{
		&Anchor{Kind: AnchorStart},
		&Quantifier{Min: 1, Max: Unbounded, Body: &Group{Capturing: true, Body: &Disjunction{
			Alternatives: []Node{&Literal{Codepoint: 'a'}, &Escape{Raw: `\d`}},
		}}},
		&CharacterClass{Members: []ClassMember{ClassRange{Low: 'x', High: 'z'}}},
		&Anchor{Kind: AnchorEnd},
	}}

	if got := Leaves(tree); got != 5 {
		t.Errorf("Leaves() = %d, want 5", got)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := &Sequence{Elements: []Node{
		&Group{Body: &Literal{Codepoint: 'a'}},
		&Literal{Codepoint: 'b'},
	}}

	var seen []string
	Walk(tree, func(n Node) bool {
		seen = append(seen, KindName(n))
		_, isGroup := n.(*Group)
		return !isGroup
	})

	want := []string{"sequence", "group", "literal"}
	if len(seen) != len(want) {
		t.Fatalf("Walk visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Walk visited %v, want %v", seen, want)
			break
		}
	}
}
