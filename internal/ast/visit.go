package ast

import "fmt"

// Visitor handles every node kind. Adding a node kind adds a method here,
// which breaks every implementation until the new kind is handled.
type Visitor[T any] interface {
	VisitDisjunction(*Disjunction) T
	VisitSequence(*Sequence) T
	VisitQuantifier(*Quantifier) T
	VisitGroup(*Group) T
	VisitCharacterClass(*CharacterClass) T
	VisitLiteral(*Literal) T
	VisitDot(*Dot) T
	VisitAnchor(*Anchor) T
	VisitUnicodePropertyEscape(*UnicodePropertyEscape) T
	VisitEscape(*Escape) T
	VisitLookaround(*Lookaround) T
	VisitBackreference(*Backreference) T
	VisitUnsupported(*Unsupported) T
}

// Visit dispatches n to the matching Visitor method.
// A nil node is visited as an empty Sequence.
func Visit[T any](n Node, v Visitor[T]) T {
	switch n := n.(type) {
	case nil:
		return v.VisitSequence(&Sequence{})
	case *Disjunction:
		return v.VisitDisjunction(n)
	case *Sequence:
		return v.VisitSequence(n)
	case *Quantifier:
		return v.VisitQuantifier(n)
	case *Group:
		return v.VisitGroup(n)
	case *CharacterClass:
		return v.VisitCharacterClass(n)
	case *Literal:
		return v.VisitLiteral(n)
	case *Dot:
		return v.VisitDot(n)
	case *Anchor:
		return v.VisitAnchor(n)
	case *UnicodePropertyEscape:
		return v.VisitUnicodePropertyEscape(n)
	case *Escape:
		return v.VisitEscape(n)
	case *Lookaround:
		return v.VisitLookaround(n)
	case *Backreference:
		return v.VisitBackreference(n)
	case *Unsupported:
		return v.VisitUnsupported(n)
	default:
		return v.VisitUnsupported(&Unsupported{Kind: fmt.Sprintf("%T", n)})
	}
}

// KindName returns a short name for the node's kind, e.g. "quantifier".
func KindName(n Node) string {
	switch n := n.(type) {
	case *Disjunction:
		return "disjunction"
	case *Sequence:
		return "sequence"
	case *Quantifier:
		return "quantifier"
	case *Group:
		return "group"
	case *CharacterClass:
		return "characterClass"
	case *Literal:
		return "literal"
	case *Dot:
		return "dot"
	case *Anchor:
		return "anchor"
	case *UnicodePropertyEscape:
		return "unicodePropertyEscape"
	case *Escape:
		return "escape"
	case *Lookaround:
		return "lookaround"
	case *Backreference:
		return "backreference"
	case *Unsupported:
		return n.Kind
	default:
		return fmt.Sprintf("%T", n)
	}
}

// Children returns the direct sub-nodes of n.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Disjunction:
		return n.Alternatives
	case *Sequence:
		return n.Elements
	case *Quantifier:
		return []Node{n.Body}
	case *Group:
		return []Node{n.Body}
	case *Lookaround:
		return []Node{n.Body}
	}
	return nil
}

// Walk calls fn for n and every descendant in depth-first order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Leaves counts the nodes that stand for concrete matchable items:
// literals, dots, classes, anchors, escapes and backreferences.
func Leaves(n Node) int {
	count := 0
	Walk(n, func(n Node) bool {
		switch n.(type) {
		case *Literal, *Dot, *CharacterClass, *Anchor, *UnicodePropertyEscape,
			*Escape, *Backreference, *Unsupported:
			count++
		}
		return true
	})
	return count
}
