package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KromDaniel/regview/internal/ast"
)

// Render maps a pattern tree onto a diagram tree. It is total: unknown
// pattern nodes become a NonTerminal carrying their kind name.
func Render(n ast.Node) Node {
	return ast.Visit[Node](n, renderer{})
}

type renderer struct{}

func (r renderer) render(n ast.Node) Node {
	return ast.Visit[Node](n, r)
}

func (r renderer) VisitDisjunction(d *ast.Disjunction) Node {
	children := make([]Node, 0, len(d.Alternatives))
	for _, alt := range d.Alternatives {
		children = append(children, r.render(alt))
	}
	return &Choice{Default: 0, Children: children}
}

func (r renderer) VisitSequence(s *ast.Sequence) Node {
	children := make([]Node, 0, len(s.Elements))
	for _, el := range s.Elements {
		children = append(children, r.render(el))
	}
	return &Sequence{Children: children}
}

func (r renderer) VisitQuantifier(q *ast.Quantifier) Node {
	body := r.render(q.Body)
	switch {
	case q.Min == 0 && q.Max == 1:
		return &Optional{Child: body}
	case q.Min == 0 && q.Max == ast.Unbounded:
		return &ZeroOrMore{Child: body}
	case q.Min == 1 && q.Max == ast.Unbounded:
		return &OneOrMore{Child: body}
	}
	return &OneOrMore{Child: body, Annotation: &Comment{Text: RepeatLabel(q.Min, q.Max)}}
}

// RepeatLabel formats bounded repetition counts: "2+", "3" or "2..5".
func RepeatLabel(lo, hi int) string {
	switch {
	case hi == ast.Unbounded:
		return strconv.Itoa(lo) + "+"
	case lo == hi:
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d..%d", lo, hi)
}

func (r renderer) VisitGroup(g *ast.Group) Node {
	body := r.render(g.Body)
	if !g.Capturing {
		return &Sequence{Children: []Node{body}}
	}
	label := "group"
	if g.Name != "" {
		label = "(?<" + g.Name + ">...)"
	}
	return &Sequence{Children: []Node{&Comment{Text: label}, body}}
}

func (r renderer) VisitCharacterClass(c *ast.CharacterClass) Node {
	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	for _, m := range c.Members {
		b.WriteString(classMember(m))
	}
	b.WriteByte(']')
	return &NonTerminal{Text: b.String()}
}

func classMember(m ast.ClassMember) string {
	switch m := m.(type) {
	case ast.ClassLiteral:
		return string(m.Codepoint)
	case ast.ClassRange:
		return string(m.Low) + "-" + string(m.High)
	case ast.ClassEscape:
		return m.Raw
	}
	return ""
}

func (renderer) VisitLiteral(l *ast.Literal) Node {
	return &Terminal{Text: string(l.Codepoint)}
}

func (renderer) VisitDot(*ast.Dot) Node {
	return &NonTerminal{Text: "any character"}
}

func (renderer) VisitAnchor(a *ast.Anchor) Node {
	switch a.Kind {
	case ast.AnchorStart:
		return &Terminal{Text: "^"}
	case ast.AnchorEnd:
		return &Terminal{Text: "$"}
	}
	return &Terminal{Text: a.Raw}
}

func (renderer) VisitUnicodePropertyEscape(u *ast.UnicodePropertyEscape) Node {
	if u.Negated {
		return &NonTerminal{Text: `\P{` + u.Name + `}`}
	}
	return &NonTerminal{Text: `\p{` + u.Name + `}`}
}

func (renderer) VisitEscape(e *ast.Escape) Node {
	return &NonTerminal{Text: e.Raw}
}

func (r renderer) VisitLookaround(l *ast.Lookaround) Node {
	var label string
	switch {
	case !l.Behind && !l.Negated:
		label = "(?=...)"
	case !l.Behind && l.Negated:
		label = "(?!...)"
	case l.Behind && !l.Negated:
		label = "(?<=...)"
	default:
		label = "(?<!...)"
	}
	return &Sequence{Children: []Node{&Comment{Text: label}, r.render(l.Body)}}
}

func (renderer) VisitBackreference(b *ast.Backreference) Node {
	if _, err := strconv.Atoi(b.Ref); err == nil {
		return &NonTerminal{Text: `\` + b.Ref}
	}
	return &NonTerminal{Text: `\k<` + b.Ref + `>`}
}

func (renderer) VisitUnsupported(u *ast.Unsupported) Node {
	return &NonTerminal{Text: u.Kind}
}
