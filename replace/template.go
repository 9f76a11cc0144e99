// Package replace parses substitution templates and expands them against the
// captures of a match.
package replace

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RefKind tells what a template segment stands for.
type RefKind int

const (
	// RefLiteral is plain text, including the "$" produced by "$$".
	RefLiteral RefKind = iota
	// RefMatch is the whole match ($0, ${0}).
	RefMatch
	// RefIndex is a numbered group ($1..$99, ${n}).
	RefIndex
	// RefName is a named group ($name, ${name}).
	RefName
)

func (k RefKind) String() string {
	switch k {
	case RefLiteral:
		return "literal"
	case RefMatch:
		return "match"
	case RefIndex:
		return "index"
	case RefName:
		return "name"
	}
	return "RefKind(" + strconv.Itoa(int(k)) + ")"
}

// Segment is one piece of a parsed template.
type Segment struct {
	Kind    RefKind
	Literal string // RefLiteral
	Index   int    // RefIndex
	Name    string // RefName
}

// Template is a parsed substitution template.
type Template struct {
	Source   string
	Segments []Segment
}

// Captures is what a template expands against.
// Groups is indexed by group number; a missing or unmatched group expands to "".
type Captures struct {
	Match  string
	Groups map[int]string
	Names  map[string]string
}

// SyntaxError reports a malformed braced reference.
type SyntaxError struct {
	Offset int // byte offset of the '$'
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template: %s at offset %d", e.Msg, e.Offset)
}

// Parse parses template. Syntax:
//   - $0, ${0}: the whole match
//   - $1..$99, ${n}: group n
//   - $name, ${name}: named group
//   - $$: a literal '$'
//
// A '$' that starts none of these is kept literally.
func Parse(template string) (*Template, error) {
	t := &Template{Source: template}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.Segments = append(t.Segments, Segment{Kind: RefLiteral, Literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' || i+1 == len(template) {
			lit.WriteByte(c)
			i++
			continue
		}

		next := template[i+1]
		switch {
		case next == '$':
			lit.WriteByte('$')
			i += 2

		case next == '{':
			seg, n, err := parseBraced(template[i:])
			if err != nil {
				return nil, &SyntaxError{Offset: i, Msg: err.Error()}
			}
			flush()
			t.Segments = append(t.Segments, seg)
			i += n

		case next >= '0' && next <= '9':
			seg, n := parseDigits(template[i:])
			flush()
			t.Segments = append(t.Segments, seg)
			i += n

		default:
			r, _ := utf8.DecodeRuneInString(template[i+1:])
			if !isNameStart(r) {
				lit.WriteByte('$')
				i++
				continue
			}
			name := scanName(template[i+1:])
			flush()
			t.Segments = append(t.Segments, Segment{Kind: RefName, Name: name})
			i += 1 + len(name)
		}
	}
	flush()
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(template string) *Template {
	t, err := Parse(template)
	if err != nil {
		panic(err)
	}
	return t
}

// parseBraced parses "${...}" at the start of s.
func parseBraced(s string) (Segment, int, error) {
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return Segment{}, 0, fmt.Errorf("unclosed ${")
	}
	body := s[2:end]
	if body == "" {
		return Segment{}, 0, fmt.Errorf("empty ${}")
	}

	if body[0] >= '0' && body[0] <= '9' {
		n, err := strconv.Atoi(body)
		if err != nil || n < 0 {
			return Segment{}, 0, fmt.Errorf("invalid group reference ${%s}", body)
		}
		return numbered(n), end + 1, nil
	}
	if scanName(body) != body {
		return Segment{}, 0, fmt.Errorf("invalid group name ${%s}", body)
	}
	return Segment{Kind: RefName, Name: body}, end + 1, nil
}

// parseDigits parses "$N" or "$NN" at the start of s. "$0" never takes a
// second digit.
func parseDigits(s string) (Segment, int) {
	n := int(s[1] - '0')
	if n == 0 {
		return numbered(0), 2
	}
	if len(s) > 2 && s[2] >= '0' && s[2] <= '9' {
		return numbered(n*10 + int(s[2]-'0')), 3
	}
	return numbered(n), 2
}

func numbered(n int) Segment {
	if n == 0 {
		return Segment{Kind: RefMatch}
	}
	return Segment{Kind: RefIndex, Index: n}
}

// scanName returns the longest identifier prefix of s.
func scanName(s string) string {
	for i, r := range s {
		if i == 0 && !isNameStart(r) {
			return ""
		}
		if !isNameStart(r) && !unicode.IsDigit(r) {
			return s[:i]
		}
	}
	return s
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// Expand writes the template with references replaced from c.
func (t *Template) Expand(c Captures) string {
	var b strings.Builder
	t.ExpandTo(&b, c)
	return b.String()
}

// ExpandTo appends the expansion to b.
func (t *Template) ExpandTo(b *strings.Builder, c Captures) {
	for _, seg := range t.Segments {
		switch seg.Kind {
		case RefLiteral:
			b.WriteString(seg.Literal)
		case RefMatch:
			b.WriteString(c.Match)
		case RefIndex:
			b.WriteString(c.Groups[seg.Index])
		case RefName:
			b.WriteString(c.Names[seg.Name])
		}
	}
}

// References reports whether the template refers to anything other than
// literal text.
func (t *Template) References() bool {
	for _, seg := range t.Segments {
		if seg.Kind != RefLiteral {
			return true
		}
	}
	return false
}
