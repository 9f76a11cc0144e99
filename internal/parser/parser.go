// Package parser turns canonical-dialect pattern text into the ast tree.
//
// Grammar recognition is delegated to github.com/quasilyte/regex/syntax, which
// keeps the source shape of a pattern (named groups, \p{..} escapes and
// lookarounds are reported as written rather than expanded). Everything that
// depends on the shape of that library's Expr tree lives in this package.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KromDaniel/regview/internal/ast"
	"github.com/KromDaniel/regview/internal/dialect"
	"github.com/quasilyte/regex/syntax"
)

// Capabilities gates optional constructs. A disabled capability makes Parse
// reject the construct with a *ParseError.
type Capabilities struct {
	UnicodePropertyEscapes bool
	NamedGroups            bool
	Lookbehind             bool
}

// DefaultCapabilities enables every optional construct.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		UnicodePropertyEscapes: true,
		NamedGroups:            true,
		Lookbehind:             true,
	}
}

// ParseError reports a pattern the grammar does not accept.
// Position is a codepoint offset into the pattern.
type ParseError struct {
	Message  string
	Position int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at position %d)", e.Message, e.Position)
}

// Parser converts patterns with a fixed set of capabilities.
type Parser struct {
	caps Capabilities
}

// New creates a parser with the given capabilities.
func New(caps Capabilities) *Parser {
	return &Parser{caps: caps}
}

// Parse parses pattern with DefaultCapabilities.
func Parse(pattern string) (ast.Node, error) {
	return New(DefaultCapabilities()).Parse(pattern)
}

// Parse parses pattern into an ast tree. An empty pattern is an empty Sequence.
func (p *Parser) Parse(pattern string) (ast.Node, error) {
	if pattern == "" {
		return &ast.Sequence{}, nil
	}
	// positions in the syntax tree are 16-bit byte offsets
	if len(pattern) > math.MaxUint16 {
		return nil, &ParseError{Message: "pattern too long", Position: 0}
	}

	if strings.Trim(pattern, "|") == "" {
		// the syntax parser has no empty-alternative form for a lone '|'
		alts := make([]ast.Node, len(pattern)+1)
		for i := range alts {
			alts[i] = &ast.Sequence{}
		}
		return &ast.Disjunction{Alternatives: alts}, nil
	}

	// the syntax parser keeps per-parse state, so one is built per call
	re, err := syntax.NewParser(&syntax.ParserOptions{NoLiterals: true}).Parse(pattern)
	if err != nil {
		return nil, syntaxError(pattern, err)
	}
	// a stray ')' ends the syntax parser's input without an error
	if off := dialect.UnmatchedParen(pattern); off >= 0 {
		return nil, &ParseError{
			Message:  fmt.Sprintf("unmatched '%c'", pattern[off]),
			Position: runeOffset(pattern, off),
		}
	}

	c := &converter{pattern: pattern, caps: p.caps}
	n, err := c.convert(re.Expr)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return &ast.Sequence{}, nil
	}
	return n, nil
}

// syntaxError maps a syntax parser failure onto a ParseError. When the
// pattern has an unbalanced parenthesis the error points at it, since the
// syntax parser reports those at the end of input.
func syntaxError(pattern string, err error) *ParseError {
	pos := -1
	if off := dialect.UnmatchedParen(pattern); off >= 0 {
		pos = off
	}

	msg := err.Error()
	var pe syntax.ParseError
	var ppe *syntax.ParseError
	switch {
	case errors.As(err, &pe):
		msg = pe.Message
		if pos < 0 {
			pos = int(pe.Pos.Begin)
		}
	case errors.As(err, &ppe):
		msg = ppe.Message
		if pos < 0 {
			pos = int(ppe.Pos.Begin)
		}
	}
	if pos < 0 {
		pos = 0
	}
	return &ParseError{Message: msg, Position: runeOffset(pattern, pos)}
}

func runeOffset(s string, byteOff int) int {
	if byteOff > len(s) {
		byteOff = len(s)
	}
	return utf8.RuneCountInString(s[:byteOff])
}

type converter struct {
	pattern string
	caps    Capabilities
}

func (c *converter) errorAt(e syntax.Expr, format string, args ...any) error {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: runeOffset(c.pattern, int(e.Pos.Begin)),
	}
}

// source returns the pattern text an expression was parsed from.
func (c *converter) source(e syntax.Expr) string {
	begin, end := int(e.Pos.Begin), int(e.Pos.End)
	if end > len(c.pattern) {
		end = len(c.pattern)
	}
	if begin > end {
		return e.Value
	}
	return c.pattern[begin:end]
}

// convert maps one syntax expression. A nil node with a nil error means the
// expression matches nothing structural (flag-only groups, comments).
func (c *converter) convert(e syntax.Expr) (ast.Node, error) {
	switch e.Op {
	case syntax.OpConcat:
		return c.sequence(e)

	case syntax.OpAlt:
		var alts []ast.Node
		for _, arg := range flatten(e, syntax.OpAlt) {
			n, err := c.convert(arg)
			if err != nil {
				return nil, err
			}
			if n == nil {
				n = &ast.Sequence{}
			}
			alts = append(alts, n)
		}
		return &ast.Disjunction{Alternatives: alts}, nil

	case syntax.OpStar:
		return c.quantifier(e, 0, ast.Unbounded)
	case syntax.OpPlus:
		return c.quantifier(e, 1, ast.Unbounded)
	case syntax.OpQuestion:
		return c.quantifier(e, 0, 1)
	case syntax.OpRepeat:
		if len(e.Args) < 2 {
			return nil, c.errorAt(e, "malformed repetition %q", c.source(e))
		}
		lo, hi, ok := repeatBounds(e.Args[1].Value)
		if !ok {
			return nil, c.errorAt(e, "invalid repeat count %q", e.Args[1].Value)
		}
		return c.quantifier(e, lo, hi)
	case syntax.OpNonGreedy:
		n, err := c.convert(e.Args[0])
		if err != nil {
			return nil, err
		}
		if q, ok := n.(*ast.Quantifier); ok {
			q.Lazy = true
		}
		return n, nil

	case syntax.OpChar:
		r, _ := utf8.DecodeRuneInString(e.Value)
		return &ast.Literal{Codepoint: r}, nil
	case syntax.OpLiteral, syntax.OpString:
		return literals(e.Value), nil
	case syntax.OpQuote:
		body := strings.TrimPrefix(e.Value, `\Q`)
		body = strings.TrimSuffix(body, `\E`)
		return literals(body), nil

	case syntax.OpEscapeMeta, syntax.OpEscapeHex, syntax.OpEscapeOctal, syntax.OpEscapeChar:
		return c.escape(e)
	case syntax.OpEscapeUni:
		if !c.caps.UnicodePropertyEscapes {
			return nil, c.errorAt(e, "unicode property escapes are not supported")
		}
		name, negated := unicodeProperty(e.Value)
		return &ast.UnicodePropertyEscape{Name: name, Negated: negated}, nil

	case syntax.OpCharClass, syntax.OpNegCharClass:
		return c.class(e)

	case syntax.OpDot:
		return &ast.Dot{}, nil
	case syntax.OpCaret:
		return &ast.Anchor{Kind: ast.AnchorStart, Raw: "^"}, nil
	case syntax.OpDollar:
		return &ast.Anchor{Kind: ast.AnchorEnd, Raw: "$"}, nil

	case syntax.OpCapture:
		return c.group(e, "", true)
	case syntax.OpNamedCapture:
		if !c.caps.NamedGroups {
			return nil, c.errorAt(e, "named groups are not supported")
		}
		name := ""
		if len(e.Args) > 1 {
			name = e.Args[1].Value
		}
		return c.group(e, name, true)
	case syntax.OpGroup, syntax.OpGroupWithFlags:
		return c.group(e, "", false)

	case syntax.OpPositiveLookahead:
		return c.lookaround(e, false, false)
	case syntax.OpNegativeLookahead:
		return c.lookaround(e, false, true)
	case syntax.OpPositiveLookbehind, syntax.OpNegativeLookbehind:
		if !c.caps.Lookbehind {
			return nil, c.errorAt(e, "lookbehind is not supported")
		}
		return c.lookaround(e, true, e.Op == syntax.OpNegativeLookbehind)

	case syntax.OpFlagOnlyGroup:
		return c.flagGroup(e)
	case syntax.OpComment:
		return nil, nil
	}

	return &ast.Unsupported{Kind: fmt.Sprint(e.Op), Raw: c.source(e)}, nil
}

func (c *converter) sequence(e syntax.Expr) (ast.Node, error) {
	var elems []ast.Node
	args := flatten(e, syntax.OpConcat)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		// \k<name> arrives as the escape followed by plain characters
		if arg.Op == syntax.OpEscapeChar && arg.Value == `\k` {
			if name, n := namedReference(args[i+1:]); n > 0 {
				ref, err := c.namedBackreference(arg, name)
				if err != nil {
					return nil, err
				}
				elems = append(elems, ref)
				i += n
				continue
			}
		}

		n, err := c.convert(arg)
		if err != nil {
			return nil, err
		}
		switch n := n.(type) {
		case nil:
		case *ast.Sequence:
			elems = append(elems, n.Elements...)
		default:
			elems = append(elems, n)
		}
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ast.Sequence{Elements: elems}, nil
}

// flagGroup handles the (?...) forms the syntax parser does not classify:
// flag groups such as (?i) or (?s-m), and Python's (?P=name) reference.
func (c *converter) flagGroup(e syntax.Expr) (ast.Node, error) {
	src := c.source(e)
	body := strings.TrimSuffix(strings.TrimPrefix(src, "(?"), ")")
	if name, ok := strings.CutPrefix(body, "P="); ok {
		if !isGroupName(name) {
			return nil, c.errorAt(e, "invalid group name %q", name)
		}
		return c.namedBackreference(e, name)
	}
	for _, r := range body {
		if r != '-' && !unicode.IsLetter(r) {
			return nil, c.errorAt(e, "invalid group %q", src)
		}
	}
	return nil, nil
}

func (c *converter) namedBackreference(e syntax.Expr, name string) (ast.Node, error) {
	if !c.caps.NamedGroups {
		return nil, c.errorAt(e, "named groups are not supported")
	}
	return &ast.Backreference{Ref: name}, nil
}

// namedReference reads "<name>" from the plain characters at the start of
// args and returns the name with the number of expressions it spans, or
// 0 when args do not start with a well-formed reference.
func namedReference(args []syntax.Expr) (string, int) {
	var text strings.Builder
	for i, arg := range args {
		if arg.Op != syntax.OpChar && arg.Op != syntax.OpLiteral && arg.Op != syntax.OpString {
			return "", 0
		}
		text.WriteString(arg.Value)
		t := text.String()
		if !strings.HasPrefix(t, "<") {
			return "", 0
		}
		if name, ok := strings.CutSuffix(t[1:], ">"); ok {
			if !isGroupName(name) {
				return "", 0
			}
			return name, i + 1
		}
		if strings.Contains(t[1:], ">") {
			return "", 0
		}
	}
	return "", 0
}

func (c *converter) quantifier(e syntax.Expr, lo, hi int) (ast.Node, error) {
	body, err := c.body(e)
	if err != nil {
		return nil, err
	}
	return &ast.Quantifier{Min: lo, Max: hi, Body: body}, nil
}

func (c *converter) group(e syntax.Expr, name string, capturing bool) (ast.Node, error) {
	body, err := c.body(e)
	if err != nil {
		return nil, err
	}
	return &ast.Group{Name: name, Capturing: capturing, Body: body}, nil
}

func (c *converter) lookaround(e syntax.Expr, behind, negated bool) (ast.Node, error) {
	body, err := c.body(e)
	if err != nil {
		return nil, err
	}
	return &ast.Lookaround{Behind: behind, Negated: negated, Body: body}, nil
}

// body converts the first argument of e into exactly one node.
func (c *converter) body(e syntax.Expr) (ast.Node, error) {
	if len(e.Args) == 0 {
		return &ast.Sequence{}, nil
	}
	n, err := c.convert(e.Args[0])
	if err != nil {
		return nil, err
	}
	if n == nil {
		return &ast.Sequence{}, nil
	}
	return n, nil
}

func (c *converter) escape(e syntax.Expr) (ast.Node, error) {
	raw := e.Value
	switch {
	case isBackreference(raw):
		return &ast.Backreference{Ref: raw[1:]}, nil
	case isAssertion(raw):
		return &ast.Anchor{Kind: ast.AnchorOther, Raw: raw}, nil
	}
	if r, ok := decodeEscape(raw); ok {
		return &ast.Literal{Codepoint: r}, nil
	}
	return &ast.Escape{Raw: raw}, nil
}

func (c *converter) class(e syntax.Expr) (ast.Node, error) {
	cc := &ast.CharacterClass{Negated: e.Op == syntax.OpNegCharClass}
	for _, arg := range e.Args {
		switch arg.Op {
		case syntax.OpCharRange:
			if len(arg.Args) != 2 {
				return nil, c.errorAt(arg, "malformed class range %q", c.source(arg))
			}
			lo, okLo := classRune(arg.Args[0])
			hi, okHi := classRune(arg.Args[1])
			if !okLo || !okHi {
				return nil, c.errorAt(arg, "invalid class range %q", c.source(arg))
			}
			if lo > hi {
				return nil, c.errorAt(arg, "invalid class range %q", c.source(arg))
			}
			cc.Members = append(cc.Members, ast.ClassRange{Low: lo, High: hi})
		case syntax.OpLiteral, syntax.OpString:
			for _, r := range arg.Value {
				cc.Members = append(cc.Members, ast.ClassLiteral{Codepoint: r})
			}
		case syntax.OpEscapeUni:
			if !c.caps.UnicodePropertyEscapes {
				return nil, c.errorAt(arg, "unicode property escapes are not supported")
			}
			cc.Members = append(cc.Members, ast.ClassEscape{Raw: arg.Value})
		default:
			if r, ok := classRune(arg); ok {
				cc.Members = append(cc.Members, ast.ClassLiteral{Codepoint: r})
				continue
			}
			raw := arg.Value
			if raw == "" {
				raw = c.source(arg)
			}
			cc.Members = append(cc.Members, ast.ClassEscape{Raw: raw})
		}
	}
	return cc, nil
}

// classRune returns the single codepoint a class member stands for.
func classRune(e syntax.Expr) (rune, bool) {
	switch e.Op {
	case syntax.OpChar:
		r, _ := utf8.DecodeRuneInString(e.Value)
		return r, true
	case syntax.OpEscapeMeta, syntax.OpEscapeHex, syntax.OpEscapeOctal, syntax.OpEscapeChar:
		if e.Value == `\b` {
			// backspace inside a class
			return '\b', true
		}
		return decodeEscape(e.Value)
	}
	return 0, false
}

// flatten collects the arguments of nested expressions with the same op.
func flatten(e syntax.Expr, op syntax.Operation) []syntax.Expr {
	var out []syntax.Expr
	for _, arg := range e.Args {
		if arg.Op == op {
			out = append(out, flatten(arg, op)...)
			continue
		}
		out = append(out, arg)
	}
	return out
}

func literals(s string) ast.Node {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return &ast.Literal{Codepoint: r}
	}
	seq := &ast.Sequence{}
	for _, r := range s {
		seq.Elements = append(seq.Elements, &ast.Literal{Codepoint: r})
	}
	return seq
}

// repeatBounds parses "{n}", "{n,}" and "{n,m}".
func repeatBounds(s string) (lo, hi int, ok bool) {
	body, found := strings.CutPrefix(s, "{")
	if !found {
		return 0, 0, false
	}
	body, found = strings.CutSuffix(body, "}")
	if !found {
		return 0, 0, false
	}

	first, rest, hasComma := strings.Cut(body, ",")
	lo, err := strconv.Atoi(first)
	if err != nil || lo < 0 {
		return 0, 0, false
	}
	switch {
	case !hasComma:
		return lo, lo, true
	case rest == "":
		return lo, ast.Unbounded, true
	}
	hi, err = strconv.Atoi(rest)
	if err != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
