// Package dialect rewrites patterns written for other regex dialects
// (mostly Python and PCRE) into the canonical dialect accepted by both the
// parser and the match engine.
//
// Rewrites are purely syntactic. Semantics that the canonical dialect cannot
// express are dropped rather than emulated: inline flags on modifier groups,
// possessive quantifiers and atomic groups all degrade to their plain forms.
package dialect

import "strings"

// Step identifies one rewrite performed by Normalize.
type Step int

const (
	StepUnquote Step = iota
	StepVerbose
	StepInlineModifiers
	StepPossessive
	StepAtomic
	StepNamedBackreference
)

func (s Step) String() string {
	switch s {
	case StepUnquote:
		return "unquote"
	case StepVerbose:
		return "verbose"
	case StepInlineModifiers:
		return "inline-modifiers"
	case StepPossessive:
		return "possessive"
	case StepAtomic:
		return "atomic"
	case StepNamedBackreference:
		return "named-backreference"
	}
	return "unknown"
}

// Normalize returns raw rewritten into the canonical dialect.
// It never fails; input needing no rewrite is returned unchanged.
// Normalize(Normalize(p)) == Normalize(p) for every p.
func Normalize(raw string) string {
	out, _ := Explain(raw)
	return out
}

// Explain is Normalize that also reports which rewrites fired, in order and
// without duplicates.
func Explain(raw string) (string, []Step) {
	var steps []Step
	seen := make(map[Step]bool)

	// Every changing pass shortens the pattern or removes an atomic group
	// opener, so the loop reaches a fixed point well within this bound.
	s := raw
	for range 2*len(raw) + 2 {
		next, fired := pass(s)
		for _, st := range fired {
			if !seen[st] {
				seen[st] = true
				steps = append(steps, st)
			}
		}
		if next == s {
			break
		}
		s = next
	}
	return s, steps
}

// pass applies every rewrite once, in order.
func pass(s string) (string, []Step) {
	var fired []Step
	apply := func(step Step, fn func(string) string) {
		if next := fn(s); next != s {
			fired = append(fired, step)
			s = next
		}
	}

	apply(StepUnquote, unquote)
	apply(StepVerbose, stripVerbose)
	apply(StepInlineModifiers, rewriteInlineModifiers)
	apply(StepPossessive, rewritePossessive)
	apply(StepAtomic, rewriteAtomic)
	apply(StepNamedBackreference, rewriteNamedBackreference)
	return s, fired
}

// unquote strips a raw-string literal (r"...", r'''...''') around the trimmed
// input, or a plain matching quote pair around the whole input.
func unquote(s string) string {
	t := strings.TrimSpace(s)
	if len(t) >= 3 && (t[0] == 'r' || t[0] == 'R') {
		body := t[1:]
		for _, q := range []string{`"""`, `'''`, `"`, `'`} {
			if len(body) >= 2*len(q) && strings.HasPrefix(body, q) && strings.HasSuffix(body, q) {
				return body[len(q) : len(body)-len(q)]
			}
		}
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// rewriteInlineModifiers turns (?flags:...) into (?:...).
func rewriteInlineModifiers(s string) string {
	return rewrite(s, func(b *strings.Builder, s string, i int) int {
		if !strings.HasPrefix(s[i:], "(?") {
			return 0
		}
		j := i + 2
		for j < len(s) && s[j] >= 'a' && s[j] <= 'z' {
			j++
		}
		if j == i+2 || j >= len(s) || s[j] != ':' {
			return 0
		}
		b.WriteString("(?:")
		return j + 1 - i
	})
}

// rewriteAtomic turns (?>...) into (?:...).
func rewriteAtomic(s string) string {
	return rewrite(s, func(b *strings.Builder, s string, i int) int {
		if !strings.HasPrefix(s[i:], "(?>") {
			return 0
		}
		b.WriteString("(?:")
		return 3
	})
}

// rewriteNamedBackreference turns Python's (?P=name) into \k<name>.
func rewriteNamedBackreference(s string) string {
	return rewrite(s, func(b *strings.Builder, s string, i int) int {
		rest, ok := strings.CutPrefix(s[i:], "(?P=")
		if !ok {
			return 0
		}
		end := strings.IndexByte(rest, ')')
		if end <= 0 || strings.ContainsAny(rest[:end], "<>([\\") {
			return 0
		}
		b.WriteString(`\k<` + rest[:end] + `>`)
		return len("(?P=") + end + 1
	})
}

// rewritePossessive drops the '+' of possessive quantifiers: a*+, a++, a?+, a{2}+.
func rewritePossessive(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	afterQuantifier := false
	sc := newScanner(s)
	for sc.next() {
		tok := sc.token()
		if sc.literal() {
			afterQuantifier = false
			b.WriteString(tok)
			continue
		}
		switch {
		case tok == "+" && afterQuantifier:
			// possessive marker, dropped
		case isQuantifier(tok) && !sc.afterOpenParen():
			afterQuantifier = true
			b.WriteString(tok)
		default:
			afterQuantifier = false
			b.WriteString(tok)
		}
	}
	return b.String()
}

func isQuantifier(tok string) bool {
	switch tok {
	case "*", "+", "?":
		return true
	}
	return isBraceRepeat(tok)
}

// rewrite copies s, giving fn the chance to replace text at every position
// that is outside escapes, \Q...\E quotes and bracket classes. fn writes its
// replacement and returns the number of input bytes consumed, or 0 to copy
// the current token unchanged.
func rewrite(s string, fn func(b *strings.Builder, s string, i int) int) string {
	var b strings.Builder
	b.Grow(len(s))

	sc := newScanner(s)
	skip := 0
	for sc.next() {
		if skip > 0 {
			skip -= len(sc.token())
			continue
		}
		if !sc.literal() {
			if n := fn(&b, s, sc.start); n > 0 {
				skip = n - len(sc.token())
				continue
			}
		}
		b.WriteString(sc.token())
	}
	return b.String()
}
