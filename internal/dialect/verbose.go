package dialect

import "strings"

// stripVerbose removes the insignificant whitespace and # comments of a
// verbose-mode pattern. A pattern is treated as verbose only when it starts
// with an inline flag group that enables x, such as (?x) or (?ix); nothing is
// stripped otherwise, because a literal space is often significant.
//
// Whitespace inside bracket classes is kept. Escaped whitespace is kept as an
// explicit escape so it survives in the canonical dialect.
func stripVerbose(s string) string {
	flags, rest, ok := leadingFlags(s)
	if !ok || !strings.Contains(flags, "x") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	if kept := strings.ReplaceAll(flags, "x", ""); kept != "" {
		b.WriteString("(?" + kept + ")")
	}

	sc := newScanner(rest)
	for sc.next() {
		tok := sc.token()
		switch {
		case sc.literal():
			b.WriteString(escapedWhitespace(tok))
		case tok == "#":
			sc.skipLine()
		case isSpace(tok):
		default:
			b.WriteString(tok)
		}
	}
	return b.String()
}

// leadingFlags splits "(?flags)rest" into flags and rest.
func leadingFlags(s string) (flags, rest string, ok bool) {
	if !strings.HasPrefix(s, "(?") {
		return "", s, false
	}
	j := 2
	for j < len(s) && (s[j] >= 'a' && s[j] <= 'z' || s[j] >= 'A' && s[j] <= 'Z') {
		j++
	}
	if j == 2 || j >= len(s) || s[j] != ')' {
		return "", s, false
	}
	return s[2:j], s[j+1:], true
}

func isSpace(tok string) bool {
	switch tok {
	case " ", "\t", "\n", "\r", "\f", "\v":
		return true
	}
	return false
}

func escapedWhitespace(tok string) string {
	switch tok {
	case `\ `:
		return `\x20`
	case "\\\t":
		return `\t`
	case "\\\n":
		return `\n`
	case "\\\r":
		return `\r`
	}
	return tok
}
