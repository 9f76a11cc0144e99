package dialect

import (
	"strings"
	"unicode/utf8"
)

// scanner splits a pattern into tokens without interpreting it.
// Escapes (including \Q...\E and braced forms like \x{..} or \p{..}),
// bracket classes and valid {n,m} repeats are single tokens; everything
// else is one rune per token.
type scanner struct {
	s          string
	start, end int
	lit        bool

	prevTok string
	prevLit bool
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

func (sc *scanner) next() bool {
	if sc.end > sc.start {
		sc.prevTok, sc.prevLit = sc.token(), sc.lit
	}
	if sc.end >= len(sc.s) {
		return false
	}

	i := sc.end
	sc.start, sc.lit = i, false
	switch c := sc.s[i]; {
	case c == '\\':
		sc.end, sc.lit = escapeEnd(sc.s, i), true
	case c == '[':
		sc.end, sc.lit = classEnd(sc.s, i), true
	case c == '{':
		sc.end = i + 1
		if n := braceRepeatLen(sc.s[i:]); n > 0 {
			sc.end = i + n
		}
	default:
		_, size := utf8.DecodeRuneInString(sc.s[i:])
		sc.end = i + size
	}
	return true
}

func (sc *scanner) token() string {
	return sc.s[sc.start:sc.end]
}

// literal reports whether the current token is an escape or a bracket class,
// whose text is never rewritten.
func (sc *scanner) literal() bool {
	return sc.lit
}

// afterOpenParen reports whether the previous token was an unescaped '('.
func (sc *scanner) afterOpenParen() bool {
	return !sc.prevLit && sc.prevTok == "("
}

// skipLine advances past the next newline (or to the end of input) and
// returns the skipped text, including the current token.
func (sc *scanner) skipLine() string {
	from := sc.start
	if nl := strings.IndexByte(sc.s[from:], '\n'); nl >= 0 {
		sc.end = from + nl + 1
	} else {
		sc.end = len(sc.s)
	}
	return sc.s[from:sc.end]
}

// escapeEnd returns the end offset of the escape starting at s[i] == '\\'.
func escapeEnd(s string, i int) int {
	if i+1 >= len(s) {
		return len(s)
	}
	switch c := s[i+1]; c {
	case 'Q':
		if e := strings.Index(s[i+2:], `\E`); e >= 0 {
			return i + 2 + e + 2
		}
		return len(s)
	case 'x', 'p', 'P', 'k', 'N', 'o', 'g', 'u':
		if i+2 < len(s) {
			closer := byte(0)
			switch s[i+2] {
			case '{':
				closer = '}'
			case '<':
				closer = '>'
			}
			if closer != 0 {
				if e := strings.IndexByte(s[i+3:], closer); e >= 0 {
					return i + 3 + e + 1
				}
			}
			// single-letter property such as \pL
			if (c == 'p' || c == 'P') && isASCIILetter(s[i+2]) {
				return i + 3
			}
		}
	}
	_, size := utf8.DecodeRuneInString(s[i+1:])
	return i + 1 + size
}

// classEnd returns the end offset of the bracket class starting at s[i] == '['.
// An unterminated class runs to the end of input.
func classEnd(s string, i int) int {
	j := i + 1
	if j < len(s) && s[j] == '^' {
		j++
	}
	// a ']' right after the opener is a member, not the terminator
	if j < len(s) && s[j] == ']' {
		j++
	}
	for j < len(s) {
		switch s[j] {
		case '\\':
			j = escapeEnd(s, j)
			continue
		case '[':
			if j+1 < len(s) && s[j+1] == ':' {
				if e := strings.Index(s[j+2:], ":]"); e >= 0 {
					j += 2 + e + 2
					continue
				}
			}
		case ']':
			return j + 1
		}
		j++
	}
	return len(s)
}

// braceRepeatLen returns the length of a {n}, {n,} or {n,m} repeat at the
// start of s, or 0 when s does not start with one.
func braceRepeatLen(s string) int {
	if len(s) < 3 || s[0] != '{' {
		return 0
	}
	j := 1
	digits := func() int {
		n := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			n++
		}
		return n
	}
	if digits() == 0 {
		return 0
	}
	if j < len(s) && s[j] == ',' {
		j++
		digits()
	}
	if j < len(s) && s[j] == '}' {
		return j + 1
	}
	return 0
}

func isBraceRepeat(tok string) bool {
	return len(tok) > 2 && braceRepeatLen(tok) == len(tok)
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
