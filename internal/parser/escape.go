package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var simpleEscapes = map[byte]rune{
	'a': '\a',
	'e': 0x1b,
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// decodeEscape returns the codepoint a character escape stands for.
// Class shorthands (\d, \w, ...) and assertions are not characters.
func decodeEscape(raw string) (rune, bool) {
	if len(raw) < 2 || raw[0] != '\\' {
		return 0, false
	}
	body := raw[1:]

	switch c := body[0]; {
	case len(body) == 1 && simpleEscapes[c] != 0:
		return simpleEscapes[c], true
	case c == 'x':
		return decodeHex(body[1:])
	case c >= '0' && c <= '7':
		n, err := strconv.ParseUint(body, 8, 32)
		if err != nil || n > unicode.MaxRune {
			return 0, false
		}
		return rune(n), true
	}

	r, size := utf8.DecodeRuneInString(body)
	if size == len(body) && r < utf8.RuneSelf && !isWordByte(byte(r)) {
		return r, true
	}
	return 0, false
}

// decodeHex decodes the part of a \x escape after the x: "41" or "{1F600}".
func decodeHex(s string) (rune, bool) {
	if inner, ok := strings.CutPrefix(s, "{"); ok {
		s, ok = strings.CutSuffix(inner, "}")
		if !ok {
			return 0, false
		}
	}
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil || n > unicode.MaxRune {
		return 0, false
	}
	return rune(n), true
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isBackreference reports whether raw is a numbered reference \1 .. \9.
func isBackreference(raw string) bool {
	return len(raw) == 2 && raw[0] == '\\' && raw[1] >= '1' && raw[1] <= '9'
}

func isAssertion(raw string) bool {
	switch raw {
	case `\b`, `\B`, `\A`, `\z`, `\Z`, `\G`:
		return true
	}
	return false
}

// unicodeProperty splits \pL, \p{Greek}, \PL and \p{^Greek} into a name and
// a negation flag.
func unicodeProperty(raw string) (name string, negated bool) {
	if len(raw) < 3 {
		return raw, false
	}
	negated = raw[1] == 'P'
	name = raw[2:]
	if inner, ok := strings.CutPrefix(name, "{"); ok {
		name = strings.TrimSuffix(inner, "}")
	}
	if rest, ok := strings.CutPrefix(name, "^"); ok {
		name = rest
		negated = !negated
	}
	return name, negated
}

// isGroupName reports whether s is usable as a capture group name.
func isGroupName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
