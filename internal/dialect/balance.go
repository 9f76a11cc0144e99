package dialect

// UnmatchedParen returns the byte offset of the first parenthesis in s that
// has no partner, or -1 when every group is closed. Escaped parentheses and
// parentheses inside bracket classes are ignored.
func UnmatchedParen(s string) int {
	var open []int
	sc := newScanner(s)
	for sc.next() {
		if sc.literal() {
			continue
		}
		switch sc.token() {
		case "(":
			open = append(open, sc.start)
		case ")":
			if len(open) == 0 {
				return sc.start
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return open[0]
	}
	return -1
}
