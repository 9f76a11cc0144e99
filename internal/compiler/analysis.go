package compiler

import (
	"regexp/syntax"
	"strings"

	"github.com/KromDaniel/regview/internal/ast"
)

// ComplexityAnalysis summarizes the structure of a pattern.
type ComplexityAnalysis struct {
	// HasCatastrophicRisk is set when an unbounded quantifier repeats a body
	// that itself contains a quantifier, e.g. (a+)+.
	HasCatastrophicRisk bool
	HasEndAnchor        bool
	// RE2Compatible is set when regexp/syntax accepts the pattern.
	RE2Compatible bool
	// EstimatedNFAStates is the compiled program size, or 0 when the pattern
	// is not RE2-compatible.
	EstimatedNFAStates int
	// HasBranching is set when the compiled program has a choice point
	// (alternation or repetition). It is informational; RE2Compatible alone
	// picks the engine.
	HasBranching bool
}

// analyzeComplexity combines the pattern tree with the stdlib compilation of
// the same pattern. prog is nil for patterns regexp/syntax rejects.
func analyzeComplexity(tree ast.Node, prog *syntax.Prog) ComplexityAnalysis {
	analysis := ComplexityAnalysis{
		HasCatastrophicRisk: detectNestedQuantifiers(tree),
		HasEndAnchor:        hasEndAnchor(tree),
	}
	if prog != nil {
		analysis.RE2Compatible = true
		analysis.EstimatedNFAStates = len(prog.Inst)
		analysis.HasBranching = hasBranching(prog)
	}
	return analysis
}

// compileProg compiles pattern with regexp/syntax, returning nil when the
// pattern is outside the RE2 syntax.
func compileProg(pattern string) *syntax.Prog {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil
	}
	return prog
}

// detectNestedQuantifiers reports whether an unbounded quantifier has a
// quantifier anywhere in its body.
func detectNestedQuantifiers(tree ast.Node) bool {
	found := false
	ast.Walk(tree, func(n ast.Node) bool {
		if found {
			return false
		}
		q, ok := n.(*ast.Quantifier)
		if !ok || q.Max != ast.Unbounded {
			return true
		}
		ast.Walk(q.Body, func(inner ast.Node) bool {
			if _, isQuant := inner.(*ast.Quantifier); isQuant {
				found = true
			}
			return !found
		})
		return !found
	})
	return found
}

func hasEndAnchor(tree ast.Node) bool {
	found := false
	ast.Walk(tree, func(n ast.Node) bool {
		if a, ok := n.(*ast.Anchor); ok {
			if a.Kind == ast.AnchorEnd || a.Raw == `\z` || a.Raw == `\Z` {
				found = true
			}
		}
		return !found
	})
	return found
}

// hasBranching reports whether the program contains InstAlt instructions,
// which both alternations and repetitions compile to.
func hasBranching(prog *syntax.Prog) bool {
	if prog == nil {
		return false
	}

	for i := range prog.Inst {
		if prog.Inst[i].Op == syntax.InstAlt {
			return true
		}
	}

	return false
}

// captureNames lists capture groups in pattern order; unnamed groups are "".
func captureNames(tree ast.Node) []string {
	var names []string
	ast.Walk(tree, func(n ast.Node) bool {
		if g, ok := n.(*ast.Group); ok && g.Capturing {
			names = append(names, g.Name)
		}
		return true
	})
	return names
}

// hasMultibyte checks if the pattern contains non-ASCII characters.
func hasMultibyte(pattern string) bool {
	for _, r := range pattern {
		if r >= MaxASCIIRune {
			return true
		}
	}
	return false
}

func isUnicodeClassEscape(raw string) bool {
	return strings.HasPrefix(raw, `\p`) || strings.HasPrefix(raw, `\P`)
}
