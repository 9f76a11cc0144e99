package compiler

import (
	"sort"

	"github.com/KromDaniel/regview/internal/ast"
	"github.com/KromDaniel/regview/internal/parser"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult struct {
	// FeatureLabels are derived from pattern structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels" yaml:"feature_labels"`

	// EngineLabels name the engine the pattern needs (sorted alphabetically)
	EngineLabels []string `json:"engine_labels" yaml:"engine_labels"`

	// Detailed analysis info
	RE2Compatible       bool     `json:"re2_compatible" yaml:"re2_compatible"`
	HasCaptures         bool     `json:"has_captures" yaml:"has_captures"`
	CaptureNames        []string `json:"capture_names,omitempty" yaml:"capture_names,omitempty"`
	HasCatastrophicRisk bool     `json:"has_catastrophic_risk" yaml:"has_catastrophic_risk"`
	HasEndAnchor        bool     `json:"has_end_anchor" yaml:"has_end_anchor"`
	NFAStates           int      `json:"nfa_states" yaml:"nfa_states"`
}

// AnalyzePattern performs pattern analysis and returns labels without generating code.
// It returns an error if the pattern is invalid.
func AnalyzePattern(pattern string) (*AnalysisResult, error) {
	tree, err := parser.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return analyzeTree(pattern, tree), nil
}

func analyzeTree(pattern string, tree ast.Node) *AnalysisResult {
	complexity := analyzeComplexity(tree, compileProg(pattern))
	names := captureNames(tree)

	return &AnalysisResult{
		FeatureLabels:       deriveFeatureLabels(pattern, tree),
		EngineLabels:        deriveEngineLabels(complexity),
		RE2Compatible:       complexity.RE2Compatible,
		HasCaptures:         len(names) > 0,
		CaptureNames:        names,
		HasCatastrophicRisk: complexity.HasCatastrophicRisk,
		HasEndAnchor:        complexity.HasEndAnchor,
		NFAStates:           complexity.EstimatedNFAStates,
	}
}

// deriveFeatureLabels extracts feature labels from the pattern structure.
// Labels are sorted alphabetically.
func deriveFeatureLabels(pattern string, tree ast.Node) []string {
	set := make(map[string]bool)

	ast.Walk(tree, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Disjunction:
			set[LabelAlternation] = true
		case *ast.Anchor:
			switch {
			case n.Raw == `\b` || n.Raw == `\B`:
				set[LabelWordBoundary] = true
			case n.Kind != ast.AnchorOther || n.Raw == `\A` || n.Raw == `\z` || n.Raw == `\Z`:
				set[LabelAnchored] = true
			}
		case *ast.Backreference:
			set[LabelBackreference] = true
		case *ast.Group:
			if n.Capturing {
				set[LabelCaptures] = true
			} else {
				set[LabelNonCapturing] = true
			}
		case *ast.CharacterClass:
			set[LabelCharClass] = true
			for _, m := range n.Members {
				if e, ok := m.(ast.ClassEscape); ok && isUnicodeClassEscape(e.Raw) {
					set[LabelUnicodeProperty] = true
				}
			}
		case *ast.Escape, *ast.Dot:
			set[LabelCharClass] = true
		case *ast.Lookaround:
			set[LabelLookaround] = true
		case *ast.Quantifier:
			set[LabelQuantifiers] = true
		case *ast.UnicodePropertyEscape:
			set[LabelUnicodeProperty] = true
		}
		return true
	})

	if hasMultibyte(pattern) {
		set[LabelMultibyte] = true
	}

	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	// Simple: no special features
	if len(labels) == 0 {
		labels = append(labels, LabelSimple)
	}

	sort.Strings(labels)
	return labels
}

// deriveEngineLabels determines which engine the pattern needs.
func deriveEngineLabels(complexity ComplexityAnalysis) []string {
	if complexity.RE2Compatible {
		return []string{EngineLinear}
	}
	return []string{EngineBacktracking}
}
