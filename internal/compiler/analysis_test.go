package compiler

import (
	"bytes"
	"slices"
	"testing"

	"github.com/KromDaniel/regview/internal/parser"
)

func TestDetectNestedQuantifiers(t *testing.T) {
	tests := []struct {
		pattern     string
		hasNested   bool
		description string
	}{
		// Patterns WITH nested quantifiers (catastrophic backtracking risk)
		{`(a+)+`, true, "plus inside plus"},
		{`(a+)+b`, true, "plus inside plus with suffix"},
		{`(a*)*`, true, "star inside star"},
		{`(a?)+`, true, "optional inside plus"},
		{`(a+)*`, true, "plus inside star"},
		{`(a{2,})+`, true, "repeat inside plus"},
		{`((a+)+)`, true, "nested groups with nested quantifiers"},
		{`(a|b+)+`, true, "alternation with nested quantifiers"},
		{`(x+x+)+y`, true, "multiple plus with outer plus"},
		{`(?=(a+)+)`, true, "nested quantifiers inside lookahead"},

		// Patterns WITHOUT nested quantifiers
		{`a+b`, false, "simple plus"},
		{`(a+)b`, false, "capture with plus, no nesting"},
		{`(ab)+`, false, "capture repeated, no nested quantifier"},
		{`a+b+c+`, false, "sequential quantifiers"},
		{`\d{4}-\d{2}-\d{2}`, false, "date pattern"},
		{`(foo|bar)+`, false, "alternation repeated, no nested quantifier"},
		{`(a+){2}`, false, "bounded outer repeat"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			tree, err := parser.Parse(tt.pattern)
			if err != nil {
				t.Fatalf("failed to parse pattern %q: %v", tt.pattern, err)
			}

			if got := detectNestedQuantifiers(tree); got != tt.hasNested {
				t.Errorf("pattern %q: detectNestedQuantifiers = %v, want %v",
					tt.pattern, got, tt.hasNested)
			}
		})
	}
}

func TestAnalyzePattern(t *testing.T) {
	tests := []struct {
		pattern   string
		features  []string
		engine    string
		re2       bool
		risk      bool
		endAnchor bool
		captures  []string
	}{
		{
			pattern:  `abc`,
			features: []string{LabelSimple},
			engine:   EngineLinear,
			re2:      true,
		},
		{
			pattern:   `^[a-z]+$`,
			features:  []string{LabelAnchored, LabelCharClass, LabelQuantifiers},
			engine:    EngineLinear,
			re2:       true,
			endAnchor: true,
		},
		{
			pattern:  `(?P<year>\d{4})-(\d{2})`,
			features: []string{LabelCaptures, LabelCharClass, LabelQuantifiers},
			engine:   EngineLinear,
			re2:      true,
			captures: []string{"year", ""},
		},
		{
			pattern:  `\bcafé\b|(?:x)`,
			features: []string{LabelAlternation, LabelMultibyte, LabelNonCapturing, LabelWordBoundary},
			engine:   EngineLinear,
			re2:      true,
		},
		{
			pattern:  `\s+(?!\S)`,
			features: []string{LabelCharClass, LabelLookaround, LabelQuantifiers},
			engine:   EngineBacktracking,
		},
		{
			pattern:  `(a)\1`,
			features: []string{LabelBackreference, LabelCaptures},
			engine:   EngineBacktracking,
			captures: []string{""},
		},
		{
			pattern:  `(a+)+\p{L}`,
			features: []string{LabelCaptures, LabelQuantifiers, LabelUnicodeProperty},
			engine:   EngineLinear,
			re2:      true,
			risk:     true,
			captures: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			result, err := AnalyzePattern(tt.pattern)
			if err != nil {
				t.Fatalf("AnalyzePattern(%q) error: %v", tt.pattern, err)
			}
			if !slices.Equal(result.FeatureLabels, tt.features) {
				t.Errorf("FeatureLabels = %v, want %v", result.FeatureLabels, tt.features)
			}
			if !slices.Equal(result.EngineLabels, []string{tt.engine}) {
				t.Errorf("EngineLabels = %v, want [%s]", result.EngineLabels, tt.engine)
			}
			if result.RE2Compatible != tt.re2 {
				t.Errorf("RE2Compatible = %v, want %v", result.RE2Compatible, tt.re2)
			}
			if tt.re2 && result.NFAStates == 0 {
				t.Error("NFAStates = 0 for an RE2 pattern")
			}
			if result.HasCatastrophicRisk != tt.risk {
				t.Errorf("HasCatastrophicRisk = %v, want %v", result.HasCatastrophicRisk, tt.risk)
			}
			if result.HasEndAnchor != tt.endAnchor {
				t.Errorf("HasEndAnchor = %v, want %v", result.HasEndAnchor, tt.endAnchor)
			}
			if !slices.Equal(result.CaptureNames, tt.captures) {
				t.Errorf("CaptureNames = %q, want %q", result.CaptureNames, tt.captures)
			}
			if result.HasCaptures != (len(tt.captures) > 0) {
				t.Errorf("HasCaptures = %v", result.HasCaptures)
			}
		})
	}
}

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		pattern   string
		re2       bool
		branching bool
	}{
		{`abc`, true, false},
		{`a|b`, true, true},
		{`a*`, true, true},
		{`a{3}`, true, false},
		{`(a)\1`, false, false},
	}

	for _, tt := range tests {
		tree, err := parser.Parse(tt.pattern)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
		}
		got := analyzeComplexity(tree, compileProg(tt.pattern))
		if got.RE2Compatible != tt.re2 {
			t.Errorf("%q: RE2Compatible = %v, want %v", tt.pattern, got.RE2Compatible, tt.re2)
		}
		if got.HasBranching != tt.branching {
			t.Errorf("%q: HasBranching = %v, want %v", tt.pattern, got.HasBranching, tt.branching)
		}
	}
}

func TestAnalyzePatternInvalid(t *testing.T) {
	if _, err := AnalyzePattern("a("); err == nil {
		t.Error("AnalyzePattern(a() succeeded, want error")
	}
}

func TestCompilerVerboseLogging(t *testing.T) {
	t.Run("verbose mode logs analysis", func(t *testing.T) {
		var buf bytes.Buffer
		c := New(Config{Pattern: `(a+)+(?=b)`, Name: "Test", Package: "test", Verbose: true})
		c.logger.SetOutput(&buf)

		// Re-run analysis to capture output
		c.analyzeAndLog()

		output := buf.String()
		if !bytes.Contains([]byte(output), []byte("Pattern Analysis")) {
			t.Errorf("missing Pattern Analysis section in verbose output")
		}
		if !bytes.Contains([]byte(output), []byte("Engine Selection")) {
			t.Errorf("missing Engine Selection section in verbose output")
		}
		if !bytes.Contains([]byte(output), []byte("warning: ")) {
			t.Errorf("missing catastrophic backtracking warning: %s", output)
		}
	})

	t.Run("quiet mode logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		c := New(Config{Pattern: `a+`, Name: "Test", Package: "test"})
		c.logger.SetOutput(&buf)
		c.analyzeAndLog()

		if buf.Len() != 0 {
			t.Errorf("quiet compiler produced output: %s", buf.String())
		}
	})
}
