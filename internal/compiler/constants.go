package compiler

// Engine labels.
const (
	// EngineLinear marks patterns the stdlib regexp package accepts; they run
	// in time linear in the input.
	EngineLinear = "Linear"

	// EngineBacktracking marks patterns that need the backtracking engine
	// (lookarounds, backreferences).
	EngineBacktracking = "Backtracking"
)

// Feature labels, as reported in AnalysisResult.FeatureLabels.
const (
	LabelAlternation     = "Alternation"
	LabelAnchored        = "Anchored"
	LabelBackreference   = "Backreference"
	LabelCaptures        = "Captures"
	LabelCharClass       = "CharClass"
	LabelLookaround      = "Lookaround"
	LabelMultibyte       = "Multibyte"
	LabelNonCapturing    = "NonCapturing"
	LabelQuantifiers     = "Quantifiers"
	LabelSimple          = "Simple"
	LabelUnicodeProperty = "UnicodeProperty"
	LabelWordBoundary    = "WordBoundary"
)

// ASCII boundary constants
const (
	// MaxASCIIRune is the exclusive upper bound for ASCII characters.
	// Runes with value < MaxASCIIRune are ASCII.
	MaxASCIIRune = 128
)

// DefaultTestInput is used when a test file is requested without inputs.
const DefaultTestInput = "example"
