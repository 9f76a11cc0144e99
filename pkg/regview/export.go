package regview

import (
	"fmt"

	"github.com/KromDaniel/regview/internal/compiler"
)

// AnalysisResult contains the results of pattern analysis.
type AnalysisResult = compiler.AnalysisResult

// Analyze labels a pattern's features and reports which engine it needs.
// It returns an error if the pattern is invalid.
//
// The analysis returns:
//   - FeatureLabels: derived from pattern structure (e.g. "Captures", "Lookaround")
//   - EngineLabels: "Linear" when the stdlib regexp package can run the
//     pattern, "Backtracking" when it needs regexp2
//
// Example:
//
//	result, err := regview.Analyze(`(?P<name>\w+)(?=!)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FeatureLabels) // [Captures CharClass Lookaround Quantifiers]
//	fmt.Println(result.EngineLabels)  // [Backtracking]
func Analyze(pattern string) (*AnalysisResult, error) {
	return compiler.AnalyzePattern(pattern)
}

// ExportOptions configures Go source export.
type ExportOptions struct {
	// Pattern is the canonical pattern to export.
	Pattern string

	// Name is the identifier of the generated variable; it is camel-cased
	// (e.g. "iso_date" declares "IsoDate" and "IsoDateFindAll").
	Name string

	// OutputFile is the path where generated code will be written.
	OutputFile string

	// Package is the Go package name for the generated code.
	Package string

	// GenerateTestFile writes <file>_test.go (default: true if TestFileInputs provided).
	GenerateTestFile bool

	// TestFileInputs are the inputs of the generated table test. If empty and
	// GenerateTestFile is true, defaults to []string{"example"}.
	TestFileInputs []string

	// Verbose logs the analysis behind the engine choice.
	Verbose bool
}

// Validate checks if the options are valid.
func (o ExportOptions) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

func (o ExportOptions) config() compiler.Config {
	generateTestFile := o.GenerateTestFile || len(o.TestFileInputs) > 0
	testInputs := o.TestFileInputs
	if generateTestFile && len(testInputs) == 0 {
		testInputs = []string{compiler.DefaultTestInput}
	}
	return compiler.Config{
		Pattern:          o.Pattern,
		Name:             o.Name,
		OutputFile:       o.OutputFile,
		Package:          o.Package,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   testInputs,
		Verbose:          o.Verbose,
	}
}

// Export writes Go source declaring the compiled pattern: a stdlib
// regexp.Regexp when the pattern is RE2-compatible, a regexp2.Regexp
// otherwise.
func Export(opts ExportOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if err := compiler.New(opts.config()).Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
