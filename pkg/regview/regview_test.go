package regview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type testCase struct {
	Name         string   `json:"name"`
	Raw          string   `json:"raw"`
	Text         string   `json:"text"`
	Pattern      string   `json:"pattern"`
	Matches      []string `json:"matches"`
	ZeroWidth    int      `json:"zeroWidth"`
	Template     string   `json:"template"`
	Substituted  string   `json:"substituted"`
	DiagramError bool     `json:"diagramError"`
	CompileError bool     `json:"compileError"`
}

func loadCases(t *testing.T) []testCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "cases.json"))
	if err != nil {
		t.Fatalf("reading cases: %v", err)
	}
	var cases []testCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding cases: %v", err)
	}
	return cases
}

func TestRunCases(t *testing.T) {
	v := New(Options{})
	ctx := context.Background()

	for _, tc := range loadCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			report := v.Run(ctx, tc.Raw, tc.Text)

			if report.Pattern != tc.Pattern {
				t.Errorf("Pattern = %q, want %q", report.Pattern, tc.Pattern)
			}

			// diagram branch
			if tc.DiagramError {
				var parseErr *ParseError
				if !errors.As(report.DiagramErr, &parseErr) {
					t.Errorf("DiagramErr = %v, want *ParseError", report.DiagramErr)
				}
			} else {
				if report.DiagramErr != nil {
					t.Fatalf("DiagramErr = %v", report.DiagramErr)
				}
				var out bytes.Buffer
				if err := report.WriteDiagram("outline", &out); err != nil {
					t.Errorf("WriteDiagram() error: %v", err)
				}
				if out.Len() == 0 {
					t.Error("WriteDiagram() wrote nothing")
				}
			}

			// highlight branch
			var compileErr *CompileError
			if got := errors.As(report.HighlightErr, &compileErr); got != tc.CompileError {
				t.Errorf("HighlightErr = %v, compile error expected: %v", report.HighlightErr, tc.CompileError)
			}

			var joined strings.Builder
			for _, s := range report.Segments {
				joined.WriteString(s.Text)
			}
			if joined.String() != tc.Text {
				t.Errorf("segments reassemble to %q, want %q", joined.String(), tc.Text)
			}

			var matches []string
			zeroWidth := 0
			for _, s := range Matches(report.Segments) {
				if s.ZeroWidth {
					zeroWidth++
					continue
				}
				matches = append(matches, s.Text)
			}
			if diff := cmp.Diff(tc.Matches, matches, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
			if zeroWidth != tc.ZeroWidth {
				t.Errorf("zero-width matches = %d, want %d", zeroWidth, tc.ZeroWidth)
			}

			if tc.Template == "" {
				return
			}
			got, err := v.Substitute(ctx, report.Pattern, tc.Text, tc.Template)
			if err != nil {
				t.Fatalf("Substitute() error: %v", err)
			}
			if got != tc.Substituted {
				t.Errorf("Substitute() = %q, want %q", got, tc.Substituted)
			}
		})
	}
}

func TestRunBranchesAreIndependent(t *testing.T) {
	caps := Capabilities{UnicodePropertyEscapes: true, NamedGroups: true}
	v := New(Options{Capabilities: &caps})

	report := v.Run(context.Background(), `(?<=a)b`, "abab")

	var parseErr *ParseError
	if !errors.As(report.DiagramErr, &parseErr) {
		t.Fatalf("DiagramErr = %v, want *ParseError for disabled lookbehind", report.DiagramErr)
	}
	if report.HighlightErr != nil {
		t.Fatalf("HighlightErr = %v", report.HighlightErr)
	}
	if got := len(Matches(report.Segments)); got != 2 {
		t.Errorf("got %d matches, want 2", got)
	}
	if err := report.WriteDiagram("outline", &bytes.Buffer{}); err != report.DiagramErr {
		t.Errorf("WriteDiagram() = %v, want the diagram error", err)
	}
}

func TestRunTimeout(t *testing.T) {
	v := New(Options{MaxSteps: 1})
	report := v.Run(context.Background(), "a", "aaa")

	if !errors.Is(report.HighlightErr, ErrMatchTimeout) {
		t.Fatalf("HighlightErr = %v, want ErrMatchTimeout", report.HighlightErr)
	}
	var joined strings.Builder
	for _, s := range report.Segments {
		joined.WriteString(s.Text)
	}
	if joined.String() != "aaa" {
		t.Errorf("partial segments reassemble to %q", joined.String())
	}
	if report.DiagramErr != nil {
		t.Errorf("DiagramErr = %v", report.DiagramErr)
	}
}

func TestSubstituteErrors(t *testing.T) {
	v := New(Options{})
	ctx := context.Background()

	if _, err := v.Substitute(ctx, "a", "abc", "${"); err == nil {
		t.Error("Substitute() with a malformed template succeeded")
	}

	got, err := v.Substitute(ctx, "a(", "abc", "x")
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("Substitute() error = %v, want *CompileError", err)
	}
	if got != "abc" {
		t.Errorf("Substitute() = %q, want the text unchanged", got)
	}
}

func TestNormalizeLogs(t *testing.T) {
	v := New(Options{Verbose: true})
	var log bytes.Buffer
	v.SetLogOutput(&log)

	if got := v.Normalize(`r"a++"`); got != "a+" {
		t.Errorf("Normalize() = %q, want %q", got, "a+")
	}
	if !strings.Contains(log.String(), "Normalized") {
		t.Errorf("verbose log missing normalization: %q", log.String())
	}
}

func TestDiagramLeaves(t *testing.T) {
	v := New(Options{})
	n, err := v.Diagram(`ab|[cd]`)
	if err != nil {
		t.Fatalf("Diagram() error: %v", err)
	}
	if got := Leaves(n); got != 3 {
		t.Errorf("Leaves() = %d, want 3", got)
	}

	var out bytes.Buffer
	if err := WriteDiagram("json", &out, n); err != nil {
		t.Fatalf("WriteDiagram(json) error: %v", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Errorf("WriteDiagram(json) wrote invalid JSON: %s", out.String())
	}
	if err := WriteDiagram("svg", &out, n); err == nil {
		t.Error("WriteDiagram(svg) succeeded, want error")
	}
}

func TestRenderHighlight(t *testing.T) {
	v := New(Options{})
	segs, err := v.Highlight(context.Background(), "b+", "abbc")
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}

	var out bytes.Buffer
	if err := RenderHighlight(&out, segs, "", "", false); err != nil {
		t.Fatalf("RenderHighlight() error: %v", err)
	}
	if want := "abbc\n ^^\n"; out.String() != want {
		t.Errorf("RenderHighlight() = %q, want %q", out.String(), want)
	}
	if err := RenderHighlight(&out, segs, "nope", "", true); err == nil {
		t.Error("RenderHighlight() with a bad colour succeeded")
	}
}

func TestAnalyze(t *testing.T) {
	result, err := Analyze(`(?P<name>\w+)(?=!)`)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	want := []string{"Captures", "CharClass", "Lookaround", "Quantifiers"}
	if diff := cmp.Diff(want, result.FeatureLabels); diff != "" {
		t.Errorf("FeatureLabels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Backtracking"}, result.EngineLabels); diff != "" {
		t.Errorf("EngineLabels mismatch (-want +got):\n%s", diff)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	opts := ExportOptions{
		Pattern:        `\d{4}-\d{2}`,
		Name:           "iso_month",
		OutputFile:     filepath.Join(dir, "month.go"),
		Package:        "dates",
		TestFileInputs: []string{"2024-06 and 1999-12"},
	}
	if err := Export(opts); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	src, err := os.ReadFile(opts.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(src, []byte("var IsoMonth = regexp.MustCompile")) {
		t.Errorf("generated source:\n%s", src)
	}
	testSrc, err := os.ReadFile(filepath.Join(dir, "month_test.go"))
	if err != nil {
		t.Fatalf("test file not generated: %v", err)
	}
	if !bytes.Contains(testSrc, []byte(`[]string{"2024-06", "1999-12"}`)) {
		t.Errorf("generated test:\n%s", testSrc)
	}
}

func TestExportOptionsValidate(t *testing.T) {
	valid := ExportOptions{Pattern: "a", Name: "A", OutputFile: "a.go", Package: "p"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*ExportOptions)
	}{
		{"no pattern", func(o *ExportOptions) { o.Pattern = "" }},
		{"no name", func(o *ExportOptions) { o.Name = "" }},
		{"no output file", func(o *ExportOptions) { o.OutputFile = "" }},
		{"no package", func(o *ExportOptions) { o.Package = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)
			if err := opts.Validate(); err == nil {
				t.Error("Validate() succeeded, want error")
			}
			if err := Export(opts); err == nil {
				t.Error("Export() succeeded, want error")
			}
		})
	}
}
