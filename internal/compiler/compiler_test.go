package compiler

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompilerGenerate(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		wantEngine string
	}{
		{"simple", "test", `regexp.MustCompile("test")`},
		{"digit", `\d+`, `regexp.MustCompile("\\d+")`},
		{"alternation", "a|b", `regexp.MustCompile("a|b")`},
		{"lookahead", `\w+(?=!)`, `regexp2.MustCompile("\\w+(?=!)", regexp2.RE2)`},
		{"backreference", `(a)\1`, `regexp2.MustCompile("(a)\\1", regexp2.RE2)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			outputFile := filepath.Join(tmpDir, "test.go")

			c := New(Config{
				Pattern:          tt.pattern,
				Name:             "my_pattern",
				OutputFile:       outputFile,
				Package:          "test",
				GenerateTestFile: true,
				TestFileInputs:   []string{"a test a1 22!"},
			})

			if err := c.Generate(); err != nil {
				t.Fatalf("generation failed: %v", err)
			}

			src := parseGenerated(t, outputFile)
			if !strings.Contains(src, tt.wantEngine) {
				t.Errorf("generated source does not contain %s:\n%s", tt.wantEngine, src)
			}
			if !strings.Contains(src, "func MyPatternFindAll(s string) []string") {
				t.Errorf("generated source lacks the FindAll helper:\n%s", src)
			}
			if !strings.HasPrefix(src, "// Code generated by regview. DO NOT EDIT.") {
				t.Errorf("generated source lacks the generated-code header")
			}

			testSrc := parseGenerated(t, filepath.Join(tmpDir, "test_test.go"))
			if !strings.Contains(testSrc, "func TestMyPattern(t *testing.T)") {
				t.Errorf("generated test lacks the test function:\n%s", testSrc)
			}
		})
	}
}

func parseGenerated(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), path, data, parser.AllErrors); err != nil {
		t.Fatalf("generated file %s does not parse: %v\n%s", path, err, data)
	}
	return string(data)
}

func TestGeneratedTestCases(t *testing.T) {
	c := New(Config{
		Pattern:        `\d+|x*`,
		Name:           "Number",
		Package:        "nums",
		TestFileInputs: []string{"a1b22", "none"},
	})

	var buf bytes.Buffer
	if err := c.RenderTest(&buf); err != nil {
		t.Fatalf("RenderTest() error: %v", err)
	}
	got := buf.String()

	// zero-width matches of x* are left out of the expectations
	for _, want := range []string{
		`{"a1b22", []string{"1", "22"}}`,
		`{"none", nil}`,
		`slices.Equal(got, tt.want)`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("generated test lacks %s:\n%s", want, got)
		}
	}
}

func TestCompilerValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"invalid pattern", Config{Pattern: "a(", Name: "X", Package: "p"}},
		{"empty name", Config{Pattern: "a", Name: "", Package: "p"}},
		{"name without letters", Config{Pattern: "a", Name: "123", Package: "p"}},
		{"bad package", Config{Pattern: "a", Name: "X", Package: "my-pkg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := New(tt.config).Render(&bytes.Buffer{}); err == nil {
				t.Error("Render() succeeded, want error")
			}
		})
	}

	if err := New(Config{Pattern: "a", Name: "X", Package: "p"}).Generate(); err == nil {
		t.Error("Generate() without an output file succeeded, want error")
	}
}
