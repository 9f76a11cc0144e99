// Package compiler analyzes patterns and exports them as Go source.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/regview/internal/ast"
	"github.com/KromDaniel/regview/internal/codegen"
	"github.com/KromDaniel/regview/internal/highlight"
	"github.com/KromDaniel/regview/internal/logger"
	"github.com/KromDaniel/regview/internal/parser"
	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"
)

const (
	stdlibRegexp = "regexp"
	regexp2Path  = "github.com/dlclark/regexp2"
)

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Name             string   // identifier of the generated variable; camel-cased
	OutputFile       string   // empty renders to the writer given to Render
	Package          string
	GenerateTestFile bool     // Generate <file>_test.go next to OutputFile
	TestFileInputs   []string // Test inputs for generated test file
	Verbose          bool     // Enable verbose logging of analysis decisions
}

// Compiler generates Go source declaring a compiled pattern.
type Compiler struct {
	config      Config
	name        string
	tree        ast.Node
	parseErr    error
	logger      *logger.Logger
	complexity  ComplexityAnalysis
	highlighter *highlight.Highlighter
}

// New creates a new compiler instance and analyzes the pattern.
func New(config Config) *Compiler {
	c := &Compiler{
		config:      config,
		name:        strcase.ToCamel(config.Name),
		logger:      logger.New(config.Verbose),
		highlighter: highlight.New(highlight.Options{}),
	}

	c.tree, c.parseErr = parser.Parse(config.Pattern)
	if c.parseErr == nil {
		c.analyzeAndLog()
	}
	return c
}

func (c *Compiler) analyzeAndLog() {
	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %s", c.config.Pattern)

	c.complexity = analyzeComplexity(c.tree, compileProg(c.config.Pattern))

	c.logger.Log("RE2 compatible: %v", c.complexity.RE2Compatible)
	c.logger.Log("NFA states: %d", c.complexity.EstimatedNFAStates)
	c.logger.Log("Has nested quantifiers: %v", c.complexity.HasCatastrophicRisk)
	c.logger.Log("Has end anchor ($): %v", c.complexity.HasEndAnchor)
	c.logger.Log("Has branch points: %v", c.complexity.HasBranching)

	c.logger.Section("Engine Selection")
	if c.complexity.RE2Compatible {
		c.logger.Log("Engine: stdlib regexp (linear time)")
		return
	}
	c.logger.Log("Engine: regexp2 (backtracking, RE2 syntax mode)")
	if c.complexity.HasCatastrophicRisk {
		c.logger.Warn("pattern %q may backtrack catastrophically; set MatchTimeout on the generated regexp", c.config.Pattern)
	}
}

func (c *Compiler) validate() error {
	if c.parseErr != nil {
		return fmt.Errorf("failed to parse pattern: %w", c.parseErr)
	}
	if !token.IsIdentifier(c.name) || !token.IsExported(c.name) {
		return fmt.Errorf("name %q does not give an exported Go identifier", c.config.Name)
	}
	if !token.IsIdentifier(c.config.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", c.config.Package)
	}
	return nil
}

// Generate writes the source file and, if requested, its test file.
func (c *Compiler) Generate() error {
	if c.config.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if err := c.validate(); err != nil {
		return err
	}

	if err := c.sourceFile().Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)

	if !c.config.GenerateTestFile {
		return nil
	}
	if err := c.generateTestFile(); err != nil {
		return fmt.Errorf("failed to generate test file: %w", err)
	}
	return nil
}

// Render writes the generated source to w without touching the filesystem.
func (c *Compiler) Render(w io.Writer) error {
	if err := c.validate(); err != nil {
		return err
	}
	return c.sourceFile().Render(w)
}

// RenderTest writes the generated test source to w.
func (c *Compiler) RenderTest(w io.Writer) error {
	if err := c.validate(); err != nil {
		return err
	}
	f, err := c.testFile()
	if err != nil {
		return err
	}
	return f.Render(w)
}

func (c *Compiler) sourceFile() *jen.File {
	f := jen.NewFile(c.config.Package)
	f.HeaderComment("Code generated by regview. DO NOT EDIT.")

	name := c.name
	f.Commentf("%s matches the pattern %q.", name, c.config.Pattern)
	if c.complexity.RE2Compatible {
		f.Var().Id(name).Op("=").Qual(stdlibRegexp, "MustCompile").Call(jen.Lit(c.config.Pattern))
	} else {
		f.Var().Id(name).Op("=").Qual(regexp2Path, "MustCompile").Call(
			jen.Lit(c.config.Pattern),
			jen.Qual(regexp2Path, "RE2"),
		)
	}
	f.Line()

	f.Commentf("%s returns every non-empty match of %s in %s, left to right.",
		codegen.FindAllName(name), name, codegen.InputName)
	f.Func().Id(codegen.FindAllName(name)).
		Params(jen.Id(codegen.InputName).String()).
		Index().String().
		Block(c.findAllBody()...)
	return f
}

func (c *Compiler) findAllBody() []jen.Code {
	name, in, out, m := c.name, codegen.InputName, codegen.OutName, codegen.MatchName

	if c.complexity.RE2Compatible {
		return []jen.Code{
			jen.Var().Id(out).Index().String(),
			jen.For(jen.List(jen.Id("_"), jen.Id(m)).Op(":=").Range().Id(name).Dot("FindAllString").Call(jen.Id(in), jen.Lit(-1))).Block(
				jen.If(jen.Id(m).Op("!=").Lit("")).Block(
					jen.Id(out).Op("=").Append(jen.Id(out), jen.Id(m)),
				),
			),
			jen.Return(jen.Id(out)),
		}
	}

	return []jen.Code{
		jen.Var().Id(out).Index().String(),
		jen.List(jen.Id(m), jen.Id("_")).Op(":=").Id(name).Dot("FindStringMatch").Call(jen.Id(in)),
		jen.For(jen.Id(m).Op("!=").Nil()).Block(
			jen.If(jen.Id(m).Dot("Length").Op(">").Lit(0)).Block(
				jen.Id(out).Op("=").Append(jen.Id(out), jen.Id(m).Dot("String").Call()),
			),
			jen.List(jen.Id(m), jen.Id("_")).Op("=").Id(name).Dot("FindNextMatch").Call(jen.Id(m)),
		),
		jen.Return(jen.Id(out)),
	}
}

func (c *Compiler) testFilePath() string {
	return strings.TrimSuffix(c.config.OutputFile, ".go") + "_test.go"
}

func (c *Compiler) generateTestFile() error {
	f, err := c.testFile()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return err
	}
	path := c.testFilePath()
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	c.logger.Log("Wrote %s", path)
	return nil
}

// testFile builds a table test whose expectations are the non-empty matches
// the highlighter finds for each input.
func (c *Compiler) testFile() (*jen.File, error) {
	inputs := c.config.TestFileInputs
	if len(inputs) == 0 {
		inputs = []string{DefaultTestInput}
	}

	var cases []jen.Code
	for _, input := range inputs {
		want, err := c.expectedMatches(input)
		if err != nil {
			return nil, err
		}
		wantCode := jen.Nil()
		if len(want) > 0 {
			wantCode = jen.Index().String().ValuesFunc(func(g *jen.Group) {
				for _, w := range want {
					g.Lit(w)
				}
			})
		}
		cases = append(cases, jen.Values(jen.Lit(input), wantCode))
	}

	name := c.name
	findAll := codegen.FindAllName(name)
	tt, got := codegen.CaseName, codegen.GotName

	f := jen.NewFile(c.config.Package)
	f.HeaderComment("Code generated by regview. DO NOT EDIT.")
	f.Func().Id(codegen.TestName(name)).Params(jen.Id(codegen.TestingName).Op("*").Qual("testing", "T")).Block(
		jen.Id(codegen.TestsName).Op(":=").Index().Struct(
			jen.Id(codegen.InputField).String(),
			jen.Id(codegen.WantField).Index().String(),
		).Values(cases...),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id(tt)).Op(":=").Range().Id(codegen.TestsName)).Block(
			jen.If(
				jen.Id(got).Op(":=").Id(findAll).Call(jen.Id(tt).Dot(codegen.InputField)),
				jen.Op("!").Qual("slices", "Equal").Call(jen.Id(got), jen.Id(tt).Dot(codegen.WantField)),
			).Block(
				jen.Id(codegen.TestingName).Dot("Errorf").Call(
					jen.Lit(findAll+"(%q) = %q, want %q"),
					jen.Id(tt).Dot(codegen.InputField),
					jen.Id(got),
					jen.Id(tt).Dot(codegen.WantField),
				),
			),
		),
	)
	return f, nil
}

func (c *Compiler) expectedMatches(input string) ([]string, error) {
	segs, err := c.highlighter.Highlight(context.Background(), c.config.Pattern, input)
	if err != nil {
		return nil, fmt.Errorf("matching test input %q: %w", input, err)
	}
	var out []string
	for _, s := range highlight.Matches(segs) {
		if !s.ZeroWidth {
			out = append(out, s.Text)
		}
	}
	return out, nil
}
