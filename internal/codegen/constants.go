// Package codegen provides code generation helpers and constants.
package codegen

// Variable names used in generated code
const (
	InputName   = "s"
	OutName     = "out"
	MatchName   = "m"
	TestsName   = "tests"
	CaseName    = "tt"
	GotName     = "got"
	WantField   = "want"
	InputField  = "input"
	TestingName = "t"
)

// FindAllName returns the name of the generated helper that lists the
// non-empty matches of the pattern variable name.
func FindAllName(name string) string {
	return name + "FindAll"
}

// TestName returns the name of the generated test function for name.
func TestName(name string) string {
	return "Test" + UpperFirst(name)
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
