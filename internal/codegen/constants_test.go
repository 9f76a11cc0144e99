package codegen

import "testing"

func TestGeneratedNames(t *testing.T) {
	tests := []struct {
		name        string
		wantFindAll string
		wantTest    string
	}{
		{"Email", "EmailFindAll", "TestEmail"},
		{"date", "dateFindAll", "TestDate"},
		{"X", "XFindAll", "TestX"},
	}

	for _, tt := range tests {
		if got := FindAllName(tt.name); got != tt.wantFindAll {
			t.Errorf("FindAllName(%q) = %q, want %q", tt.name, got, tt.wantFindAll)
		}
		if got := TestName(tt.name); got != tt.wantTest {
			t.Errorf("TestName(%q) = %q, want %q", tt.name, got, tt.wantTest)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"x", "X"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
