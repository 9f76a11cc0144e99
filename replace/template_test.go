package replace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []Segment
	}{
		{"empty", "", nil},
		{"literal only", "hello world", []Segment{{Kind: RefLiteral, Literal: "hello world"}}},
		{"full match", "$0", []Segment{{Kind: RefMatch}}},
		{"braced full match", "${0}", []Segment{{Kind: RefMatch}}},
		{"single digit", "$1", []Segment{{Kind: RefIndex, Index: 1}}},
		{"double digit", "$12", []Segment{{Kind: RefIndex, Index: 12}}},
		{"at most two digits", "$123", []Segment{
			{Kind: RefIndex, Index: 12},
			{Kind: RefLiteral, Literal: "3"},
		}},
		{"zero takes one digit", "$01", []Segment{
			{Kind: RefMatch},
			{Kind: RefLiteral, Literal: "1"},
		}},
		{"braced index", "${100}", []Segment{{Kind: RefIndex, Index: 100}}},
		{"named", "$year-$month", []Segment{
			{Kind: RefName, Name: "year"},
			{Kind: RefLiteral, Literal: "-"},
			{Kind: RefName, Name: "month"},
		}},
		{"braced name", "${name}s", []Segment{
			{Kind: RefName, Name: "name"},
			{Kind: RefLiteral, Literal: "s"},
		}},
		{"unicode name", "$año", []Segment{{Kind: RefName, Name: "año"}}},
		{"escaped dollar merges with text", "a$$b", []Segment{{Kind: RefLiteral, Literal: "a$b"}}},
		{"trailing dollar", "cost$", []Segment{{Kind: RefLiteral, Literal: "cost$"}}},
		{"dollar before punctuation", "$-1", []Segment{{Kind: RefLiteral, Literal: "$-1"}}},
		{"mixed", "<$1|${name}>", []Segment{
			{Kind: RefLiteral, Literal: "<"},
			{Kind: RefIndex, Index: 1},
			{Kind: RefLiteral, Literal: "|"},
			{Kind: RefName, Name: "name"},
			{Kind: RefLiteral, Literal: ">"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.template, err)
			}
			if diff := cmp.Diff(tt.want, got.Segments, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.template, diff)
			}
			if got.Source != tt.template {
				t.Errorf("Source = %q, want %q", got.Source, tt.template)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		template string
		offset   int
	}{
		{"${", 0},
		{"ab${1", 2},
		{"${}", 0},
		{"x${1a}", 1},
		{"${a-b}", 0},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			_, err := Parse(tt.template)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.template, err)
			}
			if syntaxErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", syntaxErr.Offset, tt.offset)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	captures := Captures{
		Match:  "2024-06",
		Groups: map[int]string{1: "2024", 2: "06"},
		Names:  map[string]string{"year": "2024", "month": "06"},
	}

	tests := []struct {
		template string
		want     string
	}{
		{"$0", "2024-06"},
		{"$2/$1", "06/2024"},
		{"${month}.${year}", "06.2024"},
		{"$$$1", "$2024"},
		{"[$3]", "[]"},
		{"[$missing]", "[]"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			if got := MustParse(tt.template).Expand(captures); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestExpandNilCaptures(t *testing.T) {
	if got := MustParse("<$1$name$0>").Expand(Captures{}); got != "<>" {
		t.Errorf("Expand() = %q, want %q", got, "<>")
	}
}

func TestReferences(t *testing.T) {
	if MustParse("a$$b").References() {
		t.Error("References() = true for a literal template")
	}
	if !MustParse("a$1").References() {
		t.Error("References() = false for a template with a group")
	}
}
