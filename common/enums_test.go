package common

import (
	"errors"
	"slices"
	"testing"
)

func TestParseHashMode(t *testing.T) {
	tests := []struct {
		input string
		want  HashMode
		err   bool
	}{
		{"debug", HashModeDebug, false},
		{"Production", HashModeProduction, false},
		{"PRODUCTION", HashModeProduction, false},
		{"prod", HashMode(0), true},
		{"", HashMode(0), true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHashMode(tt.input)
			if tt.err {
				if !errors.Is(err, ErrInvalidHashMode) {
					t.Errorf("ParseHashMode(%q) error = %v, want ErrInvalidHashMode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHashMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHashMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnumNames(t *testing.T) {
	if got := SizeUnitNames(); !slices.Equal(got, []string{"rem", "px"}) {
		t.Errorf("SizeUnitNames() = %v", got)
	}
	if got := TimeUnitNames(); !slices.Equal(got, []string{"ms", "s"}) {
		t.Errorf("TimeUnitNames() = %v", got)
	}
	if got := RelationNames(); !slices.Equal(got, []string{"self", "parent", "ancestor"}) {
		t.Errorf("RelationNames() = %v", got)
	}

	names := HashModeNames()
	names[0] = "changed"
	if HashModeDebug.String() != "debug" {
		t.Error("names slice must be a copy")
	}
}

func TestEnumText(t *testing.T) {
	var unit SizeUnit
	if err := unit.UnmarshalText([]byte("PX")); err != nil || unit != SizeUnitPx {
		t.Errorf("UnmarshalText(PX) = %v, %v", unit, err)
	}
	if err := unit.UnmarshalText([]byte("em")); !errors.Is(err, ErrInvalidSizeUnit) {
		t.Errorf("UnmarshalText(em) error = %v", err)
	}
	if text, _ := TimeUnitMs.MarshalText(); string(text) != "ms" {
		t.Errorf("MarshalText() = %q", text)
	}

	if Relation(7).IsValid() {
		t.Error("Relation(7) must not be valid")
	}
	if got := Relation(7).String(); got != "Relation(7)" {
		t.Errorf("String() = %q", got)
	}
	if !slices.Equal(RelationValues(), []Relation{RelationSelf, RelationParent, RelationAncestor}) {
		t.Errorf("RelationValues() = %v", RelationValues())
	}
}

func TestMustParseRelation(t *testing.T) {
	if MustParseRelation("Ancestor") != RelationAncestor {
		t.Error("MustParseRelation(Ancestor) mismatch")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustParseRelation(sibling) did not panic")
		}
	}()
	MustParseRelation("sibling")
}
