package debug

import (
	"testing"
)

func TestTreeWriter_Empty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "Engine", nil, "Engine\n"},
		{"depth 1", 1, "Options", nil, "  Options\n"},
		{"depth 2 formatted", 2, "%s refs=%d", []any{"_bg-red", 2}, "    _bg-red refs=2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Section(t *testing.T) {
	tw := NewTreeWriter()
	tw.Section(1, "Root", 3)
	tw.Section(0, "@media (max-width: 640px) sm", 0)

	want := "  Root (3):\n@media (max-width: 640px) sm (0):\n"
	if got := tw.String(); got != want {
		t.Errorf("Section() = %q, want %q", got, want)
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"empty value", 0, "breakpoint", "", "breakpoint: \n"},
		{"rule", 3, "rule", ":root ._a { color: red; }", "      rule: \":root ._a { color: red; }\"\n"},
		{"quotes", 0, "rule", `._a::after { content: "x"; }`, `rule: "._a::after { content: \"x\"; }"` + "\n"},
		{"newline", 1, "raw", "a\nb", "  raw: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}
