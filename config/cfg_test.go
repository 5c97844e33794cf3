package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"rvcss/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	opts := cfg.Styles.Options
	if opts.SizeUnit != common.SizeUnitRem || opts.TimeUnit != common.TimeUnitMs || opts.HashMode != common.HashModeProduction {
		t.Errorf("unexpected default options %+v", opts)
	}
	if got := cfg.Styles.Breakpoints.Names(); !slices.Equal(got, []string{"sm", "md", "lg", "xl"}) {
		t.Errorf("default breakpoints = %v", got)
	}
	if got := cfg.Styles.Shorthands["px"]; !slices.Equal(got, Shorthand{"paddingLeft", "paddingRight"}) {
		t.Errorf("px shorthand = %v", got)
	}
	if got := cfg.Styles.Shorthands["bg"]; !slices.Equal(got, Shorthand{"backgroundColor"}) {
		t.Errorf("bg shorthand = %v", got)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
styles:
  options:
    css_size_unit: px
    css_time_unit: s
    hash_mode: debug
  breakpoints:
    desktop: 1440
    phone: 480
    tablet: 1024
  shorthands:
    fg: color
    inset: [top, right, bottom, left]
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	opts := cfg.Styles.Options
	if opts.SizeUnit != common.SizeUnitPx || opts.TimeUnit != common.TimeUnitS || opts.HashMode != common.HashModeDebug {
		t.Errorf("unexpected options %+v", opts)
	}

	// breakpoints from file replace defaults and are sorted by threshold
	want := Breakpoints{{Name: "phone", Threshold: 480}, {Name: "tablet", Threshold: 1024}, {Name: "desktop", Threshold: 1440}}
	if !slices.Equal(cfg.Styles.Breakpoints, want) {
		t.Errorf("breakpoints = %v, want %v", cfg.Styles.Breakpoints, want)
	}

	// shorthands from file are added to defaults
	if got := cfg.Styles.Shorthands["inset"]; len(got) != 4 {
		t.Errorf("inset shorthand = %v", got)
	}
	if _, ok := cfg.Styles.Shorthands["bg"]; !ok {
		t.Error("default shorthand lost")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid yaml", "version: 1\nstyles:\n  options\n    bad", ""},
		{"unknown field", "version: 1\nunknown_field: value\n", "unknown_field"},
		{"invalid version", "version: 2\n", ""},
		{"unknown size unit", "version: 1\nstyles:\n  options:\n    css_size_unit: em\n", "em"},
		{"unknown hash mode", "version: 1\nstyles:\n  options:\n    hash_mode: fast\n", "fast"},
		{"breakpoints not mapping", "version: 1\nstyles:\n  breakpoints: [sm]\n", "mapping"},
		{"duplicate breakpoint", "version: 1\nstyles:\n  breakpoints:\n    sm: 1\n    sm: 2\n", ""},
		{"zero threshold", "version: 1\nstyles:\n  breakpoints:\n    sm: 0\n", ""},
		{"shorthand mapping", "version: 1\nstyles:\n  shorthands:\n    bg: {a: b}\n", "shorthand"},
		{"empty shorthand", "version: 1\nstyles:\n  shorthands:\n    bg: []\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	for _, want := range []string{"version: 1", "styles:", "breakpoints:", "shorthands:", "logging:", "reporting:"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Prepared template does not contain %q", want)
		}
	}
}

func TestDump_RoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Styles.Options.SizeUnit = common.SizeUnitPx

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "css_size_unit: px") {
		t.Errorf("dump does not contain size unit:\n%s", data)
	}
	if !strings.Contains(string(data), "sm: 640") {
		t.Errorf("dump does not contain breakpoints as mapping:\n%s", data)
	}

	loaded, err := LoadConfiguration(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("LoadConfiguration() of dump error = %v", err)
	}
	if loaded.Styles.Options != cfg.Styles.Options {
		t.Errorf("options = %+v, want %+v", loaded.Styles.Options, cfg.Styles.Options)
	}
	if !slices.Equal(loaded.Styles.Breakpoints, cfg.Styles.Breakpoints) {
		t.Errorf("breakpoints = %v, want %v", loaded.Styles.Breakpoints, cfg.Styles.Breakpoints)
	}
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	if s.Options.SizeUnit != common.SizeUnitRem || s.Options.TimeUnit != common.TimeUnitMs || s.Options.HashMode != common.HashModeProduction {
		t.Errorf("unexpected defaults %+v", s.Options)
	}
	if len(s.Breakpoints) != 0 || len(s.Shorthands) != 0 {
		t.Errorf("expected no breakpoints and shorthands, got %v %v", s.Breakpoints, s.Shorthands)
	}
}
