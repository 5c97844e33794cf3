package generate

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandBanner(t *testing.T) {
	values := BannerValues{Program: "rvc", Version: "1.2.3", Source: "styles.yaml", Styles: 3, Classes: 7}

	tests := []struct {
		name    string
		field   string
		want    string
		wantErr string
	}{
		{"empty", "", "", ""},
		{"blank", "  \n", "", ""},
		{"plain", "generated", "/* generated */\n", ""},
		{"values", "{{.Program}} {{.Version}}: {{.Styles}} styles, {{.Classes}} classes", "/* rvc 1.2.3: 3 styles, 7 classes */\n", ""},
		{"sprig", "{{.Source | upper}} {{list 1 2 | len}}", "/* STYLES.YAML 2 */\n", ""},
		{"bad template", "{{.Program", "", "unable to parse"},
		{"unknown field", "{{.Author}}", "", "unable to expand"},
		{"closes comment", "a */ b", "", "must not close comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandBanner(tt.field, values)
			if len(tt.wantErr) > 0 {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expandBanner() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandBanner() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_Banner(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.Cfg.Stylesheet.Banner = "{{.Styles}} styles from {{base .Source}}"
	dir := t.TempDir()
	src := writeFile(t, dir, "styles.yaml", sampleStyles)
	dst := filepath.Join(dir, "styles.css")

	if err := compile(ctx, env, src, dst, "", env.Log); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if css := readFile(t, dst); !strings.HasPrefix(css, "/* 3 styles from styles.yaml */\n:root ") {
		t.Errorf("unexpected stylesheet start:\n%s", css)
	}
}
