package generate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	yaml "gopkg.in/yaml.v3"

	"rvcss/common"
	"rvcss/config"
	"rvcss/state"
)

const sampleStyles = `
button:
  bg: red
  px: 2
  $sm:
    px: 1
  $select:
    ":hover": {bg: blue}
card10:
  rad: 4
card2:
  rad: 4
  bg: red
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	// readable class names
	env.Cfg.Styles.Options.HashMode = common.HashModeDebug
	return ctx, env
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCompile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "styles.yaml", sampleStyles)
	dst := filepath.Join(dir, "out", "styles.css")
	classesFile := filepath.Join(dir, "classes.yaml")

	if err := compile(ctx, env, src, dst, classesFile, env.Log); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	css := readFile(t, dst)
	for _, want := range []string{
		":root ._bg-red {\n  background-color: red;\n}",
		":root ._self-hover_659y-bg-blue:hover {\n  background-color: blue;\n}",
		":root ._rad-4rem {\n  border-radius: 4rem;\n}",
		"@media (max-width: 640px) {\n  :root ._sm-px-1rem {",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet does not contain %q:\n%s", want, css)
		}
	}
	// shared class has single rule
	if strings.Count(css, "._bg-red {") != 1 {
		t.Errorf("duplicated rule:\n%s", css)
	}
	// media groups follow root rules, wider first
	if strings.Index(css, "@media") < strings.Index(css, ":root ._rad-4rem") {
		t.Errorf("media group precedes root rules:\n%s", css)
	}
	if strings.Index(css, "(max-width: 1280px)") > strings.Index(css, "(max-width: 640px)") {
		t.Errorf("unexpected media group order:\n%s", css)
	}

	var classes map[string][]string
	if err := yaml.Unmarshal([]byte(readFile(t, classesFile)), &classes); err != nil {
		t.Fatalf("classes file: %v", err)
	}
	if got := strings.Join(classes["button"], " "); got != "_bg-red _px-2rem _sm-px-1rem _self-hover_659y-bg-blue" {
		t.Errorf("button classes = %q", got)
	}
	if got := strings.Join(classes["card2"], " "); got != "_rad-4rem _bg-red" {
		t.Errorf("card2 classes = %q", got)
	}

	// names are in natural order
	data := readFile(t, classesFile)
	if strings.Index(data, "card2:") > strings.Index(data, "card10:") {
		t.Errorf("class names are not in natural order:\n%s", data)
	}
}

func TestCompile_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "styles.yaml", sampleStyles)
	dst := writeFile(t, dir, "styles.css", "old")

	if err := compile(ctx, env, src, dst, "", env.Log); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing destination error, got %v", err)
	}
	if readFile(t, dst) != "old" {
		t.Error("destination overwritten")
	}

	env.Overwrite = true
	if err := compile(ctx, env, src, dst, "", env.Log); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if readFile(t, dst) == "old" {
		t.Error("destination was not overwritten")
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		styles string
		want   string
	}{
		{"unknown modifier", "a: {$hover: {bg: red}}\n", "unknown modifier"},
		{"nested breakpoint", "a: {$sm: {$md: {bg: red}}}\n", "nested breakpoints"},
		{"multiple raw rules", "a: {$raw: \"& { color: red; } & > b { color: blue; }\"}\n", "use a list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, env := setupTestEnv(t)
			dir := t.TempDir()
			src := writeFile(t, dir, "styles.yaml", tt.styles)

			err := compile(ctx, env, src, filepath.Join(dir, "out.css"), "", env.Log)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCompile_Canceled(t *testing.T) {
	ctx, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	dir := t.TempDir()
	src := writeFile(t, dir, "styles.yaml", sampleStyles)

	if err := compile(ctx, env, src, filepath.Join(dir, "out.css"), "", env.Log); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPrerenderFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	styles := writeFile(t, dir, "styles.yaml", sampleStyles)
	src := writeFile(t, dir, "index.html", `<html><head><title>t</title></head><body><button data-rv="button card2">Go</button></body></html>`)
	dst := filepath.Join(dir, "index.out.html")

	if err := prerenderFile(ctx, env, src, styles, dst, env.Log); err != nil {
		t.Fatalf("prerender failed: %v", err)
	}

	out := readFile(t, dst)
	if !strings.Contains(out, `<button class="_bg-red _px-2rem _sm-px-1rem _self-hover_659y-bg-blue _rad-4rem">Go</button>`) {
		t.Errorf("unexpected document:\n%s", out)
	}
	if !strings.Contains(out, "<style data-rvcss=\"\">") {
		t.Errorf("stylesheet was not injected:\n%s", out)
	}
	if env.Engine().Len() != 0 {
		t.Errorf("engine holds %d classes after prerender", env.Engine().Len())
	}
}

func TestPrerenderFile_MissingInput(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	styles := writeFile(t, dir, "styles.yaml", sampleStyles)

	err := prerenderFile(ctx, env, filepath.Join(dir, "absent.html"), styles, filepath.Join(dir, "out.html"), env.Log)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.html")); err == nil {
		t.Error("output created for missing input")
	}
}
