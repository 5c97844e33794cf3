package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"rvcss/misc"
)

// BannerValues holds variables available for banner template expansion.
type BannerValues struct {
	Program string
	Version string
	Source  string
	Styles  int
	Classes int
}

// expandBanner produces CSS comment from banner template, empty template
// results in no comment.
func expandBanner(field string, values BannerValues) (string, error) {
	if len(strings.TrimSpace(field)) == 0 {
		return "", nil
	}

	tmpl, err := template.New("banner").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse banner template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand banner template: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if strings.Contains(text, "*/") {
		return "", fmt.Errorf("banner must not close comment: %q", text)
	}
	return "/* " + text + " */\n", nil
}

func bannerValues(src string, styles, classes int) BannerValues {
	return BannerValues{
		Program: misc.GetAppName(),
		Version: misc.GetVersion(),
		Source:  src,
		Styles:  styles,
		Classes: classes,
	}
}
