package style

import (
	"strings"
	"unicode"

	"rvcss/config"
)

// Properties which numeric values are durations.
var timeRelatedProperties = map[string]struct{}{
	"animation":                  {},
	"animation-delay":            {},
	"animation-duration":         {},
	"animation-timing-function":  {},
	"transition":                 {},
	"transition-delay":           {},
	"transition-duration":        {},
	"transition-timing-function": {},
}

// Properties which numeric values are emitted bare.
var withoutUnitProperties = map[string]struct{}{
	"opacity":           {},
	"flex":              {},
	"flex-grow":         {},
	"flex-shrink":       {},
	"order":             {},
	"z-index":           {},
	"aspect-ratio":      {},
	"columns":           {},
	"font-weight":       {},
	"line-height":       {},
	"scale":             {},
	"rotate":            {},
	"grid-column":       {},
	"grid-row":          {},
	"grid-column-start": {},
	"grid-column-end":   {},
	"grid-row-start":    {},
	"grid-row-end":      {},
	"column-count":      {},
	"orphans":           {},
	"widows":            {},
	"tab-size":          {},
}

// IsTimeRelated reports whether numeric values of property get time unit.
func IsTimeRelated(name string) bool {
	_, ok := timeRelatedProperties[Kebab(name)]
	return ok
}

// IsWithoutUnit reports whether numeric values of property are emitted bare.
func IsWithoutUnit(name string) bool {
	_, ok := withoutUnitProperties[Kebab(name)]
	return ok
}

// Kebab converts camel case property name to CSS form: "backgroundColor"
// becomes "background-color". Custom properties are left alone.
func Kebab(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	prevLower := false
	for _, r := range name {
		if unicode.IsUpper(r) {
			if prevLower {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		sb.WriteRune(r)
		prevLower = unicode.IsLower(r)
	}
	return sb.String()
}

// ExpandKey resolves logical property name through shorthand table. Unknown
// names are returned as is.
func ExpandKey(key string, shorthands config.Shorthands) []string {
	if sh, ok := shorthands[key]; ok && len(sh) > 0 {
		return sh
	}
	return []string{key}
}

// FormatValue renders value for given logical key and its expansion. Text is
// used verbatim, numbers get time unit, no unit or size unit depending on
// property.
func FormatValue(v Value, key string, expanded []string, opts config.OptionsConfig) string {
	if !v.IsNumber() {
		return v.String()
	}
	names := append([]string{key}, expanded...)
	for _, name := range names {
		if IsTimeRelated(name) {
			return v.String() + opts.TimeUnit.String()
		}
	}
	bare := true
	for _, name := range expanded {
		if !IsWithoutUnit(name) {
			bare = false
			break
		}
	}
	if bare || IsWithoutUnit(key) {
		return v.String()
	}
	return v.String() + opts.SizeUnit.String()
}

// Physical is a normalized CSS declaration.
type Physical struct {
	Name  string
	Value string
}

// Physicals normalizes logical property into CSS declarations, one per
// shorthand expansion, all sharing the same value.
func Physicals(key string, v Value, cfg *config.Styles) []Physical {
	expanded := ExpandKey(key, cfg.Shorthands)
	value := FormatValue(v, key, expanded, cfg.Options)
	res := make([]Physical, 0, len(expanded))
	for _, name := range expanded {
		res = append(res, Physical{Name: Kebab(name), Value: value})
	}
	return res
}
