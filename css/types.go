package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string // lowercased property name, custom properties as written
	Value     string // value text with whitespace runs collapsed, strings as written
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important;"
	}
	return d.Property + ": " + d.Value + ";"
}

// Rule is a style rule: selector and declarations in source order.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns value of the last declaration of property.
func (r *Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// WriteTo writes rule on a single line, implementing io.WriterTo.
func (r *Rule) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// String returns the CSS text of the rule on a single line, which is what
// CSSOM cssText gives for style rules.
func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Selector)
	sb.WriteString(" {")
	for _, d := range r.Declarations {
		sb.WriteByte(' ')
		sb.WriteString(d.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// MediaQuery is condition of @media block. Only max-width feature is
// interpreted.
type MediaQuery struct {
	Raw      string
	MaxWidth int // in px, 0 when absent
}

// MaxWidthQuery makes query "(max-width: Npx)".
func MaxWidthQuery(px int) MediaQuery {
	return MediaQuery{Raw: fmt.Sprintf("(max-width: %dpx)", px), MaxWidth: px}
}

// MediaBlock is a @media block with its nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []*Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items []StylesheetItem // All top-level items in source order
}

// Rules returns all top-level style rules in source order.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, item.Rule)
		}
	}
	return rules
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is preserved.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w, every line prefixed with indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s\n", indent, d)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query.Raw)
	total += n
	if err != nil {
		return total, err
	}

	for i, rule := range mb.Rules {
		n, err = writeRule(w, rule, "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
