// Package sheet keeps generated rules in two ordered partitions: root rules
// and one @media group per breakpoint.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"rvcss/config"
	"rvcss/css"
)

var (
	ErrUnknownBreakpoint = errors.New("unknown breakpoint")
	ErrRuleNotFound      = errors.New("rule not found")
)

// Rule is a handle of inserted rule. Handles are compared by identity.
type Rule struct {
	*css.Rule
	group *Group
}

// Breakpoint returns name of the group rule lives in, empty for root rules.
func (r *Rule) Breakpoint() string {
	if r.group == nil {
		return ""
	}
	return r.group.Breakpoint.Name
}

// Group is @media (max-width) block of one breakpoint.
type Group struct {
	Breakpoint config.Breakpoint
	Query      css.MediaQuery
	rules      []*Rule
}

// Rules returns group rules in cascade order.
func (g *Group) Rules() []*Rule {
	return g.rules
}

// Sheet holds rules in cascade order. Later rules take precedence for equal
// specificity, rules are always inserted at the front of their partition.
// Sheet is not safe for concurrent use.
type Sheet struct {
	log    *zap.Logger
	parser *css.Parser

	root []*Rule
	// descending by threshold, never reordered
	groups []*Group
	// breakpoint names descending by threshold, index matches groups
	lookup []string
}

// New creates partitions. Groups are created in ascending threshold order,
// each at the front, so narrower breakpoints come last and win.
func New(breakpoints config.Breakpoints, log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sheet{
		log:    log.Named("sheet"),
		parser: css.NewParser(log),
	}
	sorted := breakpoints.Sorted()
	for _, bp := range sorted {
		g := &Group{Breakpoint: bp, Query: css.MaxWidthQuery(bp.Threshold)}
		s.groups = slices.Insert(s.groups, 0, g)
	}
	s.lookup = sorted.Names()
	slices.Reverse(s.lookup)
	return s
}

func (s *Sheet) group(breakpoint string) (*Group, error) {
	index := slices.Index(s.lookup, breakpoint)
	if index < 0 {
		return nil, fmt.Errorf("%q: %w", breakpoint, ErrUnknownBreakpoint)
	}
	g := s.groups[index]
	if g.Breakpoint.Name != breakpoint {
		// this should never happen
		panic(fmt.Sprintf("breakpoint group order is broken: %q at %d holds %q", breakpoint, index, g.Breakpoint.Name))
	}
	return g, nil
}

// groupByWidth finds group whose @media query has the same max-width.
func (s *Sheet) groupByWidth(mq css.MediaQuery) (*Group, error) {
	for _, g := range s.groups {
		if mq.MaxWidth != 0 && g.Query.MaxWidth == mq.MaxWidth {
			return g, nil
		}
	}
	return nil, fmt.Errorf("@media %s: %w", mq.Raw, ErrUnknownBreakpoint)
}

// Insert parses text, which must hold exactly one style rule, and puts it at
// the front of root partition (empty breakpoint) or of the breakpoint group.
// With empty breakpoint text may also be a single rule wrapped in
// "@media (max-width: Npx)", which goes to the group of that threshold.
func (s *Sheet) Insert(breakpoint, text string) (*Rule, error) {
	var (
		g      *Group
		parsed *css.Rule
		err    error
	)
	if breakpoint != "" {
		if g, err = s.group(breakpoint); err != nil {
			return nil, err
		}
		if parsed, err = s.parser.ParseRule(text); err != nil {
			return nil, err
		}
	} else {
		item, err := s.parser.ParseStatement(text)
		if err != nil {
			return nil, err
		}
		parsed = item.Rule
		if item.MediaBlock != nil {
			if g, err = s.groupByWidth(item.MediaBlock.Query); err != nil {
				return nil, err
			}
			parsed = item.MediaBlock.Rules[0]
		}
	}

	r := &Rule{Rule: parsed, group: g}
	if g == nil {
		s.root = slices.Insert(s.root, 0, r)
	} else {
		g.rules = slices.Insert(g.rules, 0, r)
	}
	s.log.Debug("Rule inserted", zap.String("breakpoint", r.Breakpoint()), zap.Stringer("rule", parsed))
	return r, nil
}

// Delete removes rule from its partition.
func (s *Sheet) Delete(r *Rule) error {
	rules := &s.root
	if r.group != nil {
		rules = &r.group.rules
	}
	index := slices.Index(*rules, r)
	if index < 0 {
		return fmt.Errorf("%q: %w", r.Selector, ErrRuleNotFound)
	}
	*rules = slices.Delete(*rules, index, index+1)
	s.log.Debug("Rule deleted", zap.String("breakpoint", r.Breakpoint()), zap.Stringer("rule", r.Rule))
	return nil
}

// Root returns root partition in cascade order.
func (s *Sheet) Root() []*Rule {
	return s.root
}

// Groups returns breakpoint groups in cascade order (descending threshold).
func (s *Sheet) Groups() []*Group {
	return s.groups
}

// Len returns number of rules in all partitions.
func (s *Sheet) Len() int {
	n := len(s.root)
	for _, g := range s.groups {
		n += len(g.rules)
	}
	return n
}

// RootStylesheet returns root partition as stylesheet.
func (s *Sheet) RootStylesheet() *css.Stylesheet {
	res := &css.Stylesheet{}
	for _, r := range s.root {
		res.Items = append(res.Items, css.StylesheetItem{Rule: r.Rule})
	}
	return res
}

// BreakpointStylesheet returns breakpoint partition as stylesheet, empty
// groups included so group positions stay stable.
func (s *Sheet) BreakpointStylesheet() *css.Stylesheet {
	res := &css.Stylesheet{}
	for _, g := range s.groups {
		block := &css.MediaBlock{Query: g.Query}
		for _, r := range g.rules {
			block.Rules = append(block.Rules, r.Rule)
		}
		res.Items = append(res.Items, css.StylesheetItem{MediaBlock: block})
	}
	return res
}

// WriteTo writes root partition followed by breakpoint groups, implementing
// io.WriterTo.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	total, err := s.RootStylesheet().WriteTo(w)
	if err != nil {
		return total, err
	}
	bps := s.BreakpointStylesheet()
	if len(s.root) > 0 && len(bps.Items) > 0 {
		n, err := io.WriteString(w, "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	n, err := bps.WriteTo(w)
	return total + n, err
}

func (s *Sheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
