package config

import (
	"fmt"
	"slices"

	yaml "gopkg.in/yaml.v3"
)

// Breakpoint is a named viewport width threshold (in px). Styles nested under
// a breakpoint apply below that width.
type Breakpoint struct {
	Name      string `yaml:"name" validate:"required"`
	Threshold int    `yaml:"threshold" validate:"gt=0"`
}

// Breakpoints is kept sorted ascending by threshold. In YAML it is written as
// a mapping of name to threshold.
type Breakpoints []Breakpoint

func (b *Breakpoints) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: breakpoints must be a mapping of name to threshold", node.Line)
	}
	res := make(Breakpoints, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var bp Breakpoint
		if err := node.Content[i].Decode(&bp.Name); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&bp.Threshold); err != nil {
			return fmt.Errorf("breakpoint %q: %w", bp.Name, err)
		}
		if _, exists := res.Lookup(bp.Name); exists {
			return fmt.Errorf("line %d: duplicate breakpoint %q", node.Content[i].Line, bp.Name)
		}
		res = append(res, bp)
	}
	*b = res.Sorted()
	return nil
}

func (b Breakpoints) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, bp := range b {
		var k, v yaml.Node
		if err := k.Encode(bp.Name); err != nil {
			return nil, err
		}
		if err := v.Encode(bp.Threshold); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &k, &v)
	}
	return node, nil
}

// Sorted returns copy of breakpoints ordered ascending by threshold, ties
// keep declaration order.
func (b Breakpoints) Sorted() Breakpoints {
	res := slices.Clone(b)
	slices.SortStableFunc(res, func(x, y Breakpoint) int {
		return x.Threshold - y.Threshold
	})
	return res
}

// Lookup finds breakpoint by name.
func (b Breakpoints) Lookup(name string) (Breakpoint, bool) {
	for _, bp := range b {
		if bp.Name == name {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// Names returns breakpoint names in stored order.
func (b Breakpoints) Names() []string {
	names := make([]string, 0, len(b))
	for _, bp := range b {
		names = append(names, bp.Name)
	}
	return names
}

// Shorthand lists physical property names a logical name expands to. In YAML
// it is either a single name or a sequence of names.
type Shorthand []string

func (s *Shorthand) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*s = Shorthand{name}
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*s = Shorthand(names)
	default:
		return fmt.Errorf("line %d: shorthand must be a property name or a list of names", node.Line)
	}
	return nil
}

func (s Shorthand) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// Shorthands maps logical property names to their physical expansion.
type Shorthands map[string]Shorthand
