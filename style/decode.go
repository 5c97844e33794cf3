package style

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"rvcss/common"
	"rvcss/config"
)

var (
	ErrUnknownModifier  = errors.New("unknown modifier")
	ErrNestedBreakpoint = errors.New("nested breakpoints are not supported")
	ErrMalformed        = errors.New("malformed style declaration")
	ErrUnknownStyle     = errors.New("style is not defined")
)

// ModifierPrefix starts modifier keys in textual declarations.
const ModifierPrefix = "$"

// Library is a set of named declarations in the order they were defined.
type Library struct {
	names []string
	decls map[string]*Declaration
}

// NewLibrary creates empty library.
func NewLibrary() *Library {
	return &Library{decls: make(map[string]*Declaration)}
}

// Add stores declaration under name replacing previous one.
func (l *Library) Add(name string, d *Declaration) {
	if _, exists := l.decls[name]; !exists {
		l.names = append(l.names, name)
	}
	l.decls[name] = d
}

// Get returns declaration by name.
func (l *Library) Get(name string) (*Declaration, bool) {
	d, ok := l.decls[name]
	return d, ok
}

// Names returns declaration names in definition order.
func (l *Library) Names() []string {
	return l.names
}

// Resolve merges named declarations in order, see Merge.
func (l *Library) Resolve(names ...string) (*Declaration, error) {
	decls := make([]*Declaration, 0, len(names))
	for _, name := range names {
		d, ok := l.decls[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownStyle)
		}
		decls = append(decls, d)
	}
	return Merge(decls...), nil
}

// Decode reads YAML document with named declarations:
//
//	button:
//	  bg: red
//	  px: 2
//	  $sm: {px: 1}
//	  $select:
//	    ":hover": {bg: blue}
//	  $raw: "& > svg { fill: currentColor; }"
//
// Modifier keys are resolved against breakpoints here, once. Dynamic blocks
// cannot be expressed textually.
func Decode(data []byte, breakpoints config.Breakpoints) (*Library, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode styles: %w", err)
	}
	lib := NewLibrary()
	if len(doc.Content) == 0 {
		return lib, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: styles must be a mapping of names to declarations: %w", root.Line, ErrMalformed)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		d, err := DecodeNode(root.Content[i+1], breakpoints)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		lib.Add(name, d)
	}
	return lib, nil
}

// DecodeNode converts YAML mapping node into declaration.
func DecodeNode(node *yaml.Node, breakpoints config.Breakpoints) (*Declaration, error) {
	return decodeNode(node, breakpoints, false)
}

func decodeNode(node *yaml.Node, breakpoints config.Breakpoints, inBreakpoint bool) (*Declaration, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: declaration must be a mapping: %w", node.Line, ErrMalformed)
	}
	d := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if !strings.HasPrefix(key, ModifierPrefix) {
			v, err := decodeValue(val)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", key, err)
			}
			d.Set(key, v)
			continue
		}

		modifier := strings.TrimPrefix(key, ModifierPrefix)
		switch {
		case modifier == "dynamic":
			return nil, fmt.Errorf("line %d: %q is only available programmatically: %w", node.Content[i].Line, key, ErrUnknownModifier)

		case modifier == "raw":
			rules, err := decodeRaw(val)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
			d.Raw(rules...)

		case isBreakpoint(modifier, breakpoints):
			if inBreakpoint {
				return nil, fmt.Errorf("line %d: %q: %w", node.Content[i].Line, key, ErrNestedBreakpoint)
			}
			block, err := decodeNode(val, breakpoints, true)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
			d.Breakpoint(modifier, block)

		default:
			rel, ok := relationOf(modifier)
			if !ok {
				return nil, fmt.Errorf("line %d: %q: %w", node.Content[i].Line, key, ErrUnknownModifier)
			}
			entry, err := decodeSelectors(val, rel, breakpoints, inBreakpoint)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
			d.entries = append(d.entries, entry)
		}
	}
	return d, nil
}

func decodeSelectors(node *yaml.Node, rel common.Relation, breakpoints config.Breakpoints, inBreakpoint bool) (Entry, error) {
	if node.Kind != yaml.MappingNode {
		return Entry{}, fmt.Errorf("line %d: selector block must be a mapping of selectors to declarations: %w", node.Line, ErrMalformed)
	}
	entry := Entry{Kind: KindSelector, Relation: rel}
	for i := 0; i+1 < len(node.Content); i += 2 {
		selector := node.Content[i].Value
		if len(strings.TrimSpace(selector)) == 0 {
			return Entry{}, fmt.Errorf("line %d: empty selector: %w", node.Content[i].Line, ErrMalformed)
		}
		block, err := decodeNode(node.Content[i+1], breakpoints, inBreakpoint)
		if err != nil {
			return Entry{}, fmt.Errorf("selector %q: %w", selector, err)
		}
		entry.Selectors = append(entry.Selectors, SelectorBlock{Selector: selector, Block: block})
	}
	return entry, nil
}

func decodeRaw(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var rules []string
		if err := node.Decode(&rules); err != nil {
			return nil, err
		}
		return rules, nil
	default:
		return nil, fmt.Errorf("line %d: raw block must be a rule or a list of rules: %w", node.Line, ErrMalformed)
	}
}

func decodeValue(node *yaml.Node) (Value, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("line %d: property value must be a string or a number: %w", node.Line, ErrMalformed)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}

func isBreakpoint(name string, breakpoints config.Breakpoints) bool {
	_, ok := breakpoints.Lookup(name)
	return ok
}

// relationOf recognizes selector modifiers: "select", "parentSelect",
// "ancestorSelect" (case insensitive).
func relationOf(modifier string) (common.Relation, bool) {
	lower := strings.ToLower(modifier)
	prefix, ok := strings.CutSuffix(lower, "select")
	if !ok {
		return common.RelationSelf, false
	}
	if prefix == "" {
		return common.RelationSelf, true
	}
	rel, err := common.ParseRelation(prefix)
	if err != nil || rel == common.RelationSelf {
		return common.RelationSelf, false
	}
	return rel, true
}
