package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

var (
	ErrNoRule        = errors.New("no style rule found")
	ErrMultipleRules = errors.New("more than one rule found")
)

// Parser parses CSS text into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseRule parses text which must contain exactly one style rule, as
// CSSOM insertRule does.
func (p *Parser) ParseRule(text string) (*Rule, error) {
	item, err := p.ParseStatement(text)
	if err != nil {
		return nil, err
	}
	if item.Rule == nil {
		return nil, fmt.Errorf("%q: @media is not allowed here: %w", text, ErrNoRule)
	}
	return item.Rule, nil
}

// ParseStatement parses text which must contain exactly one style rule or
// one @media block holding exactly one style rule.
func (p *Parser) ParseStatement(text string) (StylesheetItem, error) {
	sheet, count, err := p.parse([]byte(text))
	if err != nil {
		return StylesheetItem{}, fmt.Errorf("unable to parse %q: %w", text, err)
	}
	switch {
	case count == 0:
		return StylesheetItem{}, fmt.Errorf("%q: %w", text, ErrNoRule)
	case count > 1:
		return StylesheetItem{}, fmt.Errorf("%q: %w", text, ErrMultipleRules)
	case len(sheet.Items) != 1:
		return StylesheetItem{}, fmt.Errorf("%q: only @media at-rule is supported: %w", text, ErrNoRule)
	}
	item := sheet.Items[0]
	if item.MediaBlock != nil {
		switch len(item.MediaBlock.Rules) {
		case 0:
			return StylesheetItem{}, fmt.Errorf("%q: empty @media block: %w", text, ErrNoRule)
		case 1:
		default:
			return StylesheetItem{}, fmt.Errorf("%q: @media block: %w", text, ErrMultipleRules)
		}
	}
	return item, nil
}

// ParseInline parses content of style attribute.
func (p *Parser) ParseInline(text string) ([]Declaration, error) {
	parser := css.NewParser(parse.NewInputString(text), true)
	decls, err := p.parseDeclarations(parser)
	if err != nil {
		return nil, fmt.Errorf("unable to parse inline style %q: %w", text, err)
	}
	return decls, nil
}

// parse returns stylesheet and number of top-level constructs seen,
// including skipped ones.
func (p *Parser) parse(data []byte) (*Stylesheet, int, error) {
	sheet := &Stylesheet{
		Items: make([]StylesheetItem, 0),
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	count := 0
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return sheet, count, err
			}
			return sheet, count, nil

		case css.BeginAtRuleGrammar:
			count++
			atRule := strings.ToLower(string(data))
			if atRule != "@media" {
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
				continue
			}
			mq := parseMediaQuery(parser.Values())
			rules, err := p.parseMediaBlockRules(parser)
			if err != nil {
				return sheet, count, err
			}
			p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
			sheet.Items = append(sheet.Items, StylesheetItem{
				MediaBlock: &MediaBlock{Query: mq, Rules: rules},
			})

		case css.AtRuleGrammar, css.QualifiedRuleGrammar:
			// statement at-rule (@import, @charset) or a rule without block
			count++
			p.log.Debug("Skipping statement", zap.ByteString("data", data))

		case css.BeginRulesetGrammar:
			count++
			rule := &Rule{Selector: selectorText(data, parser.Values())}
			decls, err := p.parseDeclarations(parser)
			if err != nil {
				return sheet, count, err
			}
			rule.Declarations = decls
			sheet.Items = append(sheet.Items, StylesheetItem{Rule: rule})
		}
	}
}

// selectorText rebuilds selector from tokens. Whitespace runs become single
// space and combinators outside of functions are surrounded by single spaces
// so the result does not depend on tokenizer whitespace handling. Strings
// are kept as written.
func selectorText(data []byte, tokens []css.Token) string {
	buf := append([]byte(nil), data...)

	depth := 0
	space := func() {
		if len(buf) > 0 && buf[len(buf)-1] != ' ' {
			buf = append(buf, ' ')
		}
	}
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space()
			continue
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				buf = append(bytes.TrimRight(buf, " "), ", "...)
				continue
			}
		case css.DelimToken:
			if depth == 0 && len(t.Data) == 1 && bytes.ContainsAny(t.Data, ">+~") {
				space()
				buf = append(buf, t.Data...)
				buf = append(buf, ' ')
				continue
			}
		}
		buf = append(buf, t.Data...)
	}
	return string(bytes.TrimSpace(buf))
}

// valueText joins value tokens replacing whitespace runs with single space,
// strings are kept as written. Trailing !important is reported separately.
func valueText(tokens []css.Token) (string, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	important := false
	if end >= 2 && tokens[end-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[end-1].Data), "important") {
		i := end - 2
		for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
			i--
		}
		if i >= 0 && tokens[i].TokenType == css.DelimToken && string(tokens[i].Data) == "!" {
			important = true
			end = i
		}
	}

	var buf []byte
	for _, t := range tokens[:end] {
		if t.TokenType == css.WhitespaceToken {
			if len(buf) > 0 && buf[len(buf)-1] != ' ' {
				buf = append(buf, ' ')
			}
			continue
		}
		buf = append(buf, t.Data...)
	}
	return string(bytes.TrimRight(buf, " ")), important
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) ([]Declaration, error) {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return decls, err
			}
			return decls, nil

		case css.EndRulesetGrammar:
			return decls, nil

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			value, important := valueText(values)
			decls = append(decls, Declaration{Property: strings.ToLower(string(data)), Value: value, Important: important})

		case css.CustomPropertyGrammar:
			var sb strings.Builder
			for _, v := range parser.Values() {
				sb.Write(v.Data)
			}
			decls = append(decls, Declaration{Property: string(data), Value: strings.TrimSpace(sb.String())})
		}
	}
}

// parseMediaBlockRules parses rules nested in @media block.
func (p *Parser) parseMediaBlockRules(parser *css.Parser) ([]*Rule, error) {
	var rules []*Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return rules, err
			}
			return rules, nil

		case css.EndAtRuleGrammar:
			return rules, nil

		case css.BeginAtRuleGrammar:
			// nested at-rules are not interpreted
			p.skipAtRuleBlock(parser)

		case css.BeginRulesetGrammar:
			rule := &Rule{Selector: selectorText(data, parser.Values())}
			decls, err := p.parseDeclarations(parser)
			if err != nil {
				return rules, err
			}
			rule.Declarations = decls
			rules = append(rules, rule)
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaQuery builds media query from prelude tokens, picking up
// "max-width: <N>px" when present.
func parseMediaQuery(tokens []css.Token) MediaQuery {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	mq := MediaQuery{Raw: strings.TrimSpace(strings.Join(rawParts, ""))}
	mq.Raw = strings.ReplaceAll(mq.Raw, ":", ": ")
	mq.Raw = strings.Join(strings.Fields(mq.Raw), " ")

	for i, t := range tokens {
		if t.TokenType != css.IdentToken || !strings.EqualFold(string(t.Data), "max-width") {
			continue
		}
		for _, v := range tokens[i+1:] {
			if v.TokenType == css.WhitespaceToken || v.TokenType == css.ColonToken {
				continue
			}
			if v.TokenType == css.DimensionToken {
				if num, ok := strings.CutSuffix(strings.ToLower(string(v.Data)), "px"); ok {
					if px, err := strconv.Atoi(num); err == nil {
						mq.MaxWidth = px
					}
				}
			}
			break
		}
		break
	}
	return mq
}
