// Package cssimport converts existing stylesheets into rule trees, so plain
// CSS can be moved into rule files.
package cssimport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/jadzia"
)

// Result holds the imported rules and anything that had to be left out.
type Result struct {
	Rules    *jadzia.Map
	Warnings []string
}

// parserState maintains context while walking the CSS grammar
type parserState struct {
	p        *css.Parser
	filename string
	warnings []string
}

// ParseCSS converts CSS content into a rule tree. Selector lists become
// comma-separated keys, block at-rules nest, repeated selectors merge with
// later declarations winning.
func ParseCSS(content string, filename string) (*Result, error) {
	state := &parserState{
		p:        css.NewParser(parse.NewInputString(content), false),
		filename: filename,
	}

	rules := jadzia.NewMap()
	state.block(rules)

	if err := state.p.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return &Result{Rules: rules, Warnings: state.warnings}, nil
}

// ParseFile reads and converts a single CSS file
func ParseFile(path string) (*Result, error) {
	// #nosec G304 - path comes from the command line
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseCSS(string(content), path)
}

// block reads grammar items into m until the end of the current block.
func (s *parserState) block(m *jadzia.Map) {
	var pending []string

	for {
		gt, _, data := s.p.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar, css.EndAtRuleGrammar:
			return

		case css.QualifiedRuleGrammar:
			// one selector of a comma-separated list
			pending = append(pending, selectorText(data, s.p.Values()))

		case css.BeginRulesetGrammar:
			selectors := append(pending, selectorText(data, s.p.Values()))
			pending = nil

			body := jadzia.NewMap()
			s.block(body)
			key := strings.Join(selectors, ", ")
			if hasNestedComma(selectors) {
				s.warn("selector %q has a comma inside parentheses and was skipped", key)
				continue
			}
			s.merge(m, key, body)

		case css.BeginAtRuleGrammar:
			prelude := tokenText(s.p.Values())
			key := strings.TrimSpace(string(data) + " " + prelude)

			body := jadzia.NewMap()
			s.block(body)
			if strings.Contains(prelude, ",") {
				s.warn("at-rule %q has a comma in its prelude and was skipped", key)
				continue
			}
			s.merge(m, key, body)

		case css.AtRuleGrammar:
			s.warn("statement at-rule %s %s dropped", data, tokenText(s.p.Values()))

		case css.DeclarationGrammar:
			m.Set(string(data), jadzia.String(tokenText(s.p.Values())))

		case css.CustomPropertyGrammar:
			m.Set(string(data), jadzia.String(tokenText(s.p.Values())))
		}
	}
}

// merge adds a nested block under key, folding it into an earlier block with
// the same key.
func (s *parserState) merge(m *jadzia.Map, key string, body *jadzia.Map) {
	if body.Len() == 0 {
		return
	}
	existing, ok := m.Get(key)
	if !ok {
		m.Set(key, body)
		return
	}
	prev, isMap := existing.(*jadzia.Map)
	if !isMap {
		s.warn("%q is both a declaration and a block; the block wins", key)
		m.Set(key, body)
		return
	}
	for k, v := range body.All() {
		if sub, ok := v.(*jadzia.Map); ok {
			s.merge(prev, k, sub)
			continue
		}
		prev.Set(k, v)
	}
}

func (s *parserState) warn(format string, args ...any) {
	s.warnings = append(s.warnings, s.filename+": "+fmt.Sprintf(format, args...))
}

// tokenText joins tokens, collapsing whitespace runs to one space.
func tokenText(tokens []css.Token) string {
	var b strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

func selectorText(data []byte, values []css.Token) string {
	sel := strings.TrimSpace(string(data) + tokenText(values))
	return strings.TrimSpace(strings.TrimSuffix(sel, ","))
}

// hasNestedComma reports whether a selector holds a comma inside
// parentheses, e.g. ":is(a, b)". Rule tree keys are split on every comma.
func hasNestedComma(selectors []string) bool {
	for _, sel := range selectors {
		depth := 0
		for _, r := range sel {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
			case ',':
				if depth > 0 {
					return true
				}
			}
		}
	}
	return false
}
