package license

import (
	"fmt"
	"strings"
)

// unsupportedChars cannot appear anywhere in a license_expression.
var unsupportedChars = []string{
	"!", "@", "#", "$", "%", "^", "&", "*", "=", "{", "}", "|",
	"[", "]", "\\", ":", ";", "<", ">", "?", ",", "/",
}

// SpecialChars returns the unsupported characters present in expr, in
// declaration order.
func SpecialChars(expr string) []string {
	var found []string
	for _, c := range unsupportedChars {
		if strings.Contains(expr, c) {
			found = append(found, c)
		}
	}
	return found
}

type tokenKind int

const (
	tokenKey tokenKind = iota
	tokenAnd
	tokenOr
	tokenWith
	tokenOpen
	tokenClose
)

type token struct {
	kind  tokenKind
	value string
}

// Expression is a parsed license expression such as
// "(mit OR apache-2.0) AND bsd-new WITH classpath-exception-2.0".
type Expression struct {
	tokens []token
}

// ParseExpression parses expr. Operators are matched case-insensitively.
func ParseExpression(expr string) (*Expression, error) {
	if chars := SpecialChars(expr); len(chars) > 0 {
		return nil, fmt.Errorf("unsupported character(s) in license expression: %s", strings.Join(chars, " "))
	}
	tokens := tokenize(expr)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty license expression")
	}

	p := &parser{tokens: tokens}
	if err := p.parseOr(); err != nil {
		return nil, err
	}
	if p.pos < len(tokens) {
		return nil, fmt.Errorf("unexpected %q at position %d", tokens[p.pos].value, p.pos+1)
	}
	return &Expression{tokens: tokens}, nil
}

func tokenize(expr string) []token {
	var tokens []token
	var word strings.Builder
	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		switch strings.ToUpper(w) {
		case "AND":
			tokens = append(tokens, token{tokenAnd, "AND"})
		case "OR":
			tokens = append(tokens, token{tokenOr, "OR"})
		case "WITH":
			tokens = append(tokens, token{tokenWith, "WITH"})
		default:
			tokens = append(tokens, token{tokenKey, w})
		}
	}

	for _, r := range expr {
		switch {
		case r == '(':
			flush()
			tokens = append(tokens, token{tokenOpen, "("})
		case r == ')':
			flush()
			tokens = append(tokens, token{tokenClose, ")"})
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// parser validates the grammar:
//
//	or   := and ("OR" and)*
//	and  := term ("AND" term)*
//	term := "(" or ")" | key ["WITH" key]
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseOr() error {
	if err := p.parseAnd(); err != nil {
		return err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokenOr {
			return nil
		}
		p.pos++
		if err := p.parseAnd(); err != nil {
			return err
		}
	}
}

func (p *parser) parseAnd() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokenAnd {
			return nil
		}
		p.pos++
		if err := p.parseTerm(); err != nil {
			return err
		}
	}
}

func (p *parser) parseTerm() error {
	t, ok := p.peek()
	if !ok {
		return fmt.Errorf("expression ends with an operator")
	}
	switch t.kind {
	case tokenOpen:
		p.pos++
		if err := p.parseOr(); err != nil {
			return err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokenClose {
			return fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return nil
	case tokenKey:
		p.pos++
		if next, ok := p.peek(); ok && next.kind == tokenWith {
			p.pos++
			exception, ok := p.peek()
			if !ok || exception.kind != tokenKey {
				return fmt.Errorf("WITH must be followed by an exception key")
			}
			p.pos++
		}
		return nil
	default:
		return fmt.Errorf("unexpected %q at position %d", t.value, p.pos+1)
	}
}

// Keys returns the license keys in order of first appearance, without duplicates.
// Exception keys following WITH are included.
func (e *Expression) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, t := range e.tokens {
		if t.kind != tokenKey {
			continue
		}
		if _, ok := seen[t.value]; ok {
			continue
		}
		seen[t.value] = struct{}{}
		keys = append(keys, t.value)
	}
	return keys
}

// String renders the expression with normalized spacing and upper-case operators.
func (e *Expression) String() string {
	return e.Render(nil)
}

// Render renders the expression replacing each key with replace(key).
// A nil replace keeps keys unchanged.
func (e *Expression) Render(replace func(key string) string) string {
	var b strings.Builder
	for i, t := range e.tokens {
		if i > 0 && t.kind != tokenClose && e.tokens[i-1].kind != tokenOpen {
			b.WriteByte(' ')
		}
		if t.kind == tokenKey && replace != nil {
			b.WriteString(replace(t.value))
			continue
		}
		b.WriteString(t.value)
	}
	return b.String()
}

// KeysOf parses expr and returns its keys. Returns nil for an empty expression.
func KeysOf(expr string) ([]string, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	parsed, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}
	return parsed.Keys(), nil
}
