// Package estreetest provides a small expression parser that builds ESTree
// trees with real source offsets, for tests that need a parser without
// shelling out to node.
//
// The grammar covers identifiers, string/number/boolean/null literals,
// template literals without substitutions, member access (., ?., []),
// calls, parentheses, `+` and line comments. Statements are separated by
// newlines or semicolons. Offsets are UTF-16 code units, like acorn.
package estreetest

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mouse-blink/litrep/internal/estree"
)

// Parse builds an ESTree Program for src.
func Parse(src string) (*estree.Node, error) {
	p := &parser{src: src, units: unitOffsets(src)}

	return p.program()
}

// MustParse is Parse that fails the test on error.
func MustParse(tb testing.TB, src string) *estree.Node {
	tb.Helper()

	root, err := Parse(src)
	if err != nil {
		tb.Fatalf("estreetest.Parse(%q): %v", src, err)
	}

	return root
}

// Parser implements the adapter/host Parse method and records every call.
type Parser struct {
	// Err, when set, is returned instead of parsing.
	Err error

	mu  sync.Mutex
	ids []string
}

// Parse records id and parses code.
func (p *Parser) Parse(code, id string) (*estree.Node, error) {
	p.mu.Lock()
	p.ids = append(p.ids, id)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}

	return Parse(code)
}

// IDs returns the identifiers Parse was called with.
func (p *Parser) IDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.ids...)
}

type parser struct {
	src   string
	pos   int
	units []int
}

func (p *parser) program() (*estree.Node, error) {
	var body []*estree.Node

	for {
		p.skipSpace()

		if p.pos >= len(p.src) {
			break
		}

		if p.src[p.pos] == ';' {
			p.pos++
			continue
		}

		start := p.pos

		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		body = append(body, estree.NewNode("ExpressionStatement", p.span(start, p.pos), expr))
	}

	return estree.NewNode("Program", p.span(0, len(p.src)), body...), nil
}

func (p *parser) expression() (*estree.Node, error) {
	start := p.pos

	left, err := p.postfix()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()

		if !p.consume("+") {
			return left, nil
		}

		right, err := p.postfix()
		if err != nil {
			return nil, err
		}

		left = estree.NewNode("BinaryExpression", p.span(start, p.pos), left, right)
	}
}

func (p *parser) postfix() (*estree.Node, error) {
	p.skipSpace()
	start := p.pos

	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()

		switch {
		case p.consume("?."), p.consume("."):
			p.skipSpace()

			prop, err := p.identifier()
			if err != nil {
				return nil, err
			}

			expr = estree.NewMember(expr, prop, false, p.span(start, p.pos))
		case p.consume("["):
			prop, err := p.expression()
			if err != nil {
				return nil, err
			}

			p.skipSpace()

			if !p.consume("]") {
				return nil, p.errorf("expected ]")
			}

			expr = estree.NewMember(expr, prop, true, p.span(start, p.pos))
		case p.consume("("):
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}

			expr = estree.NewCall(expr, args, p.span(start, p.pos))
		default:
			return expr, nil
		}
	}
}

func (p *parser) arguments() ([]*estree.Node, error) {
	var args []*estree.Node

	for {
		p.skipSpace()

		if p.consume(")") {
			return args, nil
		}

		if len(args) > 0 {
			if !p.consume(",") {
				return nil, p.errorf("expected , or )")
			}

			p.skipSpace()
		}

		arg, err := p.expression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}
}

func (p *parser) primary() (*estree.Node, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}

	c := p.src[p.pos]

	switch {
	case c == '\'' || c == '"':
		return p.str(c)
	case c == '`':
		return p.template()
	case c >= '0' && c <= '9':
		return p.number()
	case c == '(':
		p.pos++

		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		p.skipSpace()

		if !p.consume(")") {
			return nil, p.errorf("expected )")
		}

		return expr, nil
	}

	start := p.pos

	id, err := p.identifier()
	if err != nil {
		return nil, err
	}

	switch id.Name {
	case "true", "false":
		return estree.NewLiteral(id.Name == "true", id.Name, p.span(start, p.pos)), nil
	case "null":
		return estree.NewLiteral(nil, id.Name, p.span(start, p.pos)), nil
	}

	return id, nil
}

func (p *parser) identifier() (*estree.Node, error) {
	start := p.pos

	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r != '$' && r != '_' && !unicode.IsLetter(r) && (p.pos == start || !unicode.IsDigit(r)) {
			break
		}

		p.pos += size
	}

	if p.pos == start {
		return nil, p.errorf("expected identifier")
	}

	return estree.NewIdentifier(p.src[start:p.pos], p.span(start, p.pos)), nil
}

func (p *parser) str(quote byte) (*estree.Node, error) {
	start := p.pos
	p.pos++

	var value strings.Builder

	for {
		if p.pos >= len(p.src) || p.src[p.pos] == '\n' {
			return nil, p.errorf("unterminated string")
		}

		c := p.src[p.pos]
		if c == quote {
			p.pos++
			break
		}

		if c == '\\' && p.pos+1 < len(p.src) {
			value.WriteByte(unescape(p.src[p.pos+1]))
			p.pos += 2

			continue
		}

		value.WriteByte(c)
		p.pos++
	}

	return estree.NewLiteral(value.String(), p.src[start:p.pos], p.span(start, p.pos)), nil
}

func (p *parser) template() (*estree.Node, error) {
	start := p.pos
	p.pos++

	end := strings.IndexByte(p.src[p.pos:], '`')
	if end < 0 {
		return nil, p.errorf("unterminated template")
	}

	quasi := estree.NewNode("TemplateElement", p.span(p.pos, p.pos+end))
	p.pos += end + 1

	return estree.NewNode("TemplateLiteral", p.span(start, p.pos), quasi), nil
}

func (p *parser) number() (*estree.Node, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}

	raw := p.src[start:p.pos]

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, p.errorf("bad number %q", raw)
	}

	return estree.NewLiteral(value, raw, p.span(start, p.pos)), nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch {
		case strings.HasPrefix(p.src[p.pos:], "//"):
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
				return
			}

			p.pos += end
		case p.src[p.pos] == ' ', p.src[p.pos] == '\t', p.src[p.pos] == '\n', p.src[p.pos] == '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) consume(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}

	return false
}

func (p *parser) span(start, end int) *estree.Span {
	return &estree.Span{Start: p.units[start], End: p.units[end]}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("estreetest: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}

	return c
}

// unitOffsets maps every byte offset to its UTF-16 offset.
func unitOffsets(src string) []int {
	units := make([]int, len(src)+1)
	u := 0

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		for k := 0; k < size; k++ {
			units[i+k] = u
		}

		u += utf16.RuneLen(r)
		i += size
	}

	units[len(src)] = u

	return units
}
