package reader

import (
	"fmt"
	"strconv"

	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// ReadAll tokenizes and parses source text into a sequence of top-level
// Literals, the form the reader hands to ast.ModuleFromValues.
func ReadAll(src string) ([]literal.Value, error) {
	tz := newTokenizer(src)
	tokens, err := tz.tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	var out []literal.Value
	for p.current().typ != tokEOF {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) current() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) parseValue() (literal.Value, error) {
	t := p.current()
	switch t.typ {
	case tokNumber:
		p.advance()
		n, err := strconv.ParseInt(t.value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %d: invalid number: %s", t.pos.Line, t.pos.Column, t.value)
		}
		return literal.Fixnum(n), nil
	case tokString:
		p.advance()
		return literal.String(t.value), nil
	case tokBytes:
		p.advance()
		return literal.Bytes([]byte(t.value)), nil
	case tokSymbol:
		p.advance()
		return literal.Sym(symbol.Intern(t.value)), nil
	case tokQuote:
		p.advance()
		inner, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return literal.List([]literal.Value{
			literal.Sym(symbol.Intern("quote")),
			inner,
		}), nil
	case tokLParen:
		return p.parseList()
	case tokLBracket:
		return p.parseBracket()
	case tokRParen:
		return nil, fmt.Errorf("line %d, column %d: unexpected closing parenthesis", t.pos.Line, t.pos.Column)
	case tokRBracket:
		return nil, fmt.Errorf("line %d, column %d: unexpected closing bracket", t.pos.Line, t.pos.Column)
	default:
		return nil, fmt.Errorf("line %d, column %d: unexpected end of input", t.pos.Line, t.pos.Column)
	}
}

func (p *parser) parseList() (literal.Value, error) {
	open := p.advance() // consume '('
	var elems []literal.Value
	for p.current().typ != tokRParen {
		if p.current().typ == tokEOF {
			return nil, fmt.Errorf("line %d, column %d: unmatched opening parenthesis", open.pos.Line, open.pos.Column)
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	p.advance() // consume ')'
	return literal.List(elems), nil
}

func (p *parser) parseBracket() (literal.Value, error) {
	open := p.advance() // consume '['
	var elems []literal.Value
	for p.current().typ != tokRBracket {
		if p.current().typ == tokEOF {
			return nil, fmt.Errorf("line %d, column %d: unmatched opening bracket", open.pos.Line, open.pos.Column)
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	p.advance() // consume ']'
	return literal.Vector(elems), nil
}
