/*
File    : micron/parser/parser.go
Author  : Micron contributors

Package parser builds the flat, ordered instruction sequence described in
spec section 2: each top-level Item is either a label mark or a call tree
rooted at an operator, whose children are themselves literals or nested
call trees. Arity is fixed per operator (spec section 6), so unlike the
teacher's Pratt parser (which handles precedence climbing over an
open-ended expression grammar) Micron's parser is a straight arity-driven
recursive descent: every operator token already states exactly how many
argument expressions follow it.
*/
package parser

import (
	"fmt"

	"github.com/micron-lang/micron/lexer"
	"github.com/micron-lang/micron/value"
)

// Node is either a *Literal or a *Call: the argument-position grammar
// described in spec section 3 ("Argument node").
type Node interface {
	node()
}

// Literal is a parsed Int or Str constant.
type Literal struct {
	Value value.Value
	Line  int
	Col   int
}

func (*Literal) node() {}

// Call is an operator applied to its fixed-arity argument list.
type Call struct {
	Op   lexer.TokenType
	Args []Node
	Line int
	Col  int
}

func (*Call) node() {}

// Item is one top-level element of the flat instruction sequence: either a
// label mark (Label non-empty, Call nil) or an executable call tree.
type Item struct {
	Label string
	Call  *Call
}

// Parser consumes a token slice and produces the flat Item sequence.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []string
}

// New creates a Parser over an already-lexed token slice.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every parse error collected during Parse, in the teacher's
// error-collection style (parser/parser.go's `Errors []string`) rather than
// failing on the first mistake.
func (p *Parser) Errors() []string {
	return p.errors
}

// Parse consumes every token and returns the flat top-level item sequence.
// Parse errors are collected in p.Errors(); the caller should check
// Errors() before using the returned items, since a parse failure leaves a
// best-effort (possibly truncated) sequence behind.
func (p *Parser) Parse() []Item {
	var items []Item
	for !p.atEnd() {
		if p.errors != nil && len(p.errors) > 64 {
			// Runaway error cascade: stop rather than flood the caller.
			break
		}
		start := p.pos
		item, ok := p.parseItem()
		if !ok {
			if p.pos == start {
				p.skipToRecover()
			}
			continue
		}
		items = append(items, item)
	}
	return items
}

func (p *Parser) atEnd() bool {
	return p.current().Type == lexer.EOF
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(tok lexer.Token, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	p.errors = append(p.errors, fmt.Sprintf("parse error at %d:%d: %s", tok.Line, tok.Column, msg))
}

// skipToRecover advances past the offending token so Parse can keep
// collecting further errors instead of looping forever on one bad token.
// Parse calls it only when the failed item consumed no token.
func (p *Parser) skipToRecover() {
	if !p.atEnd() {
		p.advance()
	}
}

func (p *Parser) parseItem() (Item, bool) {
	tok := p.current()
	if tok.Type == lexer.LABEL {
		p.advance()
		return Item{Label: tok.Literal}, true
	}
	node, ok := p.parseExpression()
	if !ok {
		return Item{}, false
	}
	call, isCall := node.(*Call)
	if !isCall {
		p.errorf(tok, "top-level item must be an operator call, got a bare literal")
		return Item{}, false
	}
	return Item{Call: call}, true
}

// parseExpression parses one literal or operator-rooted call tree, per
// spec section 4.2's definition of "expression".
func (p *Parser) parseExpression() (Node, bool) {
	tok := p.current()

	switch tok.Type {
	case lexer.EOF:
		p.errorf(tok, "unexpected end of input")
		return nil, false
	case lexer.LABEL:
		p.errorf(tok, "label declaration %q not allowed inside an expression", tok.Literal)
		return nil, false
	case lexer.INT:
		p.advance()
		n, err := parseIntLiteral(tok.Literal)
		if err != nil {
			p.errorf(tok, "invalid integer literal %q", tok.Literal)
			return nil, false
		}
		return &Literal{Value: value.Int(n), Line: tok.Line, Col: tok.Column}, true
	case lexer.STR:
		p.advance()
		return &Literal{Value: value.Str(tok.Literal), Line: tok.Line, Col: tok.Column}, true
	}

	arity, isOperator := lexer.Arity[tok.Type]
	if !isOperator {
		p.errorf(tok, "unknown operator token %q", tok.Literal)
		return nil, false
	}
	p.advance()

	args := make([]Node, 0, arity)
	for i := 0; i < arity; i++ {
		arg, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}
	return &Call{Op: tok.Type, Args: args, Line: tok.Line, Col: tok.Column}, true
}

func parseIntLiteral(lit string) (int, error) {
	neg := false
	i := 0
	if len(lit) > 0 && lit[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(lit) {
		return 0, fmt.Errorf("no digits")
	}
	n := 0
	for ; i < len(lit); i++ {
		c := lit[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit byte %q", c)
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
