/*
File    : micron/lexer/token.go
Author  : Micron contributors
*/
package lexer

import "fmt"

// TokenType identifies the lexical category of a Token.
type TokenType string

// TokenType constants.
//
// Operator token types are named after the operator's arity-table name in
// spec section 6 (e.g. SET for "s:"). Zero-arity bareword operators (`i`,
// `k`, `~`, `$`) have their own token types even though they carry no
// trailing colon.
const (
	EOF     TokenType = "EOF"
	ILLEGAL TokenType = "ILLEGAL"

	LABEL TokenType = "LABEL" // ;name

	INT TokenType = "INT"
	STR TokenType = "STR"

	SET      TokenType = "s:"
	GET      TokenType = "g:"
	PRINT    TokenType = "p:"
	WRITE    TokenType = "w:"
	ADD      TokenType = "a:"
	JUMP     TokenType = "j:"
	IF       TokenType = "?:"
	EQUAL    TokenType = "=:"
	EXTRACT  TokenType = "x:"
	CONVERT  TokenType = "c:"
	NUMBER   TokenType = "n:"
	TEXT     TokenType = "t:"
	CATCH    TokenType = "#:"
	THROW    TokenType = "!:"
	FUNCTION TokenType = "f:"
	RETURN   TokenType = "r:"

	INPUT      TokenType = "i"
	KEYCHAR    TokenType = "k"
	EMPTYSLOT  TokenType = "~"
	EXIT       TokenType = "$"
)

// Operators maps the exact source byte sequence of every operator token
// (spec section 6) to its TokenType. Bareword zero-arity tokens are
// included too; the lexer looks up `~` and `$` here and matches `i` and `k`
// directly.
var Operators = map[string]TokenType{
	"s:": SET,
	"g:": GET,
	"p:": PRINT,
	"w:": WRITE,
	"a:": ADD,
	"j:": JUMP,
	"?:": IF,
	"=:": EQUAL,
	"x:": EXTRACT,
	"c:": CONVERT,
	"n:": NUMBER,
	"t:": TEXT,
	"#:": CATCH,
	"!:": THROW,
	"f:": FUNCTION,
	"r:": RETURN,
	"i":  INPUT,
	"k":  KEYCHAR,
	"~":  EMPTYSLOT,
	"$":  EXIT,
}

// Arity gives the fixed argument count of every operator token, per the
// table in spec section 6. Non-operator token types are not present.
var Arity = map[TokenType]int{
	SET:       2,
	GET:       1,
	PRINT:     1,
	WRITE:     1,
	ADD:       2,
	JUMP:      1,
	IF:        2,
	EQUAL:     2,
	EXTRACT:   2,
	CONVERT:   1,
	NUMBER:    1,
	TEXT:      1,
	CATCH:     2,
	THROW:     1,
	FUNCTION:  1,
	RETURN:    1,
	INPUT:     0,
	KEYCHAR:   0,
	EMPTYSLOT: 0,
	EXIT:      0,
}

// Token is one lexical unit, with its source position for diagnostics.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// NewToken builds a Token with position metadata.
func NewToken(typ TokenType, literal string, line, column int) Token {
	return Token{Type: typ, Literal: literal, Line: line, Column: column}
}

// String renders the token as "literal:type", for debug traces.
func (t Token) String() string {
	return fmt.Sprintf("%s:%s", t.Literal, t.Type)
}
