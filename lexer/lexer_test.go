/*
File    : micron/lexer/lexer_test.go
Author  : Micron contributors
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLex_Operators(t *testing.T) {
	tokens, err := New([]byte(`s:0 10 g:0 p:.0 $`)).Lex()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{SET, INT, INT, GET, INT, PRINT, GET, INT, EXIT, EOF}, tokenTypes(tokens))
}

func TestLex_NegativeInteger(t *testing.T) {
	tokens, err := New([]byte(`-6969`)).Lex()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, INT, tokens[0].Type)
	assert.Equal(t, "-6969", tokens[0].Literal)
}

func TestLex_BareMinusIsIllegal(t *testing.T) {
	_, err := New([]byte(`a: - 2`)).Lex()
	assert.Error(t, err)
}

func TestLex_StringLiteralSpansLines(t *testing.T) {
	tokens, err := New([]byte("\"hi\nthere\"")).Lex()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, STR, tokens[0].Type)
	assert.Equal(t, "hi\nthere", tokens[0].Literal)
}

func TestLex_UnterminatedStringIsError(t *testing.T) {
	_, err := New([]byte(`"unterminated`)).Lex()
	assert.Error(t, err)
}

func TestLex_CommentDoesNotNest(t *testing.T) {
	// The comment closes at the first ']', leaving a stray ']' behind,
	// which is not a legal token on its own.
	_, err := New([]byte(`[ a [ b ] ] p:1`)).Lex()
	assert.Error(t, err)
}

func TestLex_CommentIsDiscarded(t *testing.T) {
	tokens, err := New([]byte(`[ ignored ] p:1`)).Lex()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{PRINT, INT, EOF}, tokenTypes(tokens))
}

func TestLex_UnterminatedCommentIsError(t *testing.T) {
	_, err := New([]byte(`[ unterminated`)).Lex()
	assert.Error(t, err)
}

func TestLex_LabelMark(t *testing.T) {
	tokens, err := New([]byte(`;Loop j:"Loop"`)).Lex()
	require.NoError(t, err)
	require.True(t, len(tokens) >= 1)
	assert.Equal(t, LABEL, tokens[0].Type)
	assert.Equal(t, "Loop", tokens[0].Literal)
}

func TestLex_DotShorthandExpandsToGet(t *testing.T) {
	// ".42" must lex as the two tokens a spelled-out "g:42" would produce
	// (GET, then INT "42"), so the parser's ordinary arity-driven path
	// consumes the digits as GET's argument instead of silently dropping
	// them.
	tokens, err := New([]byte(`.42`)).Lex()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, GET, tokens[0].Type)
	assert.Equal(t, INT, tokens[1].Type)
	assert.Equal(t, "42", tokens[1].Literal)
	assert.Equal(t, EOF, tokens[2].Type)
}

func TestLex_ZeroArityBarewords(t *testing.T) {
	tokens, err := New([]byte(`i k ~ $`)).Lex()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INPUT, KEYCHAR, EMPTYSLOT, EXIT, EOF}, tokenTypes(tokens))
}
