/*
File    : micron/vm/machine_test.go
Author  : Micron contributors
*/
package vm

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micron-lang/micron/lexer"
	"github.com/micron-lang/micron/micronerr"
	"github.com/micron-lang/micron/parser"
)

// run lexes, parses, and executes src against stdin, returning stdout and
// any uncaught error. It is the end-to-end harness every scenario here and
// in the brainfuck example use.
func run(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	tokens, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	p := parser.New(tokens)
	items := p.Parse()
	require.Empty(t, p.Errors())

	var out bytes.Buffer
	m := New(items, &out, strings.NewReader(stdin))
	runErr := m.Run()
	return out.String(), runErr
}

func TestSetGetPrint(t *testing.T) {
	out, err := run(t, `s:0 42 p:g:0`, "")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestDotShorthandExpandsToGet(t *testing.T) {
	out, err := run(t, `s:0 10  s:1 g:0  p:.1`, "")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestGetAbsentSlotIsNone(t *testing.T) {
	out, err := run(t, `p:g:0`, "")
	require.NoError(t, err)
	assert.Equal(t, "None\n", out)
}

func TestIfTruthySkipsBodyWhenFalse(t *testing.T) {
	out, err := run(t, `w:"a" ?:0 w:"b" w:"c"`, "")
	require.NoError(t, err)
	assert.Equal(t, "ac", out)
}

func TestIfTruthyRunsBodyWhenTrue(t *testing.T) {
	out, err := run(t, `w:"a" ?:1 w:"b" w:"c"`, "")
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
}

func TestJumpSkipsOverCode(t *testing.T) {
	out, err := run(t, `j:"Skip" w:"never" ;Skip w:"reached"`, "")
	require.NoError(t, err)
	assert.Equal(t, "reached", out)
}

func TestFunctionCallAndReturnValue(t *testing.T) {
	out, err := run(t, `w:"hi " p:f:"R" $ ;R r:"there"`, "")
	require.NoError(t, err)
	assert.Equal(t, "hi there\n", out)
}

// A function whose body runs off the last instruction without an `r:` pops
// its frame there and the `f:` call yields None: the `p:` prints "None",
// and execution resumes at the item after the call site, which here runs
// the function body once more at top level.
func TestFunctionRunningOffEndYieldsNone(t *testing.T) {
	out, err := run(t, `p:f:"F" ;F w:"done"`, "")
	require.NoError(t, err)
	assert.Equal(t, "doneNone\ndone", out)
}

func TestLoopCountsUpAndStops(t *testing.T) {
	src := `s:0 0 ;Loop p:g:0 ?:=:g:0 3 j:"End" s:0 a:g:0 1 j:"Loop" ;End`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n3\n", out)
}

func TestCatchHandlesThrownError(t *testing.T) {
	src := `#:"C" !:"boom" $ ;C p:g:-1`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "400\n", out)
}

func TestUncaughtErrorIsFatal(t *testing.T) {
	_, err := run(t, `!:"boom"`, "")
	require.Error(t, err)
	merr, ok := err.(*micronerr.MicronError)
	require.True(t, ok)
	assert.Equal(t, micronerr.Error, merr.Code)
}

func TestJumpToUnknownLabelIsLabelError(t *testing.T) {
	_, err := run(t, `j:"Nope"`, "")
	require.Error(t, err)
	merr, ok := err.(*micronerr.MicronError)
	require.True(t, ok)
	assert.Equal(t, micronerr.LabelError, merr.Code)
}

func TestExitHaltsImmediately(t *testing.T) {
	out, err := run(t, `w:"a" $ w:"never"`, "")
	require.NoError(t, err)
	assert.Equal(t, "a", out)
}

func TestTopLevelReturnHaltsSilently(t *testing.T) {
	out, err := run(t, `w:"a" r:0 w:"never"`, "")
	require.NoError(t, err)
	assert.Equal(t, "a", out)
}

func TestDuplicateLabelLastWins(t *testing.T) {
	src := `j:"L" w:"first" $ ;L w:"skippedfirst" $ ;L w:"second"`
	out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "second", out)
}

func TestInputEchoesOneLine(t *testing.T) {
	out, err := run(t, `p:i`, "hello world\n")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestInputAtEOFIsEmptyStr(t *testing.T) {
	out, err := run(t, `p:i`, "")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestKeyCharStubIsNone(t *testing.T) {
	out, err := run(t, `p:k`, "")
	require.NoError(t, err)
	assert.Equal(t, "None\n", out)
}

// TestBrainfuckIncrementExample exercises the shipped examples/brainfuck.mc
// end to end, matching the incrementing-byte-echo scenario: stdin "A"
// produces "B".
func TestBrainfuckIncrementExample(t *testing.T) {
	src, err := os.ReadFile("../examples/brainfuck.mc")
	require.NoError(t, err)
	out, runErr := run(t, string(src), "A\n")
	require.NoError(t, runErr)
	assert.Equal(t, "B", out)
}
