/*
File    : micron/ops/ops.go
Author  : Micron contributors

Package ops implements the fourteen strict operators of spec section 4.4's
table (every operator except the six control-flow forms `?:`, `j:`, `f:`,
`#:`, `r:`, `$`, which the vm package special-cases because their argument
evaluation is itself non-standard). It is adapted from the teacher's
std.Builtin{Name, Callback}/std.Runtime registry (std/builtins.go): each
strict operator is a Func looked up by token type and invoked with its
already-evaluated argument values, the same shape as the teacher's
CallbackFunc(rt Runtime, writer io.Writer, args ...GoMixObject).
*/
package ops

import (
	"unicode/utf8"

	"github.com/micron-lang/micron/lexer"
	"github.com/micron-lang/micron/micronerr"
	"github.com/micron-lang/micron/slots"
	"github.com/micron-lang/micron/value"
)

// Runtime is what a strict operator needs from the evaluator: the slot
// store and line-buffered I/O (spec section 6). vm.Machine implements this.
type Runtime interface {
	Store() *slots.Store
	WriteLine(s string)
	Write(s string)
	ReadLine() (line string, ok bool)
}

// Func implements one strict operator given its already-evaluated,
// left-to-right arguments.
type Func func(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError)

// Table maps every strict operator's token type to its implementation.
// Control-flow operators (IF, JUMP, FUNCTION, CATCH, RETURN, EXIT) are not
// present here; the vm package evaluates those directly.
var Table = map[lexer.TokenType]Func{
	lexer.SET:       opSet,
	lexer.GET:       opGet,
	lexer.PRINT:     opPrint,
	lexer.WRITE:     opWrite,
	lexer.ADD:       opAdd,
	lexer.EQUAL:     opEqual,
	lexer.EXTRACT:   opExtract,
	lexer.CONVERT:   opConvert,
	lexer.NUMBER:    opNumber,
	lexer.TEXT:      opText,
	lexer.EMPTYSLOT: opEmptySlot,
	lexer.INPUT:     opInput,
	lexer.KEYCHAR:   opKeyChar,
	lexer.THROW:     opThrow,
}

func typeError(format string, a ...interface{}) (value.Value, *micronerr.MicronError) {
	return nil, micronerr.New(micronerr.TypeError, format, a...)
}

// opSet implements `s:` (Set): slots[args[0]] = args[1].
func opSet(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	key, ok := args[0].(value.Int)
	if !ok {
		return typeError("s: slot index must be Int, got %s", args[0].Type())
	}
	rt.Store().Set(int(key), args[1])
	return value.None{}, nil
}

// opGet implements `g:` (Get): read slots[args[0]], None if absent.
func opGet(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	key, ok := args[0].(value.Int)
	if !ok {
		return typeError("g: slot index must be Int, got %s", args[0].Type())
	}
	return rt.Store().Get(int(key)), nil
}

// opPrint implements `p:` (Print): write args[0]'s text form plus a newline.
func opPrint(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	rt.WriteLine(args[0].String())
	return value.None{}, nil
}

// opWrite implements `w:` (Write): write args[0]'s text form, no newline.
func opWrite(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	rt.Write(args[0].String())
	return value.None{}, nil
}

// opAdd implements `a:` (Add): Int+Int wraps on overflow (native Go signed
// arithmetic), Str+Str concatenates; any other combination is a TypeError.
func opAdd(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	switch a := args[0].(type) {
	case value.Int:
		b, ok := args[1].(value.Int)
		if !ok {
			return typeError("a: both operands must be the same type, got Int and %s", args[1].Type())
		}
		return a + b, nil
	case value.Str:
		b, ok := args[1].(value.Str)
		if !ok {
			return typeError("a: both operands must be the same type, got Str and %s", args[1].Type())
		}
		return a + b, nil
	default:
		return typeError("a: operands must be Int or Str, got %s", args[0].Type())
	}
}

// opEqual implements `=:` (Equal): same-type comparison of two non-None
// values; None on either side, or mismatched types, is a TypeError.
func opEqual(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	a, b := args[0], args[1]
	if a.Type() == value.NoneType || b.Type() == value.NoneType {
		return typeError("=: None is never comparable")
	}
	if a.Type() != b.Type() {
		return typeError("=: cannot compare %s and %s", a.Type(), b.Type())
	}
	if value.Equal(a, b) {
		return value.Int(1), nil
	}
	return value.Int(0), nil
}

// opExtract implements `x:` (Extract): the one-code-point Str at a given
// index, or empty Str if the index is out of range.
func opExtract(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	s, ok := args[0].(value.Str)
	if !ok {
		return typeError("x: first operand must be Str, got %s", args[0].Type())
	}
	idx, ok := args[1].(value.Int)
	if !ok {
		return typeError("x: second operand must be Int, got %s", args[1].Type())
	}
	runes := []rune(string(s))
	if idx < 0 || int(idx) >= len(runes) {
		return value.Str(""), nil
	}
	return value.Str(runes[idx]), nil
}

// opConvert implements `c:` (Convert): Str of length one code point <-> Int
// code point. Anything else is a ValueError.
func opConvert(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	switch v := args[0].(type) {
	case value.Str:
		runes := []rune(string(v))
		if len(runes) != 1 {
			return nil, micronerr.New(micronerr.ValueError, "c: Str operand must be exactly one code point, got %d", len(runes))
		}
		return value.Int(runes[0]), nil
	case value.Int:
		r := rune(v)
		if v < 0 || v > utf8.MaxRune || !utf8.ValidRune(r) {
			return nil, micronerr.New(micronerr.ValueError, "c: %d is not a valid Unicode code point", int(v))
		}
		return value.Str(r), nil
	default:
		return nil, micronerr.New(micronerr.ValueError, "c: operand must be Str or Int, got %s", v.Type())
	}
}

// opNumber implements `n:` (Number): parse a Str of an optional leading
// '-' followed by one or more decimal digits into an Int. No whitespace,
// no '+', no other signs are accepted.
func opNumber(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	s, ok := args[0].(value.Str)
	if !ok {
		return nil, micronerr.New(micronerr.ValueError, "n: operand must be Str, got %s", args[0].Type())
	}
	lit := string(s)
	neg := false
	i := 0
	if len(lit) > 0 && lit[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(lit) {
		return nil, micronerr.New(micronerr.ValueError, "n: %q has no digits", lit)
	}
	n := 0
	for ; i < len(lit); i++ {
		c := lit[i]
		if c < '0' || c > '9' {
			return nil, micronerr.New(micronerr.ValueError, "n: %q is not a decimal integer", lit)
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return value.Int(n), nil
}

// opText implements `t:` (Text): an Int rendered as its decimal Str.
func opText(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	n, ok := args[0].(value.Int)
	if !ok {
		return nil, micronerr.New(micronerr.ValueError, "t: operand must be Int, got %s", args[0].Type())
	}
	return value.Str(n.String()), nil
}

// opEmptySlot implements `~` (EmptySlot): the smallest unused slot index.
func opEmptySlot(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	k, ok := rt.Store().EmptySlot()
	if !ok {
		return nil, micronerr.New(micronerr.NoSlotError, "~: no unused slot in [0, %d]", slots.MaxSlot)
	}
	return value.Int(k), nil
}

// opInput implements `i` (Input): one line from stdin, sans its trailing
// newline; an empty Str at end of input, never an error.
func opInput(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	line, _ := rt.ReadLine()
	return value.Str(line), nil
}

// opKeyChar implements `k` (KeyChar): raw single-key terminal capture is
// outside this module's scope (spec section 1); it always yields None.
func opKeyChar(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	return value.None{}, nil
}

// opThrow implements `!:` (Throw): user-raised Error(400) carrying the
// given message.
func opThrow(rt Runtime, args []value.Value) (value.Value, *micronerr.MicronError) {
	msg, ok := args[0].(value.Str)
	if !ok {
		return typeError("!: message must be Str, got %s", args[0].Type())
	}
	return nil, micronerr.New(micronerr.Error, "%s", string(msg))
}
