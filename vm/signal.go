/*
File    : micron/vm/signal.go
Author  : Micron contributors

Signal generalises the teacher's eval.ReturnValue/IsError propagation idiom
(eval/eval_helpers.go, eval/eval_controls.go): rather than a plain value,
evaluating a non-local control form produces a Signal that every enclosing
Eval call must check for and pass upward unevaluated, per spec section 9's
"distinguished control-flow signal, not conflated with an ordinary value".
*/
package vm

import (
	"github.com/micron-lang/micron/micronerr"
	"github.com/micron-lang/micron/value"
)

type signalKind int

const (
	sigJump signalKind = iota
	sigReturn
	sigError
	sigExit
)

// Signal is the non-local abort Eval produces for `j:`, `f:`'s underlying
// `r:`, an uncaught error, `$`, or the program running off its last
// instruction outside any `f:` call (which behaves like an implicit `$`).
type Signal struct {
	Kind     signalKind
	TargetIP int                    // sigJump: the label's resolved instruction index
	Value    value.Value            // sigReturn: the value r:'s argument evaluated to
	Err      *micronerr.MicronError // sigError: the raised/propagated error
}
