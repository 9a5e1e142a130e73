/*
File    : micron/vm/machine.go
Author  : Micron contributors

Package vm is the evaluator (spec section 4.4): a driver loop over the flat
Item sequence the parser and label table produce, with a call-return stack
for `f:`/`r:` and a catch stack for `#:`. It generalises the teacher's
recursive, tree-walking eval.Eval (eval/evaluator.go) into an instruction-
pointer-driven interpreter, since Micron programs are a flat tape addressed
by jumps and label marks rather than a nested block/statement AST.

Control flow that the teacher keeps entirely inside its own recursive Eval
(its IsError/ReturnValue wrapper propagating up the Go call stack, see
eval/eval_helpers.go and eval/eval_controls.go) is generalised here into
Signal: every Eval call that encounters `?:`, `j:`, `f:`, `#:`, `r:`, `!:`
or `$` either handles it locally or returns a Signal for its caller to pass
upward untouched, exactly mirroring the teacher's IsError short-circuit.
*/
package vm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/micron-lang/micron/lexer"
	"github.com/micron-lang/micron/micronerr"
	"github.com/micron-lang/micron/ops"
	"github.com/micron-lang/micron/parser"
	"github.com/micron-lang/micron/slots"
	"github.com/micron-lang/micron/value"
)

// catchFrame records the state a `#:` needs to unwind to on error (spec
// section 3's "Catch stack frame").
type catchFrame struct {
	Label          string
	SavedIP        int
	SavedCallDepth int
}

// Machine holds everything one running Micron program needs: the flat
// instruction tape, the label table, the slot store, and the call/catch
// stacks (spec section 3). It implements ops.Runtime so the strict
// operator table in package ops can call back into it.
type Machine struct {
	Items  []parser.Item
	Labels map[string]int

	store *slots.Store

	CallStack  []int
	CatchStack []catchFrame

	ip int

	out    *bufio.Writer
	in     *bufio.Reader
	Trace  bool
	tracer io.Writer
}

// BuildLabelTable performs the single forward scan of spec section 4.3,
// mapping each label name to the index of the item immediately following
// its mark. A label declared more than once resolves to its last
// occurrence (spec section 13's resolution of the spec's open question).
func BuildLabelTable(items []parser.Item) map[string]int {
	labels := make(map[string]int)
	for i, it := range items {
		if it.Label != "" {
			labels[it.Label] = i + 1
		}
	}
	return labels
}

// New creates a Machine ready to run items, reading `i`'s input from in and
// writing `p:`/`w:` output to out.
func New(items []parser.Item, out io.Writer, in io.Reader) *Machine {
	return &Machine{
		Items:  items,
		Labels: BuildLabelTable(items),
		store:  slots.New(),
		out:    bufio.NewWriter(out),
		in:     bufio.NewReader(in),
	}
}

// Store gives the ops package access to the slot store (ops.Runtime).
func (m *Machine) Store() *slots.Store { return m.store }

// Write implements ops.Runtime for `w:`.
func (m *Machine) Write(s string) {
	m.out.WriteString(s)
	m.out.Flush()
}

// WriteLine implements ops.Runtime for `p:`.
func (m *Machine) WriteLine(s string) {
	m.out.WriteString(s)
	m.out.WriteByte('\n')
	m.out.Flush()
}

// ReadLine implements ops.Runtime for `i`: one line, trailing newline
// stripped, ok=false only when nothing at all could be read (true EOF).
func (m *Machine) ReadLine() (string, bool) {
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, true
}

// SetTracer turns on a per-step diagnostic trace written to w (used by the
// CLI's --trace flag).
func (m *Machine) SetTracer(w io.Writer) {
	m.Trace = w != nil
	m.tracer = w
}

// IP exposes the current instruction pointer, mainly for --trace and tests.
func (m *Machine) IP() int { return m.ip }

// SetIP repositions the instruction pointer; the repl uses this to step past
// an item that raised an uncaught error.
func (m *Machine) SetIP(ip int) { m.ip = ip }

// Run drives the program from the current ip to completion, returning a
// non-nil error only for an uncaught Micron error (spec section 4.5); `$`,
// a top-level `r:`, and simply running off the end all terminate
// successfully.
func (m *Machine) Run() error {
	_, sig := m.runUntil(-1, false)
	if sig != nil && sig.Kind == sigError {
		return sig.Err
	}
	return nil
}

// runUntil drives the instruction tape forward. For the top-level driver
// (isFrame=false) it runs until the program ends or aborts. For an `f:`
// invocation (isFrame=true) it additionally stops and yields a normal
// value the moment the call stack unwinds back to targetDepth, which is
// exactly what that invocation's own matching `r:` does, or yields None if
// the program runs off its end first.
func (m *Machine) runUntil(targetDepth int, isFrame bool) (value.Value, *Signal) {
	for {
		if m.ip >= len(m.Items) {
			if isFrame {
				// Running off the end inside a function pops its frame and
				// makes the `f:` call yield None.
				top := len(m.CallStack) - 1
				m.ip = m.CallStack[top]
				m.CallStack = m.CallStack[:top]
				return value.None{}, nil
			}
			return value.None{}, &Signal{Kind: sigExit}
		}
		item := m.Items[m.ip]
		if m.Trace {
			fmt.Fprintf(m.tracer, "ip=%d %+v\n", m.ip, item)
		}
		if item.Label != "" {
			m.ip++
			continue
		}
		nextIP := m.ip + 1
		_, sig := m.eval(item.Call, nextIP)
		if sig == nil {
			m.ip = nextIP
			continue
		}
		switch sig.Kind {
		case sigJump:
			m.ip = sig.TargetIP
		case sigExit:
			m.ip = len(m.Items)
			return value.None{}, sig
		case sigError:
			return nil, sig
		case sigReturn:
			if len(m.CallStack) == 0 {
				// A bare return with nothing to return to halts the whole
				// program; its value is not observable (spec section 13).
				m.ip = len(m.Items)
				return value.None{}, &Signal{Kind: sigExit}
			}
			top := len(m.CallStack) - 1
			popped := m.CallStack[top]
			m.CallStack = m.CallStack[:top]
			m.ip = popped
			if isFrame && len(m.CallStack) == targetDepth {
				return sig.Value, nil
			}
		}
	}
}

// eval dispatches one argument-position node: a Literal yields its value
// directly, a Call is evaluated per spec section 4.4. nextIP is the
// instruction index that would run after the top-level item currently
// executing; it is threaded unchanged through every nested eval so that an
// `f:` anywhere inside this call tree pushes the right resume address.
func (m *Machine) eval(node parser.Node, nextIP int) (value.Value, *Signal) {
	switch n := node.(type) {
	case *parser.Literal:
		return n.Value, nil
	case *parser.Call:
		return m.evalCall(n, nextIP)
	default:
		panic(fmt.Sprintf("vm: unhandled node type %T", node))
	}
}

// evalCall handles the six control-flow operators directly (their argument
// evaluation is not the uniform "evaluate everything eagerly, left to
// right" rule) and otherwise evaluates every argument eagerly before
// dispatching to the strict operator table in package ops.
func (m *Machine) evalCall(call *parser.Call, nextIP int) (value.Value, *Signal) {
	switch call.Op {
	case lexer.IF:
		return m.evalIf(call, nextIP)
	case lexer.JUMP:
		return m.evalJump(call, nextIP)
	case lexer.FUNCTION:
		return m.evalFunction(call, nextIP)
	case lexer.CATCH:
		return m.evalCatch(call, nextIP)
	case lexer.RETURN:
		return m.evalReturn(call, nextIP)
	case lexer.EXIT:
		return value.None{}, &Signal{Kind: sigExit}
	}

	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		v, sig := m.eval(a, nextIP)
		if sig != nil {
			return nil, sig
		}
		args[i] = v
	}

	fn, ok := ops.Table[call.Op]
	if !ok {
		return nil, &Signal{Kind: sigError, Err: micronerr.New(micronerr.Error, "no operator registered for %s", call.Op)}
	}
	v, merr := fn(m, args)
	if merr != nil {
		return nil, &Signal{Kind: sigError, Err: merr}
	}
	return v, nil
}

// evalIf implements `?:` (If): evaluate the condition; if truthy, evaluate
// and yield the body; otherwise the body is never evaluated and the
// expression yields None (spec section 4.4).
func (m *Machine) evalIf(call *parser.Call, nextIP int) (value.Value, *Signal) {
	cond, sig := m.eval(call.Args[0], nextIP)
	if sig != nil {
		return nil, sig
	}
	if !cond.Truthy() {
		return value.None{}, nil
	}
	return m.eval(call.Args[1], nextIP)
}

// evalJump implements `j:` (Jump): resolve the label and abort the
// enclosing call tree, resuming execution there (spec section 4.4).
func (m *Machine) evalJump(call *parser.Call, nextIP int) (value.Value, *Signal) {
	v, sig := m.eval(call.Args[0], nextIP)
	if sig != nil {
		return nil, sig
	}
	label, ok := v.(value.Str)
	if !ok {
		return nil, errSignal(micronerr.TypeError, "j: label must be Str, got %s", v.Type())
	}
	target, ok := m.Labels[string(label)]
	if !ok {
		return nil, errSignal(micronerr.LabelError, "j: unknown label %q", string(label))
	}
	return nil, &Signal{Kind: sigJump, TargetIP: target}
}

// evalFunction implements `f:` (Function): push a return address, jump to
// the label, and drive the program from there until the matching `r:`
// pops this frame (yielding its value) or the program ends (yielding
// None) — spec section 4.4 and the design notes on nonlocal exits. Unlike
// `j:`, a plain `f:` call does not abort its enclosing call tree: it runs
// to completion synchronously and hands back an ordinary value.
func (m *Machine) evalFunction(call *parser.Call, nextIP int) (value.Value, *Signal) {
	v, sig := m.eval(call.Args[0], nextIP)
	if sig != nil {
		return nil, sig
	}
	label, ok := v.(value.Str)
	if !ok {
		return nil, errSignal(micronerr.TypeError, "f: label must be Str, got %s", v.Type())
	}
	target, ok := m.Labels[string(label)]
	if !ok {
		return nil, errSignal(micronerr.LabelError, "f: unknown label %q", string(label))
	}

	depthBefore := len(m.CallStack)
	m.CallStack = append(m.CallStack, nextIP)
	m.ip = target

	result, sig2 := m.runUntil(depthBefore, true)
	if sig2 != nil {
		// An uncaught error, or the program ending entirely, escapes this
		// call and everything above it.
		return nil, sig2
	}
	return result, nil
}

// evalReturn implements `r:` (Return): evaluate the argument eagerly, then
// abort up to the nearest enclosing `f:` invocation, which yields this
// value as its own result (spec section 4.4).
func (m *Machine) evalReturn(call *parser.Call, nextIP int) (value.Value, *Signal) {
	v, sig := m.eval(call.Args[0], nextIP)
	if sig != nil {
		return nil, sig
	}
	return nil, &Signal{Kind: sigReturn, Value: v}
}

// evalCatch implements `#:` (Catch): establish a catch frame, evaluate the
// body, and on error unwind the call stack to the depth recorded when the
// frame was pushed, write the error code to slot -1, and jump to the
// catch label — aborting the enclosing call tree exactly as `j:` does
// (spec section 4.4 and 4.5). Any other signal (jump/return/exit) from the
// body passes through untouched; the frame is always retired on the way
// out, whatever the outcome.
func (m *Machine) evalCatch(call *parser.Call, nextIP int) (value.Value, *Signal) {
	v, sig := m.eval(call.Args[0], nextIP)
	if sig != nil {
		return nil, sig
	}
	label, ok := v.(value.Str)
	if !ok {
		return nil, errSignal(micronerr.TypeError, "#: label must be Str, got %s", v.Type())
	}
	target, ok := m.Labels[string(label)]
	if !ok {
		return nil, errSignal(micronerr.LabelError, "#: unknown label %q", string(label))
	}

	frame := catchFrame{Label: string(label), SavedIP: m.ip, SavedCallDepth: len(m.CallStack)}
	m.CatchStack = append(m.CatchStack, frame)
	defer func() { m.CatchStack = m.CatchStack[:len(m.CatchStack)-1] }()

	bodyVal, bodySig := m.eval(call.Args[1], nextIP)
	if bodySig == nil {
		return bodyVal, nil
	}
	if bodySig.Kind != sigError {
		return nil, bodySig
	}

	m.CallStack = m.CallStack[:frame.SavedCallDepth]
	m.store.Set(slots.ErrorSlot, value.Int(int(bodySig.Err.Code)))
	return nil, &Signal{Kind: sigJump, TargetIP: target}
}

func errSignal(code micronerr.Code, format string, a ...interface{}) *Signal {
	return &Signal{Kind: sigError, Err: micronerr.New(code, format, a...)}
}
