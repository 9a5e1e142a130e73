/*
File    : micron/micronerr/micronerr.go
Author  : Micron contributors

Package micronerr implements the five-member catchable error taxonomy of
spec section 7. It is adapted from the teacher's std.Error{Message string}
(std/builtins.go's error-as-value idiom), extended with the numeric Code
that spec.md requires to be observable from inside a Micron program via
slot -1.
*/
package micronerr

import "fmt"

// Code is one of the five catchable error kinds, numbered as spec.md's
// error-code table (section 6) fixes them.
type Code int

const (
	Error       Code = 400 // ambiguous / user-thrown via !:
	TypeError   Code = 401
	LabelError  Code = 402
	ValueError  Code = 403
	NoSlotError Code = 404
)

func (c Code) String() string {
	switch c {
	case Error:
		return "Error"
	case TypeError:
		return "TypeError"
	case LabelError:
		return "LabelError"
	case ValueError:
		return "ValueError"
	case NoSlotError:
		return "NoSlotError"
	default:
		return fmt.Sprintf("UnknownError(%d)", int(c))
	}
}

// MicronError is a raised Micron-level error: a numeric Code (the only
// part observable from inside the language, via slot -1) plus a human
// message kept for diagnostics only.
type MicronError struct {
	Code    Code
	Message string
}

func (e *MicronError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, int(e.Code), e.Message)
}

// New constructs a MicronError with a formatted message.
func New(code Code, format string, a ...interface{}) *MicronError {
	return &MicronError{Code: code, Message: fmt.Sprintf(format, a...)}
}
