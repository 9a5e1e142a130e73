/*
File    : micron/value/value.go
Author  : Micron contributors

Package value defines Micron's three-member value model (spec section 3):
Int, Str, and None. It is adapted from the teacher's objects.GoMixObject
family (objects/objects.go) but trimmed to exactly the types spec.md names
— Micron has no floats, booleans, arrays, maps, or user structs.
*/
package value

import "fmt"

// Type identifies which of the three Micron value kinds a Value holds.
type Type string

const (
	IntType  Type = "Int"
	StrType  Type = "Str"
	NoneType Type = "None"
)

// Value is implemented by Int, Str, and None.
type Value interface {
	Type() Type
	// String renders the value the way `p:`/`w:` print it (spec section 6):
	// Int as decimal, Str as-is, None as the literal text "None".
	String() string
	// Truthy implements the falsy/truthy rule of spec section 4.4.
	Truthy() bool
}

// Int is a signed integer value, native machine width per spec section 3.
type Int int

func (Int) Type() Type       { return IntType }
func (i Int) String() string { return fmt.Sprintf("%d", int(i)) }
func (i Int) Truthy() bool   { return i != 0 }

// Str is Unicode text, indexed in code points (spec section 3).
type Str string

func (Str) Type() Type       { return StrType }
func (s Str) String() string { return string(s) }
func (s Str) Truthy() bool   { return len(s) > 0 }

// None is the uninhabited sentinel: always falsy, never equal to anything.
type None struct{}

func (None) Type() Type     { return NoneType }
func (None) String() string { return "None" }
func (None) Truthy() bool   { return false }

// Equal implements the `=:` operator's same-type equality rule (spec
// section 4.4's operator table): equal only for two Ints or two Strs with
// equal content. Comparisons involving None, or between different types,
// are not handled here — callers raise TypeError for those, since Equal
// itself has no error channel.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	default:
		return false
	}
}
