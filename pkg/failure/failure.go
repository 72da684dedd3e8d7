// Package failure classifies every way a filter can fail at runtime.
//
// Each failure category is its own struct type carrying exactly the values
// needed to explain it. All of them implement the sealed Failure interface,
// so the set of categories is closed: a type outside this package cannot be
// a Failure, and every category must provide its own message through
// String, which makes a category without a message a compile error.
//
// Failures are built at the moment a fault is detected, returned as the
// error of the operation and never modified afterwards:
//
//	if _, ok := v.AsArray(); !ok {
//	    return value.Null(), failure.Sort{Value: v}
//	}
//
// Rendering is total and depends only on the failure itself.
package failure

import (
	"math"

	"github.com/dshills/jqrt/pkg/mathop"
	"github.com/dshills/jqrt/pkg/value"
)

// Failure is one runtime fault of filter evaluation.
type Failure interface {
	// Kind names the category of the failure.
	Kind() Kind
	// String renders the failure as a human-readable message.
	String() string

	isFailure()
}

// Custom is an evaluator-defined assertion with its own reason text.
type Custom struct {
	Reason string
}

// ObjKey reports a value that cannot be used as an object key.
type ObjKey struct {
	Value value.Value
}

// Length reports a value that has no length.
type Length struct {
	Value value.Value
}

// Round reports a value that cannot be rounded.
type Round struct {
	Value value.Value
}

// FromJSON reports a value whose text could not be parsed as JSON.
// Detail is only meaningful when HasDetail is set.
type FromJSON struct {
	Value     value.Value
	Detail    string
	HasDetail bool
}

// ToNumber reports a value that could not be parsed as a number.
type ToNumber struct {
	Value value.Value
}

// Sort reports a value that is not an array and so cannot be sorted.
type Sort struct {
	Value value.Value
}

// Has reports a value/key pair for which membership is undefined.
type Has struct {
	Value value.Value
	Key   value.Value
}

// Split reports a split whose input or separator is not a string.
type Split struct{}

// Keys reports a value without enumerable keys.
type Keys struct {
	Value value.Value
}

// Iter reports a value that cannot be iterated.
type Iter struct {
	Value value.Value
}

// Neg reports a value that cannot be negated.
type Neg struct {
	Value value.Value
}

// MathOp reports two values that cannot be combined with Op.
type MathOp struct {
	Left  value.Value
	Right value.Value
	Op    mathop.Op
}

// Index reports a value that cannot be indexed at all.
type Index struct {
	Value value.Value
}

// IndexWith reports a value that cannot be indexed with this index.
type IndexWith struct {
	Value value.Value
	Index value.Value
}

// IndexOutOfBounds reports an index outside the addressable range.
// The sign lives in NonNegative so it can never disagree with Magnitude:
// NonNegative false means the index was -Magnitude.
type IndexOutOfBounds struct {
	Magnitude   uint
	NonNegative bool
}

// Isize reports a value that cannot be used as a signed integer.
type Isize struct {
	Value value.Value
}

// Usize reports a value that cannot be used as an unsigned integer.
type Usize struct {
	Value value.Value
}

// SliceAssign reports a non-array value assigned to an array slice.
type SliceAssign struct {
	Value value.Value
}

// FromJSONWithDetail returns a FromJSON failure carrying the parser's reason.
func FromJSONWithDetail(v value.Value, detail string) FromJSON {
	return FromJSON{Value: v, Detail: detail, HasDetail: true}
}

// OutOfBounds builds an IndexOutOfBounds failure from a signed index.
func OutOfBounds(i int) IndexOutOfBounds {
	if i >= 0 {
		return IndexOutOfBounds{Magnitude: uint(i), NonNegative: true}
	}
	if i == math.MinInt {
		return IndexOutOfBounds{Magnitude: uint(math.MaxInt) + 1}
	}
	return IndexOutOfBounds{Magnitude: uint(-i)}
}

// Render returns the message of f. A nil Failure renders as a placeholder.
func Render(f Failure) string {
	if f == nil {
		return "<nil failure>"
	}
	return f.String()
}

func (Custom) isFailure()           {}
func (ObjKey) isFailure()           {}
func (Length) isFailure()           {}
func (Round) isFailure()            {}
func (FromJSON) isFailure()         {}
func (ToNumber) isFailure()         {}
func (Sort) isFailure()             {}
func (Has) isFailure()              {}
func (Split) isFailure()            {}
func (Keys) isFailure()             {}
func (Iter) isFailure()             {}
func (Neg) isFailure()              {}
func (MathOp) isFailure()           {}
func (Index) isFailure()            {}
func (IndexWith) isFailure()        {}
func (IndexOutOfBounds) isFailure() {}
func (Isize) isFailure()            {}
func (Usize) isFailure()            {}
func (SliceAssign) isFailure()      {}
