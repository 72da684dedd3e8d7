// Package value implements the runtime values of the filter language:
// null, booleans, numbers, strings, arrays and objects.
//
// Values are immutable. Constructors copy the slices they are given and
// accessors hand out copies, so a Value can be shared freely between
// goroutines once built.
package value

import "math"

// Kind identifies which of the six JSON shapes a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the jq type name of the kind ("null", "boolean", ...).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a single runtime datum. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []Value
	o    *object
}

// Member is one key/value pair of an object, in insertion order.
type Member struct {
	Key   string
	Value Value
}

type object struct {
	keys []string
	vals map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int returns a numeric value holding an integer.
func Int(i int) Value { return Value{kind: KindNumber, n: float64(i)} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding a copy of elems.
func Array(elems ...Value) Value {
	a := make([]Value, len(elems))
	copy(a, elems)
	return Value{kind: KindArray, a: a}
}

// Object returns an object built from members. A repeated key keeps the
// position of its first occurrence and the value of its last.
func Object(members ...Member) Value {
	o := &object{
		keys: make([]string, 0, len(members)),
		vals: make(map[string]Value, len(members)),
	}
	for _, m := range members {
		if _, ok := o.vals[m.Key]; !ok {
			o.keys = append(o.keys, m.Key)
		}
		o.vals[m.Key] = m.Value
	}
	return Value{kind: KindObject, o: o}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsInt returns the number held by v when it is integral and fits an int.
func (v Value) AsInt() (int, bool) {
	if v.kind != KindNumber || v.n != math.Trunc(v.n) {
		return 0, false
	}
	if v.n < math.MinInt || v.n >= math.MaxInt {
		return 0, false
	}
	return int(v.n), true
}

// AsArray returns a copy of the elements of an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	a := make([]Value, len(v.a))
	copy(a, v.a)
	return a, true
}

// Members returns the members of an object in insertion order.
func (v Value) Members() ([]Member, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	ms := make([]Member, len(v.o.keys))
	for i, k := range v.o.keys {
		ms[i] = Member{Key: k, Value: v.o.vals[k]}
	}
	return ms, true
}

// Get looks up key in an object. It reports false for missing keys and
// for values that are not objects.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.o.vals[key]
	return val, ok
}

// Len returns the number of elements of an array, members of an object or
// bytes of a string. Other kinds have length zero.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindObject:
		return len(v.o.keys)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// Truthy reports jq truthiness: everything except null and false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}
