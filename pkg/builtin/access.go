package builtin

import (
	"math"
	"unicode/utf8"

	"github.com/dshills/jqrt/pkg/failure"
	"github.com/dshills/jqrt/pkg/value"
)

// MaxArrayIndex is the largest index an assignment may pad an array to.
const MaxArrayIndex = 1<<29 - 1

// Length returns the length of v: zero for null, the absolute value of a
// number, the code point count of a string and the size of a collection.
func Length(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindNull:
		return value.Int(0), nil
	case value.KindNumber:
		n, _ := v.AsNumber()
		return value.Number(math.Abs(n)), nil
	case value.KindString:
		s, _ := v.AsString()
		return value.Int(utf8.RuneCountInString(s)), nil
	case value.KindArray, value.KindObject:
		return value.Int(v.Len()), nil
	default:
		return value.Null(), failure.Length{Value: v}
	}
}

// Keys returns the sorted keys of an object or the indices of an array.
func Keys(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindObject:
		keys := v.SortedKeys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.String(k)
		}
		return value.Array(out...), nil
	case value.KindArray:
		out := make([]value.Value, v.Len())
		for i := range out {
			out[i] = value.Int(i)
		}
		return value.Array(out...), nil
	default:
		return value.Null(), failure.Keys{Value: v}
	}
}

// Has reports whether an object has a string key or an array has an
// element at a numeric index.
func Has(v, key value.Value) (value.Value, error) {
	switch {
	case v.Kind() == value.KindObject && key.Kind() == value.KindString:
		k, _ := key.AsString()
		_, ok := v.Get(k)
		return value.Bool(ok), nil
	case v.Kind() == value.KindArray && key.Kind() == value.KindNumber:
		n, _ := key.AsNumber()
		return value.Bool(n >= 0 && n < float64(v.Len())), nil
	default:
		return value.Null(), failure.Has{Value: v, Key: key}
	}
}

// Index evaluates v[idx]. Missing keys and out-of-range positions yield
// null; negative array positions count from the end.
func Index(v, idx value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindNull:
		switch idx.Kind() {
		case value.KindNull, value.KindString, value.KindNumber:
			return value.Null(), nil
		}
	case value.KindObject:
		if k, ok := idx.AsString(); ok {
			got, _ := v.Get(k)
			return got, nil
		}
	case value.KindArray:
		if n, ok := idx.AsNumber(); ok {
			elems, _ := v.AsArray()
			i, inRange := position(n, len(elems))
			if !inRange {
				return value.Null(), nil
			}
			return elems[i], nil
		}
	default:
		return value.Null(), failure.Index{Value: v}
	}
	return value.Null(), failure.IndexWith{Value: v, Index: idx}
}

// Slice evaluates v[from:to] on arrays and strings. Null bounds leave that
// end open. Strings are sliced by code point.
func Slice(v, from, to value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindNull:
		return value.Null(), nil
	case value.KindArray, value.KindString:
	default:
		return value.Null(), failure.Index{Value: v}
	}

	if v.Kind() == value.KindArray {
		elems, _ := v.AsArray()
		lo, hi, err := bounds(v, from, to, len(elems))
		if err != nil {
			return value.Null(), err
		}
		return value.Array(elems[lo:hi]...), nil
	}

	s, _ := v.AsString()
	runes := []rune(s)
	lo, hi, err := bounds(v, from, to, len(runes))
	if err != nil {
		return value.Null(), err
	}
	return value.String(string(runes[lo:hi])), nil
}

// SetIndex returns a copy of arr with position idx set to x. Null is
// treated as an empty array; objects accept string keys. Writing past the
// end pads with null.
func SetIndex(arr, idx, x value.Value) (value.Value, error) {
	switch arr.Kind() {
	case value.KindObject:
		k, ok := idx.AsString()
		if !ok {
			return value.Null(), failure.IndexWith{Value: arr, Index: idx}
		}
		members, _ := arr.Members()
		return value.Object(append(members, value.Member{Key: k, Value: x})...), nil
	case value.KindNull, value.KindArray:
	default:
		return value.Null(), failure.Index{Value: arr}
	}

	if idx.Kind() != value.KindNumber {
		return value.Null(), failure.IndexWith{Value: arr, Index: idx}
	}
	i, ok := idx.AsInt()
	if !ok {
		return value.Null(), failure.Isize{Value: idx}
	}

	elems, _ := arr.AsArray()
	pos := i
	if i < 0 {
		pos = len(elems) + i
		if pos < 0 {
			return value.Null(), failure.OutOfBounds(i)
		}
	}
	if pos > MaxArrayIndex {
		return value.Null(), failure.OutOfBounds(i)
	}

	for len(elems) <= pos {
		elems = append(elems, value.Null())
	}
	elems[pos] = x
	return value.Array(elems...), nil
}

// SetSlice returns a copy of arr with arr[from:to] replaced by the
// elements of x, which must be an array.
func SetSlice(arr, from, to, x value.Value) (value.Value, error) {
	switch arr.Kind() {
	case value.KindNull, value.KindArray:
	default:
		return value.Null(), failure.Index{Value: arr}
	}

	elems, _ := arr.AsArray()
	lo, hi, err := bounds(arr, from, to, len(elems))
	if err != nil {
		return value.Null(), err
	}

	repl, ok := x.AsArray()
	if !ok {
		return value.Null(), failure.SliceAssign{Value: x}
	}

	out := make([]value.Value, 0, len(elems)-(hi-lo)+len(repl))
	out = append(out, elems[:lo]...)
	out = append(out, repl...)
	out = append(out, elems[hi:]...)
	return value.Array(out...), nil
}

// Iter returns the elements of an array or the values of an object.
func Iter(v value.Value) ([]value.Value, error) {
	switch v.Kind() {
	case value.KindArray:
		elems, _ := v.AsArray()
		return elems, nil
	case value.KindObject:
		members, _ := v.Members()
		out := make([]value.Value, len(members))
		for i, m := range members {
			out[i] = m.Value
		}
		return out, nil
	default:
		return nil, failure.Iter{Value: v}
	}
}

// position resolves a possibly negative, possibly fractional array index.
func position(n float64, length int) (int, bool) {
	if math.IsNaN(n) {
		return 0, false
	}
	f := math.Floor(n)
	if f < 0 {
		f += float64(length)
	}
	if f < 0 || f >= float64(length) {
		return 0, false
	}
	return int(f), true
}

// bounds resolves slice bounds against length, clamping to [0, length].
// The start is floored and the end is ceiled, as jq does.
func bounds(v, from, to value.Value, length int) (int, int, error) {
	lo, err := bound(v, from, 0, length, math.Floor)
	if err != nil {
		return 0, 0, err
	}
	hi, err := bound(v, to, length, length, math.Ceil)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi, nil
}

func bound(v, b value.Value, open, length int, round func(float64) float64) (int, error) {
	if b.IsNull() {
		return open, nil
	}
	n, ok := b.AsNumber()
	if !ok || math.IsNaN(n) {
		return 0, failure.IndexWith{Value: v, Index: b}
	}
	f := round(n)
	if f < 0 {
		f += float64(length)
	}
	switch {
	case f < 0:
		return 0, nil
	case f > float64(length):
		return length, nil
	default:
		return int(f), nil
	}
}
