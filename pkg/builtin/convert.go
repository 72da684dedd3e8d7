package builtin

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/dshills/jqrt/pkg/failure"
	"github.com/dshills/jqrt/pkg/value"
)

// Round rounds a number half away from zero.
func Round(v value.Value) (value.Value, error) { return rounding(v, math.Round) }

// Floor rounds a number down.
func Floor(v value.Value) (value.Value, error) { return rounding(v, math.Floor) }

// Ceil rounds a number up.
func Ceil(v value.Value) (value.Value, error) { return rounding(v, math.Ceil) }

func rounding(v value.Value, fn func(float64) float64) (value.Value, error) {
	n, ok := v.AsNumber()
	if !ok {
		return value.Null(), failure.Round{Value: v}
	}
	return value.Number(fn(n)), nil
}

// ToNumber returns numbers unchanged and parses strings holding a JSON
// number literal.
func ToNumber(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindNumber:
		return v, nil
	case value.KindString:
		s, _ := v.AsString()
		parsed, err := value.ParseJSON(s)
		if err == nil && parsed.Kind() == value.KindNumber {
			return parsed, nil
		}
	}
	return value.Null(), failure.ToNumber{Value: v}
}

// FromJSON parses the JSON document held by a string.
func FromJSON(v value.Value) (value.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return value.Null(), failure.FromJSON{Value: v}
	}

	parsed, err := value.ParseJSON(s)
	if err != nil {
		var syn *value.SyntaxError
		if errors.As(err, &syn) && syn.Detail != "" {
			return value.Null(), failure.FromJSONWithDetail(v, syn.Detail)
		}
		return value.Null(), failure.FromJSON{Value: v}
	}
	return parsed, nil
}

// ToJSON renders v as a JSON string. It cannot fail.
func ToJSON(v value.Value) (value.Value, error) {
	return value.String(v.String()), nil
}

// Sort orders the elements of an array with value.Compare.
func Sort(v value.Value) (value.Value, error) {
	elems, ok := v.AsArray()
	if !ok {
		return value.Null(), failure.Sort{Value: v}
	}
	sort.SliceStable(elems, func(i, j int) bool {
		return value.Compare(elems[i], elems[j]) < 0
	})
	return value.Array(elems...), nil
}

// Split divides a string on every occurrence of sep.
func Split(s, sep value.Value) (value.Value, error) {
	if s.Kind() != value.KindString || sep.Kind() != value.KindString {
		return value.Null(), failure.Split{}
	}
	return splitStrings(s, sep), nil
}

// splitStrings expects two string values. An empty input yields an empty
// array and an empty separator splits into code points.
func splitStrings(s, sep value.Value) value.Value {
	str, _ := s.AsString()
	delim, _ := sep.AsString()
	if str == "" {
		return value.Array()
	}

	parts := strings.Split(str, delim)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return value.Array(out...)
}

// ObjectKey checks that v can be used as an object key.
func ObjectKey(v value.Value) (value.Value, error) {
	if v.Kind() != value.KindString {
		return value.Null(), failure.ObjKey{Value: v}
	}
	return v, nil
}

// Object builds an object from parallel key and value slices. The first
// key that is not a string fails the construction.
func Object(keys, vals []value.Value) (value.Value, error) {
	members := make([]value.Member, 0, len(keys))
	for i, k := range keys {
		if _, err := ObjectKey(k); err != nil {
			return value.Null(), err
		}
		s, _ := k.AsString()
		var v value.Value
		if i < len(vals) {
			v = vals[i]
		}
		members = append(members, value.Member{Key: s, Value: v})
	}
	return value.Object(members...), nil
}

// ToIsize checks that v is an integral number that fits a signed int.
func ToIsize(v value.Value) (value.Value, error) {
	i, ok := v.AsInt()
	if !ok {
		return value.Null(), failure.Isize{Value: v}
	}
	return value.Int(i), nil
}

// ToUsize checks that v is a non-negative integral number that fits an int.
func ToUsize(v value.Value) (value.Value, error) {
	i, ok := v.AsInt()
	if !ok || i < 0 {
		return value.Null(), failure.Usize{Value: v}
	}
	return value.Int(i), nil
}

// Error always fails with a Custom failure. Strings become the reason
// verbatim; other values contribute their JSON text.
func Error(v value.Value) (value.Value, error) {
	if s, ok := v.AsString(); ok {
		return value.Null(), failure.Custom{Reason: s}
	}
	return value.Null(), failure.Custom{Reason: v.String()}
}
