package builtin

import (
	"math"
	"strings"

	"github.com/dshills/jqrt/pkg/failure"
	"github.com/dshills/jqrt/pkg/mathop"
	"github.com/dshills/jqrt/pkg/value"
)

// maxRepeat bounds the size of a string produced by string * number.
const maxRepeat = 1 << 28

// Arith combines l and r with op using jq's operator semantics.
func Arith(l value.Value, op mathop.Op, r value.Value) (value.Value, error) {
	var (
		out value.Value
		ok  bool
	)
	switch op {
	case mathop.Add:
		out, ok = add(l, r)
	case mathop.Sub:
		out, ok = sub(l, r)
	case mathop.Mul:
		out, ok = mul(l, r)
	case mathop.Div:
		out, ok = div(l, r)
	case mathop.Rem:
		out, ok = rem(l, r)
	}
	if !ok {
		return value.Null(), failure.MathOp{Left: l, Right: r, Op: op}
	}
	return out, nil
}

// Neg negates a number.
func Neg(v value.Value) (value.Value, error) {
	n, ok := v.AsNumber()
	if !ok {
		return value.Null(), failure.Neg{Value: v}
	}
	return value.Number(-n), nil
}

func add(l, r value.Value) (value.Value, bool) {
	if l.IsNull() {
		return r, true
	}
	if r.IsNull() {
		return l, true
	}
	if l.Kind() != r.Kind() {
		return value.Value{}, false
	}

	switch l.Kind() {
	case value.KindNumber:
		a, _ := l.AsNumber()
		b, _ := r.AsNumber()
		return value.Number(a + b), true
	case value.KindString:
		a, _ := l.AsString()
		b, _ := r.AsString()
		return value.String(a + b), true
	case value.KindArray:
		a, _ := l.AsArray()
		b, _ := r.AsArray()
		return value.Array(append(a, b...)...), true
	case value.KindObject:
		a, _ := l.Members()
		b, _ := r.Members()
		return value.Object(append(a, b...)...), true
	}
	return value.Value{}, false
}

func sub(l, r value.Value) (value.Value, bool) {
	if l.Kind() != r.Kind() {
		return value.Value{}, false
	}

	switch l.Kind() {
	case value.KindNumber:
		a, _ := l.AsNumber()
		b, _ := r.AsNumber()
		return value.Number(a - b), true
	case value.KindArray:
		a, _ := l.AsArray()
		b, _ := r.AsArray()
		kept := a[:0]
		for _, e := range a {
			if !containsValue(b, e) {
				kept = append(kept, e)
			}
		}
		return value.Array(kept...), true
	}
	return value.Value{}, false
}

func mul(l, r value.Value) (value.Value, bool) {
	switch {
	case l.Kind() == value.KindNumber && r.Kind() == value.KindNumber:
		a, _ := l.AsNumber()
		b, _ := r.AsNumber()
		return value.Number(a * b), true
	case l.Kind() == value.KindString && r.Kind() == value.KindNumber:
		return repeat(l, r)
	case l.Kind() == value.KindNumber && r.Kind() == value.KindString:
		return repeat(r, l)
	case l.Kind() == value.KindObject && r.Kind() == value.KindObject:
		return deepMerge(l, r), true
	}
	return value.Value{}, false
}

// repeat follows jq: a count below one yields null and a fractional count
// is truncated. Results longer than maxRepeat bytes are refused.
func repeat(s, count value.Value) (value.Value, bool) {
	str, _ := s.AsString()
	n, _ := count.AsNumber()
	if math.IsNaN(n) || n < 1 {
		return value.Null(), true
	}
	if str == "" {
		return value.String(""), true
	}
	// n is checked on its own first so int(n) below cannot overflow.
	if n > maxRepeat || n*float64(len(str)) > maxRepeat {
		return value.Value{}, false
	}
	return value.String(strings.Repeat(str, int(n))), true
}

func deepMerge(l, r value.Value) value.Value {
	merged, _ := l.Members()
	pos := make(map[string]int, len(merged))
	for i, m := range merged {
		pos[m.Key] = i
	}

	extra, _ := r.Members()
	for _, m := range extra {
		i, exists := pos[m.Key]
		if !exists {
			pos[m.Key] = len(merged)
			merged = append(merged, m)
			continue
		}
		prev := merged[i].Value
		if prev.Kind() == value.KindObject && m.Value.Kind() == value.KindObject {
			merged[i].Value = deepMerge(prev, m.Value)
		} else {
			merged[i].Value = m.Value
		}
	}
	return value.Object(merged...)
}

func div(l, r value.Value) (value.Value, bool) {
	if l.Kind() != r.Kind() {
		return value.Value{}, false
	}

	switch l.Kind() {
	case value.KindNumber:
		a, _ := l.AsNumber()
		b, _ := r.AsNumber()
		if b == 0 {
			return value.Value{}, false
		}
		return value.Number(a / b), true
	case value.KindString:
		return splitStrings(l, r), true
	}
	return value.Value{}, false
}

func rem(l, r value.Value) (value.Value, bool) {
	a, aok := truncInt(l)
	b, bok := truncInt(r)
	if !aok || !bok || b == 0 {
		return value.Value{}, false
	}
	if b == -1 {
		// MinInt % -1 overflows on some platforms.
		return value.Int(0), true
	}
	return value.Int(a % b), true
}

// truncInt truncates a finite number toward zero.
func truncInt(v value.Value) (int, bool) {
	n, ok := v.AsNumber()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	t := math.Trunc(n)
	if t < math.MinInt || t >= math.MaxInt {
		return 0, false
	}
	return int(t), true
}

func containsValue(haystack []value.Value, needle value.Value) bool {
	for _, h := range haystack {
		if value.Equal(h, needle) {
			return true
		}
	}
	return false
}
