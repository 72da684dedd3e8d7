package value

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxExact is the magnitude below which every integral float64 prints as
// an integer without losing digits.
const maxExact = 1e17

// String renders v as compact JSON. It is total: numbers that JSON cannot
// represent print the way jq prints them (NaN as null, infinities as the
// largest finite double).
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(formatNumber(v.n))
	case KindString:
		sb.WriteString(quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.a {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.o.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(k))
			sb.WriteByte(':')
			v.o.vals[k].write(sb)
		}
		sb.WriteByte('}')
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "null"
	case math.IsInf(n, 1):
		return strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)
	case math.IsInf(n, -1):
		return strconv.FormatFloat(-math.MaxFloat64, 'g', -1, 64)
	case n == 0 && math.Signbit(n):
		return "-0"
	case n == math.Trunc(n) && math.Abs(n) < maxExact:
		return strconv.FormatInt(int64(n), 10)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// quote escapes s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
