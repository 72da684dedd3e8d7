package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedType is returned by FromGo for Go values with no JSON shape.
var ErrUnsupportedType = errors.New("unsupported type")

// FromGo converts decoded Go data (as produced by encoding/json or yaml.v3)
// into a Value. Map keys are sorted so the result is deterministic.
func FromGo(v interface{}) (Value, error) {
	if v == nil {
		return Null(), nil
	}

	switch val := v.(type) {
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Number(float64(val)), nil
	case int16:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint:
		return Number(float64(val)), nil
	case uint8:
		return Number(float64(val)), nil
	case uint16:
		return Number(float64(val)), nil
	case uint32:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case float32:
		return Number(float64(val)), nil
	case float64:
		return Number(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("cannot convert json.Number %q: %w", val.String(), err)
		}
		return Number(f), nil
	case []interface{}:
		elems := make([]Value, len(val))
		for i, e := range val {
			ev, err := FromGo(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = ev
		}
		return Value{kind: KindArray, a: elems}, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		members := make([]Member, len(keys))
		for i, k := range keys {
			mv, err := FromGo(val[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Member{Key: k, Value: mv}
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// ToGo converts v into plain Go data: nil, bool, float64, string,
// []interface{} and map[string]interface{}.
func ToGo(v Value) interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.a))
		for i, e := range v.a {
			out[i] = ToGo(e)
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.o.keys))
		for k, e := range v.o.vals {
			out[k] = ToGo(e)
		}
		return out
	default:
		return nil
	}
}
