package value

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is matched by every *SyntaxError.
var ErrInvalidJSON = errors.New("invalid JSON")

// SyntaxError reports text that is not a single JSON document.
// Detail carries the decoder's explanation when one is available.
type SyntaxError struct {
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return ErrInvalidJSON.Error()
	}
	return ErrInvalidJSON.Error() + ": " + e.Detail
}

// Is makes errors.Is(err, ErrInvalidJSON) hold for syntax errors.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidJSON
}

// ParseJSON parses text holding exactly one JSON document. Object key
// order is preserved.
func ParseJSON(text string) (Value, error) {
	if !gjson.Valid(text) {
		return Value{}, &SyntaxError{Detail: syntaxDetail(text)}
	}
	return fromResult(gjson.Parse(text)), nil
}

// MustParseJSON is like ParseJSON but panics on invalid input.
// Intended for literals in tests and tables.
func MustParseJSON(text string) Value {
	v, err := ParseJSON(text)
	if err != nil {
		panic(err)
	}
	return v
}

// syntaxDetail asks the standard decoder why text was rejected. gjson only
// reports validity; an empty detail means the decoder had no complaint.
func syntaxDetail(text string) string {
	var scratch interface{}
	if err := json.Unmarshal([]byte(text), &scratch); err != nil {
		return err.Error()
	}
	return ""
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []Value
			r.ForEach(func(_, elem gjson.Result) bool {
				elems = append(elems, fromResult(elem))
				return true
			})
			return Value{kind: KindArray, a: elems}
		}
		var members []Member
		r.ForEach(func(key, val gjson.Result) bool {
			members = append(members, Member{Key: key.Str, Value: fromResult(val)})
			return true
		})
		return Object(members...)
	default:
		return Null()
	}
}
