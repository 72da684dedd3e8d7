package value

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "null"},
		{"zero value", Value{}, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Int(42), "42"},
		{"negative integer", Number(-7), "-7"},
		{"zero", Number(0), "0"},
		{"negative zero", Number(math.Copysign(0, -1)), "-0"},
		{"fraction", Number(1.5), "1.5"},
		{"large", Number(1e100), "1e+100"},
		{"nan", Number(math.NaN()), "null"},
		{"inf", Number(math.Inf(1)), "1.7976931348623157e+308"},
		{"negative inf", Number(math.Inf(-1)), "-1.7976931348623157e+308"},
		{"string", String("hi"), `"hi"`},
		{"escapes", String("a\"b\n"), `"a\"b\n"`},
		{"no html escaping", String("<&>"), `"<&>"`},
		{"empty array", Array(), "[]"},
		{"array", Array(Int(1), String("a"), Null()), `[1,"a",null]`},
		{"empty object", Object(), "{}"},
		{"object keeps order", Object(Member{"b", Int(1)}, Member{"a", Int(2)}), `{"b":1,"a":2}`},
		{"nested", Object(Member{"a", Array(Object(Member{"x", Bool(true)}))}), `{"a":[{"x":true}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestObjectDuplicateKeys(t *testing.T) {
	v := Object(Member{"a", Int(1)}, Member{"b", Int(2)}, Member{"a", Int(3)})
	assert.Equal(t, `{"a":3,"b":2}`, v.String())
	assert.Equal(t, 2, v.Len())
}

func TestImmutability(t *testing.T) {
	elems := []Value{Int(1), Int(2)}
	arr := Array(elems...)
	elems[0] = Int(99)
	assert.Equal(t, "[1,2]", arr.String())

	got, ok := arr.AsArray()
	require.True(t, ok)
	got[1] = Int(99)
	assert.Equal(t, "[1,2]", arr.String())
}

func TestAccessors(t *testing.T) {
	n, ok := Number(2.5).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 2.5, n)

	_, ok = String("x").AsNumber()
	assert.False(t, ok)

	i, ok := Number(3).AsInt()
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = Number(3.5).AsInt()
	assert.False(t, ok)
	_, ok = Number(1e300).AsInt()
	assert.False(t, ok)

	obj := Object(Member{"k", String("v")})
	got, ok := obj.Get("k")
	assert.True(t, ok)
	assert.Equal(t, `"v"`, got.String())
	_, ok = obj.Get("missing")
	assert.False(t, ok)
	_, ok = Int(1).Get("k")
	assert.False(t, ok)

	assert.False(t, Null().Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Int(0).Truthy())
	assert.True(t, String("").Truthy())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"different kinds", Null(), Bool(false), false},
		{"numbers", Int(1), Number(1.0), true},
		{"nan", Number(math.NaN()), Number(math.NaN()), true},
		{"strings", String("a"), String("b"), false},
		{"arrays", Array(Int(1), Int(2)), Array(Int(1), Int(2)), true},
		{"array length", Array(Int(1)), Array(Int(1), Int(2)), false},
		{"object key order", Object(Member{"a", Int(1)}, Member{"b", Int(2)}), Object(Member{"b", Int(2)}, Member{"a", Int(1)}), true},
		{"object values", Object(Member{"a", Int(1)}), Object(Member{"a", Int(2)}), false},
		{"object keys", Object(Member{"a", Int(1)}), Object(Member{"b", Int(1)}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestCompareOrdersLikeJq(t *testing.T) {
	want := []Value{
		Null(),
		Bool(false),
		Bool(true),
		Number(math.NaN()),
		Number(-1),
		Int(0),
		Number(2.5),
		String(""),
		String("a"),
		String("b"),
		Array(),
		Array(Int(1)),
		Array(Int(1), Int(0)),
		Array(Int(2)),
		Object(),
		Object(Member{"a", Int(2)}),
		Object(Member{"a", Int(3)}),
		Object(Member{"a", Int(1)}, Member{"b", Int(0)}),
		Object(Member{"b", Int(0)}),
	}

	got := make([]Value, len(want))
	for i := range want {
		got[len(want)-1-i] = want[i]
	}
	sort.SliceStable(got, func(i, j int) bool { return Compare(got[i], got[j]) < 0 })

	for i := range want {
		assert.True(t, Equal(want[i], got[i]), "position %d: want %s, got %s", i, want[i], got[i])
	}
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON(` {"b": [1, 2.5, "x"], "a": {"n": null, "t": true}} `)
	require.NoError(t, err)
	assert.Equal(t, `{"b":[1,2.5,"x"],"a":{"n":null,"t":true}}`, v.String())

	for _, text := range []string{"null", "false", "0", `"s"`, "[]", "{}"} {
		v, err := ParseJSON(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, v.String())
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantDetail string
	}{
		{"empty", "", "unexpected end of JSON input"},
		{"unterminated object", "{", "unexpected end of JSON input"},
		{"missing value", `{"a":}`, "invalid character '}' looking for beginning of value"},
		{"trailing data", "1 2", "invalid character '2' after top-level value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidJSON))

			var syn *SyntaxError
			require.True(t, errors.As(err, &syn))
			assert.Equal(t, tt.wantDetail, syn.Detail)
			assert.Equal(t, "invalid JSON: "+tt.wantDetail, err.Error())
		})
	}
}

func TestSyntaxErrorWithoutDetail(t *testing.T) {
	err := &SyntaxError{}
	assert.Equal(t, "invalid JSON", err.Error())
}

func TestMustParseJSONPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseJSON("{") })
}

func TestFromGo(t *testing.T) {
	var decoded interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":[true,null,"s"]}`), &decoded))

	v, err := FromGo(decoded)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[true,null,"s"],"z":1}`, v.String())

	v, err = FromGo(int64(7))
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())

	v, err = FromGo(json.Number("2.5"))
	require.NoError(t, err)
	assert.Equal(t, "2.5", v.String())

	_, err = FromGo([]interface{}{1, struct{}{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.Contains(t, err.Error(), "index 1")
}

func TestToGo(t *testing.T) {
	v := MustParseJSON(`{"a":[1,"x",null,false]}`)
	got := ToGo(v)
	assert.Equal(t, map[string]interface{}{
		"a": []interface{}{1.0, "x", nil, false},
	}, got)

	back, err := FromGo(got)
	require.NoError(t, err)
	assert.True(t, Equal(v, back))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "boolean", KindBool.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
