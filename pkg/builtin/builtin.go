// Package builtin implements the core value operations of the filter
// language: indexing, arithmetic, conversions and collection helpers.
//
// Every operation returns (value.Value, error). When the operation is not
// defined for its operands the error is exactly one failure.Failure,
// detected at the first fault. Errors that are not failures (unknown
// builtin, wrong number of arguments) are usage errors of the registry.
package builtin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/jqrt/pkg/mathop"
	"github.com/dshills/jqrt/pkg/value"
)

// Sentinel errors for registry lookups
var (
	ErrUnknownBuiltin = errors.New("unknown builtin")
	ErrArity          = errors.New("wrong number of arguments")
)

// Func evaluates a builtin. args[0] is the input value; the remaining
// elements are the builtin's arguments.
type Func func(args []value.Value) (value.Value, error)

// Builtin describes one registered operation.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Usage   string
	Fn      Func
}

var registry = map[string]Builtin{}

func register(b Builtin) {
	if _, dup := registry[b.Name]; dup {
		panic("builtin registered twice: " + b.Name)
	}
	registry[b.Name] = b
}

func unary(fn func(value.Value) (value.Value, error)) Func {
	return func(args []value.Value) (value.Value, error) { return fn(args[0]) }
}

func binary(fn func(value.Value, value.Value) (value.Value, error)) Func {
	return func(args []value.Value) (value.Value, error) { return fn(args[0], args[1]) }
}

func ternary(fn func(value.Value, value.Value, value.Value) (value.Value, error)) Func {
	return func(args []value.Value) (value.Value, error) { return fn(args[0], args[1], args[2]) }
}

func init() {
	for _, op := range mathop.All {
		op := op
		register(Builtin{
			Name:    op.String(),
			MinArgs: 2, MaxArgs: 2,
			Usage: "<left> <right>",
			Fn: func(args []value.Value) (value.Value, error) {
				return Arith(args[0], op, args[1])
			},
		})
	}

	register(Builtin{Name: "neg", MinArgs: 1, MaxArgs: 1, Usage: "<number>", Fn: unary(Neg)})
	register(Builtin{Name: "length", MinArgs: 1, MaxArgs: 1, Usage: "<value>", Fn: unary(Length)})
	register(Builtin{Name: "keys", MinArgs: 1, MaxArgs: 1, Usage: "<object|array>", Fn: unary(Keys)})
	register(Builtin{Name: "has", MinArgs: 2, MaxArgs: 2, Usage: "<object|array> <key>", Fn: binary(Has)})
	register(Builtin{Name: "index", MinArgs: 2, MaxArgs: 2, Usage: "<value> <index>", Fn: binary(Index)})
	register(Builtin{Name: "slice", MinArgs: 3, MaxArgs: 3, Usage: "<array|string> <from> <to>", Fn: ternary(Slice)})
	register(Builtin{Name: "setindex", MinArgs: 3, MaxArgs: 3, Usage: "<array> <index> <value>", Fn: ternary(SetIndex)})
	register(Builtin{
		Name: "setslice", MinArgs: 4, MaxArgs: 4, Usage: "<array> <from> <to> <array>",
		Fn: func(args []value.Value) (value.Value, error) {
			return SetSlice(args[0], args[1], args[2], args[3])
		},
	})
	register(Builtin{
		Name: "iter", MinArgs: 1, MaxArgs: 1, Usage: "<array|object>",
		Fn: func(args []value.Value) (value.Value, error) {
			out, err := Iter(args[0])
			if err != nil {
				return value.Null(), err
			}
			return value.Array(out...), nil
		},
	})
	register(Builtin{Name: "round", MinArgs: 1, MaxArgs: 1, Usage: "<number>", Fn: unary(Round)})
	register(Builtin{Name: "floor", MinArgs: 1, MaxArgs: 1, Usage: "<number>", Fn: unary(Floor)})
	register(Builtin{Name: "ceil", MinArgs: 1, MaxArgs: 1, Usage: "<number>", Fn: unary(Ceil)})
	register(Builtin{Name: "tonumber", MinArgs: 1, MaxArgs: 1, Usage: "<number|string>", Fn: unary(ToNumber)})
	register(Builtin{Name: "fromjson", MinArgs: 1, MaxArgs: 1, Usage: "<string>", Fn: unary(FromJSON)})
	register(Builtin{Name: "tojson", MinArgs: 1, MaxArgs: 1, Usage: "<value>", Fn: unary(ToJSON)})
	register(Builtin{Name: "sort", MinArgs: 1, MaxArgs: 1, Usage: "<array>", Fn: unary(Sort)})
	register(Builtin{Name: "split", MinArgs: 2, MaxArgs: 2, Usage: "<string> <separator>", Fn: binary(Split)})
	register(Builtin{Name: "objkey", MinArgs: 1, MaxArgs: 1, Usage: "<string>", Fn: unary(ObjectKey)})
	register(Builtin{
		Name: "object", MinArgs: 0, MaxArgs: -1, Usage: "[<key> <value>]...",
		Fn: func(args []value.Value) (value.Value, error) {
			if len(args)%2 != 0 {
				return value.Null(), fmt.Errorf("%w: object needs key/value pairs, got %d values", ErrArity, len(args))
			}
			keys := make([]value.Value, 0, len(args)/2)
			vals := make([]value.Value, 0, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				keys = append(keys, args[i])
				vals = append(vals, args[i+1])
			}
			return Object(keys, vals)
		},
	})
	register(Builtin{Name: "toisize", MinArgs: 1, MaxArgs: 1, Usage: "<number>", Fn: unary(ToIsize)})
	register(Builtin{Name: "tousize", MinArgs: 1, MaxArgs: 1, Usage: "<number>", Fn: unary(ToUsize)})
	register(Builtin{Name: "error", MinArgs: 1, MaxArgs: 1, Usage: "<message>", Fn: unary(Error)})
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (Builtin, error) {
	b, ok := registry[name]
	if !ok {
		return Builtin{}, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	return b, nil
}

// Names lists every registered builtin in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply looks up name and evaluates it with args.
func Apply(name string, args ...value.Value) (value.Value, error) {
	b, err := Lookup(name)
	if err != nil {
		return value.Null(), err
	}
	return b.Call(args...)
}

// Call evaluates b after checking its arity.
func (b Builtin) Call(args ...value.Value) (value.Value, error) {
	if len(args) < b.MinArgs || (b.MaxArgs >= 0 && len(args) > b.MaxArgs) {
		return value.Null(), fmt.Errorf("%w: %s expects %s, got %d", ErrArity, b.Name, b.arity(), len(args))
	}
	return b.Fn(args)
}

func (b Builtin) arity() string {
	switch {
	case b.MaxArgs < 0:
		return fmt.Sprintf("at least %d", b.MinArgs)
	case b.MinArgs == b.MaxArgs:
		return fmt.Sprintf("%d", b.MinArgs)
	default:
		return fmt.Sprintf("%d to %d", b.MinArgs, b.MaxArgs)
	}
}
