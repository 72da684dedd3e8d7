// Package mathop defines the arithmetic operators of the filter language.
package mathop

import "fmt"

// Op is a binary arithmetic operator.
type Op uint8

const (
	Add Op = iota
	Sub
	Mul
	Div
	Rem

	// count must stay last; tables indexed by Op are sized with it.
	count
)

// All lists every operator in declaration order.
var All = [count]Op{Add, Sub, Mul, Div, Rem}

var symbols = [count]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: "%",
}

// passive holds the past participle used in failure messages,
// e.g. "1 and "a" cannot be added".
var passive = [count]string{
	Add: "added",
	Sub: "subtracted",
	Mul: "multiplied",
	Div: "divided",
	Rem: "divided (remainder)",
}

// Valid reports whether op is one of the declared operators.
func (op Op) Valid() bool {
	return op < count
}

// String returns the operator symbol as written in a filter.
func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return symbols[op]
}

// Passive returns the passive-voice verb describing op.
// Values outside the declared set yield "combined with Op(n)".
func (op Op) Passive() string {
	if !op.Valid() {
		return "combined with " + op.String()
	}
	return passive[op]
}

// Parse maps an operator symbol back to its Op.
func Parse(symbol string) (Op, error) {
	for _, op := range All {
		if symbols[op] == symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown arithmetic operator %q", symbol)
}
