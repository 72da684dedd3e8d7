package value

import (
	"math"
	"sort"
	"strings"
)

// Equal reports whether a and b are structurally equal. Objects compare
// equal regardless of key order. NaN equals NaN, so Equal is reflexive.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n || (math.IsNaN(a.n) && math.IsNaN(b.n))
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.a) != len(b.a) {
			return false
		}
		for i := range a.a {
			if !Equal(a.a[i], b.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.o.keys) != len(b.o.keys) {
			return false
		}
		for k, av := range a.o.vals {
			bv, ok := b.o.vals[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders values the way jq sorts them:
// null < false < true < numbers < strings < arrays < objects.
// Arrays compare element-wise; objects compare their sorted key sets first
// and then their values in key order. The result is -1, 0 or +1.
func Compare(a, b Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch a.kind {
	case KindNumber:
		return compareNumbers(a.n, b.n)
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindArray:
		for i := 0; i < len(a.a) && i < len(b.a); i++ {
			if c := Compare(a.a[i], b.a[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(a.a), len(b.a))
	case KindObject:
		ak, bk := a.sortedKeys(), b.sortedKeys()
		for i := 0; i < len(ak) && i < len(bk); i++ {
			if c := strings.Compare(ak[i], bk[i]); c != 0 {
				return c
			}
		}
		if c := cmpInt(len(ak), len(bk)); c != 0 {
			return c
		}
		for _, k := range ak {
			if c := Compare(a.o.vals[k], b.o.vals[k]); c != 0 {
				return c
			}
		}
	}
	return 0
}

// SortedKeys returns the keys of an object in ascending order.
func (v Value) SortedKeys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.sortedKeys()
}

func (v Value) sortedKeys() []string {
	keys := make([]string, len(v.o.keys))
	copy(keys, v.o.keys)
	sort.Strings(keys)
	return keys
}

func rank(v Value) int {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		if v.b {
			return 2
		}
		return 1
	case KindNumber:
		return 3
	case KindString:
		return 4
	case KindArray:
		return 5
	default:
		return 6
	}
}

// compareNumbers sorts NaN below every other number.
func compareNumbers(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
