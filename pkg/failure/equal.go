package failure

import (
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/jqrt/pkg/value"
)

var valueComparer = cmp.Comparer(value.Equal)

// Equal reports whether a and b are the same category with structurally
// equal payloads. Values inside the payloads compare with value.Equal.
func Equal(a, b Failure) bool {
	return cmp.Equal(a, b, valueComparer)
}

// Diff returns a human-readable difference between two failures, or ""
// when they are equal.
func Diff(want, got Failure) string {
	return cmp.Diff(want, got, valueComparer)
}
