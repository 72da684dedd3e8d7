package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/jqrt/pkg/failure"
	"github.com/dshills/jqrt/pkg/value"
)

func TestNewOperationalErrorNilCause(t *testing.T) {
	assert.Nil(t, NewOperationalError("op", "cat", "case", nil))
	assert.Nil(t, NewOperationalErrorWithAttrs("op", "cat", "case", nil, map[string]interface{}{"k": 1}))
}

func TestOperationalErrorMessage(t *testing.T) {
	cause := failure.Length{Value: value.Bool(true)}

	tests := []struct {
		name    string
		catalog string
		caseID  string
		want    string
	}{
		{"full", "core", "len-bool", "applying length catalog=core case=len-bool: true has no length"},
		{"no case", "core", "", "applying length catalog=core: true has no length"},
		{"bare", "", "", "applying length: true has no length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewOperationalError("applying length", tt.catalog, tt.caseID, cause)
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.False(t, err.Timestamp.IsZero())
		})
	}

	var nilErr *OperationalError
	assert.Equal(t, "<nil OperationalError>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
	assert.Equal(t, "", nilErr.Kind())
}

func TestOperationalErrorUnwrap(t *testing.T) {
	cause := failure.Split{}
	err := NewOperationalErrorWithAttrs("applying split", "core", "c1", cause, map[string]interface{}{"args": 2})
	require.NotNil(t, err)
	assert.Equal(t, 2, err.Attributes["args"])

	var wrapped error = fmt.Errorf("run: %w", err)

	var op *OperationalError
	require.True(t, stderrors.As(wrapped, &op))
	assert.Equal(t, "c1", op.CaseID)

	f, ok := failure.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, failure.KindSplit, f.Kind())
	assert.Equal(t, "Split", err.Kind())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "Neg", Classify(failure.Neg{Value: value.Null()}))
	assert.Equal(t, "Custom", Classify(fmt.Errorf("x: %w", failure.Custom{Reason: "r"})))
	assert.Equal(t, KindInternal, Classify(stderrors.New("disk full")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "null has no keys", Message(NewOperationalError("op", "", "", failure.Keys{Value: value.Null()})))
	assert.Equal(t, "op: boom", Message(fmt.Errorf("op: %w", stderrors.New("boom"))))

	assert.True(t, IsFailure(failure.Split{}))
	assert.False(t, IsFailure(stderrors.New("boom")))
}
