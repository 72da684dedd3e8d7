package errors

import (
	"fmt"
	"time"

	"github.com/dshills/jqrt/pkg/failure"
)

// KindInternal classifies errors that are not filter failures
// (usage errors, I/O, storage).
const KindInternal = "internal"

// OperationalError represents enhanced error information for debugging.
//
// It wraps an error, usually a filter failure, with the operation that was
// running, the catalog and case it belonged to and when it happened. The
// wrapped failure stays reachable through errors.As and failure.As.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	Catalog    string                 // Which conformance catalog (if applicable)
	CaseID     string                 // Which catalog case (if applicable)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if _, err := builtin.Apply(name, args...); err != nil {
//	    return NewOperationalError("applying "+name, catalog, caseID, err)
//	}
func NewOperationalError(operation, catalog, caseID string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		Catalog:   catalog,
		CaseID:    caseID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, catalog, caseID string, cause error, attrs map[string]interface{}) *OperationalError {
	e := NewOperationalError(operation, catalog, caseID, cause)
	if e != nil {
		e.Attributes = attrs
	}
	return e
}

// Error implements the error interface.
//
// Format: "operation: catalog={name} case={id}: {cause}"
// Empty catalog or case fields are omitted.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	msg := e.Operation
	if e.Catalog != "" {
		msg += " catalog=" + e.Catalog
	}
	if e.CaseID != "" {
		msg += " case=" + e.CaseID
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Kind classifies the wrapped error; see Classify.
func (e *OperationalError) Kind() string {
	if e == nil {
		return ""
	}
	return Classify(e.Cause)
}

// Classify returns the failure kind name found in err's chain, "" for a
// nil error and KindInternal for anything that is not a filter failure.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if f, ok := failure.As(err); ok {
		return f.Kind().String()
	}
	return KindInternal
}

// Message returns the text a user should see for err: the rendered
// failure when the chain holds one, the full error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if f, ok := failure.As(err); ok {
		return failure.Render(f)
	}
	return err.Error()
}

// IsFailure reports whether err's chain holds a filter failure.
func IsFailure(err error) bool {
	_, ok := failure.As(err)
	return ok
}
