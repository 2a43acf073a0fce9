package formrules

import (
	"errors"
	"fmt"
)

// Sentinel errors for validator construction and use.
var (
	// ErrNilSchema indicates New was called without a schema.
	ErrNilSchema = errors.New("schema cannot be nil")

	// ErrNilForm indicates Validate was called without a form.
	ErrNilForm = errors.New("form cannot be nil")
)

// UnsupportedExpressionTypeError indicates a rule names an expression type
// with no registered evaluator.
type UnsupportedExpressionTypeError struct {
	// Type is the unknown expression type.
	Type string
	// Suggestion is the closest registered type, or empty.
	Suggestion string
}

// Error implements the error interface.
func (e *UnsupportedExpressionTypeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unsupported expression type %q (did you mean %q?)", e.Type, e.Suggestion)
	}
	return fmt.Sprintf("unsupported expression type %q", e.Type)
}

// RuleError wraps an evaluation failure with the rule that raised it.
type RuleError struct {
	// Index is the rule's position in the schema.
	Index int
	// Expression is the rule source.
	Expression string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d %q: %v", e.Index, e.Expression, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RuleError) Unwrap() error {
	return e.Err
}
