// Package errors classifies failures raised while validating forms.
//
// Two kinds of failure exist:
//   - Data: the current field values made an expression malformed
//     (leftover operands, starved operators, unbound variables). A caller
//     may degrade these into a failed validation.
//   - Configuration: the rule schema itself is wrong (unsupported
//     expression types, unreadable documents). These are always raised.
package errors

import (
	"errors"
	"fmt"
)

// Category represents how an error should be handled.
type Category int

const (
	// CategoryConfiguration indicates the rule set is broken and
	// evaluation cannot proceed. Unknown errors land here.
	CategoryConfiguration Category = iota

	// CategoryData indicates the input made an expression malformed.
	CategoryData
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryConfiguration:
		return "configuration"
	case CategoryData:
		return "data"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with its category and context.
type CategorizedError struct {
	// Err is the underlying error.
	Err error

	// Category indicates how this error should be handled.
	Category Category

	// Context names the rule or document involved.
	Context string
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Context, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorized creates a new categorized error.
func NewCategorized(err error, category Category, context string) *CategorizedError {
	return &CategorizedError{
		Err:      err,
		Category: category,
		Context:  context,
	}
}

// Data creates a data error.
func Data(err error, context string) *CategorizedError {
	return NewCategorized(err, CategoryData, context)
}

// Configuration creates a configuration error.
func Configuration(err error, context string) *CategorizedError {
	return NewCategorized(err, CategoryConfiguration, context)
}

// Categorize determines how an error should be handled.
func Categorize(err error) Category {
	if err == nil {
		return CategoryConfiguration
	}

	var catErr *CategorizedError
	if errors.As(err, &catErr) {
		return catErr.Category
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return CategoryData
	}

	return CategoryConfiguration
}

// IsData reports whether err is a data error.
func IsData(err error) bool {
	return err != nil && Categorize(err) == CategoryData
}
