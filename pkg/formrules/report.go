package formrules

import (
	"slices"

	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
)

// DefaultMessage is shown on a failing field when the rule has no message.
const DefaultMessage = "Invalid value"

func messageOrDefault(msg string) string {
	if msg == "" {
		return DefaultMessage
	}
	return msg
}

// RuleResult is the outcome of one rule in a validation pass.
type RuleResult struct {
	// Index is the rule's position in the schema.
	Index int `json:"index"`
	// Expression is the rule source.
	Expression string `json:"expression"`
	// Value is what the expression evaluated to. Nil when Err is set.
	Value any `json:"value"`
	// Valid reports whether Value is truthy.
	Valid bool `json:"valid"`
	// Properties are the fields the rule reports on.
	Properties []string `json:"properties"`
	// Err is set when a malformed expression was degraded into a failure.
	Err error `json:"-"`
}

// Report summarizes a validation pass.
type Report struct {
	// RunID identifies the pass in logs and traces.
	RunID string
	// Results holds one entry per rule, in schema order.
	Results []RuleResult
	// Messages maps each failing field to its message.
	Messages map[string]string
}

// Valid reports whether no field failed.
func (r *Report) Valid() bool {
	return len(r.Messages) == 0
}

// Errors returns the failing fields sorted by name.
func (r *Report) Errors() frerrors.ValidationErrors {
	names := make([]string, 0, len(r.Messages))
	for name := range r.Messages {
		names = append(names, name)
	}
	slices.Sort(names)

	errs := make(frerrors.ValidationErrors, 0, len(names))
	for _, name := range names {
		errs = append(errs, &frerrors.ValidationError{Field: name, Message: r.Messages[name]})
	}
	return errs
}

// Err returns the failing fields as an error, or nil when the report is valid.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors()
}
