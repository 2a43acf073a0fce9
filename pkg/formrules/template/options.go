package template

// MissingAction specifies how to handle variables absent from the map.
type MissingAction int

const (
	// MissingError stops substitution with an *UndefinedVariableError.
	// This is the default behavior.
	MissingError MissingAction = iota

	// MissingEmpty substitutes the empty string.
	MissingEmpty

	// MissingKeep substitutes the placeholder itself, delimiters included.
	MissingKeep
)

// String returns the name used in rule options and CLI flags.
func (a MissingAction) String() string {
	switch a {
	case MissingError:
		return "error"
	case MissingEmpty:
		return "empty"
	case MissingKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// ParseMissingAction maps "error", "empty" or "keep" to a MissingAction.
func ParseMissingAction(s string) (MissingAction, bool) {
	switch s {
	case "error", "":
		return MissingError, true
	case "empty":
		return MissingEmpty, true
	case "keep":
		return MissingKeep, true
	default:
		return MissingError, false
	}
}

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets how missing variables are handled.
//
// Default: MissingError
//
// Example:
//
//	exp := NewExpander(WithMissingAction(MissingEmpty))
//	s, _ := exp.Expand("{missing} 1 +", nil)
//	// s: " 1 +"
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missingAction = action
	}
}

// WithDelimiters sets the markers around variable names.
// An empty marker leaves the current one in place.
//
// Default: "{" and "}"
//
// Example:
//
//	exp := NewExpander(WithDelimiters("[", "]"))
//	s, _ := exp.Expand("[a] [b] +", map[string]any{"a": 1, "b": 2})
//	// s: "1 2 +"
func WithDelimiters(start, end string) Option {
	return func(e *Expander) {
		if start != "" {
			e.start = start
		}
		if end != "" {
			e.end = end
		}
	}
}
