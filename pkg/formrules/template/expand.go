package template

import (
	"fmt"
	"iter"
	"strings"
)

// Default variable markers.
const (
	DefaultStartDelimiter = "{"
	DefaultEndDelimiter   = "}"
)

// Segment is one unit of a scanned expression: either a run of literal
// text or the value bound to a single variable reference.
type Segment struct {
	// Variable is true when the segment came from a {name} span.
	Variable bool

	// Name is the variable name. Empty for literal segments.
	Name string

	// Text is the literal text. Empty for variable segments.
	Text string

	// Value is the bound value for variable segments.
	Value any
}

// Expander substitutes variable references in expressions.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	missingAction MissingAction
	start         string
	end           string
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingError
//   - Delimiters: "{" and "}"
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missingAction: MissingError,
		start:         DefaultStartDelimiter,
		end:           DefaultEndDelimiter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Delimiters returns the start and end markers.
func (e *Expander) Delimiters() (start, end string) {
	return e.start, e.end
}

// MissingAction returns the configured missing-variable policy.
func (e *Expander) MissingAction() MissingAction {
	return e.missingAction
}

// Segments scans s left to right and yields literal text and variable
// values in order. Each variable value is yielded as one segment and is
// never split or merged with the text around it.
//
// The sequence stops after the first error. Errors are *SyntaxError for
// nested or unterminated spans and *UndefinedVariableError when a name is
// unbound under MissingError.
func (e *Expander) Segments(s string, vars map[string]any) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		var text, name strings.Builder
		inside := false
		spanStart := 0

		for i := 0; i < len(s); {
			if inside {
				// The end marker is checked first so identical markers toggle.
				if strings.HasPrefix(s[i:], e.end) {
					seg, err := e.resolve(name.String(), vars)
					if err != nil {
						yield(Segment{}, err)
						return
					}
					if !yield(seg, nil) {
						return
					}
					name.Reset()
					inside = false
					i += len(e.end)
					continue
				}
				if strings.HasPrefix(s[i:], e.start) {
					yield(Segment{}, &SyntaxError{Offset: i, Message: "nested variable delimiter"})
					return
				}
				name.WriteByte(s[i])
				i++
				continue
			}

			if strings.HasPrefix(s[i:], e.start) {
				if text.Len() > 0 {
					if !yield(Segment{Text: text.String()}, nil) {
						return
					}
					text.Reset()
				}
				inside = true
				spanStart = i
				i += len(e.start)
				continue
			}
			text.WriteByte(s[i])
			i++
		}

		if inside {
			yield(Segment{}, &SyntaxError{Offset: spanStart, Message: "unterminated variable"})
			return
		}
		if text.Len() > 0 {
			yield(Segment{Text: text.String()}, nil)
		}
	}
}

// resolve looks up a single variable according to the missing action.
func (e *Expander) resolve(name string, vars map[string]any) (Segment, error) {
	if val, ok := vars[name]; ok {
		return Segment{Variable: true, Name: name, Value: val}, nil
	}
	switch e.missingAction {
	case MissingEmpty:
		return Segment{Variable: true, Name: name, Value: ""}, nil
	case MissingKeep:
		return Segment{Variable: true, Name: name, Value: e.start + name + e.end}, nil
	default:
		return Segment{}, &UndefinedVariableError{Names: []string{name}}
	}
}

// Expand renders s with every variable reference replaced by its value.
//
// Example:
//
//	exp := NewExpander()
//	s, err := exp.Expand("{a} {b} -", map[string]any{"a": 4, "b": 3})
//	// s: "4 3 -"
func (e *Expander) Expand(s string, vars map[string]any) (string, error) {
	var b strings.Builder
	for seg, err := range e.Segments(s, vars) {
		if err != nil {
			return "", err
		}
		if seg.Variable {
			fmt.Fprintf(&b, "%v", seg.Value)
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String(), nil
}

// Names returns the variable names referenced by s in order of first
// appearance, without resolving them.
func (e *Expander) Names(s string) ([]string, error) {
	keep := &Expander{missingAction: MissingKeep, start: e.start, end: e.end}
	seen := make(map[string]bool)
	var names []string
	for seg, err := range keep.Segments(s, nil) {
		if err != nil {
			return nil, err
		}
		if seg.Variable && !seen[seg.Name] {
			seen[seg.Name] = true
			names = append(names, seg.Name)
		}
	}
	return names, nil
}

// defaultExpander is the package-level expander with default settings.
var defaultExpander = NewExpander()

// Expand expands s using the default expander (braces, MissingError).
func Expand(s string, vars map[string]any) (string, error) {
	return defaultExpander.Expand(s, vars)
}
