package postfix

import (
	"maps"

	"github.com/randalmurphal/formrules/pkg/formrules/template"
)

// DefaultTokenDelimiter separates tokens unless configured otherwise.
const DefaultTokenDelimiter = " "

// Config holds the recognized evaluator settings.
//
// A Config is a plain value. DefaultConfig returns a fresh one on every call
// and New copies whatever it is given, so no evaluation can change the
// settings seen by another.
type Config struct {
	// Operators are layered over the built-in table; last write wins.
	Operators map[string]BinaryOp

	VariableStartDelimiter string
	VariableEndDelimiter   string
	TokenDelimiter         string

	// MissingAction decides what an unbound {name} becomes.
	MissingAction template.MissingAction
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		VariableStartDelimiter: template.DefaultStartDelimiter,
		VariableEndDelimiter:   template.DefaultEndDelimiter,
		TokenDelimiter:         DefaultTokenDelimiter,
		MissingAction:          template.MissingError,
	}
}

// merge layers the non-zero fields of o over c and returns the result.
// Neither input is modified.
func (c Config) merge(o Config) Config {
	out := c
	out.Operators = make(map[string]BinaryOp, len(c.Operators)+len(o.Operators))
	maps.Copy(out.Operators, c.Operators)
	for sym, fn := range o.Operators {
		if fn != nil {
			out.Operators[sym] = fn
		}
	}
	if o.VariableStartDelimiter != "" {
		out.VariableStartDelimiter = o.VariableStartDelimiter
	}
	if o.VariableEndDelimiter != "" {
		out.VariableEndDelimiter = o.VariableEndDelimiter
	}
	if o.TokenDelimiter != "" {
		out.TokenDelimiter = o.TokenDelimiter
	}
	out.MissingAction = o.MissingAction
	return out
}

// clone returns a copy that shares no map with c.
func (c Config) clone() Config {
	return c.merge(Config{MissingAction: c.MissingAction})
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithConfig layers a whole Config over the current settings.
// Empty delimiters keep the current ones; MissingAction is always taken from c.
func WithConfig(c Config) Option {
	return func(e *Evaluator) {
		e.cfg = e.cfg.merge(c)
	}
}

// WithOperator registers an operator, replacing any built-in with the same symbol.
//
// Example:
//
//	concat := postfix.WithOperator("+", func(a, b any) any {
//	    return postfix.FormatOperand(a) + postfix.FormatOperand(b)
//	})
//	v, _ := postfix.Evaluate("{a} {b} +", vars, concat)
func WithOperator(symbol string, fn BinaryOp) Option {
	return WithOperators(map[string]BinaryOp{symbol: fn})
}

// WithOperators registers several operators at once.
func WithOperators(ops map[string]BinaryOp) Option {
	return func(e *Evaluator) {
		e.cfg = e.cfg.merge(Config{
			Operators:     ops,
			MissingAction: e.cfg.MissingAction,
		})
	}
}

// WithDelimiters sets the variable markers. Empty values are ignored.
//
// Default: "{" and "}"
func WithDelimiters(start, end string) Option {
	return func(e *Evaluator) {
		if start != "" {
			e.cfg.VariableStartDelimiter = start
		}
		if end != "" {
			e.cfg.VariableEndDelimiter = end
		}
	}
}

// WithTokenDelimiter sets the token separator. An empty value is ignored.
//
// Default: " "
func WithTokenDelimiter(d string) Option {
	return func(e *Evaluator) {
		if d != "" {
			e.cfg.TokenDelimiter = d
		}
	}
}

// WithMissingAction sets what an unbound variable becomes.
//
// Default: template.MissingError
func WithMissingAction(a template.MissingAction) Option {
	return func(e *Evaluator) {
		e.cfg.MissingAction = a
	}
}

// WithTrace registers a callback that observes every stack step.
func WithTrace(fn func(Step)) Option {
	return func(e *Evaluator) {
		e.trace = fn
	}
}
