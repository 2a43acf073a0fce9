package postfix

import (
	"iter"
	"slices"

	"github.com/randalmurphal/formrules/pkg/formrules/registry"
	"github.com/randalmurphal/formrules/pkg/formrules/template"
)

// Step describes one stack transition, reported to a WithTrace callback.
type Step struct {
	// Token is the token just consumed.
	Token Token
	// Operands holds the popped a and b when Token is an operator.
	Operands []any
	// Pushed is the value pushed onto the stack.
	Pushed any
	// Depth is the stack depth after the push.
	Depth int
}

// Evaluator evaluates postfix expressions.
//
// An Evaluator is immutable after New returns and is safe for concurrent use.
type Evaluator struct {
	cfg       Config
	operators *registry.Registry[string, BinaryOp]
	expander  *template.Expander
	trace     func(Step)
}

// New creates an Evaluator. The operator table is resolved here, once:
// the built-in operators with any configured operators layered on top.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}

	e.operators = DefaultOperators()
	e.operators.RegisterMany(e.cfg.Operators)

	e.expander = template.NewExpander(
		template.WithDelimiters(e.cfg.VariableStartDelimiter, e.cfg.VariableEndDelimiter),
		template.WithMissingAction(e.cfg.MissingAction),
	)
	return e
}

// Evaluate is a convenience function that builds an Evaluator from opts
// and evaluates a single expression.
//
//	v, err := postfix.Evaluate("{a} {b} -", map[string]any{"a": "4", "b": "3"})
//	// v: 1.0, err: nil
func Evaluate(expr string, vars map[string]any, opts ...Option) (any, error) {
	return New(opts...).Evaluate(expr, vars)
}

// Config returns a copy of the evaluator's settings.
func (e *Evaluator) Config() Config {
	return e.cfg.clone()
}

// Operators returns the registered operator symbols, sorted.
func (e *Evaluator) Operators() []string {
	syms := e.operators.Keys()
	slices.Sort(syms)
	return syms
}

// IsOperator reports whether sym is a registered operator.
func (e *Evaluator) IsOperator(sym string) bool {
	return e.operators.Has(sym)
}

// Tokens returns the token stream for expr after substitution.
func (e *Evaluator) Tokens(expr string, vars map[string]any) iter.Seq2[Token, error] {
	return Tokenize(e.expander.Segments(expr, vars), e.cfg.TokenDelimiter, e.IsOperator)
}

// Evaluate substitutes vars into expr and evaluates the result.
//
// Malformed input is reported through the error, never by panicking:
//   - *template.UndefinedVariableError or *template.SyntaxError from substitution
//   - *MissingOperandError when an operator finds fewer than two operands
//   - ErrEmptyExpression when there are no tokens
//   - *LeftoverOperandsError when more than one operand remains at the end
func (e *Evaluator) Evaluate(expr string, vars map[string]any) (any, error) {
	stack := newOperandStack()

	for tok, err := range e.Tokens(expr, vars) {
		if err != nil {
			return nil, err
		}

		step := Step{Token: tok}
		if tok.Kind == TokenOperator {
			if have := stack.len(); have < 2 {
				return nil, &MissingOperandError{Operator: tok.Text, Position: tok.Position, Have: have}
			}
			op, _ := e.operators.Get(tok.Text)
			b := stack.pop()
			a := stack.pop()
			step.Operands = []any{a, b}
			step.Pushed = op(a, b)
		} else {
			step.Pushed = tok.Value
		}

		stack.push(step.Pushed)
		if e.trace != nil {
			step.Depth = stack.len()
			e.trace(step)
		}
	}

	switch stack.len() {
	case 0:
		return nil, ErrEmptyExpression
	case 1:
		return stack.pop(), nil
	default:
		return nil, &LeftoverOperandsError{Operands: stack.drain()}
	}
}
