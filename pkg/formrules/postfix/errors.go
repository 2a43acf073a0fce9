package postfix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyExpression indicates the expression contained no tokens.
var ErrEmptyExpression = errors.New("empty expression")

// MissingOperandError indicates an operator found fewer than two operands
// on the stack.
type MissingOperandError struct {
	// Operator is the symbol being applied.
	Operator string
	// Position is the 1-based token position of the operator.
	Position int
	// Have is how many operands were available.
	Have int
}

// Error implements the error interface.
func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("missing operand for %q at token %d: have %d, need 2", e.Operator, e.Position, e.Have)
}

// LeftoverOperandsError indicates more than one operand remained once the
// tokens were exhausted.
type LeftoverOperandsError struct {
	// Operands are the remaining operands, bottom of the stack first.
	Operands []any
}

// Error implements the error interface.
func (e *LeftoverOperandsError) Error() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		parts[i] = FormatOperand(op)
	}
	return fmt.Sprintf("unevaluated operands %q", strings.Join(parts, ", "))
}
