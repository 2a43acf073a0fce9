package postfix

import (
	"math"

	"github.com/randalmurphal/formrules/pkg/formrules/registry"
)

// BinaryOp applies an operator to its left (a) and right (b) operands.
type BinaryOp func(a, b any) any

// Built-in operator symbols.
const (
	OpAdd          = "+"
	OpSubtract     = "-"
	OpMultiply     = "*"
	OpDivide       = "/"
	OpPower        = "^"
	OpRemainder    = "%"
	OpLess         = "<"
	OpLessEqual    = "≤"
	OpGreater      = ">"
	OpGreaterEqual = "≥"
	OpEqual        = "="
	OpNotEqual     = "≠"
)

// builtinOperators returns a fresh copy of the built-in table.
func builtinOperators() map[string]BinaryOp {
	return map[string]BinaryOp{
		// Arithmetic
		OpAdd:       func(a, b any) any { return ToFloat64(a) + ToFloat64(b) },
		OpSubtract:  func(a, b any) any { return ToFloat64(a) - ToFloat64(b) },
		OpMultiply:  func(a, b any) any { return ToFloat64(a) * ToFloat64(b) },
		OpDivide:    func(a, b any) any { return ToFloat64(a) / ToFloat64(b) },
		OpPower:     func(a, b any) any { return math.Pow(ToFloat64(a), ToFloat64(b)) },
		OpRemainder: func(a, b any) any { return math.Mod(ToFloat64(a), ToFloat64(b)) },

		// Relational
		OpLess: func(a, b any) any {
			c, ok := compareOrdered(a, b)
			return ok && c < 0
		},
		OpLessEqual: func(a, b any) any {
			c, ok := compareOrdered(a, b)
			return ok && c <= 0
		},
		OpGreater: func(a, b any) any {
			c, ok := compareOrdered(a, b)
			return ok && c > 0
		},
		OpGreaterEqual: func(a, b any) any {
			c, ok := compareOrdered(a, b)
			return ok && c >= 0
		},
		OpEqual:    func(a, b any) any { return LooseEqual(a, b) },
		OpNotEqual: func(a, b any) any { return !LooseEqual(a, b) },
	}
}

// DefaultOperators returns a new registry holding the built-in operators.
// Each call returns an independent registry.
func DefaultOperators() *registry.Registry[string, BinaryOp] {
	return registry.From(builtinOperators())
}
