package postfix

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ToFloat64 converts an operand to float64 for arithmetic and ordering.
//
// Numbers convert directly, bools become 1 or 0, strings are parsed after
// trimming (an empty string is 0). Anything else, nil and unparseable
// strings included, is NaN.
func ToFloat64(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case uint:
		return float64(val)
	case uint64:
		return float64(val)
	case uint32:
		return float64(val)
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		if !isNumeric(s) {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// IsTruthy reports whether a result counts as passing.
// nil, false, zero, NaN and the empty string are falsy; everything else is truthy.
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case uint:
		return val != 0
	case uint64:
		return val != 0
	case uint32:
		return val != 0
	default:
		return true
	}
}

// LooseEqual compares two operands the way the "=" operator does.
//
// Two strings or two bools compare directly. nil equals only nil.
// Every other pairing compares numerically through ToFloat64, so "1" equals
// 1 and true equals 1. NaN is never equal to anything.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return ab == bb
		}
	}
	return ToFloat64(a) == ToFloat64(b)
}

// compareOrdered orders two operands. Two strings compare lexicographically,
// which orders ISO-8601 dates correctly; every other pairing compares
// numerically. ok is false when either side is NaN.
func compareOrdered(a, b any) (c int, ok bool) {
	if as, isStr := a.(string); isStr {
		if bs, isStr := b.(string); isStr {
			return strings.Compare(as, bs), true
		}
	}
	af, bf := ToFloat64(a), ToFloat64(b)
	if math.IsNaN(af) || math.IsNaN(bf) {
		return 0, false
	}
	return cmp.Compare(af, bf), true
}

// FormatOperand renders an operand for error messages and display.
func FormatOperand(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// parseLiteral turns literal token text into an operand.
// Literals that are not booleans or decimal numbers stay strings.
func parseLiteral(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if isNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// isNumeric rejects the spellings strconv accepts that are not decimal
// numbers: Inf, NaN and hexadecimal floats.
func isNumeric(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) && r != 'e' && r != 'E'
	}) < 0
}
