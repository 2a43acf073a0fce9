/*
Package postfix evaluates interproperty validation expressions written in
postfix (Reverse Polish) notation.

# Overview

An expression is a sequence of operands and operators separated by a token
delimiter. Operators follow their operands, so there is no precedence and no
parentheses. Operands are literals or {name} references that are substituted
from a variable map before tokenizing:

	{startDate} {endDate} <
	{a} {b} - 0 >
	{password} {confirmationPassword} =

Evaluation runs in three lazy stages: template.Expander yields literal text
and variable values, Tokenize splits the text into tokens while keeping each
variable value whole, and the Evaluator folds the tokens on an operand stack.

# Operators

All operators take two operands, left operand first:

	+ - * / ^ %    arithmetic, float64 result (^ is power, % is math.Mod)
	< ≤ > ≥        ordering, bool result
	= ≠            loose equality, bool result

Arithmetic converts both operands with ToFloat64: bools are 1 or 0, numeric
strings are parsed, the empty string is 0, and other strings are NaN.

Ordering compares two strings lexicographically, which orders ISO-8601
dates; every other pairing compares numerically and NaN compares false.

Equality compares two strings or two bools directly; nil equals only nil;
everything else compares numerically, so "1" = 1 and true = 1.

# Literals

Literal tokens that match a registered operator are operators. Otherwise
"true" and "false" are bools, decimal numbers are float64, and any other
text is pushed unchanged as a string. Variable values are pushed exactly as
given; casting them is the caller's job.

# Custom Operators

Operators layer over the built-in table, last write wins:

	concat := func(a, b any) any {
	    return postfix.FormatOperand(a) + postfix.FormatOperand(b)
	}
	v, _ := postfix.Evaluate("{first} {last} +", vars, postfix.WithOperator("+", concat))

# Errors

Evaluate returns (value, nil) or (nil, err) and never panics on malformed
input:

	_, err := postfix.Evaluate("{a} {b}", map[string]any{"a": "1", "b": "2"})
	// err: unevaluated operands "1, 2"

Missing variables fail with *template.UndefinedVariableError unless
WithMissingAction says otherwise.
*/
package postfix
