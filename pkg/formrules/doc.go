/*
Package formrules validates forms against cross-field rules.

# Overview

A form declares its fields and a list of interproperty expressions. Each
expression is evaluated against the current field values on every input
event; when it is falsy, every field it lists shows its message.

	properties:
	  password: {type: string}
	  confirmationPassword: {type: string}
	interpropertyExpressions:
	  - expressionType: postfix
	    expression: "{password} {confirmationPassword} ="
	    message: Passwords must match
	    properties: [confirmationPassword]

# Basic Usage

Load a schema, build a Validator once, then validate on each input event:

	schema, err := config.FromFile("signup.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	v, err := formrules.New(schema, formrules.WithFormID("signup"))
	if err != nil {
	    log.Fatal(err) // unknown expression type, bad options
	}

	form := formrules.NewMapForm(map[string]string{
	    "password":             "hunter2",
	    "confirmationPassword": "hunter3",
	})
	report, err := v.Validate(ctx, form)
	// report.Valid(): false
	// form.Message("confirmationPassword"): "Passwords must match"

# Casting

Field values arrive as strings and are cast by their declared type before
evaluation: number and integer become float64 (empty is 0), boolean is true
for any non-empty string, and everything else stays a string.

# Messages

Within one pass a field keeps the message of the first rule that failed for
it. Fields listed by rules that all pass are cleared.

# Errors

New returns configuration errors. Validate returns data errors wrapping
*RuleError when an expression is malformed for the current values:

	_, err := v.Validate(ctx, form)
	if frerrors.IsData(err) {
	    // leftover operands, missing operand, undefined variable
	}

WithDegradeOnError turns those into failed rules instead.

# Expression Types

"postfix" is built in. Others are registered with WithExpressionType; an
unknown type fails New with *UnsupportedExpressionTypeError, which suggests
the closest registered name.

# Observability

	v, _ := formrules.New(schema,
	    formrules.WithLogger(slog.Default()),
	    formrules.WithMetrics(),
	    formrules.WithTracing(),
	)

Every pass gets a run ID that appears in logs, spans, and Report.RunID.
*/
package formrules
