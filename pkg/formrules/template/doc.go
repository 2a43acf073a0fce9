/*
Package template substitutes variable references in rule expressions.

# Overview

An expression such as "{startDate} {endDate} <" references form fields by
name. The Expander scans it once, left to right, and yields a stream of
Segments: literal text passes through unchanged and every {name} span becomes
a single segment carrying the bound value. Downstream tokenizers treat those
values as atomic, so a value containing spaces or braces is never re-parsed.

# Basic Usage

	exp := template.NewExpander()
	for seg, err := range exp.Segments("{a} {b} -", map[string]any{"a": 4.0, "b": 3.0}) {
	    if err != nil {
	        return err
	    }
	    // seg.Variable, seg.Name, seg.Text, seg.Value
	}

	s, _ := exp.Expand("{a} {b} -", vars) // "4 3 -"

# Delimiters

The markers default to "{" and "}" and may be any non-empty strings, including
multi-character and identical markers:

	template.NewExpander(template.WithDelimiters("[", "]"))
	template.NewExpander(template.WithDelimiters("${", "}"))
	template.NewExpander(template.WithDelimiters("|", "|"))

Nested start markers and unterminated spans are reported as *SyntaxError.
There is no escaping.

# Missing Variables

By default an unbound name stops the scan with *UndefinedVariableError.
WithMissingAction(MissingEmpty) substitutes "" and WithMissingAction(MissingKeep)
substitutes the placeholder text itself.
*/
package template
