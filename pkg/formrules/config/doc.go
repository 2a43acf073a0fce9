/*
Package config loads and checks form rule documents.

# Overview

A rule document declares a form's fields with JSON-Schema type tags and the
interproperty expressions that span them:

	properties:
	  password: {type: string}
	  confirmationPassword: {type: string}
	interpropertyExpressions:
	  - expressionType: postfix
	    expression: "{password} {confirmationPassword} ="
	    message: Passwords must match
	    properties: [confirmationPassword]

# Loading

	s, err := config.FromFile("signup.yaml")  // .yaml, .yml or .json
	s, err = config.FromYAML(data)
	s, err = config.FromJSON(data)
	s, err = config.Parse(data)                // sniff the format

Every loader validates the decoded document against an embedded JSON Schema
and then runs Schema.Check, which rejects rules that list undeclared fields.

# Rule Options

A rule may carry options for its evaluator. Options gives typed access with
defaults:

	opts := config.NewOptions(rule.Options)
	start := opts.String(config.OptionVariableStartDelimiter, "{")

# Binary Encoding

Schema implements encoding.BinaryMarshaler with canonical CBOR, which the
schema store uses to persist documents.
*/
package config
