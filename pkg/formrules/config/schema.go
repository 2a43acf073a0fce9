package config

import (
	"fmt"
	"slices"
)

// JSON-Schema type tags understood when casting field values.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Schema describes a form: its fields and the rules that span them.
type Schema struct {
	// Properties maps field names to their declared types.
	Properties map[string]Property `json:"properties" yaml:"properties" cbor:"properties"`

	// InterpropertyExpressions are evaluated in order on every pass.
	InterpropertyExpressions []Rule `json:"interpropertyExpressions,omitempty" yaml:"interpropertyExpressions,omitempty" cbor:"interpropertyExpressions,omitempty"`
}

// Property is a single form field.
type Property struct {
	// Type is a JSON-Schema type tag. Empty means string.
	Type string `json:"type,omitempty" yaml:"type,omitempty" cbor:"type,omitempty"`
}

// Rule is one interproperty expression.
type Rule struct {
	// ExpressionType selects the evaluator, e.g. "postfix".
	ExpressionType string `json:"expressionType" yaml:"expressionType" cbor:"expressionType"`

	// Expression is the rule source.
	Expression string `json:"expression" yaml:"expression" cbor:"expression"`

	// Message is shown on every listed field while the rule fails.
	Message string `json:"message" yaml:"message" cbor:"message"`

	// Properties are the fields that display Message.
	Properties []string `json:"properties" yaml:"properties" cbor:"properties"`

	// Options tune the evaluator for this rule only.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" cbor:"options,omitempty"`
}

// String identifies the rule in logs and errors.
func (r Rule) String() string {
	return fmt.Sprintf("%s %q", r.ExpressionType, r.Expression)
}

// PropertyNames returns the declared field names, sorted.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Check verifies that every rule lists at least one field and that every
// listed field is declared.
func (s *Schema) Check() error {
	for i, rule := range s.InterpropertyExpressions {
		if len(rule.Properties) == 0 {
			return fmt.Errorf("rule %d: no properties listed", i)
		}
		for _, name := range rule.Properties {
			if _, ok := s.Properties[name]; !ok {
				return fmt.Errorf("rule %d: undeclared property %q", i, name)
			}
		}
	}
	return nil
}
