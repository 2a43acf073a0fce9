package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema is the JSON Schema every rule document must satisfy.
const documentSchema = `{
  "type": "object",
  "required": ["properties"],
  "properties": {
    "properties": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "type": {"type": "string"}
        }
      }
    },
    "interpropertyExpressions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["expressionType", "expression", "message", "properties"],
        "properties": {
          "expressionType": {"type": "string", "minLength": 1},
          "expression": {"type": "string"},
          "message": {"type": "string"},
          "properties": {"type": "array", "items": {"type": "string"}},
          "options": {
            "type": "object",
            "properties": {
              "variableStartDelimiter": {"type": "string", "minLength": 1},
              "variableEndDelimiter": {"type": "string", "minLength": 1},
              "tokenDelimiter": {"type": "string", "minLength": 1},
              "missingVariables": {"enum": ["error", "empty", "keep"]}
            }
          }
        }
      }
    }
  }
}`

const documentSchemaURL = "schema://formrules/document.json"

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaOnce sync.Once
	compiledSchemaErr  error
)

// getDocumentSchema compiles the document schema on first use.
func getDocumentSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			compiledSchemaErr = err
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(documentSchemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// ValidateDocument checks a decoded JSON document against the rule
// document schema. doc must come from encoding/json.
func ValidateDocument(doc any) error {
	schema, err := getDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid rule document: %w", err)
	}
	return nil
}
