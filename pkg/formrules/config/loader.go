package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads a schema from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported schema file extension: %s", ext)
	}
}

// FromYAML parses a YAML schema document.
// The document is converted to JSON so both formats are validated the same way.
func FromYAML(data []byte) (*Schema, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return FromJSON(jsonData)
}

// FromJSON parses a JSON schema document.
func FromJSON(data []byte) (*Schema, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if err := s.Check(); err != nil {
		return nil, fmt.Errorf("invalid rule document: %w", err)
	}
	return &s, nil
}

// Parse detects the format of data and parses it. JSON documents start
// with '{' after leading whitespace; everything else is read as YAML.
func Parse(data []byte) (*Schema, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return FromJSON(data)
	}
	return FromYAML(data)
}

// ValuesFromFile loads raw field values from a flat YAML or JSON map.
// Non-string scalars are rendered the way a form would hold them.
func ValuesFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values file: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	values := make(map[string]string, len(m))
	for k, v := range m {
		values[k] = RawValue(v)
	}
	return values, nil
}

// RawValue renders a decoded document value the way a form input holds it.
// null and false read as an empty input, the way an unchecked box does.
func RawValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
