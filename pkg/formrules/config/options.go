package config

// Rule option keys.
const (
	OptionVariableStartDelimiter = "variableStartDelimiter"
	OptionVariableEndDelimiter   = "variableEndDelimiter"
	OptionTokenDelimiter         = "tokenDelimiter"
	OptionMissingVariables       = "missingVariables"
)

// Options wraps a rule's options map for type-safe value extraction.
// Accessors return the default if the key is missing or has the wrong type.
type Options struct {
	data map[string]any
}

// NewOptions creates Options from the given map.
// If data is nil, empty Options are returned.
func NewOptions(data map[string]any) Options {
	if data == nil {
		data = make(map[string]any)
	}
	return Options{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (o Options) String(key, defaultVal string) string {
	v, ok := o.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Has returns true if the key exists.
func (o Options) Has(key string) bool {
	_, ok := o.data[key]
	return ok
}

// Len returns the number of options set.
func (o Options) Len() int {
	return len(o.data)
}
