package formrules

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/randalmurphal/formrules/pkg/formrules/config"
)

// Form is the surface that holds raw field strings and displays validity
// messages. An empty message marks the field valid.
type Form interface {
	// Value returns the raw string of a field and whether the field exists.
	Value(name string) (string, bool)

	// SetValidity sets the custom validity message of a field.
	SetValidity(name, message string)
}

// MapForm is an in-memory Form backed by maps.
// It is safe for concurrent use.
type MapForm struct {
	mu       sync.RWMutex
	values   map[string]string
	messages map[string]string
}

// NewMapForm creates a form holding a copy of values.
func NewMapForm(values map[string]string) *MapForm {
	f := &MapForm{
		values:   make(map[string]string, len(values)),
		messages: make(map[string]string),
	}
	for k, v := range values {
		f.values[k] = v
	}
	return f
}

// Value implements Form.
func (f *MapForm) Value(name string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[name]
	return v, ok
}

// Set changes the raw value of a field.
func (f *MapForm) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
}

// SetValidity implements Form.
func (f *MapForm) SetValidity(name, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message == "" {
		delete(f.messages, name)
		return
	}
	f.messages[name] = message
}

// Message returns the current validity message of a field.
func (f *MapForm) Message(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.messages[name]
}

// Messages returns a copy of every non-empty validity message.
func (f *MapForm) Messages() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.messages))
	for k, v := range f.messages {
		out[k] = v
	}
	return out
}

// Cast converts a raw field string according to its JSON-Schema type tag.
//
//   - number, integer: float64; empty is 0 and unparseable text is NaN
//   - boolean: true for any non-empty string
//   - anything else: the raw string
func Cast(raw, typ string) any {
	switch typ {
	case config.TypeNumber, config.TypeInteger:
		s := strings.TrimSpace(raw)
		if s == "" {
			return 0.0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case config.TypeBoolean:
		return raw != ""
	default:
		return raw
	}
}
