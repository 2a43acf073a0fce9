package formrules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCast(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  string
		want any
	}{
		{"number", "4", "number", 4.0},
		{"integer", "18", "integer", 18.0},
		{"number with spaces", " 2.5 ", "number", 2.5},
		{"empty number is zero", "", "number", 0.0},
		{"boolean non-empty", "on", "boolean", true},
		{"boolean empty", "", "boolean", false},
		{"string", "hunter2", "string", "hunter2"},
		{"untyped", "2024-01-01", "", "2024-01-01"},
		{"unknown type", "x", "object", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cast(tt.raw, tt.typ))
		})
	}
}

func TestCast_UnparseableNumberIsNaN(t *testing.T) {
	got, ok := Cast("abc", "number").(float64)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(got))
}

func TestMapForm(t *testing.T) {
	values := map[string]string{"a": "1"}
	f := NewMapForm(values)
	values["a"] = "changed"

	v, ok := f.Value("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = f.Value("missing")
	assert.False(t, ok)

	f.Set("a", "2")
	v, _ = f.Value("a")
	assert.Equal(t, "2", v)

	f.SetValidity("a", "bad")
	assert.Equal(t, "bad", f.Message("a"))
	assert.Equal(t, map[string]string{"a": "bad"}, f.Messages())

	f.SetValidity("a", "")
	assert.Empty(t, f.Message("a"))
	assert.Empty(t, f.Messages())
}

func TestClosestType(t *testing.T) {
	types := []string{"postfix", "regex"}

	assert.Equal(t, "postfix", closestType("posfix", types))
	assert.Equal(t, "postfix", closestType("POSTFIX", types))
	assert.Equal(t, "", closestType("infix", types))
	assert.Equal(t, "", closestType("postfix", nil))
}

func TestWithExpressionType_IgnoresEmpty(t *testing.T) {
	cfg := defaultValidatorConfig()
	WithExpressionType("", PostfixFactory())(&cfg)
	WithExpressionType("custom", nil)(&cfg)
	assert.Empty(t, cfg.expressionTypes)
}

func TestWithMetricsRecorder_NilIsNoop(t *testing.T) {
	cfg := defaultValidatorConfig()
	WithMetricsRecorder(nil)(&cfg)
	WithSpanManager(nil)(&cfg)
	assert.NotNil(t, cfg.metrics)
	assert.NotNil(t, cfg.spans)
}
