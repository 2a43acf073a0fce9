package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/randalmurphal/formrules/pkg/formrules"
	"github.com/randalmurphal/formrules/pkg/formrules/config"
	"github.com/randalmurphal/formrules/pkg/formrules/store"
)

// buildSchema returns a schema with n pairwise ordering rules.
func buildSchema(n int) (*config.Schema, map[string]string) {
	schema := &config.Schema{Properties: map[string]config.Property{}}
	values := map[string]string{}
	for i := 0; i < n; i++ {
		lo, hi := fmt.Sprintf("lo%d", i), fmt.Sprintf("hi%d", i)
		schema.Properties[lo] = config.Property{Type: config.TypeNumber}
		schema.Properties[hi] = config.Property{Type: config.TypeNumber}
		schema.InterpropertyExpressions = append(schema.InterpropertyExpressions, config.Rule{
			ExpressionType: formrules.ExpressionTypePostfix,
			Expression:     fmt.Sprintf("{%s} {%s} ≤", lo, hi),
			Message:        "out of order",
			Properties:     []string{lo, hi},
		})
		values[lo] = fmt.Sprint(i)
		values[hi] = fmt.Sprint(i + i%2)
	}
	return schema, values
}

// BenchmarkValidate_10 runs a pass over 10 rules.
func BenchmarkValidate_10(b *testing.B) {
	benchmarkValidate(b, 10)
}

// BenchmarkValidate_100 runs a pass over 100 rules.
func BenchmarkValidate_100(b *testing.B) {
	benchmarkValidate(b, 100)
}

func benchmarkValidate(b *testing.B, n int) {
	schema, values := buildSchema(n)
	v, err := formrules.New(schema)
	if err != nil {
		b.Fatal(err)
	}
	form := formrules.NewMapForm(values)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = v.Validate(ctx, form)
	}
}

// BenchmarkSchema_StoreRoundTrip encodes, stores, loads, and decodes a schema.
func BenchmarkSchema_StoreRoundTrip(b *testing.B) {
	schema, _ := buildSchema(20)
	st := store.NewMemoryStore()
	defer st.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := store.PutSchema(st, "bench", schema); err != nil {
			b.Fatal(err)
		}
		sink, _ = store.GetSchema(st, "bench")
	}
}

// BenchmarkSchema_SQLiteSave measures SQLite writes.
func BenchmarkSchema_SQLiteSave(b *testing.B) {
	schema, _ := buildSchema(20)
	data, err := schema.MarshalBinary()
	if err != nil {
		b.Fatal(err)
	}
	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer st.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Save("bench", data)
	}
}
