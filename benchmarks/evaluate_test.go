package benchmarks

import (
	"strings"
	"testing"

	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
)

var sink any

// chain builds "{v} 1 + 1 + ..." with n operators.
func chain(n int) string {
	var b strings.Builder
	b.WriteString("{v}")
	for i := 0; i < n; i++ {
		b.WriteString(" 1 +")
	}
	return b.String()
}

// BenchmarkEvaluate_Equality evaluates a two-variable comparison.
func BenchmarkEvaluate_Equality(b *testing.B) {
	ev := postfix.New()
	vars := map[string]any{"password": "hunter2", "confirmationPassword": "hunter2"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = ev.Evaluate("{password} {confirmationPassword} =", vars)
	}
}

// BenchmarkEvaluate_Chain_10 evaluates a 10-operator chain.
func BenchmarkEvaluate_Chain_10(b *testing.B) {
	benchmarkChain(b, 10)
}

// BenchmarkEvaluate_Chain_100 evaluates a 100-operator chain.
func BenchmarkEvaluate_Chain_100(b *testing.B) {
	benchmarkChain(b, 100)
}

// BenchmarkEvaluate_Chain_1000 evaluates a 1000-operator chain.
func BenchmarkEvaluate_Chain_1000(b *testing.B) {
	benchmarkChain(b, 1000)
}

func benchmarkChain(b *testing.B, n int) {
	ev := postfix.New()
	expr := chain(n)
	vars := map[string]any{"v": 0.0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = ev.Evaluate(expr, vars)
	}
}

// BenchmarkEvaluate_CustomDelimiters uses multi-character delimiters.
func BenchmarkEvaluate_CustomDelimiters(b *testing.B) {
	ev := postfix.New(postfix.WithDelimiters("${", "}"), postfix.WithTokenDelimiter(", "))
	vars := map[string]any{"a": "4", "b": "3"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = ev.Evaluate("${a}, ${b}, -, 0, >", vars)
	}
}

// BenchmarkEvaluate_Error measures the leftover-operand error path.
func BenchmarkEvaluate_Error(b *testing.B) {
	ev := postfix.New()
	vars := map[string]any{"a": "1", "b": "2"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ev.Evaluate("{a} {b}", vars)
		sink = err
	}
}

// BenchmarkNew measures resolving the operator table.
func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sink = postfix.New()
	}
}
