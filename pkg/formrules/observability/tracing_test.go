package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a test tracer provider with an in-memory exporter.
func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("formrules")

	t.Cleanup(func() {
		otel.SetTracerProvider(originalProvider)
		tracer = otel.Tracer("formrules")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})
	return exporter
}

func TestStartValidationSpan(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	_, span := sm.StartValidationSpan(context.Background(), "signup", "run-1")
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "formrules.validate", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)

	attrs := map[attribute.Key]string{}
	for _, attr := range s.Attributes {
		attrs[attr.Key] = attr.Value.Emit()
	}
	assert.Equal(t, "signup", attrs["form.id"])
	assert.Equal(t, "run-1", attrs["run.id"])
}

func TestStartRuleSpan_IsChild(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	ctx, parent := sm.StartValidationSpan(context.Background(), "signup", "run-2")
	ruleCtx, child := sm.StartRuleSpan(ctx, 3, "postfix")
	sm.AddSpanEvent(ruleCtx, "evaluated", attribute.Bool("valid", false))
	sm.EndSpanWithError(child, errors.New("leftover operands"))
	sm.EndSpanWithError(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	rule := spans[0]
	assert.Equal(t, "formrules.rule.3", rule.Name)
	assert.Equal(t, codes.Error, rule.Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), rule.Parent.SpanID())
	require.Len(t, rule.Events, 2) // "evaluated" plus the recorded error
	assert.Equal(t, "evaluated", rule.Events[0].Name)
}

func TestEndSpanWithError_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSpanManager().EndSpanWithError(nil, errors.New("x"))
	})
}

func TestNoopImplementations(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	var sm SpanManager = NoopSpanManager{}

	assert.NotPanics(t, func() {
		m.RecordRuleEvaluation(context.Background(), "postfix", 0, true, nil)
		m.RecordValidation(context.Background(), false, 0)

		ctx := context.Background()
		got, span := sm.StartValidationSpan(ctx, "f", "r")
		assert.Equal(t, ctx, got)
		_, span = sm.StartRuleSpan(got, 0, "postfix")
		sm.AddSpanEvent(got, "event")
		sm.EndSpanWithError(span, errors.New("x"))
	})
}
