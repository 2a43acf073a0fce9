package observability

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the formrules tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("formrules")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartValidationSpan starts a span for one validation pass.
	StartValidationSpan(ctx context.Context, formID, runID string) (context.Context, trace.Span)

	// StartRuleSpan starts a child span for a single rule.
	StartRuleSpan(ctx context.Context, index int, expressionType string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartValidationSpan starts a span for one validation pass.
func (m *otelSpanManager) StartValidationSpan(ctx context.Context, formID, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "formrules.validate",
		trace.WithAttributes(
			attribute.String("form.id", formID),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRuleSpan starts a span for one rule.
func (m *otelSpanManager) StartRuleSpan(ctx context.Context, index int, expressionType string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "formrules.rule."+strconv.Itoa(index),
		trace.WithAttributes(
			attribute.Int("rule.index", index),
			attribute.String("rule.expression_type", expressionType),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
