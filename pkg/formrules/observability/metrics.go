package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records validation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRuleEvaluation records one rule evaluation.
	RecordRuleEvaluation(ctx context.Context, expressionType string, duration time.Duration, valid bool, err error)

	// RecordValidation records a complete validation pass.
	RecordValidation(ctx context.Context, valid bool, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	ruleEvaluations   metric.Int64Counter
	ruleErrors        metric.Int64Counter
	ruleLatency       metric.Float64Histogram
	validationRuns    metric.Int64Counter
	validationLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("formrules")

	ruleEvaluations, err := meter.Int64Counter("formrules.rule.evaluations",
		metric.WithDescription("Number of rule evaluations"),
	)
	if err != nil {
		return nil, err
	}

	ruleErrors, err := meter.Int64Counter("formrules.rule.errors",
		metric.WithDescription("Number of malformed rule evaluations"),
	)
	if err != nil {
		return nil, err
	}

	ruleLatency, err := meter.Float64Histogram("formrules.rule.latency_ms",
		metric.WithDescription("Rule evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	validationRuns, err := meter.Int64Counter("formrules.validation.runs",
		metric.WithDescription("Number of validation passes"),
	)
	if err != nil {
		return nil, err
	}

	validationLatency, err := meter.Float64Histogram("formrules.validation.latency_ms",
		metric.WithDescription("Validation pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		ruleEvaluations:   ruleEvaluations,
		ruleErrors:        ruleErrors,
		ruleLatency:       ruleLatency,
		validationRuns:    validationRuns,
		validationLatency: validationLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRuleEvaluation records a rule evaluation.
func (m *otelMetrics) RecordRuleEvaluation(ctx context.Context, expressionType string, duration time.Duration, valid bool, err error) {
	attrs := metric.WithAttributes(
		attribute.String("expression_type", expressionType),
		attribute.Bool("valid", valid),
	)

	m.ruleEvaluations.Add(ctx, 1, attrs)
	m.ruleLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.ruleErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("expression_type", expressionType),
		))
	}
}

// RecordValidation records a validation pass.
func (m *otelMetrics) RecordValidation(ctx context.Context, valid bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("valid", valid))
	m.validationRuns.Add(ctx, 1, attrs)
	m.validationLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}
