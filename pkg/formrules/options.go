package formrules

import (
	"log/slog"

	"github.com/randalmurphal/formrules/pkg/formrules/observability"
	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
)

// validatorConfig holds configuration for a Validator.
type validatorConfig struct {
	formID          string
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	degradeOnError  bool
	postfixOptions  []postfix.Option
	expressionTypes map[string]EvaluatorFactory
}

// defaultValidatorConfig returns the default configuration.
// Observability is off until enabled with an option.
func defaultValidatorConfig() validatorConfig {
	return validatorConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Validator.
type Option func(*validatorConfig)

// WithFormID names the form in logs and spans.
func WithFormID(id string) Option {
	return func(c *validatorConfig) {
		c.formID = id
	}
}

// WithLogger enables structured logging. A nil logger disables it.
//
// Example:
//
//	v, err := formrules.New(schema, formrules.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(c *validatorConfig) {
		c.logger = logger
	}
}

// WithMetrics records OpenTelemetry metrics through the global meter provider.
func WithMetrics() Option {
	return WithMetricsRecorder(observability.NewMetricsRecorder())
}

// WithMetricsRecorder sets the metrics recorder. A nil recorder disables metrics.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *validatorConfig) {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		c.metrics = m
	}
}

// WithTracing creates OpenTelemetry spans through the global tracer provider.
func WithTracing() Option {
	return WithSpanManager(observability.NewSpanManager())
}

// WithSpanManager sets the span manager. A nil manager disables tracing.
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *validatorConfig) {
		if s == nil {
			s = observability.NoopSpanManager{}
		}
		c.spans = s
	}
}

// WithDegradeOnError turns malformed expressions into failed rules instead
// of aborting the pass. The failure is logged as a warning.
//
// Default: evaluation errors are returned from Validate.
func WithDegradeOnError() Option {
	return func(c *validatorConfig) {
		c.degradeOnError = true
	}
}

// WithEvaluatorOptions applies opts to every postfix rule, before the
// rule's own options. Use it to register custom operators.
func WithEvaluatorOptions(opts ...postfix.Option) Option {
	return func(c *validatorConfig) {
		c.postfixOptions = append(c.postfixOptions, opts...)
	}
}

// WithExpressionType registers an evaluator factory for an expression type,
// replacing any built-in with the same name.
func WithExpressionType(name string, factory EvaluatorFactory) Option {
	return func(c *validatorConfig) {
		if name == "" || factory == nil {
			return
		}
		if c.expressionTypes == nil {
			c.expressionTypes = make(map[string]EvaluatorFactory)
		}
		c.expressionTypes[name] = factory
	}
}
