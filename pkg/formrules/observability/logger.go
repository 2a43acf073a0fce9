// Package observability provides structured logging, metrics, and tracing
// for form validation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds validation context to a logger.
// Returns a new logger with run_id and form_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123", "signup")
//	enriched.Info("validating") // includes run_id, form_id
func EnrichLogger(logger *slog.Logger, runID, formID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("form_id", formID),
	)
}

// LogValidationStart logs the start of a validation pass.
func LogValidationStart(logger *slog.Logger, ruleCount int) {
	if logger == nil {
		return
	}
	logger.Debug("validation starting",
		slog.Int("rules", ruleCount),
	)
}

// LogValidationComplete logs a finished validation pass.
func LogValidationComplete(logger *slog.Logger, durationMs float64, invalidFields int) {
	if logger == nil {
		return
	}
	logger.Info("validation completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("invalid_fields", invalidFields),
		slog.Bool("valid", invalidFields == 0),
	)
}

// LogValidationError logs a validation pass that was aborted.
func LogValidationError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("validation failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRuleResult logs the outcome of one rule.
func LogRuleResult(logger *slog.Logger, index int, expression string, value any, valid bool) {
	if logger == nil {
		return
	}
	logger.Debug("rule evaluated",
		slog.Int("rule", index),
		slog.String("expression", expression),
		slog.Any("value", value),
		slog.Bool("valid", valid),
	)
}

// LogRuleError logs a malformed rule evaluation. degraded reports whether
// it was turned into a validation failure instead of aborting the pass.
func LogRuleError(logger *slog.Logger, index int, expression string, err error, degraded bool) {
	if logger == nil {
		return
	}
	logger.Warn("rule evaluation error",
		slog.Int("rule", index),
		slog.String("expression", expression),
		slog.String("error", err.Error()),
		slog.Bool("degraded", degraded),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
