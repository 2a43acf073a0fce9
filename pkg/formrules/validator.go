package formrules

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/formrules/pkg/formrules/config"
	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
	"github.com/randalmurphal/formrules/pkg/formrules/observability"
	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
)

// compiledRule pairs a rule with the evaluator built for its options.
type compiledRule struct {
	rule      config.Rule
	evaluator ExpressionEvaluator
}

// Validator evaluates a schema's interproperty rules against a form.
//
// A Validator is immutable after New returns and is safe for concurrent use.
type Validator struct {
	schema *config.Schema
	rules  []compiledRule
	fields []string
	cfg    validatorConfig
}

// New checks the schema and builds one evaluator per rule.
//
// Errors are configuration errors: an undeclared property, an unknown
// expression type (*UnsupportedExpressionTypeError), or invalid rule options.
func New(schema *config.Schema, opts ...Option) (*Validator, error) {
	if schema == nil {
		return nil, frerrors.Configuration(ErrNilSchema, "new validator")
	}
	if err := schema.Check(); err != nil {
		return nil, frerrors.Configuration(err, "new validator")
	}

	cfg := defaultValidatorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	types := defaultExpressionTypes(cfg.postfixOptions)
	types.RegisterMany(cfg.expressionTypes)

	v := &Validator{schema: schema, cfg: cfg}
	seen := make(map[string]bool)
	for i, rule := range schema.InterpropertyExpressions {
		factory, ok := types.Get(rule.ExpressionType)
		if !ok {
			err := &UnsupportedExpressionTypeError{
				Type:       rule.ExpressionType,
				Suggestion: closestType(rule.ExpressionType, types.Keys()),
			}
			return nil, frerrors.Configuration(err, fmt.Sprintf("rule %d", i))
		}
		evaluator, err := factory(config.NewOptions(rule.Options))
		if err != nil {
			return nil, frerrors.Configuration(err, fmt.Sprintf("rule %d", i))
		}
		v.rules = append(v.rules, compiledRule{rule: rule, evaluator: evaluator})

		for _, name := range rule.Properties {
			if !seen[name] {
				seen[name] = true
				v.fields = append(v.fields, name)
			}
		}
	}
	return v, nil
}

// Schema returns the schema the validator was built from.
func (v *Validator) Schema() *config.Schema {
	return v.schema
}

// Fields returns the fields that display rule messages, in rule order.
func (v *Validator) Fields() []string {
	return slices.Clone(v.fields)
}

// Variables extracts every declared property from form and casts it by its
// type. Absent fields read as the empty string.
func (v *Validator) Variables(form Form) map[string]any {
	vars := make(map[string]any, len(v.schema.Properties))
	for name, prop := range v.schema.Properties {
		raw, _ := form.Value(name)
		vars[name] = Cast(raw, prop.Type)
	}
	return vars
}

// Validate runs one validation pass: every rule is evaluated in order and
// each listed field gets the message of the first rule that failed for it.
// Fields whose rules all pass are cleared.
//
// Evaluation errors abort the pass as data errors wrapping *RuleError,
// unless WithDegradeOnError was given. A done ctx aborts it with a data
// error wrapping ctx.Err(). On abort the form is left untouched.
func (v *Validator) Validate(ctx context.Context, form Form) (*Report, error) {
	if form == nil {
		return nil, ErrNilForm
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	logger := observability.EnrichLogger(v.cfg.logger, runID, v.cfg.formID)
	ctx, span := v.cfg.spans.StartValidationSpan(ctx, v.cfg.formID, runID)
	start := time.Now()
	elapsed := observability.TimedOperation()

	observability.LogValidationStart(logger, len(v.rules))

	vars := v.Variables(form)
	report := &Report{
		RunID:    runID,
		Results:  make([]RuleResult, 0, len(v.rules)),
		Messages: make(map[string]string),
	}

	for i, cr := range v.rules {
		if err := ctx.Err(); err != nil {
			return v.abort(span, logger, start, elapsed, frerrors.Data(err, "validate"))
		}

		result, err := v.evaluateRule(ctx, i, cr, vars, logger)
		if err != nil {
			return v.abort(span, logger, start, elapsed, frerrors.Data(err, "validate"))
		}
		report.Results = append(report.Results, result)

		if result.Valid {
			continue
		}
		for _, name := range cr.rule.Properties {
			if _, failed := report.Messages[name]; !failed {
				report.Messages[name] = messageOrDefault(cr.rule.Message)
			}
		}
	}

	for _, name := range v.fields {
		form.SetValidity(name, report.Messages[name])
	}

	v.cfg.metrics.RecordValidation(ctx, report.Valid(), time.Since(start))
	observability.LogValidationComplete(logger, elapsed(), len(report.Messages))
	v.cfg.spans.EndSpanWithError(span, nil)
	return report, nil
}

// evaluateRule evaluates a single rule. The returned error is non-nil only
// when the pass must abort.
func (v *Validator) evaluateRule(ctx context.Context, index int, cr compiledRule, vars map[string]any, logger *slog.Logger) (RuleResult, error) {
	ruleCtx, span := v.cfg.spans.StartRuleSpan(ctx, index, cr.rule.ExpressionType)
	start := time.Now()

	value, err := cr.evaluator.Evaluate(cr.rule.Expression, vars)
	valid := err == nil && postfix.IsTruthy(value)
	v.cfg.metrics.RecordRuleEvaluation(ruleCtx, cr.rule.ExpressionType, time.Since(start), valid, err)

	result := RuleResult{
		Index:      index,
		Expression: cr.rule.Expression,
		Value:      value,
		Valid:      valid,
		Properties: slices.Clone(cr.rule.Properties),
	}

	if err != nil {
		ruleErr := &RuleError{Index: index, Expression: cr.rule.Expression, Err: err}
		observability.LogRuleError(logger, index, cr.rule.Expression, err, v.cfg.degradeOnError)
		v.cfg.spans.EndSpanWithError(span, ruleErr)
		if !v.cfg.degradeOnError {
			return RuleResult{}, ruleErr
		}
		result.Err = ruleErr
		return result, nil
	}

	observability.LogRuleResult(logger, index, cr.rule.Expression, value, valid)
	v.cfg.spans.AddSpanEvent(ruleCtx, "rule.evaluated", attribute.Bool("valid", valid))
	v.cfg.spans.EndSpanWithError(span, nil)
	return result, nil
}

// abort ends a pass that could not complete.
func (v *Validator) abort(span trace.Span, logger *slog.Logger, start time.Time, elapsed func() float64, err error) (*Report, error) {
	v.cfg.metrics.RecordValidation(context.Background(), false, time.Since(start))
	observability.LogValidationError(logger, err, elapsed())
	v.cfg.spans.EndSpanWithError(span, err)
	return nil, err
}
