package formrules

import (
	"fmt"
	"slices"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/randalmurphal/formrules/pkg/formrules/config"
	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
	"github.com/randalmurphal/formrules/pkg/formrules/registry"
	"github.com/randalmurphal/formrules/pkg/formrules/template"
)

// ExpressionTypePostfix is the built-in postfix expression type.
const ExpressionTypePostfix = "postfix"

// ExpressionEvaluator evaluates one rule expression against cast field values.
// *postfix.Evaluator satisfies it.
type ExpressionEvaluator interface {
	Evaluate(expression string, vars map[string]any) (any, error)
}

// EvaluatorFactory builds the evaluator for a rule from the rule's options.
type EvaluatorFactory func(opts config.Options) (ExpressionEvaluator, error)

// PostfixFactory returns a factory for postfix rules. base is applied
// before the rule's own options.
func PostfixFactory(base ...postfix.Option) EvaluatorFactory {
	return func(opts config.Options) (ExpressionEvaluator, error) {
		ruleOpts, err := PostfixOptions(opts)
		if err != nil {
			return nil, err
		}
		return postfix.New(append(slices.Clone(base), ruleOpts...)...), nil
	}
}

// PostfixOptions translates rule options into evaluator options.
func PostfixOptions(opts config.Options) ([]postfix.Option, error) {
	var out []postfix.Option

	start := opts.String(config.OptionVariableStartDelimiter, "")
	end := opts.String(config.OptionVariableEndDelimiter, "")
	if start != "" || end != "" {
		out = append(out, postfix.WithDelimiters(start, end))
	}
	if d := opts.String(config.OptionTokenDelimiter, ""); d != "" {
		out = append(out, postfix.WithTokenDelimiter(d))
	}
	if opts.Has(config.OptionMissingVariables) {
		name := opts.String(config.OptionMissingVariables, "")
		action, ok := template.ParseMissingAction(name)
		if !ok {
			return nil, fmt.Errorf("invalid %s option %q", config.OptionMissingVariables, name)
		}
		out = append(out, postfix.WithMissingAction(action))
	}
	return out, nil
}

// defaultExpressionTypes returns a fresh registry holding the built-in types.
func defaultExpressionTypes(base []postfix.Option) *registry.Registry[string, EvaluatorFactory] {
	r := registry.New[string, EvaluatorFactory]()
	r.Register(ExpressionTypePostfix, PostfixFactory(base...))
	return r
}

// closestType returns the registered type nearest to name, or "".
func closestType(name string, types []string) string {
	if len(types) == 0 {
		return ""
	}
	slices.Sort(types)
	ranks := fuzzy.RankFindFold(name, types)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}
