package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
	"github.com/randalmurphal/formrules/pkg/formrules/template"
)

// evalFlags holds the evaluator settings shared by eval and repl.
type evalFlags struct {
	vars    []string
	start   string
	end     string
	delim   string
	missing string
	explain bool
	trace   bool
}

func (f *evalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "Variable binding name=value (repeatable)")
	cmd.Flags().StringVar(&f.start, "start", template.DefaultStartDelimiter, "Variable start delimiter")
	cmd.Flags().StringVar(&f.end, "end", template.DefaultEndDelimiter, "Variable end delimiter")
	cmd.Flags().StringVar(&f.delim, "delim", postfix.DefaultTokenDelimiter, "Token delimiter")
	cmd.Flags().StringVar(&f.missing, "missing", "error", "Missing variable policy: error, empty or keep")
}

// options converts the flags into evaluator options.
func (f *evalFlags) options() ([]postfix.Option, error) {
	action, ok := template.ParseMissingAction(f.missing)
	if !ok {
		return nil, frerrors.Configuration(fmt.Errorf("invalid --missing value %q", f.missing), "eval")
	}
	return []postfix.Option{
		postfix.WithDelimiters(f.start, f.end),
		postfix.WithTokenDelimiter(f.delim),
		postfix.WithMissingAction(action),
	}, nil
}

// parseVars turns name=value pairs into a variable map. Values stay strings.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, frerrors.Configuration(fmt.Errorf("invalid variable %q, want name=value", p), "eval")
		}
		vars[name] = value
	}
	return vars, nil
}

func newEvalCmd() *cobra.Command {
	f := &evalFlags{}

	cmd := &cobra.Command{
		Use:   "eval EXPRESSION",
		Short: "Evaluate a postfix expression",
		Example: `  formrules eval "{a} {b} -" --var a=4 --var b=3
  formrules eval "[start],[end],<" --start "[" --end "]" --delim "," --var start=2024-01-01 --var end=2024-02-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), args[0], f)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.explain, "explain", false, "Print the substituted expression and its tokens")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "Print every stack step")
	return cmd
}

func runEval(w io.Writer, expr string, f *evalFlags) error {
	vars, err := parseVars(f.vars)
	if err != nil {
		return err
	}
	opts, err := f.options()
	if err != nil {
		return err
	}
	if f.trace {
		opts = append(opts, postfix.WithTrace(func(s postfix.Step) {
			printStep(w, s)
		}))
	}

	ev := postfix.New(opts...)
	if f.explain {
		if err := explain(w, ev, expr, vars); err != nil {
			return frerrors.Data(err, "eval")
		}
	}

	value, err := ev.Evaluate(expr, vars)
	if err != nil {
		return frerrors.Data(err, "eval")
	}
	fmt.Fprintln(w, postfix.FormatOperand(value))
	return nil
}

// explain prints the expression after substitution followed by its tokens.
func explain(w io.Writer, ev *postfix.Evaluator, expr string, vars map[string]any) error {
	cfg := ev.Config()
	expanded, err := template.NewExpander(
		template.WithDelimiters(cfg.VariableStartDelimiter, cfg.VariableEndDelimiter),
		template.WithMissingAction(cfg.MissingAction),
	).Expand(expr, vars)
	if err != nil {
		return err
	}
	dimColor.Fprintf(w, "expanded: %s\n", expanded)

	for tok, err := range ev.Tokens(expr, vars) {
		if err != nil {
			return err
		}
		dimColor.Fprintf(w, "  %2d %-8s %s\n", tok.Position, tok.Kind, tokenText(tok))
	}
	return nil
}

func tokenText(tok postfix.Token) string {
	if tok.Kind == postfix.TokenVariable {
		return fmt.Sprintf("%s = %q", tok.Text, postfix.FormatOperand(tok.Value))
	}
	return tok.Text
}

func printStep(w io.Writer, s postfix.Step) {
	if s.Token.Kind == postfix.TokenOperator {
		dimColor.Fprintf(w, "  %s %s %s → %s  [depth %d]\n",
			postfix.FormatOperand(s.Operands[0]), s.Token.Text, postfix.FormatOperand(s.Operands[1]),
			postfix.FormatOperand(s.Pushed), s.Depth)
		return
	}
	dimColor.Fprintf(w, "  push %s  [depth %d]\n", postfix.FormatOperand(s.Pushed), s.Depth)
}
