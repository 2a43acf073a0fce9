package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/formrules/pkg/formrules"
	"github.com/randalmurphal/formrules/pkg/formrules/config"
	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
)

type validateFlags struct {
	values  string
	formID  string
	watch   bool
	degrade bool
}

func newValidateCmd(global *globalFlags) *cobra.Command {
	f := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate SCHEMA",
		Short: "Validate field values against a rule schema",
		Long: `Validate loads a rule schema (YAML or JSON) and a flat map of raw field
values, runs one validation pass, and prints the message of every failing field.

With --watch the pass is repeated whenever either file changes.`,
		Example: `  formrules validate signup.yaml --values values.yaml
  formrules validate signup.json --values values.json --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), global.verbose)
			if f.watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return watchAndValidate(ctx, cmd.OutOrStdout(), args[0], f, logger)
			}
			_, err := validateOnce(cmd.Context(), cmd.OutOrStdout(), args[0], f, logger)
			return err
		},
	}

	cmd.Flags().StringVar(&f.values, "values", "", "YAML or JSON file of field values (required)")
	cmd.Flags().StringVar(&f.formID, "form-id", "", "Form name used in logs (default: schema file name)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Re-validate when the schema or values file changes")
	cmd.Flags().BoolVar(&f.degrade, "degrade", false, "Treat malformed expressions as failed rules")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

// validateOnce runs one pass and prints the report.
func validateOnce(ctx context.Context, w io.Writer, schemaPath string, f *validateFlags, logger *slog.Logger) (*formrules.Report, error) {
	schema, err := config.FromFile(schemaPath)
	if err != nil {
		return nil, frerrors.Configuration(err, schemaPath)
	}
	values, err := config.ValuesFromFile(f.values)
	if err != nil {
		return nil, frerrors.Configuration(err, f.values)
	}

	formID := f.formID
	if formID == "" {
		formID = schemaPath
	}
	opts := []formrules.Option{
		formrules.WithFormID(formID),
		formrules.WithLogger(logger),
	}
	if f.degrade {
		opts = append(opts, formrules.WithDegradeOnError())
	}

	v, err := formrules.New(schema, opts...)
	if err != nil {
		return nil, err
	}
	report, err := v.Validate(ctx, formrules.NewMapForm(values))
	if err != nil {
		return nil, err
	}

	printReport(w, report)
	if !report.Valid() {
		return report, fmt.Errorf("%w: %v", errInvalidForm, report.Err())
	}
	return report, nil
}
