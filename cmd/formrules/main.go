// Command formrules evaluates postfix expressions and validates form values
// against interproperty rule schemas.
//
// Usage:
//
//	formrules eval "{a} {b} -" --var a=4 --var b=3
//	formrules validate signup.yaml --values values.yaml [--watch]
//	formrules repl
//	formrules serve --addr :8080 --db forms.db
//	formrules store put signup signup.yaml --db forms.db
//
// Exit codes: 0 valid, 1 invalid form, 2 data error, 3 configuration error.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
)

// Exit codes.
const (
	exitOK            = 0
	exitInvalid       = 1
	exitDataError     = 2
	exitConfiguration = 3
)

// errInvalidForm is returned when validation completed and found failures.
var errInvalidForm = errors.New("form is invalid")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	noColor bool
	verbose bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidForm) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "formrules",
		Short:         "Evaluate and validate interproperty form rules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log validation details to stderr")

	root.AddCommand(
		newEvalCmd(),
		newValidateCmd(flags),
		newReplCmd(),
		newServeCmd(),
		newStoreCmd(),
	)
	return root
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalidForm):
		return exitInvalid
	case frerrors.IsData(err):
		return exitDataError
	default:
		return exitConfiguration
	}
}

// newLogger returns a debug text logger on w when verbose, or nil.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
