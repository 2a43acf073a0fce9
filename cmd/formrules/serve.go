package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/formrules/pkg/formrules"
	"github.com/randalmurphal/formrules/pkg/formrules/server"
	"github.com/randalmurphal/formrules/pkg/formrules/store"
)

func newServeCmd() *cobra.Command {
	var (
		addr    string
		dbPath  string
		degrade bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schema storage and validation over HTTP",
		Example: `  formrules serve --addr :8080 --db forms.db
  curl -X PUT --data-binary @signup.yaml localhost:8080/forms/signup
  curl -d '{"values":{"password":"a","confirmationPassword":"b"}}' localhost:8080/forms/signup/validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))

			st, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			validatorOpts := []formrules.Option{
				formrules.WithLogger(logger),
				formrules.WithMetrics(),
				formrules.WithTracing(),
			}
			if degrade {
				validatorOpts = append(validatorOpts, formrules.WithDegradeOnError())
			}
			srv := server.New(st,
				server.WithLogger(logger),
				server.WithValidatorOptions(validatorOpts...),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: in-memory store)")
	cmd.Flags().BoolVar(&degrade, "degrade", false, "Treat malformed expressions as failed rules")
	return cmd
}

// openStore opens a SQLite store at path, or a memory store when path is empty.
func openStore(path string) (store.Store, error) {
	if path == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
