package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/formrules/pkg/formrules"
	"github.com/randalmurphal/formrules/pkg/formrules/config"
	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
	"github.com/randalmurphal/formrules/pkg/formrules/store"
)

func newStoreCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage schemas in a SQLite store",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "formrules.db", "SQLite database path")

	withStore := func(fn func(cmd *cobra.Command, st store.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(dbPath)
			if err != nil {
				return frerrors.Configuration(err, "open store")
			}
			defer st.Close()
			return fn(cmd, st, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "put ID SCHEMA",
			Short: "Check a schema file and store it under ID",
			Args:  cobra.ExactArgs(2),
			RunE: withStore(func(cmd *cobra.Command, st store.Store, args []string) error {
				schema, err := config.FromFile(args[1])
				if err != nil {
					return frerrors.Configuration(err, args[1])
				}
				if _, err := formrules.New(schema); err != nil {
					return err
				}
				if err := store.PutSchema(st, args[0], schema); err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Print a stored schema as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, st store.Store, args []string) error {
				schema, err := store.GetSchema(st, args[0])
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(schema, "", "  ")
				if err != nil {
					return fmt.Errorf("encode schema: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored forms",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, st store.Store, args []string) error {
				infos, err := st.List()
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tREVISION\tUPDATED\tSIZE")
				for _, info := range infos {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", info.FormID, info.Revision, info.UpdatedAt.Format(time.RFC3339), info.Size)
				}
				return tw.Flush()
			}),
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a stored form",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, st store.Store, args []string) error {
				if err := st.Delete(args[0]); err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			}),
		},
	)
	return cmd
}
