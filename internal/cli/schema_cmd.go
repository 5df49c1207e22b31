package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pdbstore/internal/database"
	"pdbstore/internal/repositories"
	"pdbstore/internal/services"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create, inspect and verify the tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create the tables and indexes if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := database.ApplySchema(cmd.Context(), pool); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the DDL statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), services.NewSchemaService(nil, "").Definitions())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(database.Statements(), "\n"))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "diagram",
		Short: "Print a Mermaid ER diagram of the tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), services.NewSchemaService(nil, "").Diagram())
			return err
		},
	})

	var schemaName string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Compare the live database with the table definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			svc := services.NewSchemaService(repositories.NewSchemaRepository(pool), schemaName)
			report, err := svc.Verify(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				for _, issue := range report.Issues {
					target := issue.Table
					if issue.Column != "" {
						target += "." + issue.Column
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", target, issue.Problem)
				}
			}

			if !report.OK {
				return fmt.Errorf("schema %s has %d issue(s)", report.Schema, len(report.Issues))
			}
			if getOutputFormat(cmd) != "json" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema %s matches\n", report.Schema)
			}
			return nil
		},
	}
	verify.Flags().StringVar(&schemaName, "schema", "public", "Database schema to inspect")
	cmd.AddCommand(verify)
	cmd.AddCommand(newSchemaDropCmd(a))

	return cmd
}

func newSchemaDropCmd(a *app) *cobra.Command {
	var yes bool

	drop := &cobra.Command{
		Use:   "drop",
		Short: "Drop both tables and all their rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop tables without --yes")
			}
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := database.DropSchema(cmd.Context(), pool); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schema dropped")
			return nil
		},
	}
	drop.Flags().BoolVar(&yes, "yes", false, "confirm dropping the tables")
	return drop
}
