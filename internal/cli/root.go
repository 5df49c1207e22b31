// Package cli implements pdbctl, the operator command line for the PDB
// tables: schema management, bulk loads, lookups and token minting.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pdbstore/internal/config"
	"pdbstore/internal/database"
	"pdbstore/internal/logging"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if getOutputFormat(rootCmd) == "json" {
			_ = printJSON(os.Stdout, map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app holds what the subcommands share: the env file to read and a lazily
// opened connection pool.
type app struct {
	envFile string
	cfg     *config.Config
	pool    *pgxpool.Pool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		output   string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:           "pdbctl",
		Short:         "Manage the PDB unit id correspondence and coordinate tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}
			if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to read %s: %w", a.envFile, err)
			}
			if !cmd.Flags().Changed("log-level") {
				if v := os.Getenv("LOG_LEVEL"); v != "" {
					logLevel = v
				}
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logging.ParseLevel(logLevel),
			})))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.pool != nil {
				a.pool.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file to read before the process environment")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSchemaCmd(a))
	rootCmd.AddCommand(newLoadCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newCountsCmd(a))
	rootCmd.AddCommand(newUnitCmd())

	return rootCmd
}

// connect loads the configuration and opens the pool on first use.
func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return nil, err
	}
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.RedactedDSN(), err)
	}

	a.cfg = cfg
	a.pool = pool
	return pool, nil
}

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
