package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
	"pdbstore/internal/services"
)

func newCountsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show the number of rows in each table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			loader := services.NewLoaderService(
				repositories.NewCorrespondenceRepository(pool),
				repositories.NewCoordinateRepository(pool),
			)
			counts, err := loader.Counts(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), counts)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TABLE\tROWS")
			for _, table := range models.Tables() {
				_, _ = fmt.Fprintf(tw, "%s\t%d\n", table.Name, counts[table.Name])
			}
			return tw.Flush()
		},
	}
}
