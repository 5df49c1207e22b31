package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
	"pdbstore/internal/services"
)

var loadTargets = map[string]string{
	"correspondence": models.CorrespondenceTable.Name,
	"coordinates":    models.CoordinateTable.Name,
}

func newLoadCmd(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:       "load correspondence|coordinates FILE",
		Short:     "Bulk load a CSV export into a table",
		Long:      "Bulk load a CSV file with a header row of column names. \\N marks NULL. The load is atomic: either every row is stored or none is.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"correspondence", "coordinates"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table, ok := loadTargets[args[0]]
			if !ok {
				return fmt.Errorf("unknown table %q: use correspondence or coordinates", args[0])
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			loader := services.NewLoaderService(
				repositories.NewCorrespondenceRepository(pool),
				repositories.NewCoordinateRepository(pool),
			)

			result, err := loader.LoadCSV(cmd.Context(), table, f, replace)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d row(s) into %s in %dms\n", result.Rows, result.Table, result.DurationMS)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Empty the table before loading")

	return cmd
}
