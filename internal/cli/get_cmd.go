package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pdbstore/internal/repositories"
	"pdbstore/internal/services"
)

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch a single row by primary key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "correspondence ID",
		Short: "Fetch a unit id correspondence row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := services.NewCorrespondenceService(repositories.NewCorrespondenceRepository(pool)).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "coordinate ID",
		Short: "Fetch a coordinate row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := services.NewCoordinateService(repositories.NewCoordinateRepository(pool)).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	})

	return cmd
}
