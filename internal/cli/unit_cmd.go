package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pdbstore/internal/unitid"
)

func newUnitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unit UNIT_ID",
		Short: "Split a unit id into its fields",
		Example: `  pdbctl unit "1S72|1|0|U|55"
  pdbctl unit -o json "2AVY|1|A|G|10|||B"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := unitid.Parse(args[0])
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), u)
			}

			symmetry := u.Symmetry
			if symmetry == "" {
				symmetry = unitid.DefaultSymmetry
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, row := range [][2]string{
				{"pdb", u.PDB},
				{"model", strconv.Itoa(u.Model)},
				{"chain", u.Chain},
				{"comp_id", u.CompID},
				{"number", strconv.Itoa(u.Number)},
				{"atom", u.Atom},
				{"alt_id", u.AltID},
				{"ins_code", u.InsCode},
				{"symmetry", symmetry},
			} {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
			}
			return tw.Flush()
		},
	}
}
