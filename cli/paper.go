package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/tuckbox/paper"
	"github.com/ByLCY/tuckbox/units"
)

func newPaperCmd() *cobra.Command {
	var unitName, orientation string

	cmd := &cobra.Command{
		Use:   "paper",
		Short: "List supported paper formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := units.Parse(unitName)
			if err != nil {
				return err
			}
			o, err := paper.ParseOrientation(orientation)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, name := range paper.Formats() {
				p, err := paper.Size(name, u, o)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, fmt.Sprintf("%g", p.Width), fmt.Sprintf("%g", p.Height), p.Details()})
			}
			printTable(cmd.OutOrStdout(), "", []string{"format", "width", "height", "details"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&unitName, "units", "u", "in", "unit: in, cm, mm, pt, px, dots")
	cmd.Flags().StringVar(&orientation, "orientation", "landscape", "portrait or landscape")
	return cmd
}
