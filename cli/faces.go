package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/tuckbox/dieline"
	"github.com/ByLCY/tuckbox/units"
)

func newFacesCmd() *cobra.Command {
	var unitName string

	cmd := &cobra.Command{
		Use:   "faces [box-file]",
		Short: "Show printable face dimensions for artwork",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			u, err := units.Parse(unitName)
			if err != nil {
				return err
			}
			box, baseDir, err := loadBox(path)
			if err != nil {
				return err
			}
			o, err := box.Resolve(baseDir)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(dieline.Faces()))
			for _, face := range dieline.Faces() {
				w, h, err := dieline.FaceDimensions(face, o.Size, o.Thickness, o.Safe)
				if err != nil {
					return err
				}
				wu, _ := units.FromPoints(w, u)
				hu, _ := units.FromPoints(h, u)
				content := "-"
				if p, ok := o.Faces[face]; ok && (p.Text != "" || p.Image != nil) {
					content = "✓"
				}
				rows = append(rows, []string{face.String(), fmt.Sprintf("%.3f", wu), fmt.Sprintf("%.3f", hu), content})
			}
			printTable(cmd.OutOrStdout(), box.Title, []string{"face", "width (" + u.String() + ")", "height (" + u.String() + ")", "content"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&unitName, "units", "u", "in", "display unit: in, cm, mm, pt, px, dots")
	return cmd
}
