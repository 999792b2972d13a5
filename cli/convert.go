package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/tuckbox/units"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert <value> <to>",
		Short:   "Convert a length between units",
		Example: "  tuckbox convert 2.25in mm\n  tuckbox convert 300 dots pt",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, to := args[0], args[1]
			if len(args) == 3 {
				value, to = args[0]+args[1], args[2]
			}
			l, err := units.ParseLength(value, units.Invalid)
			if err != nil {
				return err
			}
			target, err := units.Parse(to)
			if err != nil {
				return err
			}
			v, err := l.To(target)
			if err != nil {
				return err
			}
			printKeyValue(cmd.OutOrStdout(), l.String(), fmt.Sprintf("%g%s", v, target))
			return nil
		},
	}
}
