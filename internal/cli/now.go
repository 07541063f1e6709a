package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newNowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current local time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.clock()
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Format(a.now().Unix(), a.cfg.Clock.Use12Hour, a.cfg.Clock.DayMonthOrder))
			return err
		},
	}
}
