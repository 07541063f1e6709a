package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzclock/catalog"
)

func (a *app) newListCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timezone names, canonical zones first and aliases after",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cur := catalog.NewCursor(a.cat)
			for name, ok := cur.Next(true); ok; name, ok = cur.Next(false) {
				if !strings.HasPrefix(name, prefix) {
					continue
				}
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "filter", "", "only list names with this prefix")
	return cmd
}
