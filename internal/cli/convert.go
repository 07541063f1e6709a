package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) newConvertCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "convert <unix-seconds|RFC3339>",
		Short: "Print the local time of a UTC instant",
		Example: `  tzclock convert 1710054000 --zone America/New_York
  tzclock convert 2024-03-31T01:00:00Z -z Europe/Berlin --dmy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unix, err := parseInstant(args[0])
			if err != nil {
				return err
			}

			c := a.clock()
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, c.Format(unix, a.cfg.Clock.Use12Hour, a.cfg.Clock.DayMonthOrder)); err != nil {
				return err
			}
			if verbose {
				_, err = fmt.Fprintf(out, "zone=%s offset=%s dst=%t\n", c.Zone(), formatOffset(c.OffsetAt(unix)), c.IsDST(unix))
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print the zone, UTC offset and DST flag")
	return cmd
}

// parseInstant accepts seconds since the Unix epoch or an RFC 3339 timestamp.
func parseInstant(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("parse instant %q: want unix seconds or RFC 3339", s)
	}
	return t.Unix(), nil
}
