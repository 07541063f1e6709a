package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-tzclock/internal/unixtime"
)

type transitionsReport struct {
	Zone        string             `yaml:"zone" json:"zone"`
	Year        int                `yaml:"year" json:"year"`
	BaseOffset  string             `yaml:"base_offset" json:"base_offset"`
	UsesDST     bool               `yaml:"uses_dst" json:"uses_dst"`
	Transitions []transitionReport `yaml:"transitions,omitempty" json:"transitions,omitempty"`
}

type transitionReport struct {
	At           string `yaml:"at" json:"at"`
	Unix         int64  `yaml:"unix" json:"unix"`
	Offset       string `yaml:"offset" json:"offset"`
	Abbreviation string `yaml:"abbreviation" json:"abbreviation"`
	Role         string `yaml:"role" json:"role"`
}

func (a *app) newTransitionsCommand() *cobra.Command {
	var (
		year   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Print the daylight saving transitions of the selected zone for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = a.now().UTC().Year()
			}
			r := a.transitions(year)

			out := cmd.OutOrStdout()
			switch output {
			case "text":
				return writeTransitionsText(out, r)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(r); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			default:
				return fmt.Errorf("unknown output format %q (text, yaml, json)", output)
			}
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "UTC year (default: current year)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, yaml, json)")
	return cmd
}

func (a *app) transitions(year int) transitionsReport {
	c := a.clock()
	c.EnsureCurrentYear(unixtime.FromDateTime(year, 1, 1, 0, 0, 0))

	r := transitionsReport{
		Zone:       c.Zone(),
		Year:       year,
		BaseOffset: formatOffset(c.BaseOffset()),
		UsesDST:    c.UsesDST(),
	}
	t, ok := c.Transitions()
	if !ok {
		return r
	}
	for i, at := range t.At {
		r.Transitions = append(r.Transitions, transitionReport{
			At:           time.Unix(at, 0).UTC().Format(time.RFC3339),
			Unix:         at,
			Offset:       formatOffset(c.BaseOffset() + t.Offset[i]),
			Abbreviation: c.Abbreviation(at),
			Role:         t.Role[i].String(),
		})
	}
	return r
}

func writeTransitionsText(w io.Writer, r transitionsReport) error {
	if _, err := fmt.Fprintf(w, "%s %d standard offset %s\n", r.Zone, r.Year, r.BaseOffset); err != nil {
		return err
	}
	if !r.UsesDST {
		_, err := fmt.Fprintln(w, "no daylight saving time")
		return err
	}
	for _, t := range r.Transitions {
		if _, err := fmt.Fprintf(w, "%s  %s  %-6s %s\n", t.At, t.Offset, t.Abbreviation, t.Role); err != nil {
			return err
		}
	}
	return nil
}
