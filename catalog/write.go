package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteTZData renders c in tzdata source format. Loading the output yields an equal catalog.
// Rules are written as open ended (min to max) since a catalog only holds rules in effect today.
func WriteTZData(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)

	if len(c.rules) > 0 {
		fmt.Fprintln(bw, "# Rule\tNAME\tFROM\tTO\t-\tIN\tON\tAT\tSAVE\tLETTER/S")
	}
	for _, r := range c.rules {
		letter := r.Abbreviation
		if letter == "" {
			letter = "-"
		}
		fmt.Fprintf(bw, "Rule\t%s\tmin\tmax\t-\t%s\t%s\t%s%c\t%s%c\t%s\n",
			r.Name, shortMonth(r.Month), formatON(r), r.At, referenceSuffix(r.Reference), r.Save, roleSuffix(r.Role), letter)
	}

	if len(c.entries) > 0 {
		fmt.Fprintln(bw, "\n# Zone\tNAME\tSTDOFF\tRULES\tFORMAT")
	}
	for _, e := range c.entries {
		rules := e.Rule
		if rules == "" {
			rules = "-"
		}
		format, err := quoteField(e.Format)
		if err != nil {
			return fmt.Errorf("zone %s: %w", e.Name, err)
		}
		fmt.Fprintf(bw, "Zone\t%s\t%s\t%s\t%s\n", e.Name, e.Offset, rules, format)
	}

	if len(c.aliases) > 0 {
		fmt.Fprintln(bw, "\n# Link\tTARGET\tLINK-NAME")
	}
	for _, a := range c.aliases {
		fmt.Fprintf(bw, "Link\t%s\t%s\n", c.entries[a.Index].Name, a.Name)
	}

	return bw.Flush()
}

func formatON(r Rule) string {
	switch r.Trigger {
	case LastWeekday:
		return "last" + shortWeekday(r.Weekday)
	case NthWeekdayOnOrAfter:
		return fmt.Sprintf("%s>=%d", shortWeekday(r.Weekday), r.Day)
	default:
		return fmt.Sprint(r.Day)
	}
}

func referenceSuffix(ref Reference) rune {
	switch ref {
	case UTC:
		return 'u'
	case StandardLocal:
		return 's'
	default:
		return 'w'
	}
}

func roleSuffix(r Role) rune {
	if r == RoleDaylight {
		return 'd'
	}
	return 's'
}

// quoteField quotes s if it would otherwise be split or cut off by a comment.
func quoteField(s string) (string, error) {
	if strings.ContainsRune(s, '"') {
		return "", fmt.Errorf("field %q contains a quote", s)
	}
	if strings.ContainsAny(s, " \t\v\f#") {
		return `"` + s + `"`, nil
	}
	return s, nil
}

func shortMonth(m time.Month) string {
	return m.String()[:3]
}

func shortWeekday(d time.Weekday) string {
	return d.String()[:3]
}
