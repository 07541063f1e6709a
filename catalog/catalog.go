// Package catalog holds the static timezone tables: canonical zones, link aliases and
// the daylight saving rule pairs referenced by zones.
//
// A Catalog is immutable once built and safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngrash/go-tzclock/internal/unixtime"
)

var (
	// ErrNameNotFound is returned when neither a zone nor an alias matches a name.
	ErrNameNotFound = errors.New("timezone name not found")
	// ErrBufferTooSmall is returned when output was truncated to fit a caller supplied buffer.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// HourMinute is a signed amount of hours and an unsigned amount of minutes.
// The sign of Hours applies to the whole amount: {-3, 30} is minus three and a half hours.
type HourMinute struct {
	Hours   int
	Minutes int
}

// Seconds returns the amount in seconds.
func (hm HourMinute) Seconds() int64 {
	s := int64(abs(hm.Hours))*3600 + int64(hm.Minutes)*60
	if hm.Hours < 0 {
		s = -s
	}
	return s
}

func (hm HourMinute) String() string {
	if hm.Minutes == 0 {
		return fmt.Sprintf("%d:00", hm.Hours)
	}
	sign := ""
	if hm.Hours < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%02d", sign, abs(hm.Hours), hm.Minutes)
}

// HM converts a duration to whole hours and minutes, truncating seconds.
// Negative amounts of less than one hour cannot be represented and return an error.
func HM(d time.Duration) (HourMinute, error) {
	minutes := int(d / time.Minute)
	if minutes < 0 && minutes > -60 {
		return HourMinute{}, fmt.Errorf("negative amount %v under one hour", d)
	}
	return HourMinute{Hours: minutes / 60, Minutes: abs(minutes % 60)}, nil
}

// DayTrigger selects how a rule's day of month is found.
type DayTrigger int

const (
	// NthWeekdayOnOrAfter is the first Weekday on or after Day.
	NthWeekdayOnOrAfter DayTrigger = iota
	// LastWeekday is the last Weekday of the month.
	LastWeekday
	// FixedDay is Day itself.
	FixedDay
)

func (t DayTrigger) String() string {
	switch t {
	case NthWeekdayOnOrAfter:
		return "NthWeekdayOnOrAfter"
	case LastWeekday:
		return "LastWeekday"
	case FixedDay:
		return "FixedDay"
	default:
		return fmt.Sprintf("<undefined trigger (%d)>", int(t))
	}
}

// Reference is the clock a rule's trigger time is read on.
type Reference int

const (
	// UTC means the trigger time is universal time.
	UTC Reference = iota
	// StandardLocal means the trigger time is local standard time, without daylight saving.
	StandardLocal
	// WallLocal means the trigger time is local wall clock time, including whatever
	// daylight saving applies when the rule fires.
	WallLocal
)

func (r Reference) String() string {
	switch r {
	case UTC:
		return "UTC"
	case StandardLocal:
		return "StandardLocal"
	case WallLocal:
		return "WallLocal"
	default:
		return fmt.Sprintf("<undefined reference (%d)>", int(r))
	}
}

// Role tells whether a rule starts daylight saving time or returns to standard time.
type Role int

const (
	RoleStandard Role = iota
	RoleDaylight
)

func (r Role) String() string {
	if r == RoleDaylight {
		return "daylight"
	}
	return "standard"
}

// Rule is one of the two rules sharing a name that make up a zone's yearly
// daylight saving schedule.
type Rule struct {
	Name    string
	Month   time.Month
	Trigger DayTrigger
	Weekday time.Weekday // Unused for FixedDay.
	Day     int          // Day of month for FixedDay, lower bound for NthWeekdayOnOrAfter.

	At        HourMinute // Time of day the rule fires.
	Reference Reference  // Clock At is read on.

	Save         HourMinute // Amount added to standard time while the rule is in effect.
	Abbreviation string     // Replaces %s in a zone's display format.
	Role         Role
}

// Entry is a canonical zone.
type Entry struct {
	Name   string
	Offset HourMinute // Standard offset from UTC.
	Rule   string     // Name of the rule pair, empty if the zone never observes daylight saving time.
	Format string     // Display format, see Abbreviation in package localtime.
}

// OffsetSeconds returns the standard UTC offset in seconds.
func (e Entry) OffsetSeconds() int64 {
	return e.Offset.Seconds()
}

// Alias is an alternative name for a canonical zone.
type Alias struct {
	Name  string
	Index int // Index of the canonical Entry.
}

// Catalog is an ordered set of zones, aliases and rules with a name index built once.
type Catalog struct {
	entries []Entry
	aliases []Alias
	rules   []Rule

	index       map[string]int
	rulesByName map[string][]Rule
}

// New validates the tables and builds the lookup indexes.
// Canonical names take precedence: an alias must not reuse a zone name.
// Rule groups are not required to hold exactly two rules; that is checked when a
// zone's transitions are solved.
func New(entries []Entry, aliases []Alias, rules []Rule) (*Catalog, error) {
	c := &Catalog{
		entries:     append([]Entry(nil), entries...),
		aliases:     append([]Alias(nil), aliases...),
		rules:       append([]Rule(nil), rules...),
		index:       make(map[string]int, len(entries)+len(aliases)),
		rulesByName: make(map[string][]Rule),
	}

	var errs error
	for i, e := range c.entries {
		if e.Name == "" {
			errs = errors.Join(errs, fmt.Errorf("zone %d: empty name", i))
			continue
		}
		if _, dup := c.index[e.Name]; dup {
			errs = errors.Join(errs, fmt.Errorf("zone %q: duplicate name", e.Name))
			continue
		}
		if e.Format == "" {
			errs = errors.Join(errs, fmt.Errorf("zone %q: empty format", e.Name))
		}
		c.index[e.Name] = i
	}
	for _, a := range c.aliases {
		if a.Index < 0 || a.Index >= len(c.entries) {
			errs = errors.Join(errs, fmt.Errorf("alias %q: index %d out of range", a.Name, a.Index))
			continue
		}
		if _, dup := c.index[a.Name]; dup || a.Name == "" {
			errs = errors.Join(errs, fmt.Errorf("alias %q: empty or duplicate name", a.Name))
			continue
		}
		c.index[a.Name] = a.Index
	}
	for _, r := range c.rules {
		if err := validateRule(r); err != nil {
			errs = errors.Join(errs, fmt.Errorf("rule %q %s: %w", r.Name, r.Month, err))
			continue
		}
		c.rulesByName[r.Name] = append(c.rulesByName[r.Name], r)
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

func validateRule(r Rule) error {
	var errs error
	if r.Name == "" {
		errs = errors.Join(errs, errors.New("empty name"))
	}
	if r.Month < time.January || r.Month > time.December {
		errs = errors.Join(errs, fmt.Errorf("month %d out of range", r.Month))
	}
	switch r.Trigger {
	case FixedDay, NthWeekdayOnOrAfter:
		// Checked against a leap year so that Feb 29 is accepted.
		dim := 31
		if r.Month >= time.January && r.Month <= time.December {
			dim = unixtime.DaysInMonth(r.Month, 2024)
		}
		if r.Day < 1 || r.Day > dim {
			errs = errors.Join(errs, fmt.Errorf("day %d out of range 1..%d", r.Day, dim))
		}
	case LastWeekday:
	default:
		errs = errors.Join(errs, fmt.Errorf("invalid trigger %s", r.Trigger))
	}
	if r.Trigger != FixedDay && (r.Weekday < time.Sunday || r.Weekday > time.Saturday) {
		errs = errors.Join(errs, fmt.Errorf("weekday %d out of range", r.Weekday))
	}
	if r.Reference < UTC || r.Reference > WallLocal {
		errs = errors.Join(errs, fmt.Errorf("invalid reference %s", r.Reference))
	}
	if r.At.Minutes < 0 || r.At.Minutes > 59 || r.Save.Minutes < 0 || r.Save.Minutes > 59 {
		errs = errors.Join(errs, errors.New("minutes out of range"))
	}
	return errs
}

// FindByName returns the index of the canonical entry for a zone or alias name.
// Names match exactly and case-sensitively.
func (c *Catalog) FindByName(name string) (int, bool) {
	i, ok := c.index[name]
	if !ok {
		return -1, false
	}
	return i, true
}

// Lookup is like FindByName but returns the entry, or an error wrapping ErrNameNotFound.
func (c *Catalog) Lookup(name string) (Entry, error) {
	i, ok := c.FindByName(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	return c.entries[i], nil
}

// Entry returns the canonical entry at index i.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// Len returns the number of canonical entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the canonical entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Aliases returns a copy of the aliases in catalog order.
func (c *Catalog) Aliases() []Alias {
	return append([]Alias(nil), c.aliases...)
}

// Rules returns a copy of all rules in catalog order.
func (c *Catalog) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// RulesFor returns the rules named name in catalog order.
func (c *Catalog) RulesFor(name string) []Rule {
	return append([]Rule(nil), c.rulesByName[name]...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
