// Package localtime projects UTC instants to local wall clock time for one selected timezone.
//
// A Clock holds the state of the selected zone and the transitions solved for the year
// last asked about. Transitions are recomputed lazily when an instant from another UTC
// year is projected. A Clock is owned by one caller and must not be used concurrently;
// independent Clocks may share a catalog.
package localtime

import (
	"log/slog"
	"math"

	"github.com/ngrash/go-tzclock/catalog"
	"github.com/ngrash/go-tzclock/dst"
	"github.com/ngrash/go-tzclock/internal/unixtime"
)

// FallbackZone is selected when a name cannot be resolved.
const FallbackZone = "UTC"

// noYear marks the cached transitions as invalid.
const noYear = math.MinInt

// utcEntry is used if the catalog lacks FallbackZone.
var utcEntry = catalog.Entry{Name: FallbackZone, Format: "UTC"}

// Clock is the active timezone state.
type Clock struct {
	cat    *catalog.Catalog
	logger *slog.Logger

	zone       string
	baseOffset int64
	rule       string
	format     string
	usesDST    bool

	cachedYear  int
	transitions dst.Transitions
}

// Option configures a Clock.
type Option func(*Clock)

// WithLogger sets the logger for warnings about unusable rules. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Clock for cat with FallbackZone selected.
func New(cat *catalog.Catalog, opts ...Option) *Clock {
	c := &Clock{cat: cat, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.SetTimezone(FallbackZone)
	return c
}

// SetTimezone selects the zone or alias name. If the name is unknown FallbackZone is
// selected instead and false is returned.
func (c *Clock) SetTimezone(name string) bool {
	i, ok := c.cat.FindByName(name)
	if !ok {
		c.logger.Debug("unknown timezone, falling back", "zone", name, "fallback", FallbackZone)
		i, _ = c.cat.FindByName(FallbackZone)
	}

	e := utcEntry
	if i >= 0 {
		e = c.cat.Entry(i)
	}
	c.zone = e.Name
	c.baseOffset = e.OffsetSeconds()
	c.rule = e.Rule
	c.format = e.Format
	c.usesDST = e.Rule != ""
	c.cachedYear = noYear
	c.transitions = dst.Transitions{}
	return ok
}

// EnsureCurrentYear solves the zone's rules for the UTC year of unix unless they are
// already solved for that year. If the rules cannot be solved, daylight saving time is
// disabled for the zone until the next SetTimezone.
func (c *Clock) EnsureCurrentYear(unix int64) {
	if !c.usesDST {
		return
	}
	year := unixtime.Year(unix)
	if year == c.cachedYear {
		return
	}

	rules := c.cat.RulesFor(c.rule)
	t, err := dst.Solve(rules, c.baseOffset, year)
	if err != nil {
		c.logger.Warn("disabling daylight saving time",
			"zone", c.zone, "rule", c.rule, "count", len(rules), "error", err)
		c.usesDST = false
		c.cachedYear = year
		c.transitions = dst.Transitions{}
		return
	}

	c.logger.Debug("solved transitions", "zone", c.zone, "year", year, "at", t.At, "offset", t.Offset)
	c.transitions = t
	c.cachedYear = year
}

// ToLocal returns unix shifted by the zone's UTC offset in effect at unix.
func (c *Clock) ToLocal(unix int64) int64 {
	return unix + c.OffsetAt(unix)
}

// OffsetAt returns the total UTC offset in seconds in effect at unix.
func (c *Clock) OffsetAt(unix int64) int64 {
	c.EnsureCurrentYear(unix)
	if !c.usesDST {
		return c.baseOffset
	}
	return c.baseOffset + c.transitions.OffsetAt(unix)
}

// IsDST reports whether the rule in effect at unix is a daylight saving rule.
func (c *Clock) IsDST(unix int64) bool {
	c.EnsureCurrentYear(unix)
	if !c.usesDST {
		return false
	}
	return c.transitions.Role[c.transitions.Index(unix)] == catalog.RoleDaylight
}

// Zone returns the canonical name of the selected zone.
func (c *Clock) Zone() string {
	return c.zone
}

// BaseOffset returns the standard UTC offset of the selected zone in seconds.
func (c *Clock) BaseOffset() int64 {
	return c.baseOffset
}

// UsesDST reports whether the selected zone observes daylight saving time.
// A rule group that turns out to be malformed is only detected on first use.
func (c *Clock) UsesDST() bool {
	return c.usesDST
}

// Transitions returns the transitions solved last, and false if there are none.
func (c *Clock) Transitions() (dst.Transitions, bool) {
	if !c.usesDST || c.cachedYear == noYear {
		return dst.Transitions{}, false
	}
	return c.transitions, true
}
