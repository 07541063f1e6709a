package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ngrash/go-tzclock/tzdata"
)

// Load parses tzdata source and compiles it into a Catalog of the rules in effect in year.
func Load(r io.Reader, year int) (*Catalog, error) {
	f, err := tzdata.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return Compile(f, year)
}

// Compile reduces parsed tzdata to the rules in effect in year.
//
// The last line of every zone defines the entry. Of a named rule set only the rules
// whose FROM to TO range contains year are kept, so rules announced for later years
// are left out. A named rule set without such rules, or a fixed amount
// in the RULES column, yields an entry without daylight saving time whose format is
// resolved up front. Links become aliases of the zone they point to, following chains
// of links.
func Compile(f tzdata.File, year int) (*Catalog, error) {
	var (
		entries []Entry
		aliases []Alias
		rules   []Rule
		errs    error

		emitted = make(map[string]bool)
		index   = make(map[string]int)
	)

	for _, z := range currentZoneLines(f.ZoneLines) {
		e, rs, err := compileZone(f.RuleLines, z, tzdata.Year(year))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("zone %s: %w", z.Name, err))
			continue
		}
		if e.Rule != "" && !emitted[e.Rule] {
			emitted[e.Rule] = true
			rules = append(rules, rs...)
		}
		index[e.Name] = len(entries)
		entries = append(entries, e)
	}

	targets := make(map[string]string, len(f.LinkLines))
	for _, l := range f.LinkLines {
		targets[l.Name] = l.Target
	}
	for _, l := range f.LinkLines {
		i, err := resolveLink(l.Name, targets, index)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("link %s: %w", l.Name, err))
			continue
		}
		aliases = append(aliases, Alias{Name: l.Name, Index: i})
	}

	if errs != nil {
		return nil, errs
	}
	return New(entries, aliases, rules)
}

// currentZoneLines returns the last line of every zone, with the zone's name filled in.
func currentZoneLines(lines []tzdata.ZoneLine) []tzdata.ZoneLine {
	var current []tzdata.ZoneLine
	for _, l := range lines {
		if !l.Continuation {
			current = append(current, l)
			continue
		}
		if len(current) == 0 {
			continue
		}
		name := current[len(current)-1].Name
		l.Name = name
		current[len(current)-1] = l
	}
	return current
}

func compileZone(all []tzdata.RuleLine, z tzdata.ZoneLine, year tzdata.Year) (Entry, []Rule, error) {
	offset, err := HM(z.Offset)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("STDOFF: %w", err)
	}
	e := Entry{Name: z.Name, Offset: offset}

	switch z.Rules.Form {
	case tzdata.ZoneRulesStandard:
		e.Format = resolveFormat(z.Format, "", false)
		return e, nil, nil

	case tzdata.ZoneRulesTime:
		if e.Offset, err = HM(z.Offset + z.Rules.Time.Duration); err != nil {
			return Entry{}, nil, fmt.Errorf("RULES: %w", err)
		}
		e.Format = resolveFormat(z.Format, "", z.Rules.Time.Duration != 0)
		return e, nil, nil

	case tzdata.ZoneRulesName:
		rs, err := findRules(all, z.Rules.Name)
		if err != nil {
			return Entry{}, nil, err
		}
		active := activeRules(rs, year)
		if len(active) == 0 {
			e.Format = resolveFormat(z.Format, latestStandardLetter(rs, year), false)
			return e, nil, nil
		}

		var (
			compiled []Rule
			errs     error
		)
		for _, r := range active {
			cr, err := compileRule(r)
			if err != nil {
				errs = errors.Join(errs, fmt.Errorf("rule %s %s: %w", r.Name, r.In, err))
				continue
			}
			compiled = append(compiled, cr)
		}
		if errs != nil {
			return Entry{}, nil, errs
		}
		e.Rule = z.Rules.Name
		e.Format = z.Format
		return e, compiled, nil

	default:
		return Entry{}, nil, fmt.Errorf("invalid RULES form %s", z.Rules.Form)
	}
}

func compileRule(r tzdata.RuleLine) (Rule, error) {
	cr := Rule{
		Name:         r.Name,
		Month:        r.In,
		Weekday:      r.On.Day,
		Abbreviation: r.Letter,
	}

	switch r.On.Form {
	case tzdata.DayFormNum:
		cr.Trigger = FixedDay
		cr.Weekday = 0
		cr.Day = r.On.Num
	case tzdata.DayFormLast:
		cr.Trigger = LastWeekday
	case tzdata.DayFormAfter:
		cr.Trigger = NthWeekdayOnOrAfter
		cr.Day = r.On.Num
	case tzdata.DayFormBefore:
		// The last weekday on or before N is the first one on or after N-6.
		if r.On.Num < 7 {
			return Rule{}, fmt.Errorf("ON %s<=%d reaches into the previous month", r.On.Day, r.On.Num)
		}
		cr.Trigger = NthWeekdayOnOrAfter
		cr.Day = r.On.Num - 6
	default:
		return Rule{}, fmt.Errorf("invalid ON form %s", r.On.Form)
	}

	var err error
	if cr.At, err = HM(r.At.Duration); err != nil {
		return Rule{}, fmt.Errorf("AT: %w", err)
	}
	switch r.At.Form {
	case tzdata.UniversalTime:
		cr.Reference = UTC
	case tzdata.StandardTime:
		cr.Reference = StandardLocal
	default:
		cr.Reference = WallLocal
	}

	if cr.Save, err = HM(r.Save.Duration); err != nil {
		return Rule{}, fmt.Errorf("SAVE: %w", err)
	}
	if r.Save.Form == tzdata.DaylightSavingTime {
		cr.Role = RoleDaylight
	}
	return cr, nil
}

func findRules(l []tzdata.RuleLine, name string) ([]tzdata.RuleLine, error) {
	var rules []tzdata.RuleLine
	for _, r := range l {
		if r.Name == name {
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules found for name %s", name)
	}
	return rules, nil
}

// activeRules returns the rules in effect in year.
func activeRules(rs []tzdata.RuleLine, year tzdata.Year) []tzdata.RuleLine {
	var active []tzdata.RuleLine
	for _, r := range rs {
		if r.From <= year && year <= r.To {
			active = append(active, r)
		}
	}
	return active
}

// latestStandardLetter returns the letter of the standard time rule that expired last
// before year.
func latestStandardLetter(rs []tzdata.RuleLine, year tzdata.Year) string {
	var (
		letter string
		found  bool
		to     tzdata.Year
	)
	for _, r := range rs {
		if r.Save.Duration != 0 || r.From > year {
			continue
		}
		if !found || r.To >= to {
			letter, to, found = r.Letter, r.To, true
		}
	}
	return letter
}

// resolveFormat picks one side of a slash format or substitutes letter for %s.
// A %z verb is left for display time.
func resolveFormat(format, letter string, dst bool) string {
	if std, daylight, ok := strings.Cut(format, "/"); ok {
		if dst {
			return daylight
		}
		return std
	}
	return strings.Replace(format, "%s", letter, 1)
}

func resolveLink(name string, targets map[string]string, index map[string]int) (int, error) {
	seen := make(map[string]bool)
	for {
		if seen[name] {
			return 0, fmt.Errorf("link cycle at %s", name)
		}
		seen[name] = true
		target, ok := targets[name]
		if !ok {
			return 0, fmt.Errorf("unknown target %s", name)
		}
		if i, ok := index[target]; ok {
			return i, nil
		}
		name = target
	}
}
