// Package tzdata parses the zic(8) source format used by the IANA time zone database
// (https://www.iana.org/time-zones) and by the compiled-in zone catalog of this module.
//
// Only Rule, Zone (with continuation lines) and Link lines are understood.
// Leap second files are not supported.
package tzdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// File represents the result of parsing a tzdata file.
// It contains the parsed zone lines, rule lines, and link lines, each in the order they appear in the file.
type File struct {
	ZoneLines []ZoneLine
	RuleLines []RuleLine
	LinkLines []LinkLine
}

// Merge appends the lines of other to f, keeping their order.
// It is used to combine the per-continent files of an IANA release.
func (f *File) Merge(other File) {
	f.ZoneLines = append(f.ZoneLines, other.ZoneLines...)
	f.RuleLines = append(f.RuleLines, other.RuleLines...)
	f.LinkLines = append(f.LinkLines, other.LinkLines...)
}

// parseError is an error that occurred during parsing.
// It contains the line number and the line where the error occurred.
type parseError struct {
	lineNumber int
	line       string
	err        error
}

// Error returns a string representation of the parse error, implementing the error interface.
func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.lineNumber, e.line, e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}

// Line returns the number of the line that failed to parse, if err is a parse error.
func Line(err error) (int, bool) {
	var pe *parseError
	if errors.As(err, &pe) {
		return pe.lineNumber, true
	}
	return 0, false
}

// Parse parses the content of a tzdata file and returns a File struct containing the parsed lines.
func Parse(r io.Reader) (File, error) {
	var result File
	scanner := bufio.NewScanner(r)

	var (
		lineNumber           int
		continuationExpected bool
	)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields, err := splitLine(line)
		if err != nil {
			return result, &parseError{lineNumber, line, err}
		}
		if fields == nil {
			continue // skip comment or empty line
		}

		if continuationExpected {
			zone, err := parseZoneContinuationLine(fields)
			if err != nil {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse zone continuation: %w", err)}
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			continuationExpected = zone.Until.Defined
			continue
		}

		switch {
		case isAbbrev(fields[0], "Zone", "Z"):
			zone, err := parseZoneLine(fields)
			if err != nil {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse zone: %w", err)}
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			// If the UNTIL column is defined, we expect a continuation line to follow.
			continuationExpected = zone.Until.Defined
		case isAbbrev(fields[0], "Rule", "R"):
			rule, err := parseRuleLine(fields)
			if err != nil {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse rule: %w", err)}
			}
			result.RuleLines = append(result.RuleLines, rule)
		case isAbbrev(fields[0], "Link", "L"):
			link, err := parseLinkLine(fields)
			if err != nil {
				return result, &parseError{lineNumber, line, fmt.Errorf("parse link: %w", err)}
			}
			result.LinkLines = append(result.LinkLines, link)
		default:
			return result, &parseError{lineNumber, line, fmt.Errorf("unexpected line")}
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}
	if continuationExpected {
		return result, fmt.Errorf("unexpected end of input: zone continuation line expected")
	}
	return result, nil
}

// LinkLine represents a link line.
type LinkLine struct {
	Target string // The TARGET field, naming a zone.
	Name   string // The LINK-NAME field, the alternative name.
}

// parseLinkLine parses a link line.
//
//	Link  TARGET           LINK-NAME
//	Link  Europe/Istanbul  Asia/Istanbul
func parseLinkLine(fields []string) (LinkLine, error) {
	if len(fields) != 3 {
		return LinkLine{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	var (
		l    LinkLine
		errs error
		err  error
	)
	if l.Target, err = parseZoneNAME(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("TARGET %q: %w", fields[1], err))
	}
	if l.Name, err = parseZoneNAME(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("LINK-NAME %q: %w", fields[2], err))
	}
	return l, errs
}

// Year represents a year in the proleptic Gregorian calendar.
type Year int

func (y Year) String() string {
	if y == MinYear {
		return "min"
	}
	if y == MaxYear {
		return "max"
	}
	return strconv.Itoa(int(y))
}

const (
	// MinYear means the indefinite past.
	MinYear Year = math.MinInt
	// MaxYear means the indefinite future.
	MaxYear Year = math.MaxInt
)

// TimeForm tells which clock a time of day refers to.
type TimeForm int

func (f TimeForm) String() string {
	switch f {
	case WallClock:
		return "WallClock"
	case StandardTime:
		return "StandardTime"
	case DaylightSavingTime:
		return "DaylightSavingTime"
	case UniversalTime:
		return "UniversalTime"
	default:
		return "<UNDEFINED>"
	}
}

const (
	// WallClock is local time including any daylight saving adjustment. Suffix "w" or none.
	WallClock TimeForm = iota
	// StandardTime is local time without daylight saving. Suffix "s".
	StandardTime
	// DaylightSavingTime marks a SAVE amount as daylight saving time. Suffix "d".
	DaylightSavingTime
	// UniversalTime is UT. Suffix "u", "g" or "z".
	UniversalTime
)

// Time represents a time instance by the duration since 00:00, the start of a calendar day.
type Time struct {
	time.Duration
	Form TimeForm
}

// DayForm represents the form of a day in a rule or zone line.
type DayForm int

func (f DayForm) String() string {
	switch f {
	case DayFormNum:
		return "Num"
	case DayFormLast:
		return "Last"
	case DayFormAfter:
		return "After"
	case DayFormBefore:
		return "Before"
	default:
		return "<UNDEFINED>"
	}
}

const (
	// DayFormNum is a fixed day of month, e.g. "5".
	DayFormNum DayForm = iota
	// DayFormLast is the last weekday of the month, e.g. "lastSun".
	DayFormLast
	// DayFormAfter is the first weekday on or after a day of month, e.g. "Sun>=8".
	DayFormAfter
	// DayFormBefore is the last weekday on or before a day of month, e.g. "Sun<=25".
	DayFormBefore
)

// Day represents a day in a rule or zone line.
type Day struct {
	Form DayForm
	Num  int          // Day of month. Unused for DayFormLast.
	Day  time.Weekday // Unused for DayFormNum.
}

// RuleLine represents a rule line.
type RuleLine struct {
	Name   string     // The NAME field of the rule line.
	From   Year       // The FROM field of the rule line.
	To     Year       // The TO field of the rule line.
	In     time.Month // The IN field of the rule line.
	On     Day        // The ON field of the rule line.
	At     Time       // The AT field of the rule line.
	Save   Time       // The SAVE field of the rule line.
	Letter string     // The LETTER/S field of the rule line.
}

// ZoneLine represents a zone line or a continuation line.
type ZoneLine struct {
	Continuation bool          // Continuation is true if the line is a continuation line.
	Name         string        // The NAME field of the zone line. Is empty for continuation lines.
	Offset       time.Duration // The STDOFF field of the zone line.
	Rules        ZoneRules     // The RULES field of the zone line.
	Format       string        // The FORMAT field of the zone line.
	Until        Until         // The UNTIL field of the zone line.
}

// parseZoneNAME parses the NAME column of a zone line.
// A name must not contain a file name component "." or "..".
func parseZoneNAME(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty name")
	}
	for _, part := range strings.Split(s, "/") {
		if part == "." || part == ".." || part == "" {
			return "", fmt.Errorf("invalid file name component %q", part)
		}
	}
	return s, nil
}

// parseZoneSTDOFF parses the STDOFF column of a zone line: the amount of time to add to UT
// to get standard time, in AT format without suffix letters.
func parseZoneSTDOFF(s string) (time.Duration, error) {
	return parseTimeOfDay(s)
}

// ZoneRulesForm represents the type of the RULES column of a zone line.
type ZoneRulesForm int

func (f ZoneRulesForm) String() string {
	switch f {
	case ZoneRulesName:
		return "Name"
	case ZoneRulesTime:
		return "Time"
	case ZoneRulesStandard:
		return "Standard"
	default:
		return "<UNDEFINED>"
	}
}

const (
	// ZoneRulesStandard means standard time always applies because the RULES column is "-".
	ZoneRulesStandard ZoneRulesForm = iota
	// ZoneRulesName means the RULES column references rule lines by name.
	ZoneRulesName
	// ZoneRulesTime means the RULES column contains a time in rule-line SAVE column format.
	ZoneRulesTime
)

// ZoneRules represents the RULES column of a zone line.
type ZoneRules struct {
	// Form is the form of the RULES column.
	Form ZoneRulesForm
	// Name contains the name if Form is ZoneRulesName.
	Name string
	// Time contains the time if Form is ZoneRulesTime.
	Time Time
}

// parseZoneRULES parses the RULES column of a zone line.
// It is "-", an amount in SAVE format or the name of a rule set.
func parseZoneRULES(s string) (ZoneRules, error) {
	if s == "-" {
		return ZoneRules{Form: ZoneRulesStandard}, nil
	}
	if d, err := parseRuleSAVE(s); err == nil {
		return ZoneRules{Form: ZoneRulesTime, Time: d}, nil
	}
	// Whether a rule line with this name exists is checked when the file is compiled.
	name, err := parseRuleNAME(s)
	if err != nil {
		return ZoneRules{}, err
	}
	return ZoneRules{Form: ZoneRulesName, Name: name}, nil
}

// parseZoneFORMAT parses the FORMAT column of a zone line.
// It may contain %s for the rule's letters, %z for the UT offset, or a
// slash separating standard and daylight abbreviations.
func parseZoneFORMAT(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty format")
	}
	if strings.Count(s, "/") > 1 {
		return "", fmt.Errorf("more than one slash")
	}
	if strings.Contains(s, "/") && strings.Contains(s, "%") {
		return "", fmt.Errorf("slash and %% verb are mutually exclusive")
	}
	return s, nil
}

// Until represents the UNTIL column of a zone line.
// The zero value means the UNTIL column is not defined.
type Until struct {
	// Set to true if the UNTIL column is defined.
	Defined bool
	Year    int
	Month   time.Month // January if omitted.
	Day     Day        // Day 1 if omitted.
	Time    Time       // 00:00 wall clock if omitted.
}

// parseZoneUNTIL parses the UNTIL column of a zone line: YEAR [MONTH [DAY [TIME]]].
// Trailing fields default to the earliest possible value.
func parseZoneUNTIL(parts []string) (Until, error) {
	if len(parts) == 0 {
		return Until{}, nil
	}
	if len(parts) > 4 {
		return Until{}, fmt.Errorf("too many fields: %d", len(parts))
	}

	u := Until{Month: time.January, Day: Day{Form: DayFormNum, Num: 1}}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return u, fmt.Errorf("year: %v", err)
	}
	u.Year = year
	if len(parts) > 1 {
		if u.Month, err = parseMonth(parts[1]); err != nil {
			return u, fmt.Errorf("month: %v", err)
		}
	}
	if len(parts) > 2 {
		if u.Day, err = parseRuleON(parts[2]); err != nil {
			return u, fmt.Errorf("day: %v", err)
		}
	}
	if len(parts) > 3 {
		if u.Time, err = parseRuleAT(parts[3]); err != nil {
			return u, fmt.Errorf("time: %v", err)
		}
	}
	u.Defined = true
	return u, nil
}

// parseZoneLine parses a zone line.
//
//	Zone  NAME        STDOFF  RULES   FORMAT  [UNTIL]
//	Zone  Asia/Amman  2:00    Jordan  EE%sT   2017 Oct 27 01:00
func parseZoneLine(fields []string) (ZoneLine, error) {
	if len(fields) < 5 {
		return ZoneLine{}, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}
	if len(fields) > 9 {
		return ZoneLine{}, fmt.Errorf("expected at most 9 fields, got %d", len(fields))
	}
	z, err := parseZoneColumns(fields[2:])
	if name, nerr := parseZoneNAME(fields[1]); nerr != nil {
		err = errors.Join(fmt.Errorf("NAME %q: %w", fields[1], nerr), err)
	} else {
		z.Name = name
	}
	return z, err
}

// parseZoneContinuationLine parses a zone continuation line. It has the same form as a zone
// line except that the string "Zone" and the name are omitted.
func parseZoneContinuationLine(fields []string) (ZoneLine, error) {
	if len(fields) < 3 {
		return ZoneLine{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	if len(fields) > 7 {
		return ZoneLine{}, fmt.Errorf("expected at most 7 fields, got %d", len(fields))
	}
	z, err := parseZoneColumns(fields)
	z.Continuation = true
	return z, err
}

// parseZoneColumns parses STDOFF RULES FORMAT [UNTIL].
func parseZoneColumns(fields []string) (ZoneLine, error) {
	var (
		z    ZoneLine
		errs error
		err  error
	)
	if z.Offset, err = parseZoneSTDOFF(fields[0]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("STDOFF %q: %w", fields[0], err))
	}
	if z.Rules, err = parseZoneRULES(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("RULES %q: %w", fields[1], err))
	}
	if z.Format, err = parseZoneFORMAT(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FORMAT %q: %w", fields[2], err))
	}
	if z.Until, err = parseZoneUNTIL(fields[3:]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("UNTIL %q: %w", strings.Join(fields[3:], " "), err))
	}
	return z, errs
}

// parseRuleLine parses a rule line.
//
//	Rule  NAME  FROM  TO    -  IN   ON       AT     SAVE   LETTER/S
//	Rule  US    1967  1973  -  Apr  lastSun  2:00w  1:00d  D
func parseRuleLine(fields []string) (RuleLine, error) {
	if len(fields) != 10 {
		return RuleLine{}, fmt.Errorf("expected 10 fields, got %d", len(fields))
	}
	var (
		r    RuleLine
		errs error
		err  error
	)
	if r.Name, err = parseRuleNAME(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("NAME %q: %w", fields[1], err))
	}
	if r.From, err = parseRuleFROM(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FROM %q: %w", fields[2], err))
	}
	if r.To, err = parseRuleTO(fields[3], r.From); err != nil {
		errs = errors.Join(errs, fmt.Errorf("TO %q: %w", fields[3], err))
	}
	if fields[4] != "-" {
		errs = errors.Join(errs, fmt.Errorf("reserved column %q: must be \"-\"", fields[4]))
	}
	if r.In, err = parseMonth(fields[5]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("IN %q: %w", fields[5], err))
	}
	if r.On, err = parseRuleON(fields[6]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("ON %q: %w", fields[6], err))
	}
	if r.At, err = parseRuleAT(fields[7]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("AT %q: %w", fields[7], err))
	}
	if r.Save, err = parseRuleSAVE(fields[8]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("SAVE %q: %w", fields[8], err))
	}
	if r.Letter, err = parseRuleLETTERS(fields[9]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("LETTER/S %q: %w", fields[9], err))
	}
	return r, errs
}

// splitLine splits a line into fields separated by white space.
// It returns nil if the line is a comment or empty.
// An unquoted # starts a comment. Double quotes protect white space and # inside a field
// and are removed from the result.
func splitLine(line string) ([]string, error) {
	var (
		fields  []string
		field   strings.Builder
		inField bool
		quoted  bool
	)
loop:
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inField = true
		case quoted:
			field.WriteRune(r)
		case r == '#':
			break loop
		case strings.ContainsRune(" \f\r\n\t\v", r):
			if inField {
				fields = append(fields, field.String())
				field.Reset()
				inField = false
			}
		default:
			field.WriteRune(r)
			inField = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("no closing quote")
	}
	if inField {
		fields = append(fields, field.String())
	}
	return fields, nil
}

// parseRuleNAME parses the NAME column of a rule.
// The name must start with a character that is neither an ASCII digit nor "-" nor "+",
// and should not contain characters from the set "!$%&'()*,/:;<=>?@[\]^`{|}~".
func parseRuleNAME(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty name")
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "", fmt.Errorf("name starts with a digit: %q", s)
	}
	if s[0] == '-' || s[0] == '+' {
		return "", fmt.Errorf("name starts with a sign: %q", s)
	}
	if strings.ContainsAny(s, "!$%&'()*,/:;<=>?@[\\]^`{|}~") {
		return "", fmt.Errorf("name contains special character: %q", s)
	}
	return s, nil
}

// parseRuleFROM parses the FROM column of a rule.
// The words minimum and maximum (or abbreviations) mean the indefinite past and future.
func parseRuleFROM(s string) (Year, error) {
	if isAbbrev(s, "minimum", "mi") {
		return MinYear, nil
	}
	if isAbbrev(s, "maximum", "ma") {
		return MaxYear, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return Year(n), nil
}

// parseRuleTO parses the TO column of a rule.
// In addition to minimum and maximum, only repeats the value of the FROM column.
func parseRuleTO(s string, from Year) (Year, error) {
	if isAbbrev(s, "only", "o") {
		return from, nil
	}
	to, err := parseRuleFROM(s)
	if err != nil {
		return 0, err
	}
	if to < from {
		return 0, fmt.Errorf("TO %s before FROM %s", to, from)
	}
	return to, nil
}

func parseMonth(s string) (time.Month, error) {
	l := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		long := strings.ToLower(m.String())
		if isAbbrev(l, long, long[:3]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("month %q: invalid", s)
}

// parseRuleON parses the ON column of a rule.
//
//	5        the fifth of the month
//	lastSun  the last Sunday in the month
//	Sun>=8   first Sunday on or after the eighth
//	Sun<=25  last Sunday on or before the 25th
func parseRuleON(s string) (Day, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 31 {
			return Day{}, fmt.Errorf("day of month %d out of range", n)
		}
		return Day{Form: DayFormNum, Num: n}, nil
	}
	if strings.HasPrefix(s, "last") {
		day, err := parseWeekday(s[4:])
		if err != nil {
			return Day{}, err
		}
		return Day{Form: DayFormLast, Day: day}, nil
	}
	form, sep := DayFormAfter, ">="
	if strings.Contains(s, "<=") {
		form, sep = DayFormBefore, "<="
	}
	weekday, num, ok := strings.Cut(s, sep)
	if !ok || weekday == "" || num == "" {
		return Day{}, fmt.Errorf("expected weekday<=dayofmonth or weekday>=dayofmonth")
	}
	day, err := parseWeekday(weekday)
	if err != nil {
		return Day{}, fmt.Errorf("left part of comparison %q: %w", weekday, err)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return Day{}, fmt.Errorf("right part of comparison %q: %w", num, err)
	}
	if n < 1 || n > 31 {
		return Day{}, fmt.Errorf("right part of comparison %d out of range", n)
	}
	return Day{Form: form, Day: day, Num: n}, nil
}

// parseRuleAT parses the AT column of a rule. The time may be followed by w (wall clock),
// s (standard time) or u, g, z (universal time). Wall clock time is assumed without a suffix.
func parseRuleAT(s string) (Time, error) {
	d, suffix, err := parseTimeOfDayWithSuffix(s, "wsugz")
	if err != nil {
		return Time{}, err
	}
	var form TimeForm
	switch suffix {
	case 's':
		form = StandardTime
	case 'u', 'g', 'z':
		form = UniversalTime
	default:
		form = WallClock
	}
	return Time{Duration: d, Form: form}, nil
}

// parseRuleSAVE parses the SAVE column of a rule: the amount of time added to local standard
// time. The suffix s or d marks standard or daylight saving time. Without a suffix it defaults
// to s if the amount is zero and to d otherwise. Negative amounts are allowed.
func parseRuleSAVE(s string) (Time, error) {
	d, suffix, err := parseTimeOfDayWithSuffix(s, "sd")
	if err != nil {
		return Time{}, err
	}
	var form TimeForm
	switch suffix {
	case 's':
		form = StandardTime
	case 'd':
		form = DaylightSavingTime
	default:
		if d == 0 {
			form = StandardTime
		} else {
			form = DaylightSavingTime
		}
	}
	return Time{Duration: d, Form: form}, nil
}

// parseRuleLETTERS parses the LETTER/S column of a rule. "-" means the variable part is empty.
func parseRuleLETTERS(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty letter")
	}
	if s == "-" {
		return "", nil
	}
	return s, nil
}

func parseTimeOfDayWithSuffix(s string, suffixes string) (time.Duration, rune, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("empty time")
	}
	last := rune(s[len(s)-1])
	if strings.ContainsRune(suffixes, last) {
		d, err := parseTimeOfDay(s[:len(s)-1])
		return d, last, err
	}
	d, err := parseTimeOfDay(s)
	return d, 0, err
}

// parseTimeOfDay parses a time relative to 00:00, the start of a calendar day.
//
//	2            time in hours
//	2:00         time in hours and minutes
//	01:28:14     time in hours, minutes, and seconds
//	00:19:32.13  time with fractional seconds
//	24:00        end of day, 24 hours after 00:00
//	-2:30        2.5 hours before 00:00
//	-            equivalent to 0
func parseTimeOfDay(s string) (time.Duration, error) {
	if s == "-" {
		return 0, nil
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("too many colons in %q", s)
	}
	var total time.Duration
	units := [3]time.Duration{time.Hour, time.Minute, time.Second}
	for i, p := range parts {
		if i == 2 {
			sec, frac, hasFrac := strings.Cut(p, ".")
			n, err := strconv.Atoi(sec)
			if err != nil || n < 0 || n > 59 {
				return 0, fmt.Errorf("invalid second %q", p)
			}
			total += time.Duration(n) * time.Second
			if hasFrac {
				f, err := strconv.ParseFloat("0."+frac, 64)
				if err != nil {
					return 0, fmt.Errorf("invalid fractional second %q", p)
				}
				total += time.Duration(f * float64(time.Second))
			}
			break
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (i == 1 && n > 59) {
			return 0, fmt.Errorf("invalid %s %q", [2]string{"hour", "minute"}[i], p)
		}
		total += time.Duration(n) * units[i]
	}

	if negative {
		total = -total
	}
	return total, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	l := strings.ToLower(s)
	mins := [7]string{"su", "m", "tu", "w", "th", "f", "sa"}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if isAbbrev(l, strings.ToLower(d.String()), mins[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// isAbbrev reports whether s abbreviates long and is at least as long as min.
func isAbbrev(s string, long string, min string) bool {
	return strings.HasPrefix(s, min) && strings.HasPrefix(long, s)
}
