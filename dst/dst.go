// Package dst solves a zone's daylight saving rule pair for one calendar year.
//
// A zone observing daylight saving time references exactly two rules. Each rule fires
// once a year on a day given by its trigger, at a time of day read on the rule's
// reference clock. Solve converts both firings to UTC instants and orders them, so the
// half-open window between the two instants is governed by the earlier rule and the
// rest of the year by the later one. That holds for both hemispheres.
package dst

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngrash/go-tzclock/catalog"
	"github.com/ngrash/go-tzclock/internal/unixtime"
)

const secondsPerDay = 86400

// ErrMalformedRuleGroup is matched by errors returned for rule groups that cannot be solved.
var ErrMalformedRuleGroup = errors.New("malformed rule group")

// RuleGroupError describes a rule group that does not hold two usable rules.
type RuleGroupError struct {
	Name   string // Rule name, empty if the group is empty.
	Count  int    // Number of rules in the group.
	Reason string // Set if the count is right but the rules are not.
}

func (e *RuleGroupError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("rule group %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("rule group %q: has %d rules, want 2", e.Name, e.Count)
}

func (e *RuleGroupError) Is(target error) bool {
	return target == ErrMalformedRuleGroup
}

// Transitions is a solved rule pair. At[0] < At[1].
type Transitions struct {
	Year         int
	At           [2]int64 // UTC instants at which the rules fire.
	Offset       [2]int64 // Seconds added to standard time after each instant.
	Abbreviation [2]string
	Role         [2]catalog.Role
}

// Index returns 0 if unix lies in [At[0], At[1]) and 1 otherwise.
func (t Transitions) Index(unix int64) int {
	if t.Contains(unix) {
		return 0
	}
	return 1
}

// Contains reports whether unix lies in the half-open window [At[0], At[1]).
func (t Transitions) Contains(unix int64) bool {
	return unix >= t.At[0] && unix < t.At[1]
}

// OffsetAt returns the seconds added to standard time at unix.
func (t Transitions) OffsetAt(unix int64) int64 {
	return t.Offset[t.Index(unix)]
}

// Solve computes the UTC instants at which the two rules fire in year, for a zone
// with the given standard offset in seconds.
//
// Wall clock trigger times are read with the other rule's save applied, since that
// rule is in effect until this one fires.
func Solve(rules []catalog.Rule, baseOffset int64, year int) (Transitions, error) {
	if len(rules) != 2 {
		var name string
		if len(rules) > 0 {
			name = rules[0].Name
		}
		return Transitions{}, &RuleGroupError{Name: name, Count: len(rules)}
	}

	t := Transitions{Year: year}
	for i, r := range rules {
		day, err := TriggerDay(r, year)
		if err != nil {
			return Transitions{}, &RuleGroupError{Name: r.Name, Count: len(rules), Reason: err.Error()}
		}

		at := day + r.At.Seconds()
		switch r.Reference {
		case catalog.UTC:
		case catalog.StandardLocal:
			at -= baseOffset
		case catalog.WallLocal:
			at -= baseOffset + rules[1-i].Save.Seconds()
		default:
			return Transitions{}, &RuleGroupError{Name: r.Name, Count: len(rules), Reason: fmt.Sprintf("invalid reference %s", r.Reference)}
		}

		t.At[i] = at
		t.Offset[i] = r.Save.Seconds()
		t.Abbreviation[i] = r.Abbreviation
		t.Role[i] = r.Role
	}

	switch {
	case t.At[0] > t.At[1]:
		t.At[0], t.At[1] = t.At[1], t.At[0]
		t.Offset[0], t.Offset[1] = t.Offset[1], t.Offset[0]
		t.Abbreviation[0], t.Abbreviation[1] = t.Abbreviation[1], t.Abbreviation[0]
		t.Role[0], t.Role[1] = t.Role[1], t.Role[0]
	case t.At[0] == t.At[1]:
		return Transitions{}, &RuleGroupError{Name: rules[0].Name, Count: len(rules), Reason: "both rules fire at the same instant"}
	}
	return t, nil
}

// TriggerDay returns 00:00 UTC of the day on which r fires in year.
// A NthWeekdayOnOrAfter trigger may spill into the following month.
func TriggerDay(r catalog.Rule, year int) (int64, error) {
	if r.Month < 1 || r.Month > 12 {
		return 0, fmt.Errorf("month %d out of range", r.Month)
	}
	if r.Trigger != catalog.FixedDay && (r.Weekday < time.Sunday || r.Weekday > time.Saturday) {
		return 0, fmt.Errorf("weekday %d out of range", r.Weekday)
	}
	day := unixtime.FromDateTime(year, int(r.Month), 1, 0, 0, 0)

	switch r.Trigger {
	case catalog.FixedDay:
		return day + int64(r.Day-1)*secondsPerDay, nil

	case catalog.NthWeekdayOnOrAfter:
		mday := 1
		for unixtime.ToFields(day).Weekday != r.Weekday {
			day += secondsPerDay
			mday++
		}
		for mday < r.Day {
			day += 7 * secondsPerDay
			mday += 7
		}
		return day, nil

	case catalog.LastWeekday:
		for unixtime.ToFields(day).Weekday != r.Weekday {
			day += secondsPerDay
		}
		for unixtime.ToFields(day).Month == r.Month {
			day += 7 * secondsPerDay
		}
		return day - 7*secondsPerDay, nil

	default:
		return 0, fmt.Errorf("invalid trigger %s", r.Trigger)
	}
}
