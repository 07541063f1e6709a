package unixtime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestToFields(t *testing.T) {
	cases := []struct {
		in   int64
		want Fields
	}{
		{0, Fields{Year: 1970, Month: time.January, Day: 1, Weekday: time.Thursday}},
		{-1, Fields{Year: 1969, Month: time.December, Day: 31, Hour: 23, Minute: 59, Second: 59, Weekday: time.Wednesday}},
		{1710054000, Fields{Year: 2024, Month: time.March, Day: 10, Hour: 7, Weekday: time.Sunday}},
		// Leap day
		{951782400, Fields{Year: 2000, Month: time.February, Day: 29, Weekday: time.Tuesday}},
		{4107542399, Fields{Year: 2100, Month: time.February, Day: 28, Hour: 23, Minute: 59, Second: 59, Weekday: time.Sunday}},
	}
	for _, c := range cases {
		got := ToFields(c.in)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("ToFields(%d) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestToFields_MatchesTimePackage(t *testing.T) {
	// Walk about 300 years in prime-sized steps to hit many month and weekday combinations.
	for unix := int64(-2208988800); unix < 7258118400; unix += 86400*7 + 3607 {
		want := time.Unix(unix, 0).UTC()
		got := ToFields(unix)
		if got.Year != want.Year() || got.Month != want.Month() || got.Day != want.Day() ||
			got.Hour != want.Hour() || got.Minute != want.Minute() || got.Second != want.Second() ||
			got.Weekday != want.Weekday() {
			t.Fatalf("ToFields(%d) = %s (%s), want %s", unix, got, got.Weekday, want.Format(time.RFC3339+" Monday"))
		}
		if y := Year(unix); y != want.Year() {
			t.Fatalf("Year(%d) = %d, want %d", unix, y, want.Year())
		}
	}
}

func TestFromFields_RoundTrip(t *testing.T) {
	for unix := int64(-86400 * 400); unix < 4102444800; unix += 86400*3 + 61 {
		f := ToFields(unix)
		got, err := FromFields(f)
		if err != nil {
			t.Fatalf("FromFields(%s): %v", f, err)
		}
		if got != unix {
			t.Fatalf("FromFields(ToFields(%d)) = %d", unix, got)
		}
	}
}

func TestFromFields_Invalid(t *testing.T) {
	cases := []Fields{
		{Year: 2023, Month: time.February, Day: 29},
		{Year: 2024, Month: 13, Day: 1},
		{Year: 2024, Month: 0, Day: 1},
		{Year: 2024, Month: time.April, Day: 31},
		{Year: 2024, Month: time.April, Day: 1, Hour: 24},
		{Year: 2024, Month: time.April, Day: 1, Minute: 60},
		{Year: 2024, Month: time.April, Day: 1, Second: -1},
	}
	for _, f := range cases {
		if _, err := FromFields(f); err == nil {
			t.Errorf("FromFields(%+v): expected error", f)
		}
	}
}

func TestFromFields_IgnoresWeekday(t *testing.T) {
	const want = 1710028800 // 2024-03-10T00:00:00Z, a Sunday.
	for _, wd := range []time.Weekday{time.Sunday, time.Wednesday, 9, -1} {
		got, err := FromFields(Fields{Year: 2024, Month: time.March, Day: 10, Weekday: wd})
		if err != nil {
			t.Errorf("FromFields(weekday %d): %v", wd, err)
			continue
		}
		if got != want {
			t.Errorf("FromFields(weekday %d) = %d, want %d", wd, got, want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.January, 2023, 31},
		{time.February, 2023, 28},
		{time.February, 2024, 29},
		{time.February, 1900, 28},
		{time.February, 2000, 29},
		{time.April, 2024, 30},
		{time.December, 2024, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.month, c.year); got != c.want {
			t.Errorf("DaysInMonth(%s, %d) = %d, want %d", c.month, c.year, got, c.want)
		}
	}
}
