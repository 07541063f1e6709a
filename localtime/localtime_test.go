package localtime

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-tzclock/catalog"
	"github.com/ngrash/go-tzclock/internal/unixtime"
)

func utc(year int, month time.Month, day, hour, min, sec int) int64 {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC).Unix()
}

// easternCatalog holds a US Eastern style zone that enters daylight saving time at
// 02:00 standard time and leaves it at 02:00 wall time.
func easternCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Entry{
			{Name: "Etc/UTC", Format: "UTC"},
			{Name: "Test/Eastern", Offset: catalog.HourMinute{Hours: -5}, Rule: "East", Format: "E%sT"},
			{Name: "Test/OneRule", Offset: catalog.HourMinute{Hours: 3, Minutes: 30}, Rule: "Lonely", Format: "X%sT"},
		},
		[]catalog.Alias{{Name: "UTC", Index: 0}},
		[]catalog.Rule{
			{Name: "East", Month: time.March, Trigger: catalog.NthWeekdayOnOrAfter, Weekday: time.Sunday, Day: 8, At: catalog.HourMinute{Hours: 2}, Reference: catalog.StandardLocal, Save: catalog.HourMinute{Hours: 1}, Abbreviation: "D", Role: catalog.RoleDaylight},
			{Name: "East", Month: time.November, Trigger: catalog.NthWeekdayOnOrAfter, Weekday: time.Sunday, Day: 1, At: catalog.HourMinute{Hours: 2}, Reference: catalog.WallLocal, Abbreviation: "S"},
			{Name: "Lonely", Month: time.March, Trigger: catalog.LastWeekday, Weekday: time.Sunday, At: catalog.HourMinute{Hours: 1}, Reference: catalog.UTC, Save: catalog.HourMinute{Hours: 1}, Abbreviation: "D", Role: catalog.RoleDaylight},
		},
	)
	require.NoError(t, err)
	return c
}

func TestToLocal_EasternScenario(t *testing.T) {
	c := New(easternCatalog(t))
	require.True(t, c.SetTimezone("Test/Eastern"))

	cases := []struct {
		in   int64
		want unixtime.Fields
	}{
		{utc(2024, time.March, 10, 7, 0, 0), unixtime.Fields{Year: 2024, Month: time.March, Day: 10, Hour: 3, Weekday: time.Sunday}},
		{utc(2024, time.March, 10, 6, 59, 59), unixtime.Fields{Year: 2024, Month: time.March, Day: 10, Hour: 1, Minute: 59, Second: 59, Weekday: time.Sunday}},
		{utc(2024, time.November, 3, 5, 59, 59), unixtime.Fields{Year: 2024, Month: time.November, Day: 3, Hour: 1, Minute: 59, Second: 59, Weekday: time.Sunday}},
		{utc(2024, time.November, 3, 6, 0, 0), unixtime.Fields{Year: 2024, Month: time.November, Day: 3, Hour: 1, Weekday: time.Sunday}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, unixtime.ToFields(c.ToLocal(tc.in)), "ToLocal(%d)", tc.in)
	}

	tr, ok := c.Transitions()
	require.True(t, ok)
	assert.Less(t, tr.At[0], tr.At[1])
	assert.Equal(t, 2024, tr.Year)
}

func TestSetTimezone_UnknownFallsBackToUTC(t *testing.T) {
	cat := easternCatalog(t)

	want := New(cat)
	require.True(t, want.SetTimezone("UTC"))

	got := New(cat)
	require.True(t, got.SetTimezone("Test/Eastern"))
	assert.False(t, got.SetTimezone("Mars/Olympus"))

	assert.Equal(t, want, got)
	assert.Equal(t, "Etc/UTC", got.Zone())
	assert.Equal(t, int64(0), got.BaseOffset())
	assert.False(t, got.UsesDST())
}

func TestSetTimezone_FallbackWithoutUTC(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{{Name: "Asia/Kolkata", Offset: catalog.HourMinute{Hours: 5, Minutes: 30}, Format: "IST"}}, nil, nil)
	require.NoError(t, err)

	c := New(cat)
	assert.Equal(t, FallbackZone, c.Zone())
	assert.False(t, c.SetTimezone("Mars/Olympus"))
	assert.Equal(t, int64(1700000000), c.ToLocal(1700000000))
	assert.Equal(t, "UTC", c.Abbreviation(1700000000))
}

func TestMalformedRuleGroup_DisablesDST(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	c := New(easternCatalog(t), WithLogger(logger))
	require.True(t, c.SetTimezone("Test/OneRule"))

	base := int64(3*3600 + 30*60)
	for u := utc(2024, time.January, 1, 0, 0, 0); u < utc(2025, time.January, 1, 0, 0, 0); u += 3*3600 + 17 {
		require.Equal(t, u+base, c.ToLocal(u))
	}
	assert.False(t, c.UsesDST())
	assert.False(t, c.IsDST(utc(2024, time.July, 1, 0, 0, 0)))
	_, ok := c.Transitions()
	assert.False(t, ok)
	assert.Equal(t, "XT", c.Abbreviation(utc(2024, time.July, 1, 0, 0, 0)))

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "rule=Lonely")
	assert.Contains(t, logs.String(), "count=1")
}

func TestSameInstantRuleGroup_DisablesDST(t *testing.T) {
	rule := catalog.Rule{Name: "Twin", Month: time.April, Trigger: catalog.FixedDay, Day: 1, At: catalog.HourMinute{Hours: 2}, Reference: catalog.UTC, Save: catalog.HourMinute{Hours: 1}, Abbreviation: "D", Role: catalog.RoleDaylight}
	cat, err := catalog.New(
		[]catalog.Entry{{Name: "Test/Twin", Offset: catalog.HourMinute{Hours: 1}, Rule: "Twin", Format: "T%sT"}},
		nil,
		[]catalog.Rule{rule, rule},
	)
	require.NoError(t, err)

	var logs bytes.Buffer
	c := New(cat, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.True(t, c.SetTimezone("Test/Twin"))

	u := utc(2024, time.July, 1, 0, 0, 0)
	assert.Equal(t, u+3600, c.ToLocal(u))
	assert.False(t, c.UsesDST())
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "same instant")
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestSetTimezone_Idempotent(t *testing.T) {
	cat := catalog.Default()
	once := New(cat)
	twice := New(cat)
	require.True(t, once.SetTimezone("Australia/Sydney"))
	require.True(t, twice.SetTimezone("Australia/Sydney"))
	require.True(t, twice.SetTimezone("Australia/Sydney"))

	for u := utc(2024, time.January, 1, 0, 0, 0); u < utc(2026, time.January, 1, 0, 0, 0); u += 86400/3 + 1 {
		require.Equal(t, once.ToLocal(u), twice.ToLocal(u))
	}
}

func TestToLocal_AllZonesBounded(t *testing.T) {
	cat := catalog.Default()
	c := New(cat)
	cur := catalog.NewCursor(cat)

	instants := []int64{
		0,
		utc(2024, time.January, 1, 0, 0, 0),
		utc(2024, time.March, 31, 1, 0, 0),
		utc(2024, time.July, 1, 12, 0, 0),
		utc(2025, time.December, 31, 23, 59, 59),
		utc(2038, time.January, 19, 3, 14, 8),
	}
	for name, ok := cur.Next(true); ok; name, ok = cur.Next(false) {
		require.True(t, c.SetTimezone(name), name)
		for _, u := range instants {
			d := c.ToLocal(u) - u
			assert.LessOrEqual(t, d, int64(14*3600), "%s at %d", name, u)
			assert.GreaterOrEqual(t, d, int64(-14*3600), "%s at %d", name, u)
			assert.LessOrEqual(t, len(c.Format(u, true, false)), MaxFormatLen, "%s at %d", name, u)
		}
	}
}

func TestToLocal_FixedOffset(t *testing.T) {
	c := New(catalog.Default())
	for _, name := range []string{"UTC", "Asia/Kolkata", "Asia/Kathmandu", "America/Phoenix", "Asia/Tokyo", "Etc/GMT+5"} {
		require.True(t, c.SetTimezone(name))
		require.False(t, c.UsesDST(), name)
		for u := utc(2023, time.December, 30, 0, 0, 0); u < utc(2025, time.January, 2, 0, 0, 0); u += 86400 - 7 {
			require.Equal(t, c.BaseOffset(), c.ToLocal(u)-u, "%s at %d", name, u)
		}
	}
}

func TestToLocal_ContinuousBetweenTransitions(t *testing.T) {
	c := New(catalog.Default())
	for _, name := range []string{"America/New_York", "Europe/Berlin", "Australia/Sydney", "Pacific/Chatham", "Europe/Dublin"} {
		require.True(t, c.SetTimezone(name))
		for year := 2024; year <= 2026; year++ {
			start := utc(year, time.January, 1, 0, 0, 0)
			end := utc(year+1, time.January, 1, 0, 0, 0)
			c.EnsureCurrentYear(start)
			tr, ok := c.Transitions()
			require.True(t, ok, name)

			jumps := 0
			for u := start; u < end-60; u += 60 {
				if c.ToLocal(u+60)-c.ToLocal(u) == 60 {
					continue
				}
				jumps++
				assert.True(t, u+60 == tr.At[0] || u+60 == tr.At[1], "%s: jump at %s", name, time.Unix(u+60, 0).UTC())
			}
			assert.Equal(t, 2, jumps, "%s %d", name, year)
		}
	}
}

func TestToLocal_MatchesTimePackage(t *testing.T) {
	zones := []string{
		"America/New_York",
		"America/Los_Angeles",
		"America/St_Johns",
		"America/Havana",
		"Europe/London",
		"Europe/Berlin",
		"Europe/Dublin",
		"Asia/Jerusalem",
		"Asia/Tokyo",
		"Asia/Kolkata",
		"Asia/Kathmandu",
		"Australia/Sydney",
		"Australia/Adelaide",
		"Australia/Brisbane",
		"Australia/Lord_Howe",
		"Pacific/Auckland",
		"Pacific/Chatham",
	}
	c := New(catalog.Default())
	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			require.NoError(t, err)
			require.True(t, c.SetTimezone(name))

			check := func(u int64) {
				abbr, offset := time.Unix(u, 0).In(loc).Zone()
				require.Equal(t, int64(offset), c.ToLocal(u)-u, "offset at %s", time.Unix(u, 0).UTC())
				require.Equal(t, abbr, c.Abbreviation(u), "abbreviation at %s", time.Unix(u, 0).UTC())
			}
			for u := utc(2024, time.January, 1, 0, 0, 0); u < utc(2027, time.January, 1, 0, 0, 0); u += 3600 {
				check(u)
			}
			for year := 2024; year <= 2026; year++ {
				c.EnsureCurrentYear(utc(year, time.June, 1, 0, 0, 0))
				if tr, ok := c.Transitions(); ok {
					for _, at := range tr.At {
						check(at - 1)
						check(at)
					}
				}
			}
		})
	}
}

func TestFormat(t *testing.T) {
	c := New(easternCatalog(t))
	require.True(t, c.SetTimezone("Test/Eastern"))

	cases := []struct {
		unix          int64
		use12Hour     bool
		dayMonthOrder bool
		want          string
	}{
		{utc(2024, time.March, 10, 7, 0, 0), false, false, "3:00:00 EDT, 3/10/2024"},
		{utc(2024, time.March, 10, 6, 59, 59), false, false, "1:59:59 EST, 3/10/2024"},
		{utc(2024, time.March, 10, 6, 59, 59), false, true, "1:59:59 EST, 10/3/2024"},
		{utc(2024, time.July, 4, 4, 5, 6), true, false, "12:05:06AM EDT, 7/4/2024"},
		{utc(2024, time.July, 4, 16, 5, 6), true, false, "12:05:06PM EDT, 7/4/2024"},
		{utc(2024, time.July, 4, 17, 5, 6), true, true, "1:05:06PM EDT, 4/7/2024"},
		{utc(2024, time.July, 4, 15, 5, 6), true, false, "11:05:06AM EDT, 7/4/2024"},
		{utc(2025, time.January, 1, 4, 59, 59), false, false, "23:59:59 EST, 12/31/2024"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Format(tc.unix, tc.use12Hour, tc.dayMonthOrder))
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	c := New(catalog.Default())
	for _, name := range []string{"America/New_York", "Europe/London", "Australia/Lord_Howe", "Asia/Kathmandu"} {
		require.True(t, c.SetTimezone(name))
		for u := utc(2024, time.January, 1, 0, 0, 0); u < utc(2025, time.January, 1, 0, 0, 0); u += 86400/5 + 13 {
			s := c.Format(u, false, false)

			var (
				got  unixtime.Fields
				abbr string
				mon  int
			)
			_, err := fmt.Sscanf(s, "%d:%d:%d %s %d/%d/%d", &got.Hour, &got.Minute, &got.Second, &abbr, &mon, &got.Day, &got.Year)
			require.NoError(t, err, s)
			got.Month = time.Month(mon)

			want := unixtime.ToFields(c.ToLocal(u))
			want.Weekday = 0
			require.Equal(t, want, got, s)
			require.Equal(t, c.Abbreviation(u)+",", abbr, s)
		}
	}
}

func TestFormatInto(t *testing.T) {
	c := New(easternCatalog(t))
	require.True(t, c.SetTimezone("Test/Eastern"))
	u := utc(2024, time.March, 10, 7, 0, 0)
	want := "3:00:00 EDT, 3/10/2024"

	buf := make([]byte, MaxFormatLen)
	n, err := c.FormatInto(buf, u, false, false)
	require.NoError(t, err)
	assert.Equal(t, want, string(buf[:n]))

	small := make([]byte, 8)
	n, err = c.FormatInto(small, u, false, false)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, want[:8], string(small[:n]))
}

func TestAbbreviation(t *testing.T) {
	c := New(catalog.Default())
	winter := utc(2024, time.January, 15, 12, 0, 0)
	summer := utc(2024, time.July, 15, 12, 0, 0)

	cases := []struct {
		zone           string
		winter, summer string
	}{
		{"Europe/London", "GMT", "BST"},
		{"Europe/Dublin", "GMT", "IST"},
		{"Europe/Lisbon", "WET", "WEST"},
		{"America/Sao_Paulo", "-03", "-03"},
		{"Asia/Kathmandu", "+0545", "+0545"},
		{"Australia/Lord_Howe", "+11", "+1030"},
		{"Pacific/Chatham", "+1345", "+1245"},
		{"America/Mexico_City", "CST", "CST"},
		{"Asia/Tokyo", "JST", "JST"},
		{"Africa/Johannesburg", "SAST", "SAST"},
	}
	for _, tc := range cases {
		require.True(t, c.SetTimezone(tc.zone))
		assert.Equal(t, tc.winter, c.Abbreviation(winter), "%s in January", tc.zone)
		assert.Equal(t, tc.summer, c.Abbreviation(summer), "%s in July", tc.zone)
	}
}

func TestIsDST(t *testing.T) {
	c := New(catalog.Default())
	require.True(t, c.SetTimezone("US/Eastern"))
	assert.Equal(t, "America/New_York", c.Zone())
	assert.False(t, c.IsDST(utc(2024, time.January, 15, 12, 0, 0)))
	assert.True(t, c.IsDST(utc(2024, time.July, 15, 12, 0, 0)))

	require.True(t, c.SetTimezone("Australia/Sydney"))
	assert.True(t, c.IsDST(utc(2024, time.January, 15, 12, 0, 0)))
	assert.False(t, c.IsDST(utc(2024, time.July, 15, 12, 0, 0)))
}

func TestEnsureCurrentYear_Recomputes(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(catalog.Default(), WithLogger(logger))
	require.True(t, c.SetTimezone("Europe/Berlin"))

	c.EnsureCurrentYear(utc(2024, time.May, 1, 0, 0, 0))
	c.EnsureCurrentYear(utc(2024, time.June, 1, 0, 0, 0))
	tr, ok := c.Transitions()
	require.True(t, ok)
	assert.Equal(t, 2024, tr.Year)
	assert.Equal(t, 1, strings.Count(logs.String(), "solved transitions"))

	c.EnsureCurrentYear(utc(2025, time.May, 1, 0, 0, 0))
	tr, ok = c.Transitions()
	require.True(t, ok)
	assert.Equal(t, 2025, tr.Year)
	assert.Equal(t, utc(2025, time.March, 30, 1, 0, 0), tr.At[0])
	assert.Equal(t, utc(2025, time.October, 26, 1, 0, 0), tr.At[1])
	assert.Equal(t, 2, strings.Count(logs.String(), "solved transitions"))
}
