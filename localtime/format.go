package localtime

import (
	"fmt"
	"strings"

	"github.com/ngrash/go-tzclock/catalog"
	"github.com/ngrash/go-tzclock/internal/unixtime"
)

// ErrBufferTooSmall is returned by FormatInto when the output was truncated.
var ErrBufferTooSmall = catalog.ErrBufferTooSmall

// MaxFormatLen is the longest string Format returns for years 0 to 9999 and
// abbreviations of up to 24 bytes, e.g. "12:59:59PM <abbreviation>, 12/31/2024".
const MaxFormatLen = len("12:59:59PM ") + 24 + len(", 12/31/9999")

// Format renders the local time at unix as "H:MM:SS[AM|PM] ABBR, M/D/YYYY".
// The hour is not zero padded. With dayMonthOrder the date is D/M/YYYY.
func (c *Clock) Format(unix int64, use12Hour, dayMonthOrder bool) string {
	f := unixtime.ToFields(c.ToLocal(unix))
	abbr := c.Abbreviation(unix)

	hour, suffix := f.Hour, ""
	if use12Hour {
		hour, suffix = to12Hour(f.Hour)
	}
	d1, d2 := int(f.Month), f.Day
	if dayMonthOrder {
		d1, d2 = f.Day, int(f.Month)
	}
	return fmt.Sprintf("%d:%02d:%02d%s %s, %d/%d/%d", hour, f.Minute, f.Second, suffix, abbr, d1, d2, f.Year)
}

// FormatInto writes the output of Format to dst and returns the number of bytes written.
// If dst is too short the output is truncated and ErrBufferTooSmall is returned.
func (c *Clock) FormatInto(dst []byte, unix int64, use12Hour, dayMonthOrder bool) (int, error) {
	s := c.Format(unix, use12Hour, dayMonthOrder)
	n := copy(dst, s)
	if n < len(s) {
		return n, ErrBufferTooSmall
	}
	return n, nil
}

// Abbreviation returns the zone's display format resolved for unix.
//
//	E%sT     %s replaced by the letters of the rule in effect
//	GMT/BST  left side in standard time, right side in daylight saving time
//	%z       UTC offset as +hh or +hhmm
func (c *Clock) Abbreviation(unix int64) string {
	offset := c.OffsetAt(unix)

	var (
		letters  string
		daylight bool
	)
	if c.usesDST {
		i := c.transitions.Index(unix)
		letters = c.transitions.Abbreviation[i]
		daylight = c.transitions.Role[i] == catalog.RoleDaylight
	}
	return expandFormat(c.format, letters, daylight, offset)
}

func expandFormat(format, letters string, daylight bool, offset int64) string {
	if std, dst, ok := strings.Cut(format, "/"); ok {
		if daylight {
			return dst
		}
		return std
	}
	format = strings.Replace(format, "%s", letters, 1)
	if strings.Contains(format, "%z") {
		format = strings.Replace(format, "%z", formatOffset(offset), 1)
	}
	return format
}

// formatOffset renders an offset in seconds as +hh, +hhmm or +hhmmss, omitting
// trailing zero components.
func formatOffset(offset int64) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	h, m, s := offset/3600, offset%3600/60, offset%60
	switch {
	case s != 0:
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%c%02d%02d", sign, h, m)
	default:
		return fmt.Sprintf("%c%02d", sign, h)
	}
}

func to12Hour(hour int) (int, string) {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return hour, suffix
}
