package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date is a calendar day with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// timestampLayouts are the full timestamps accepted by ParseDay. Fractional
// seconds are accepted by both.
var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// ParseDay parses YYYY-MM-DD, or a whole ISO-8601 timestamp, and returns the
// calendar day as written (in the timestamp's own offset).
func ParseDay(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if len(value) == len(DateLayout) {
		if t, err := ParseDate(value); err == nil {
			return DateOf(t), nil
		}
	} else if len(value) > len(DateLayout) {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return DateOf(t), nil
			}
		}
	}
	return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
}

// MustParseDay is ParseDay for literals in tests and fixtures.
func MustParseDay(value string) Date {
	d, err := ParseDay(value)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return FormatDate(d.Time())
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the whole number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// MarshalText renders the date as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte(""), nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText parses YYYY-MM-DD.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
