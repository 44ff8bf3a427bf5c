// Package dates parses ISO calendar dates and renders them for display.
//
// Parsing and display are separate steps: input is always read as
// YYYY-MM-DD, and a strftime pattern only shapes the rendered string.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"potd/internal/apperr"
)

// ISOPattern is the strftime spelling of the canonical date form.
const ISOPattern = "%Y-%m-%d"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CalendarDate is a validated day with no time or zone attached.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the day.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the ISO form, e.g. 2024-03-05.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d CalendarDate) Compare(other CalendarDate) int {
	return d.Time().Compare(other.Time())
}

// Before reports whether d is chronologically earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// AddDays returns the date n days after d (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// IsValid checks if a string is a valid YYYY-MM-DD date.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse parses a YYYY-MM-DD date. Out-of-range months and days (2025-02-30)
// are rejected rather than normalized.
func Parse(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	if !dateRegex.MatchString(s) {
		return CalendarDate{}, apperr.New(apperr.ErrInvalidDate, "invalid date %q: expected YYYY-MM-DD", s)
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return CalendarDate{}, apperr.New(apperr.ErrInvalidDate, "invalid date %q: month or day out of range", s)
	}
	return FromTime(t), nil
}

// ParseArg parses a command-line date argument, which can be:
// - "today", "yesterday", "tomorrow" (relative to now)
// - "YYYY-MM-DD"
func ParseArg(arg string, now time.Time) (CalendarDate, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "today":
		return FromTime(now), nil
	case "yesterday":
		return FromTime(now).AddDays(-1), nil
	case "tomorrow":
		return FromTime(now).AddDays(1), nil
	}
	d, err := Parse(arg)
	if err != nil {
		return CalendarDate{}, apperr.New(apperr.ErrInvalidDate,
			"invalid date %q: use YYYY-MM-DD or today/yesterday/tomorrow", strings.TrimSpace(arg))
	}
	return d, nil
}

// Format renders d with a strftime pattern. An empty pattern, or the ISO
// pattern itself, returns d.String() unchanged.
func Format(pattern string, d CalendarDate) (string, error) {
	if pattern == "" || pattern == ISOPattern {
		return d.String(), nil
	}
	out := strftime.Format(pattern, d.Time())
	if out == "" {
		return "", apperr.New(apperr.ErrDateFormat, "date format %q renders %s as an empty string", pattern, d)
	}
	return out, nil
}

// FormatString parses an ISO date string and renders it with pattern. Parse
// failures are reported as apperr.ErrInvalidDate, rendering failures as
// apperr.ErrDateFormat.
func FormatString(pattern, iso string) (string, error) {
	d, err := Parse(iso)
	if err != nil {
		return "", err
	}
	return Format(pattern, d)
}
