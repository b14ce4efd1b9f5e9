// Package period implements calendar bucket resolution for habit views: a
// bucket is the day, week, month, or year containing an anchor date. Every
// function here is pure; callers pass explicit anchors and todays, and the
// calendar configuration (timezone, week start) is explicit on the Resolver.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/strideapp/stride/internal/constants"
)

// ErrInvalidDate marks a date calculation that cannot be performed: an unknown
// granularity, a zero anchor, or a year outside the supported calendar range.
// Callers should treat it as a bug surfaced, never fall back to a default.
var ErrInvalidDate = errors.New("invalid date calculation")

// Supported calendar range. time.Time reaches further, but nothing a habit
// tracker stores legitimately lives outside these years.
const (
	MinYear = 1
	MaxYear = 9999
)

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// Granularities lists the supported granularities in ascending bucket size.
func Granularities() []Granularity {
	return []Granularity{Day, Week, Month, Year}
}

// ParseGranularity parses a case-insensitive granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case Day:
		return Day, nil
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	case Year:
		return Year, nil
	default:
		return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidDate, s)
	}
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case Day, Week, Month, Year:
		return true
	}
	return false
}

// ParseWeekday parses a case-insensitive weekday name ("monday", "sunday",
// ...) as used by the week_start setting.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Monday, fmt.Errorf("%w: unknown weekday %q", ErrInvalidDate, s)
	}
}

// Normalize truncates t to midnight in the given location. A nil location
// means UTC.
func Normalize(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDay renders t as a YYYY-MM-DD day key.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD day key as midnight in the given location.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func checkAnchor(anchor time.Time) error {
	if anchor.IsZero() {
		return fmt.Errorf("%w: zero anchor", ErrInvalidDate)
	}
	if y := anchor.Year(); y < MinYear || y > MaxYear {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, y)
	}
	return nil
}

func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
}
