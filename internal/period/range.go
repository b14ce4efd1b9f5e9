package period

import (
	"fmt"
	"time"
)

// Range is an inclusive span of days: Start is midnight of the first day and
// End is 23:59:59 of the last day, both in the resolver's location.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range (inclusive).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days the range covers.
func (r Range) Days() int {
	n := 0
	for !r.Start.AddDate(0, 0, n).After(r.End) {
		n++
	}
	return n
}

// Resolver derives calendar buckets from anchor dates. The zero value
// resolves in UTC with weeks starting on Sunday (time.Weekday's zero);
// application code builds resolvers from settings, which default to Monday.
type Resolver struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func (r Resolver) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// weekStartOf steps day back to the most recent WeekStart (possibly day
// itself).
func (r Resolver) weekStartOf(day time.Time) time.Time {
	diff := (int(day.Weekday()) - int(r.WeekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// RangeFor resolves the bucket of the given granularity containing anchor:
// the anchor's day, the week containing it (starting on WeekStart), its
// calendar month, or its calendar year. Unknown granularities and
// out-of-range anchors yield ErrInvalidDate rather than a silent default.
func (r Resolver) RangeFor(g Granularity, anchor time.Time) (Range, error) {
	if err := checkAnchor(anchor); err != nil {
		return Range{}, err
	}
	day := Normalize(anchor, r.location())

	switch g {
	case Day:
		return Range{Start: day, End: endOfDay(day)}, nil
	case Week:
		start := r.weekStartOf(day)
		return Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, nil
	case Month:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, r.location())
		return Range{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}, nil
	case Year:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, r.location())
		end := time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, r.location())
		return Range{Start: start, End: endOfDay(end)}, nil
	default:
		return Range{}, fmt.Errorf("%w: unknown granularity %q", ErrInvalidDate, g)
	}
}

// DatesIn returns one normalized date (midnight, resolver location) per day
// of the bucket containing anchor: 1 for day, 7 for week, 28-31 for month,
// 365-366 for year.
func (r Resolver) DatesIn(g Granularity, anchor time.Time) ([]time.Time, error) {
	rng, err := r.RangeFor(g, anchor)
	if err != nil {
		return nil, err
	}
	var dates []time.Time
	for i := 0; ; i++ {
		d := rng.Start.AddDate(0, 0, i)
		if d.After(rng.End) {
			break
		}
		dates = append(dates, d)
	}
	return dates, nil
}
