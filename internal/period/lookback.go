package period

import (
	"time"

	"github.com/strideapp/stride/internal/constants"
)

// Lookback bounds how far back each granularity may navigate, counted from
// today: Days days for day views, Weeks weeks for week views, and so on.
// Zero or negative fields fall back to the application defaults, so the zero
// value is usable.
type Lookback struct {
	Days   int
	Weeks  int
	Months int
	Years  int
}

// DefaultLookback returns the stock navigation window (7 days, 4 weeks,
// 12 months, 1 year).
func DefaultLookback() Lookback {
	return Lookback{
		Days:   constants.DefaultLookbackDays,
		Weeks:  constants.DefaultLookbackWeeks,
		Months: constants.DefaultLookbackMonths,
		Years:  constants.DefaultLookbackYears,
	}
}

func (l Lookback) days() int {
	if l.Days > 0 {
		return l.Days
	}
	return constants.DefaultLookbackDays
}

func (l Lookback) weeks() int {
	if l.Weeks > 0 {
		return l.Weeks
	}
	return constants.DefaultLookbackWeeks
}

func (l Lookback) months() int {
	if l.Months > 0 {
		return l.Months
	}
	return constants.DefaultLookbackMonths
}

func (l Lookback) years() int {
	if l.Years > 0 {
		return l.Years
	}
	return constants.DefaultLookbackYears
}

// Step moves anchor by n buckets of the given granularity and returns the
// result at midnight in anchor's location. Month and year steps cap the day
// of month so stepping never overshoots into a neighboring month (Mar 31
// back one month is Feb 29 in a leap year, not Mar 2). Unknown granularities
// leave the anchor in place.
func Step(anchor time.Time, g Granularity, n int) time.Time {
	day := Normalize(anchor, anchor.Location())
	switch g {
	case Day:
		return day.AddDate(0, 0, n)
	case Week:
		return day.AddDate(0, 0, 7*n)
	case Month:
		return stepMonths(day, n)
	case Year:
		return stepMonths(day, 12*n)
	}
	return day
}

// Backward moves anchor one bucket earlier with no floor applied.
func Backward(anchor time.Time, g Granularity) time.Time {
	return Step(anchor, g, -1)
}

func stepMonths(day time.Time, n int) time.Time {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	moved := first.AddDate(0, n, 0)
	dom := day.Day()
	if last := moved.AddDate(0, 1, -1).Day(); dom > last {
		dom = last
	}
	return time.Date(moved.Year(), moved.Month(), dom, 0, 0, 0, 0, day.Location())
}

// Floor returns the oldest anchor the lookback window allows for the given
// granularity, counted back from today. Unknown granularities floor at today
// itself, which forbids navigation entirely.
func (l Lookback) Floor(today time.Time, g Granularity) time.Time {
	day := Normalize(today, today.Location())
	switch g {
	case Day:
		return day.AddDate(0, 0, -l.days())
	case Week:
		return day.AddDate(0, 0, -7*l.weeks())
	case Month:
		return stepMonths(day, -l.months())
	case Year:
		return stepMonths(day, -12*l.years())
	}
	return day
}

// Clamp pins a requested anchor into the navigable window: anchors after
// today become today, anchors older than the lookback floor become the
// floor, and anything in between passes through unchanged. Comparison is at
// day precision in today's location.
func (l Lookback) Clamp(requested, today time.Time, g Granularity) time.Time {
	day := Normalize(today, today.Location())
	req := Normalize(requested, today.Location())
	if req.After(day) {
		return day
	}
	if floor := l.Floor(today, g); req.Before(floor) {
		return floor
	}
	return req
}

// Forward moves anchor one bucket later. It refuses (returns the anchor
// unchanged and false) once the anchor has reached today; a step that would
// overshoot today lands on today instead, so the newest reachable bucket is
// always the one containing today and never a future one.
func (l Lookback) Forward(anchor, today time.Time, g Granularity) (time.Time, bool) {
	day := Normalize(today, today.Location())
	cur := Normalize(anchor, today.Location())
	if !cur.Before(day) {
		return cur, false
	}
	next := Step(cur, g, 1)
	if next.After(day) {
		next = day
	}
	return next, true
}

// Back moves anchor one bucket earlier, clamped to the lookback floor. It
// refuses (returns the anchor unchanged and false) once the anchor has
// reached the floor.
func (l Lookback) Back(anchor, today time.Time, g Granularity) (time.Time, bool) {
	cur := Normalize(anchor, today.Location())
	floor := l.Floor(today, g)
	if !cur.After(floor) {
		return cur, false
	}
	prev := Step(cur, g, -1)
	if prev.Before(floor) {
		prev = floor
	}
	return prev, true
}
