package engine

import (
	"math"
	"sort"
	"time"

	"github.com/strideapp/stride/internal/period"
)

// pastDays returns the map's keys that fall on or before today, unsorted.
// Day keys compare chronologically as strings.
func pastDays(completions map[string]bool, today time.Time) []string {
	cutoff := period.FormatDay(period.Normalize(today, today.Location()))
	var days []string
	for key := range completions {
		if key <= cutoff {
			days = append(days, key)
		}
	}
	return days
}

// CurrentStreak counts the contiguous run of completed days ending at the
// most recent mapped day not after today. A day missing from the map breaks
// the run exactly like an uncompleted one; days after today are ignored.
func CurrentStreak(completions map[string]bool, today time.Time) int {
	days := pastDays(completions, today)
	if len(days) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	expected, err := period.ParseDay(days[0], today.Location())
	if err != nil {
		return 0
	}

	streak := 0
	for _, key := range days {
		day, err := period.ParseDay(key, today.Location())
		if err != nil || !period.SameDay(day, expected) {
			break
		}
		if !completions[key] {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionRate returns the completed share of the mapped days on or before
// today, 0 when there are none.
func CompletionRate(completions map[string]bool, today time.Time) float64 {
	days := pastDays(completions, today)
	if len(days) == 0 {
		return 0
	}

	done := 0
	for _, key := range days {
		if completions[key] {
			done++
		}
	}
	return float64(done) / float64(len(days))
}

// DisplayPercentage rounds CompletionRate to a whole percent for display,
// 0 over an empty set.
func DisplayPercentage(completions map[string]bool, today time.Time) int {
	return int(math.Round(CompletionRate(completions, today) * 100))
}
