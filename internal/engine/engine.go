// Package engine owns the habit domain logic: habit CRUD, the atomic
// completion toggle, completion maps over calendar buckets, and the derived
// statistics. All public operations serialize through one mutex so the store
// has a single logical owner.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride/internal/logger"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
	"github.com/strideapp/stride/internal/storage"
)

// ErrInvalidHabit marks a rejected habit mutation: blank name, unknown kind,
// or a duplicate name.
var ErrInvalidHabit = errors.New("invalid habit")

type Engine struct {
	mu       sync.Mutex
	store    storage.Provider
	resolver period.Resolver
	lookback period.Lookback
	now      func() time.Time
}

func New(store storage.Provider, resolver period.Resolver, lookback period.Lookback) *Engine {
	return &Engine{
		store:    store,
		resolver: resolver,
		lookback: lookback,
		now:      time.Now,
	}
}

// CalendarFromSettings builds the resolver and lookback window the stored
// settings describe. Unknown timezone or weekday values fall back to the
// defaults with a warning rather than failing startup.
func CalendarFromSettings(settings models.Settings) (period.Resolver, period.Lookback) {
	loc := time.Local
	if settings.Timezone != "" && !strings.EqualFold(settings.Timezone, "Local") {
		l, err := time.LoadLocation(settings.Timezone)
		if err != nil {
			logger.Warn("Unknown timezone in settings, using local time", "timezone", settings.Timezone, "error", err)
		} else {
			loc = l
		}
	}

	weekStart, err := period.ParseWeekday(settings.WeekStart)
	if err != nil {
		logger.Warn("Unknown week start in settings, using Monday", "week_start", settings.WeekStart)
		weekStart = time.Monday
	}

	resolver := period.Resolver{Location: loc, WeekStart: weekStart}
	lookback := period.Lookback{
		Days:   settings.LookbackDays,
		Weeks:  settings.LookbackWeeks,
		Months: settings.LookbackMonths,
		Years:  settings.LookbackYears,
	}
	return resolver, lookback
}

// Resolver returns the calendar resolver the engine was built with.
func (e *Engine) Resolver() period.Resolver {
	return e.resolver
}

// Lookback returns the navigation window the engine was built with.
func (e *Engine) Lookback() period.Lookback {
	return e.lookback
}

// Today returns the current day at midnight in the engine's location.
func (e *Engine) Today() time.Time {
	return period.Normalize(e.now(), e.resolver.Location)
}

func (e *Engine) CreateHabit(name string, kind models.HabitKind) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidHabit)
	}
	if !kind.Valid() {
		return models.Habit{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidHabit, kind)
	}

	// Check if habit with same name already exists
	if _, err := e.store.GetHabitByName(name); err == nil {
		return models.Habit{}, fmt.Errorf("%w: habit with name %q already exists", ErrInvalidHabit, name)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      kind,
		CreatedAt: e.now(),
	}
	if err := e.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (e *Engine) RenameHabit(id, name string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidHabit)
	}

	habit, err := e.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", id)
	}

	if existing, err := e.store.GetHabitByName(name); err == nil && existing.ID != habit.ID {
		return models.Habit{}, fmt.Errorf("%w: habit with name %q already exists", ErrInvalidHabit, name)
	}

	habit.Name = name
	if err := e.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (e *Engine) SetHabitKind(id string, kind models.HabitKind) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !kind.Valid() {
		return models.Habit{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidHabit, kind)
	}

	habit, err := e.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", id)
	}

	habit.Kind = kind
	if err := e.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (e *Engine) Habits() ([]models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetAllHabits()
}

func (e *Engine) Habit(id string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetHabit(id)
}

func (e *Engine) HabitByName(name string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetHabitByName(name)
}

func (e *Engine) DeleteHabit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.DeleteHabit(id)
}

// ToggleCompletion flips the completion state of the habit for the given
// date's day and returns the new state. The check-then-act runs as one
// storage transaction, so two racing toggles for the same (habit, day)
// serialize instead of both inserting or both deleting.
func (e *Engine) ToggleCompletion(habitID string, date time.Time) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.GetHabit(habitID); err != nil {
		return false, fmt.Errorf("habit %q not found", habitID)
	}

	day := period.Normalize(date, e.resolver.Location)
	completion := models.Completion{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Day:       period.FormatDay(day),
		CreatedAt: e.now(),
	}
	return e.store.ToggleCompletion(completion)
}

// IsCompleted reports whether the habit is completed on the given date's day.
// A missing record is false, not an error.
func (e *Engine) IsCompleted(habitID string, date time.Time) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.completionMap(habitID, period.Day, date)
	if err != nil {
		return false, err
	}
	return m[period.FormatDay(period.Normalize(date, e.resolver.Location))], nil
}

// CompletionMap returns one entry per day of the bucket containing anchor,
// explicit false for uncompleted days. Days after today are filled false
// without touching storage, and a bucket entirely in the future performs no
// query at all; past days come from a single range query.
func (e *Engine) CompletionMap(habitID string, g period.Granularity, anchor time.Time) (map[string]bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completionMap(habitID, g, anchor)
}

func (e *Engine) completionMap(habitID string, g period.Granularity, anchor time.Time) (map[string]bool, error) {
	dates, err := e.resolver.DatesIn(g, anchor)
	if err != nil {
		return nil, err
	}

	m := make(map[string]bool, len(dates))
	for _, d := range dates {
		m[period.FormatDay(d)] = false
	}

	today := period.Normalize(e.now(), e.resolver.Location)
	start := dates[0]
	end := dates[len(dates)-1]
	if start.After(today) {
		return m, nil
	}
	if end.After(today) {
		end = today
	}

	completions, err := e.fetchCompletions(habitID, period.FormatDay(start), period.FormatDay(end))
	if err != nil {
		return nil, err
	}
	for _, c := range completions {
		if _, ok := m[c.Day]; ok {
			m[c.Day] = true
		}
	}
	return m, nil
}

// fetchCompletions runs the filtered range query, falling back to a full
// scan with the same in-process predicate when the provider cannot filter.
// Both paths return identical rows; hard storage errors propagate.
func (e *Engine) fetchCompletions(habitID, startDay, endDay string) ([]models.Completion, error) {
	completions, err := e.store.GetCompletions(habitID, startDay, endDay)
	if err == nil {
		return completions, nil
	}
	if !errors.Is(err, storage.ErrFilterUnsupported) {
		return nil, err
	}

	logger.Warn("Storage provider cannot filter completions, scanning the full collection", "habit", habitID)

	all, err := e.store.GetAllCompletions()
	if err != nil {
		return nil, err
	}
	var filtered []models.Completion
	for _, c := range all {
		if c.HabitID == habitID && c.Day >= startDay && c.Day <= endDay {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// History returns day-keyed completion state for the trailing window of
// days ending today. Like CompletionMap it issues a single range query and
// carries explicit false entries for uncompleted days.
func (e *Engine) History(habitID string, days int) (map[string]bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if days < 1 {
		days = 1
	}
	today := period.Normalize(e.now(), e.resolver.Location)
	start := today.AddDate(0, 0, -(days - 1))

	m := make(map[string]bool, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		m[period.FormatDay(d)] = false
	}

	completions, err := e.fetchCompletions(habitID, period.FormatDay(start), period.FormatDay(today))
	if err != nil {
		return nil, err
	}
	for _, c := range completions {
		if _, ok := m[c.Day]; ok {
			m[c.Day] = true
		}
	}
	return m, nil
}

// Stats is the derived view of one habit over one bucket.
type Stats struct {
	Streak  int
	Rate    float64
	Percent int
}

// HabitStats pairs a habit with its stats for overview listings.
type HabitStats struct {
	Habit models.Habit
	Stats Stats
}

// Statistics computes the habit's streak, completion rate, and display
// percentage for the bucket containing anchor from a single completion map.
func (e *Engine) Statistics(habitID string, g period.Granularity, anchor time.Time) (Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statistics(habitID, g, anchor)
}

func (e *Engine) statistics(habitID string, g period.Granularity, anchor time.Time) (Stats, error) {
	m, err := e.completionMap(habitID, g, anchor)
	if err != nil {
		return Stats{}, err
	}
	today := period.Normalize(e.now(), e.resolver.Location)
	return Stats{
		Streak:  CurrentStreak(m, today),
		Rate:    CompletionRate(m, today),
		Percent: DisplayPercentage(m, today),
	}, nil
}

// Overview computes Stats for every habit over the bucket containing anchor,
// one range query per habit.
func (e *Engine) Overview(g period.Granularity, anchor time.Time) ([]HabitStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	habits, err := e.store.GetAllHabits()
	if err != nil {
		return nil, err
	}

	overview := make([]HabitStats, 0, len(habits))
	for _, habit := range habits {
		stats, err := e.statistics(habit.ID, g, anchor)
		if err != nil {
			return nil, err
		}
		overview = append(overview, HabitStats{Habit: habit, Stats: stats})
	}
	return overview, nil
}
