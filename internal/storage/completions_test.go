package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride/internal/models"
)

func addTestHabit(t *testing.T, store *SQLiteStore, name string) models.Habit {
	t.Helper()
	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      models.HabitKindGood,
		CreatedAt: time.Now(),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit(%q) error = %v", name, err)
	}
	return habit
}

func newTestCompletion(habitID, day string) models.Completion {
	return models.Completion{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Day:       day,
		CreatedAt: time.Now(),
	}
}

func TestToggleCompletion(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := addTestHabit(t, store, "Meditate")
	day := "2026-03-10"

	completed, err := store.ToggleCompletion(newTestCompletion(habit.ID, day))
	if err != nil {
		t.Fatalf("ToggleCompletion() error = %v", err)
	}
	if !completed {
		t.Error("ToggleCompletion() first toggle = false, want true")
	}

	if _, err := store.GetCompletion(habit.ID, day); err != nil {
		t.Errorf("GetCompletion() after toggle on error = %v", err)
	}

	completed, err = store.ToggleCompletion(newTestCompletion(habit.ID, day))
	if err != nil {
		t.Fatalf("ToggleCompletion() second toggle error = %v", err)
	}
	if completed {
		t.Error("ToggleCompletion() second toggle = true, want false")
	}

	if _, err := store.GetCompletion(habit.ID, day); err == nil {
		t.Error("GetCompletion() after toggle off should fail")
	}
}

func TestToggleCompletionAlternates(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := addTestHabit(t, store, "Journal")
	day := "2026-03-11"

	for i := 0; i < 6; i++ {
		completed, err := store.ToggleCompletion(newTestCompletion(habit.ID, day))
		if err != nil {
			t.Fatalf("ToggleCompletion() toggle %d error = %v", i, err)
		}
		want := i%2 == 0
		if completed != want {
			t.Errorf("ToggleCompletion() toggle %d = %v, want %v", i, completed, want)
		}
	}

	count, err := store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("CountCompletions() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountCompletions() after even toggles = %d, want 0", count)
	}
}

func TestAddCompletionIdempotent(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := addTestHabit(t, store, "Walk")
	day := "2026-03-12"

	if err := store.AddCompletion(newTestCompletion(habit.ID, day)); err != nil {
		t.Fatalf("AddCompletion() error = %v", err)
	}
	if err := store.AddCompletion(newTestCompletion(habit.ID, day)); err != nil {
		t.Fatalf("AddCompletion() repeat error = %v", err)
	}

	count, err := store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("CountCompletions() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountCompletions() = %d, want 1", count)
	}
}

func TestRemoveCompletions(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := addTestHabit(t, store, "Water plants")
	day := "2026-03-13"

	if err := store.AddCompletion(newTestCompletion(habit.ID, day)); err != nil {
		t.Fatalf("AddCompletion() error = %v", err)
	}
	if err := store.RemoveCompletions(habit.ID, day); err != nil {
		t.Fatalf("RemoveCompletions() error = %v", err)
	}
	if _, err := store.GetCompletion(habit.ID, day); err == nil {
		t.Error("GetCompletion() after remove should fail")
	}

	// Removing again is a no-op
	if err := store.RemoveCompletions(habit.ID, day); err != nil {
		t.Errorf("RemoveCompletions() on empty day error = %v", err)
	}
}

func TestGetCompletionsRange(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := addTestHabit(t, store, "Pushups")
	other := addTestHabit(t, store, "Situps")

	days := []string{"2026-01-31", "2026-01-05", "2026-01-15", "2026-02-02", "2026-01-01"}
	for _, day := range days {
		if err := store.AddCompletion(newTestCompletion(habit.ID, day)); err != nil {
			t.Fatalf("AddCompletion(%q) error = %v", day, err)
		}
	}
	// Rows for another habit must not leak into the range
	if err := store.AddCompletion(newTestCompletion(other.ID, "2026-01-10")); err != nil {
		t.Fatalf("AddCompletion() for other habit error = %v", err)
	}

	completions, err := store.GetCompletions(habit.ID, "2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("GetCompletions() error = %v", err)
	}

	want := []string{"2026-01-01", "2026-01-05", "2026-01-15", "2026-01-31"}
	if len(completions) != len(want) {
		t.Fatalf("GetCompletions() returned %d rows, want %d", len(completions), len(want))
	}
	for i, day := range want {
		if completions[i].Day != day {
			t.Errorf("GetCompletions()[%d].Day = %q, want %q", i, completions[i].Day, day)
		}
		if completions[i].HabitID != habit.ID {
			t.Errorf("GetCompletions()[%d].HabitID = %q, want %q", i, completions[i].HabitID, habit.ID)
		}
	}
}

func TestGetAllCompletions(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	first := addTestHabit(t, store, "Floss")
	second := addTestHabit(t, store, "Stretch")

	for _, day := range []string{"2026-04-01", "2026-04-02"} {
		if err := store.AddCompletion(newTestCompletion(first.ID, day)); err != nil {
			t.Fatalf("AddCompletion(%q) error = %v", day, err)
		}
	}
	if err := store.AddCompletion(newTestCompletion(second.ID, "2026-04-01")); err != nil {
		t.Fatalf("AddCompletion() error = %v", err)
	}

	all, err := store.GetAllCompletions()
	if err != nil {
		t.Fatalf("GetAllCompletions() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("GetAllCompletions() returned %d rows, want 3", len(all))
	}
}

func TestCountCompletions(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := addTestHabit(t, store, "Bike")

	if count, err := store.CountCompletions(habit.ID); err != nil || count != 0 {
		t.Errorf("CountCompletions() = %d, %v, want 0, nil", count, err)
	}

	for _, day := range []string{"2026-05-01", "2026-05-03", "2026-05-07"} {
		if err := store.AddCompletion(newTestCompletion(habit.ID, day)); err != nil {
			t.Fatalf("AddCompletion(%q) error = %v", day, err)
		}
	}

	count, err := store.CountCompletions(habit.ID)
	if err != nil {
		t.Fatalf("CountCompletions() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountCompletions() = %d, want 3", count)
	}
}
