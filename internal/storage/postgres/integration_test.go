package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/strideapp/stride/internal/constants"
	"github.com/strideapp/stride/internal/models"
)

// TestStore_Integration tests the PostgreSQL store with a real database.
// Set POSTGRES_TEST_URL environment variable to run this test.
// Example: POSTGRES_TEST_URL="postgres://stride_user@localhost:5432/stride_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	// Create a new PostgreSQL store
	store := New(connStr)

	// Initialize the store
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// Test Settings
	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}

		// Verify default settings were created
		if settings.Timezone != constants.DefaultTimezone {
			t.Errorf("Expected timezone %s, got %s", constants.DefaultTimezone, settings.Timezone)
		}

		// Update settings
		settings.WeekStart = "sunday"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}

		// Verify update
		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.WeekStart != "sunday" {
			t.Errorf("Expected week start sunday, got %s", updated.WeekStart)
		}
	})

	// Test Habits
	t.Run("Habits", func(t *testing.T) {
		habit := models.Habit{
			ID:        "test-habit-pg-1",
			Name:      "Test PostgreSQL Habit",
			Kind:      models.HabitKindGood,
			CreatedAt: time.Now(),
		}

		// Add habit
		if err := store.AddHabit(habit); err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}

		// Get habit
		retrieved, err := store.GetHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get habit: %v", err)
		}
		if retrieved.Name != habit.Name {
			t.Errorf("Expected habit name %s, got %s", habit.Name, retrieved.Name)
		}
		if retrieved.Kind != models.HabitKindGood {
			t.Errorf("Expected habit kind %s, got %s", models.HabitKindGood, retrieved.Kind)
		}

		// Update habit
		habit.Kind = models.HabitKindBad
		if err := store.UpdateHabit(habit); err != nil {
			t.Fatalf("Failed to update habit: %v", err)
		}

		// Verify update
		updated, err := store.GetHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get updated habit: %v", err)
		}
		if updated.Kind != models.HabitKindBad {
			t.Errorf("Expected habit kind %s, got %s", models.HabitKindBad, updated.Kind)
		}

		// Delete habit
		if err := store.DeleteHabit(habit.ID); err != nil {
			t.Fatalf("Failed to delete habit: %v", err)
		}

		// Verify deletion
		if _, err := store.GetHabit(habit.ID); err == nil {
			t.Error("Expected error when getting deleted habit")
		}
	})

	// Test Completions
	t.Run("Completions", func(t *testing.T) {
		habit := models.Habit{
			ID:        "test-habit-pg-2",
			Name:      "Habit for Completions",
			Kind:      models.HabitKindNeutral,
			CreatedAt: time.Now(),
		}
		if err := store.AddHabit(habit); err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}

		completion := models.Completion{
			ID:        "test-completion-pg-1",
			HabitID:   habit.ID,
			Day:       "2026-01-15",
			CreatedAt: time.Now(),
		}

		// Toggle on
		completed, err := store.ToggleCompletion(completion)
		if err != nil {
			t.Fatalf("Failed to toggle completion: %v", err)
		}
		if !completed {
			t.Error("Expected first toggle to complete the day")
		}

		// Toggle off
		completed, err = store.ToggleCompletion(completion)
		if err != nil {
			t.Fatalf("Failed to toggle completion off: %v", err)
		}
		if completed {
			t.Error("Expected second toggle to clear the day")
		}

		// Add is idempotent on the (habit, day) pair
		if err := store.AddCompletion(completion); err != nil {
			t.Fatalf("Failed to add completion: %v", err)
		}
		if err := store.AddCompletion(completion); err != nil {
			t.Fatalf("Failed to re-add completion: %v", err)
		}
		count, err := store.CountCompletions(habit.ID)
		if err != nil {
			t.Fatalf("Failed to count completions: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 completion, got %d", count)
		}

		// Range query
		completions, err := store.GetCompletions(habit.ID, "2026-01-01", "2026-01-31")
		if err != nil {
			t.Fatalf("Failed to get completions: %v", err)
		}
		if len(completions) != 1 {
			t.Errorf("Expected 1 completion in range, got %d", len(completions))
		}

		// Deleting the habit removes its completions
		if err := store.DeleteHabit(habit.ID); err != nil {
			t.Fatalf("Failed to delete habit: %v", err)
		}
		count, err = store.CountCompletions(habit.ID)
		if err != nil {
			t.Fatalf("Failed to count completions after delete: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected 0 completions after habit delete, got %d", count)
		}
	})
}
