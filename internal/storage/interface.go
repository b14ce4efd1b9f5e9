package storage

import (
	"errors"

	"github.com/strideapp/stride/internal/models"
)

// ErrFilterUnsupported signals that a provider cannot evaluate a filtered
// completion query. Callers should fall back to GetAllCompletions and
// filter in memory.
var ErrFilterUnsupported = errors.New("filtered completion query not supported")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Completions
	// ToggleCompletion flips the completed state for the completion's
	// (habit, day) pair in a single transaction and reports the state
	// after the flip: true when the day is now completed.
	ToggleCompletion(models.Completion) (bool, error)
	AddCompletion(models.Completion) error
	// RemoveCompletions deletes every completion row for the pair and is
	// a no-op when none exist.
	RemoveCompletions(habitID, day string) error
	GetCompletion(habitID, day string) (models.Completion, error)
	GetCompletions(habitID string, startDay, endDay string) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)
	CountCompletions(habitID string) (int, error)

	// Utils
	GetConfigPath() string
}
