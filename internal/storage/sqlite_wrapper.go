package storage

import (
	"database/sql"

	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
	db    *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) *SQLiteStore {
	store := sqlite.NewStore(path)
	return &SQLiteStore{
		store: store,
		db:    nil, // Will be set after Init/Load
	}
}

// Lifecycle methods
func (s *SQLiteStore) Init() error {
	err := s.store.Init()
	if err == nil {
		s.db = s.store.GetDB()
	}
	return err
}

func (s *SQLiteStore) Load() error {
	err := s.store.Load()
	if err == nil {
		s.db = s.store.GetDB()
	}
	return err
}

func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }
func (s *SQLiteStore) GetDB() *sql.DB {
	if s.db == nil {
		s.db = s.store.GetDB()
	}
	return s.db
}

// Settings methods
func (s *SQLiteStore) GetSettings() (models.Settings, error) { return s.store.GetSettings() }
func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

// Habit methods
func (s *SQLiteStore) AddHabit(habit models.Habit) error        { return s.store.AddHabit(habit) }
func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) { return s.store.GetHabit(id) }
func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	return s.store.GetHabitByName(name)
}
func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) { return s.store.GetAllHabits() }
func (s *SQLiteStore) UpdateHabit(habit models.Habit) error  { return s.store.UpdateHabit(habit) }
func (s *SQLiteStore) DeleteHabit(id string) error           { return s.store.DeleteHabit(id) }

// Completion methods
func (s *SQLiteStore) ToggleCompletion(completion models.Completion) (bool, error) {
	return s.store.ToggleCompletion(completion)
}
func (s *SQLiteStore) AddCompletion(completion models.Completion) error {
	return s.store.AddCompletion(completion)
}
func (s *SQLiteStore) RemoveCompletions(habitID, day string) error {
	return s.store.RemoveCompletions(habitID, day)
}
func (s *SQLiteStore) GetCompletion(habitID, day string) (models.Completion, error) {
	return s.store.GetCompletion(habitID, day)
}
func (s *SQLiteStore) GetCompletions(habitID string, startDay, endDay string) ([]models.Completion, error) {
	return s.store.GetCompletions(habitID, startDay, endDay)
}
func (s *SQLiteStore) GetAllCompletions() ([]models.Completion, error) {
	return s.store.GetAllCompletions()
}
func (s *SQLiteStore) CountCompletions(habitID string) (int, error) {
	return s.store.CountCompletions(habitID)
}
