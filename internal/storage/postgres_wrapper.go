package storage

import (
	"database/sql"
	"errors"

	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/storage/postgres"
)

// PostgresStore adapts postgres.Store to the Provider interface.
type PostgresStore struct {
	store *postgres.Store
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		store: postgres.New(connStr),
	}
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password. Passwords belong in the environment, .pgpass,
// or the OS keyring, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return errors.Is(err, postgres.ErrEmbeddedCredentials)
}

// Lifecycle methods
func (s *PostgresStore) Init() error           { return s.store.Init() }
func (s *PostgresStore) Load() error           { return s.store.Load() }
func (s *PostgresStore) Close() error          { return s.store.Close() }
func (s *PostgresStore) GetConfigPath() string { return s.store.GetConfigPath() }
func (s *PostgresStore) GetDB() *sql.DB        { return s.store.GetDB() }

// Settings methods
func (s *PostgresStore) GetSettings() (models.Settings, error) { return s.store.GetSettings() }
func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

// Habit methods
func (s *PostgresStore) AddHabit(habit models.Habit) error        { return s.store.AddHabit(habit) }
func (s *PostgresStore) GetHabit(id string) (models.Habit, error) { return s.store.GetHabit(id) }
func (s *PostgresStore) GetHabitByName(name string) (models.Habit, error) {
	return s.store.GetHabitByName(name)
}
func (s *PostgresStore) GetAllHabits() ([]models.Habit, error) { return s.store.GetAllHabits() }
func (s *PostgresStore) UpdateHabit(habit models.Habit) error  { return s.store.UpdateHabit(habit) }
func (s *PostgresStore) DeleteHabit(id string) error           { return s.store.DeleteHabit(id) }

// Completion methods
func (s *PostgresStore) ToggleCompletion(completion models.Completion) (bool, error) {
	return s.store.ToggleCompletion(completion)
}
func (s *PostgresStore) AddCompletion(completion models.Completion) error {
	return s.store.AddCompletion(completion)
}
func (s *PostgresStore) RemoveCompletions(habitID, day string) error {
	return s.store.RemoveCompletions(habitID, day)
}
func (s *PostgresStore) GetCompletion(habitID, day string) (models.Completion, error) {
	return s.store.GetCompletion(habitID, day)
}
func (s *PostgresStore) GetCompletions(habitID string, startDay, endDay string) ([]models.Completion, error) {
	return s.store.GetCompletions(habitID, startDay, endDay)
}
func (s *PostgresStore) GetAllCompletions() ([]models.Completion, error) {
	return s.store.GetAllCompletions()
}
func (s *PostgresStore) CountCompletions(habitID string) (int, error) {
	return s.store.CountCompletions(habitID)
}
