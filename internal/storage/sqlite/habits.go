package sqlite

import (
	"fmt"
	"time"

	"github.com/strideapp/stride/internal/models"
)

const habitColumns = "id, name, kind, created_at"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	if err := row.Scan(&h.ID, &h.Name, &h.Kind, &createdAt); err != nil {
		return models.Habit{}, err
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %s has an unreadable created_at: %w", h.ID, err)
	}
	h.CreatedAt = parsed
	return h, nil
}

// AddHabit shares the upsert with UpdateHabit; IDs are generated by the
// caller, so insert and update are the same statement.
func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	return scanHabit(s.db.QueryRow(
		"SELECT "+habitColumns+" FROM habits WHERE id = ?", id))
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	return scanHabit(s.db.QueryRow(
		"SELECT "+habitColumns+" FROM habits WHERE name = ?", name))
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT " + habitColumns + " FROM habits ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, kind, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind`,
		habit.ID, habit.Name, habit.Kind, habit.CreatedAt.Format(time.RFC3339))
	return err
}

// DeleteHabit removes the habit and every completion recorded for it in
// one transaction. The schema's ON DELETE CASCADE is not relied on
// because SQLite only honors it with foreign keys enabled.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", id); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit not found")
	}
	return tx.Commit()
}
