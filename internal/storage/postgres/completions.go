package postgres

import (
	"fmt"
	"time"

	"github.com/strideapp/stride/internal/models"
)

const completionColumns = "id, habit_id, day, created_at"

func scanCompletion(row rowScanner) (models.Completion, error) {
	var c models.Completion
	var createdAt string
	if err := row.Scan(&c.ID, &c.HabitID, &c.Day, &createdAt); err != nil {
		return models.Completion{}, err
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("completion %s has an unreadable created_at: %w", c.ID, err)
	}
	c.CreatedAt = parsed
	return c, nil
}

// ToggleCompletion flips the completed state for the completion's
// (habit, day) pair. The check and the write share one transaction so
// concurrent toggles cannot interleave. Returns the state after the flip.
func (s *Store) ToggleCompletion(completion models.Completion) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRow(`
		SELECT count(*) FROM completions WHERE habit_id = $1 AND day = $2`,
		completion.HabitID, completion.Day).Scan(&count)
	if err != nil {
		return false, err
	}

	completed := count == 0
	if completed {
		_, err = tx.Exec(`
			INSERT INTO completions (id, habit_id, day, created_at)
			VALUES ($1, $2, $3, $4)`,
			completion.ID, completion.HabitID, completion.Day,
			completion.CreatedAt.Format(time.RFC3339))
	} else {
		_, err = tx.Exec(`
			DELETE FROM completions WHERE habit_id = $1 AND day = $2`,
			completion.HabitID, completion.Day)
	}
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return completed, nil
}

func (s *Store) AddCompletion(completion models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, day, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (habit_id, day) DO NOTHING`,
		completion.ID, completion.HabitID, completion.Day,
		completion.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) RemoveCompletions(habitID, day string) error {
	_, err := s.db.Exec(`
		DELETE FROM completions WHERE habit_id = $1 AND day = $2`, habitID, day)
	return err
}

func (s *Store) GetCompletion(habitID, day string) (models.Completion, error) {
	return scanCompletion(s.db.QueryRow(`
		SELECT `+completionColumns+`
		FROM completions WHERE habit_id = $1 AND day = $2
		ORDER BY created_at LIMIT 1`, habitID, day))
}

func (s *Store) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) GetCompletions(habitID string, startDay, endDay string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+`
		FROM completions
		WHERE habit_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`, habitID, startDay, endDay)
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(
		"SELECT " + completionColumns + " FROM completions ORDER BY habit_id, day")
}

func (s *Store) CountCompletions(habitID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*) FROM completions WHERE habit_id = $1`, habitID).Scan(&count)
	return count, err
}
