package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

func (s *Store) CreateHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, created_at FROM habits WHERE id = ?`, id)

	var h models.Habit
	var createdAt string
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return h, nil
}

func (s *Store) GetHabitsForUser(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, created_at
		FROM habits WHERE user_id = ?
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		var createdAt string

		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &createdAt); err != nil {
			return nil, err
		}
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit removes the habit and cascades to its entries in one
// transaction.
func (s *Store) DeleteHabit(userID, habitID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		DELETE FROM habit_entries WHERE user_id = ? AND habit_id = ?`,
		userID, habitID); err != nil {
		_ = tx.Rollback()
		return err
	}

	result, err := tx.Exec(`
		DELETE FROM habits WHERE id = ? AND user_id = ?`, habitID, userID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows == 0 {
		_ = tx.Rollback()
		return storage.ErrNotFound
	}

	return tx.Commit()
}
