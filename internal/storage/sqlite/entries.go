package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

// UpsertEntry inserts or replaces the entry at its natural key and returns
// the row as stored, which callers treat as the confirmed authority.
func (s *Store) UpsertEntry(entry models.Entry) (models.Entry, error) {
	_, err := s.db.Exec(`
		INSERT INTO habit_entries (user_id, habit_id, day, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, habit_id, day) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		entry.UserID, entry.HabitID, entry.Day, entry.Value,
		entry.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return models.Entry{}, err
	}

	return s.GetEntry(entry.UserID, entry.HabitID, entry.Day)
}

func (s *Store) GetEntry(userID, habitID, day string) (models.Entry, error) {
	row := s.db.QueryRow(`
		SELECT user_id, habit_id, day, value, updated_at
		FROM habit_entries WHERE user_id = ? AND habit_id = ? AND day = ?`,
		userID, habitID, day)

	var e models.Entry
	var updatedAt string
	err := row.Scan(&e.UserID, &e.HabitID, &e.Day, &e.Value, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, storage.ErrNotFound
		}
		return models.Entry{}, err
	}

	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return e, nil
}

func (s *Store) GetEntriesForUser(userID string) ([]models.Entry, error) {
	rows, err := s.db.Query(`
		SELECT user_id, habit_id, day, value, updated_at
		FROM habit_entries WHERE user_id = ?
		ORDER BY day`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var updatedAt string

		if err := rows.Scan(&e.UserID, &e.HabitID, &e.Day, &e.Value, &updatedAt); err != nil {
			return nil, err
		}
		e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for entry %s/%s: %w", e.HabitID, e.Day, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
