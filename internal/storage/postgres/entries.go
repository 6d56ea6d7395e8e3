package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

// UpsertEntry inserts or replaces the entry at its natural key and returns
// the stored row.
func (s *Store) UpsertEntry(entry models.Entry) (models.Entry, error) {
	var updatedAt string
	confirmed := models.Entry{}

	err := s.db.QueryRow(`
		INSERT INTO habit_entries (user_id, habit_id, day, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, habit_id, day) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, habit_id, day, value, updated_at`,
		entry.UserID, entry.HabitID, entry.Day, entry.Value,
		entry.UpdatedAt.Format(time.RFC3339)).
		Scan(&confirmed.UserID, &confirmed.HabitID, &confirmed.Day, &confirmed.Value, &updatedAt)
	if err != nil {
		return models.Entry{}, err
	}

	confirmed.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return confirmed, nil
}

func (s *Store) GetEntry(userID, habitID, day string) (models.Entry, error) {
	row := s.db.QueryRow(`
		SELECT user_id, habit_id, day, value, updated_at
		FROM habit_entries WHERE user_id = $1 AND habit_id = $2 AND day = $3`,
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
		FROM habit_entries WHERE user_id = $1
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
