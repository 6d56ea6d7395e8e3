package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

func (s *Store) CreateUser(user models.User, salt, passwordHash []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, salt, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, salt, passwordHash, user.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, email, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, email, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt string

	err := row.Scan(&u.ID, &u.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return u, nil
}

func (s *Store) GetCredentials(userID string) ([]byte, []byte, error) {
	var salt, hash []byte
	err := s.db.QueryRow("SELECT salt, password_hash FROM users WHERE id = ?", userID).
		Scan(&salt, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, storage.ErrNotFound
		}
		return nil, nil, err
	}
	return salt, hash, nil
}

func (s *Store) UpdatePassword(userID string, salt, passwordHash []byte) error {
	result, err := s.db.Exec(`
		UPDATE users SET salt = ?, password_hash = ? WHERE id = ?`,
		salt, passwordHash, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SaveResetToken(userID string, tokenHash []byte, expiresAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO reset_tokens (user_id, token_hash, expires_at)
		VALUES (?, ?, ?)`,
		userID, tokenHash, expiresAt.Format(time.RFC3339))
	return err
}

func (s *Store) ConsumeResetToken(tokenHash []byte, now time.Time) (string, error) {
	var userID, expiresAt string
	err := s.db.QueryRow(`
		SELECT user_id, expires_at FROM reset_tokens WHERE token_hash = ?`,
		tokenHash).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", err
	}

	// A token is single-use regardless of expiry.
	if _, err := s.db.Exec("DELETE FROM reset_tokens WHERE token_hash = ?", tokenHash); err != nil {
		return "", err
	}

	exp, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to parse expires_at: %w", err)
	}
	if now.After(exp) {
		return "", storage.ErrNotFound
	}
	return userID, nil
}
