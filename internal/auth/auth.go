// Package auth owns accounts and the signed-in session. Credentials live in
// the store as argon2id hashes; the active session is persisted to the OS
// keyring so the next launch resumes it.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitten/tally/internal/constants"
	"github.com/mwhitten/tally/internal/keyring"
	"github.com/mwhitten/tally/internal/logger"
	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
	"github.com/mwhitten/tally/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidResetCode   = errors.New("reset code is invalid or expired")
)

// EventKind distinguishes sign-in/out notifications sent to subscribers.
type EventKind int

const (
	EventSignedIn EventKind = iota
	EventSignedOut
)

type Event struct {
	Kind EventKind
	User models.User
}

// Service manages accounts against a storage provider.
type Service struct {
	provider    storage.Provider
	current     *models.User
	subscribers []func(Event)
	now         func() time.Time
}

func NewService(provider storage.Provider) *Service {
	return &Service{provider: provider, now: time.Now}
}

// Subscribe registers a callback for sign-in and sign-out events.
func (s *Service) Subscribe(fn func(Event)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) notify(e Event) {
	for _, fn := range s.subscribers {
		fn(e)
	}
}

// CurrentUser returns the signed-in user, or ErrNotSignedIn.
func (s *Service) CurrentUser() (models.User, error) {
	if s.current == nil {
		return models.User{}, ErrNotSignedIn
	}
	return *s.current, nil
}

// Resume restores the session stored in the OS keyring, if any.
func (s *Service) Resume() (models.User, error) {
	userID, err := keyring.GetSessionUser()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.User{}, ErrNotSignedIn
		}
		return models.User{}, err
	}

	user, err := s.provider.GetUser(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Stale session for a deleted account, clear it.
			_ = keyring.DeleteSessionUser()
			return models.User{}, ErrNotSignedIn
		}
		return models.User{}, err
	}

	s.current = &user
	s.notify(Event{Kind: EventSignedIn, User: user})
	return user, nil
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(email, password, confirm string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.Email(email); err != nil {
		return models.User{}, err
	}
	if err := validation.Password(password, confirm); err != nil {
		return models.User{}, err
	}

	if _, err := s.provider.GetUserByEmail(email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}

	salt, err := NewSalt()
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: s.now().UTC(),
	}
	if err := s.provider.CreateUser(user, salt, HashPassword(password, salt)); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("Created account", "email", email)
	return user, s.signIn(user)
}

// SignInWithPassword verifies credentials and starts a session.
func (s *Service) SignInWithPassword(email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.provider.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	salt, hash, err := s.provider.GetCredentials(user.ID)
	if err != nil {
		return models.User{}, err
	}
	if !VerifyPassword(password, salt, hash) {
		return models.User{}, ErrInvalidCredentials
	}

	return user, s.signIn(user)
}

func (s *Service) signIn(user models.User) error {
	if err := keyring.SetSessionUser(user.ID); err != nil {
		// A missing keyring degrades to a non-persistent session.
		logger.Warn("Failed to persist session", "error", err)
	}
	s.current = &user
	s.notify(Event{Kind: EventSignedIn, User: user})
	return nil
}

// SignOut ends the session and clears the keyring entry.
func (s *Service) SignOut() error {
	if s.current == nil {
		return ErrNotSignedIn
	}
	user := *s.current
	s.current = nil

	if err := keyring.DeleteSessionUser(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("Failed to clear stored session", "error", err)
	}
	s.notify(Event{Kind: EventSignedOut, User: user})
	return nil
}

// UpdatePassword changes the signed-in user's password after verifying the
// current one.
func (s *Service) UpdatePassword(current, next, confirm string) error {
	user, err := s.CurrentUser()
	if err != nil {
		return err
	}

	salt, hash, err := s.provider.GetCredentials(user.ID)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, salt, hash) {
		return ErrInvalidCredentials
	}
	if err := validation.Password(next, confirm); err != nil {
		return err
	}

	newSalt, err := NewSalt()
	if err != nil {
		return err
	}
	if err := s.provider.UpdatePassword(user.ID, newSalt, HashPassword(next, newSalt)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Info("Password updated", "user", user.ID)
	return nil
}

// RequestPasswordReset issues a one-time reset code for the account. The code
// is returned to the caller for delivery; only its hash is stored.
func (s *Service) RequestPasswordReset(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.provider.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	code, err := NewResetCode()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().UTC().Add(constants.ResetCodeTTLMinutes * time.Minute)
	if err := s.provider.SaveResetToken(user.ID, HashResetCode(code), expiresAt); err != nil {
		return "", fmt.Errorf("failed to save reset code: %w", err)
	}
	return code, nil
}

// ConfirmPasswordReset consumes a reset code and sets the new password.
func (s *Service) ConfirmPasswordReset(code, next, confirm string) error {
	if err := validation.Password(next, confirm); err != nil {
		return err
	}

	userID, err := s.provider.ConsumeResetToken(HashResetCode(code), s.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}

	salt, err := NewSalt()
	if err != nil {
		return err
	}
	if err := s.provider.UpdatePassword(userID, salt, HashPassword(next, salt)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Info("Password reset", "user", userID)
	return nil
}
