package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

type memCreds struct {
	salt []byte
	hash []byte
}

type memToken struct {
	userID    string
	expiresAt time.Time
}

// memProvider is an in-memory account store for auth tests.
type memProvider struct {
	storage.Provider
	users  map[string]models.User
	creds  map[string]memCreds
	tokens map[string]memToken
}

func newMemProvider() *memProvider {
	return &memProvider{
		users:  make(map[string]models.User),
		creds:  make(map[string]memCreds),
		tokens: make(map[string]memToken),
	}
}

func (p *memProvider) CreateUser(user models.User, salt, hash []byte) error {
	p.users[user.ID] = user
	p.creds[user.ID] = memCreds{salt: salt, hash: hash}
	return nil
}

func (p *memProvider) GetUser(id string) (models.User, error) {
	u, ok := p.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (p *memProvider) GetUserByEmail(email string) (models.User, error) {
	for _, u := range p.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (p *memProvider) GetCredentials(userID string) ([]byte, []byte, error) {
	c, ok := p.creds[userID]
	if !ok {
		return nil, nil, storage.ErrNotFound
	}
	return c.salt, c.hash, nil
}

func (p *memProvider) UpdatePassword(userID string, salt, hash []byte) error {
	if _, ok := p.creds[userID]; !ok {
		return storage.ErrNotFound
	}
	p.creds[userID] = memCreds{salt: salt, hash: hash}
	return nil
}

func (p *memProvider) SaveResetToken(userID string, tokenHash []byte, expiresAt time.Time) error {
	p.tokens[string(tokenHash)] = memToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (p *memProvider) ConsumeResetToken(tokenHash []byte, now time.Time) (string, error) {
	tok, ok := p.tokens[string(tokenHash)]
	if !ok {
		return "", storage.ErrNotFound
	}
	delete(p.tokens, string(tokenHash))
	if now.After(tok.expiresAt) {
		return "", storage.ErrNotFound
	}
	return tok.userID, nil
}

func newTestService(t *testing.T) (*Service, *memProvider) {
	t.Helper()
	gokeyring.MockInit()
	p := newMemProvider()
	return NewService(p), p
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.SignUp("Ada@Example.com", "correct horse", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	current, err := svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	require.NoError(t, svc.SignOut())
	_, err = svc.CurrentUser()
	assert.ErrorIs(t, err, ErrNotSignedIn)

	got, err := svc.SignInWithPassword("ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignUp("ada@example.com", "correct horse", "correct horse")
	require.NoError(t, err)

	_, err = svc.SignUp("ada@example.com", "other password", "other password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignUp("ada@example.com", "correct horse", "correct horse")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut())

	_, err = svc.SignInWithPassword("ada@example.com", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignInWithPassword("nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResume(t *testing.T) {
	svc, p := newTestService(t)

	user, err := svc.SignUp("ada@example.com", "correct horse", "correct horse")
	require.NoError(t, err)

	// A fresh service over the same store resumes the keyring session.
	resumed := NewService(p)
	got, err := resumed.Resume()
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestResume_NoSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resume()
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignUp("ada@example.com", "correct horse", "correct horse")
	require.NoError(t, err)

	t.Run("wrong current password rejected", func(t *testing.T) {
		err := svc.UpdatePassword("wrong horse", "new password", "new password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("new password takes effect", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword("correct horse", "new password", "new password"))
		require.NoError(t, svc.SignOut())

		_, err := svc.SignInWithPassword("ada@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.SignInWithPassword("ada@example.com", "new password")
		assert.NoError(t, err)
	})
}

func TestPasswordReset(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignUp("ada@example.com", "correct horse", "correct horse")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut())

	code, err := svc.RequestPasswordReset("ada@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.NoError(t, svc.ConfirmPasswordReset(code, "reset password", "reset password"))

	_, err = svc.SignInWithPassword("ada@example.com", "reset password")
	assert.NoError(t, err)

	t.Run("code is single use", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(code, "another pass", "another pass")
		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})
}

func TestSubscribe(t *testing.T) {
	svc, _ := newTestService(t)

	var events []EventKind
	svc.Subscribe(func(e Event) { events = append(events, e.Kind) })

	_, err := svc.SignUp("ada@example.com", "correct horse", "correct horse")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut())

	assert.Equal(t, []EventKind{EventSignedIn, EventSignedOut}, events)
}
