package cli

import (
	"errors"
	"fmt"

	"github.com/mwhitten/tally/internal/auth"
	"github.com/mwhitten/tally/internal/backup"
	"github.com/mwhitten/tally/internal/logger"
	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/remote"
	"github.com/mwhitten/tally/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Adapter remote.Adapter
	Auth    *auth.Service
}

// RequireUser resumes the stored session for commands that act on a user's
// data.
func (c *Context) RequireUser() (models.User, error) {
	user, err := c.Auth.Resume()
	if err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) {
			return models.User{}, fmt.Errorf("not signed in, run 'tally user login' first")
		}
		return models.User{}, err
	}
	return user, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors. Only file-backed databases are backed up.
func (c *Context) PerformAutomaticBackup() {
	if storage.IsPostgres(c.Store.GetConfigPath()) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
