package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "tally"
	DefaultConfigPath = "~/.config/tally/tally.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// KeyringSessionUser is the keyring account under which the active session is stored
	KeyringSessionUser = "session"
	// KeyringConnectionUser is the keyring account for the database connection string
	KeyringConnectionUser = "database-connection"

	// MinPasswordLen is the minimum accepted password length
	MinPasswordLen = 8

	// ResetCodeTTLMinutes is how long a password reset code stays valid
	ResetCodeTTLMinutes = 30

	// UpsertMaxRetries bounds the retry loop for background entry writes
	UpsertMaxRetries = 3

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tally-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportFilePrefix = "tally-"
	ExportFileSuffix = ".txt"

	// Session States
	StateSignIn SessionState = iota
	StateSignUp
	StateGrid
	StateStats
	StateAddHabit
	StateConfirmDelete
	StateChangePassword
)
