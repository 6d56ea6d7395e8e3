package models

import "time"

// User is an account owning habits and entries.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Habit is a user-defined daily habit. Name is free text and never required
// to be unique.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is a boolean completion record for one habit on one day. Identity is
// the natural key (user_id, habit_id, day); a missing entry reads as false.
type Entry struct {
	UserID    string    `json:"user_id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings holds the small set of user-tunable application settings.
type Settings struct {
	ExportDir string `json:"export_dir"`
	LogDays   int    `json:"log_days"`
}
