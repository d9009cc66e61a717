// internal/domain/models/user.go
package models

import "time"

// Module names recognised in UserSettings.Modules.
const (
	ModuleTodo    = "todo"
	ModuleHabits  = "habits"
	ModuleNotes   = "notes"
	ModuleWeather = "weather"
)

// User is an account holder. UserID is an opaque UUID assigned at
// registration and never changes; Email is stored as entered (trimmed) and
// compared case-sensitively.
//
// NOTE:
//   - Mongo assigns its own _id on insert. It is never exposed; every lookup
//     and reference uses user_id or email.
type User struct {
	UserID       string       `bson:"user_id" json:"user_id"`
	Email        string       `bson:"email" json:"email"`
	FullName     string       `bson:"full_name" json:"full_name"`
	PasswordHash string       `bson:"password_hash" json:"-"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	Settings     UserSettings `bson:"settings" json:"settings"`
}

// UserSettings holds per-user feature toggles.
type UserSettings struct {
	Modules map[string]bool `bson:"modules" json:"modules"`
}

// DefaultSettings returns the settings given to a newly registered user:
// every feature module enabled.
func DefaultSettings() UserSettings {
	return UserSettings{
		Modules: map[string]bool{
			ModuleTodo:    true,
			ModuleHabits:  true,
			ModuleNotes:   true,
			ModuleWeather: true,
		},
	}
}

// PublicUser is the subset of User returned alongside an access token.
type PublicUser struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Public strips everything but the identity fields.
func (u User) Public() PublicUser {
	return PublicUser{UserID: u.UserID, Email: u.Email, FullName: u.FullName}
}
