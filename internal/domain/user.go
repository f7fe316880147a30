package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical account identity for the netscan API.
// SessionMarker identifies the single active login session: every login mints a
// new marker and overwrites the previous one, so tokens carrying a stale marker
// can be rejected without any server-side token registry.
type User struct {
	UserID        uuid.UUID
	Name          string
	Email         string
	PasswordHash  string
	SessionMarker uuid.UUID
	CreatedAt     time.Time
	LastLoginAt   time.Time
}

// HasActiveSession reports whether the user currently holds a login session.
func (u User) HasActiveSession() bool {
	return u.SessionMarker != uuid.Nil
}

// Profile is the sanitized view of a User handed to callers and serialized on
// the wire. It never carries the password hash or the session marker.
type Profile struct {
	UserID      uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Sanitize strips credential state from a User.
func (u User) Sanitize() Profile {
	return Profile{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
