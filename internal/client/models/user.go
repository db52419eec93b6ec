// Package models defines the records the client reads from and writes to
// the hosted backend, plus the identity returned by the auth service.
package models

import "time"

type Role string

const (
	RoleLearner    Role = "learner"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a raw role string onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleLearner, RoleInstructor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Identity is what the auth service knows about the caller after a code
// exchange. Metadata is the provider's free-form signup payload.
type Identity struct {
	ID             string
	Email          string
	EmailConfirmed bool
	Metadata       map[string]any
}

// User is a row of the users table.
type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Username   string     `json:"username"`
	Role       Role       `json:"role"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Session is a row of the user_sessions table.
type Session struct {
	Token     string    `json:"session_token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
