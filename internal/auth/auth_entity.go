package auth

import (
	"time"

	"go-gemtrack/internal/user"
)

// Session is the outcome of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      user.ProfileResponse
}

// CookieConfig describes the session cookie. It is always HttpOnly,
// SameSite=Strict and scoped to "/".
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}
