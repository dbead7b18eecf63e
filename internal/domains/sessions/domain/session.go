package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidSessionID = errors.New("session id must be a UUID")

// Session identifies one browser and owns its local storage namespace.
type Session struct {
	ID         string
	CreatedAt  time.Time
	LastSeenAt time.Time
	ExpiresAt  time.Time
}

// NewSession starts a session with a random id that expires ttl after now.
func NewSession(now time.Time, ttl time.Duration) Session {
	return Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

// ParseID normalizes a session id received from a cookie.
func ParseID(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidSessionID
	}
	return parsed.String(), nil
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
