package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/domain"
)

var ErrNotFound = errors.New("session not found")

// SessionStore abstracts browser session persistence.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Touch slides the expiry of an existing session.
	Touch(ctx context.Context, id string, seenAt, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	// PurgeExpired deletes sessions expired at now and returns their ids.
	PurgeExpired(ctx context.Context, now time.Time) ([]string, error)
}
