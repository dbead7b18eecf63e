package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionStore persists browser sessions in PostgreSQL. Caller owns DB lifecycle.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore wires a PostgreSQL-backed session store.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

type sessionRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:64"`
	ExpiresAt  time.Time `gorm:"column:expires_at;index"`
	LastSeenAt time.Time `gorm:"column:last_seen_at"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "browser_sessions" }

type storageRecord struct {
	Namespace string `gorm:"primaryKey;column:namespace"`
	Key       string `gorm:"primaryKey;column:key"`
}

func (storageRecord) TableName() string { return "local_storage_items" }

// Save upserts a session.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if strings.TrimSpace(session.ID) == "" {
		return errors.New("session id is required")
	}
	rec := sessionRecord{
		ID:         session.ID,
		ExpiresAt:  session.ExpiresAt,
		LastSeenAt: session.LastSeenAt,
		CreatedAt:  session.CreatedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"expires_at", "last_seen_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Get loads a session by id.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		LastSeenAt: rec.LastSeenAt,
		ExpiresAt:  rec.ExpiresAt,
	}, nil
}

// Touch slides the expiry of an existing session.
func (s *SessionStore) Touch(ctx context.Context, id string, seenAt, expiresAt time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&sessionRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_seen_at": seenAt, "expires_at": expiresAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes a session and its local storage.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&storageRecord{}, "namespace = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&sessionRecord{}, "id = ?", id).Error
	})
}

// PurgeExpired removes expired sessions together with their local storage rows.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) ([]string, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var purged []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&sessionRecord{}).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("expires_at <= ?", now).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Delete(&storageRecord{}, "namespace IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Delete(&sessionRecord{}, "id IN ?", ids).Error; err != nil {
			return err
		}
		purged = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purged, nil
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
