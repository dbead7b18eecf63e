package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
)

var (
	_ ports.Provider     = (*Provider)(nil)
	_ ports.LocalStorage = (*namespace)(nil)
)

// Provider persists browser local storage in PostgreSQL. Caller owns DB lifecycle.
type Provider struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProvider wires a PostgreSQL-backed local storage provider.
func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db, now: time.Now}
}

type itemRecord struct {
	Namespace string    `gorm:"primaryKey;column:namespace;size:64"`
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (itemRecord) TableName() string { return "local_storage_items" }

// Namespace returns the storage scoped to sessionID.
func (p *Provider) Namespace(sessionID string) ports.LocalStorage {
	return &namespace{provider: p, id: strings.TrimSpace(sessionID)}
}

// Drop removes every row stored for the session.
func (p *Provider) Drop(ctx context.Context, sessionID string) error {
	if err := p.ensureDB(); err != nil {
		return err
	}
	return p.db.WithContext(ctx).Delete(&itemRecord{}, "namespace = ?", strings.TrimSpace(sessionID)).Error
}

func (p *Provider) ensureDB() error {
	if p == nil || p.db == nil {
		return errors.New("postgres local storage not configured")
	}
	return nil
}

type namespace struct {
	provider *Provider
	id       string
}

func (n *namespace) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := n.provider.ensureDB(); err != nil {
		return "", false, err
	}
	var rec itemRecord
	err := n.provider.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", n.id, key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (n *namespace) SetItem(ctx context.Context, key, value string) error {
	if err := n.provider.ensureDB(); err != nil {
		return err
	}
	if n.id == "" || strings.TrimSpace(key) == "" {
		return errors.New("namespace and key are required")
	}
	rec := itemRecord{Namespace: n.id, Key: key, Value: value, UpdatedAt: n.provider.now()}
	return n.provider.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (n *namespace) RemoveItem(ctx context.Context, key string) error {
	if err := n.provider.ensureDB(); err != nil {
		return err
	}
	return n.provider.db.WithContext(ctx).
		Delete(&itemRecord{}, "namespace = ? AND key = ?", n.id, key).Error
}
