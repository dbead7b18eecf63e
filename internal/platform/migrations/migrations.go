package migrations

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the storefront contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&sessionRecord{},
		&localStorageRecord{},
	)
}

// EnsureSchema creates the schema the storefront tables live in. An empty name keeps the
// connection's default schema.
func EnsureSchema(db *gorm.DB, schema string) error {
	schema = strings.TrimSpace(schema)
	if db == nil || schema == "" {
		return nil
	}
	return db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(schema)).Error
}

// Session schema mirrors the sessions Postgres adapter.
type sessionRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:64"`
	ExpiresAt  time.Time `gorm:"column:expires_at;index"`
	LastSeenAt time.Time `gorm:"column:last_seen_at"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "browser_sessions" }

// Local storage schema mirrors the storage Postgres adapter.
type localStorageRecord struct {
	Namespace string    `gorm:"primaryKey;column:namespace;size:64"`
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (localStorageRecord) TableName() string { return "local_storage_items" }
