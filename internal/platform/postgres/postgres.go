package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// WithSearchPath scopes every pooled connection of dsn to schema. Both URL and key/value DSNs are
// supported; an empty schema returns dsn unchanged.
func WithSearchPath(dsn, schema string) string {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parsed, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		query := parsed.Query()
		query.Set("search_path", schema)
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}
	return strings.TrimSpace(dsn) + " search_path=" + schema
}

// ConnectAndMigrate connects to dsn inside schema and runs the migrations. Failures are logged and
// reported as a nil DB so callers can fall back to memory.
func ConnectAndMigrate(ctx context.Context, logger *slog.Logger, dsn, schema string) (*gorm.DB, func()) {
	db, err := Connect(ctx, WithSearchPath(dsn, schema))
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to postgres, falling back to in-memory storage", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to unwrap postgres connection, falling back to in-memory storage", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if err := migrations.EnsureSchema(db, schema); err != nil {
		_ = sqlDB.Close()
		if logger != nil {
			logger.Warn("failed to create postgres schema, falling back to in-memory storage", slog.String("schema", schema), slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		_ = sqlDB.Close()
		if logger != nil {
			logger.Warn("failed to migrate postgres, falling back to in-memory storage", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("postgres connection established", slog.String("schema", schema))
	}
	return db, func() { _ = sqlDB.Close() }
}
