//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	storagepostgres "github.com/Apurer/go-gin-storefront/internal/domains/storage/adapters/persistence/postgres"
	storageports "github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

func setupSessionPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestSessionStore_SaveGetTouch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSessionPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSessionStore(db)
	now := time.Now().UTC().Truncate(time.Second)
	session := domain.NewSession(now, time.Hour)

	require.NoError(t, store.Save(ctx, session))

	fetched, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, fetched.ID)
	assert.WithinDuration(t, session.ExpiresAt, fetched.ExpiresAt, time.Second)

	later := now.Add(30 * time.Minute)
	require.NoError(t, store.Touch(ctx, session.ID, later, later.Add(time.Hour)))
	fetched, err = store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, later.Add(time.Hour), fetched.ExpiresAt, time.Second)

	err = store.Touch(ctx, "00000000-0000-0000-0000-000000000000", later, later)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = store.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_PurgeExpiredDropsStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSessionPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSessionStore(db)
	storage := storagepostgres.NewProvider(db)
	now := time.Now().UTC()

	expired := domain.NewSession(now.Add(-2*time.Hour), time.Hour)
	live := domain.NewSession(now, time.Hour)
	require.NoError(t, store.Save(ctx, expired))
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, storage.Namespace(expired.ID).SetItem(ctx, storageports.KeyCart, "[]"))
	require.NoError(t, storage.Namespace(live.ID).SetItem(ctx, storageports.KeyCart, "[]"))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{expired.ID}, purged)

	_, err = store.Get(ctx, expired.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, ok, err := storage.Namespace(expired.ID).GetItem(ctx, storageports.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = storage.Namespace(live.ID).GetItem(ctx, storageports.KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)
}
