package gormstore

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgresStore spins up a throwaway PostgreSQL container. Run with
// -short to skip it when Docker is not available.
func setupPostgresStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("golinks_test"),
		postgres.WithUsername("golinks"),
		postgres.WithPassword("golinks"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Link{}))

	return New(db, zap.NewNop())
}

func TestPostgresStore(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	t.Run("user round trip", func(t *testing.T) {
		user := &domain.User{
			Username:     "alice",
			PasswordHash: "$2a$12$hash",
			Role:         domain.RoleAdmin,
			CreatedAt:    "2026-01-01T00:00:00Z",
		}
		require.NoError(t, store.PutUser(ctx, user))

		got, err := store.GetUser(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, got.Role)

		empty, err := store.IsEmpty(ctx)
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("link round trip and increment", func(t *testing.T) {
		link := &domain.Link{
			Keyword:       "gh",
			URL:           "https://github.com",
			OwnerUsername: "alice",
		}
		require.NoError(t, store.PutLink(ctx, link))

		require.NoError(t, store.IncrementClicks(ctx, "gh"))
		require.NoError(t, store.IncrementClicks(ctx, "gh"))

		got, err := store.GetLink(ctx, "gh")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ClickCount)
	})

	t.Run("missing keyword", func(t *testing.T) {
		_, err := store.GetLink(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrKeywordNotFound)

		assert.ErrorIs(t, store.IncrementClicks(ctx, "nope"), repository.ErrKeywordNotFound)
		assert.ErrorIs(t, store.DeleteLink(ctx, "nope"), repository.ErrKeywordNotFound)
	})
}
