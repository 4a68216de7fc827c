package gormstore

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore opens a private in-memory SQLite database. The pool is
// capped at one connection because every :memory: connection would
// otherwise see its own empty database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Link{}))

	return New(db, zap.NewNop())
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	empty, err := store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	user := &domain.User{
		Username:     "alice",
		PasswordHash: "$2a$12$hash",
		Role:         domain.RoleAdmin,
		CreatedAt:    "2026-01-01T00:00:00Z",
	}
	require.NoError(t, store.PutUser(ctx, user))

	empty, err = store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	got, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "$2a$12$hash", got.PasswordHash)

	// Save on an existing primary key overwrites the row.
	user.Role = domain.RoleUser
	require.NoError(t, store.PutUser(ctx, user))
	got, err = store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, got.Role)

	_, err = store.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, store.DeleteUser(ctx, "alice"))
	require.NoError(t, store.DeleteUser(ctx, "alice"))
	_, err = store.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestLinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	link := &domain.Link{
		Keyword:       "gh",
		URL:           "https://github.com",
		OwnerUsername: "alice",
		Description:   "code hosting",
		CreatedAt:     "2026-01-01T00:00:00Z",
	}
	require.NoError(t, store.PutLink(ctx, link))

	got, err := store.GetLink(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com", got.URL)
	assert.Equal(t, "alice", got.OwnerUsername)
	assert.Equal(t, int64(0), got.ClickCount)

	_, err = store.GetLink(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrKeywordNotFound)

	link.URL = "https://gitlab.com"
	require.NoError(t, store.PutLink(ctx, link))
	got, err = store.GetLink(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, "https://gitlab.com", got.URL)

	assert.ErrorIs(t, store.DeleteLink(ctx, "missing"), repository.ErrKeywordNotFound)
	require.NoError(t, store.DeleteLink(ctx, "gh"))
	_, err = store.GetLink(ctx, "gh")
	assert.ErrorIs(t, err, repository.ErrKeywordNotFound)
}

func TestListLinksByOwner(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	for _, l := range []*domain.Link{
		{Keyword: "a", URL: "https://a.example", OwnerUsername: "alice"},
		{Keyword: "b", URL: "https://b.example", OwnerUsername: "bob"},
		{Keyword: "c", URL: "https://c.example", OwnerUsername: "alice"},
	} {
		require.NoError(t, store.PutLink(ctx, l))
	}

	mine, err := store.ListLinksByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := store.ListLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestIncrementClicks(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	assert.ErrorIs(t, store.IncrementClicks(ctx, "missing"), repository.ErrKeywordNotFound)

	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "gh", URL: "https://github.com"}))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.IncrementClicks(ctx, "gh"))
	}

	got, err := store.GetLink(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ClickCount)
}

func TestIncrementClicksConcurrent(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "busy", URL: "https://example.com"}))

	const increments = 50
	var wg sync.WaitGroup
	wg.Add(increments)
	for i := 0; i < increments; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, store.IncrementClicks(ctx, "busy"))
		}()
	}
	wg.Wait()

	got, err := store.GetLink(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, int64(increments), got.ClickCount)
}
