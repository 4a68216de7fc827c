package memory

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	empty, err := store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	user := &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleAdmin, CreatedAt: "2026-01-01T00:00:00Z"}
	require.NoError(t, store.PutUser(ctx, user))

	empty, err = store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	got, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	// Returned values are copies; mutating them must not touch the store.
	got.Role = domain.RoleUser
	again, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, again.Role)

	_, err = store.GetUser(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, store.DeleteUser(ctx, "alice"))
	require.NoError(t, store.DeleteUser(ctx, "alice")) // idempotent

	_, err = store.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestLinkStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	link := &domain.Link{Keyword: "gh", URL: "https://github.com", OwnerUsername: "alice", CreatedAt: "2026-01-01T00:00:00Z"}
	require.NoError(t, store.PutLink(ctx, link))

	got, err := store.GetLink(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com", got.URL)

	_, err = store.GetLink(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrKeywordNotFound)

	// Put overwrites in place (key-value semantics).
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
	store := New()

	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "a", URL: "https://a.example", OwnerUsername: "alice"}))
	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "b", URL: "https://b.example", OwnerUsername: "bob"}))
	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "c", URL: "https://c.example", OwnerUsername: "alice"}))

	mine, err := store.ListLinksByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := store.ListLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestIncrementClicks(t *testing.T) {
	ctx := context.Background()
	store := New()

	assert.ErrorIs(t, store.IncrementClicks(ctx, "missing"), repository.ErrKeywordNotFound)

	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "gh", URL: "https://github.com"}))
	require.NoError(t, store.IncrementClicks(ctx, "gh"))

	got, err := store.GetLink(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ClickCount)
}

func TestIncrementClicksConcurrent(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.PutLink(ctx, &domain.Link{Keyword: "busy", URL: "https://example.com"}))

	const increments = 200
	var wg sync.WaitGroup
	wg.Add(increments)
	for i := 0; i < increments; i++ {
		go func() {
			defer wg.Done()
			_ = store.IncrementClicks(ctx, "busy")
		}()
	}
	wg.Wait()

	got, err := store.GetLink(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, int64(increments), got.ClickCount)
}
