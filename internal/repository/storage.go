package repository

import (
	"GoLinks-Backend/internal/domain"
	"context"
	"errors"
)

var (
	ErrKeywordNotFound = errors.New("keyword not found")
	ErrKeywordExists   = errors.New("keyword already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
)

// UserStore persists user records keyed by username.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*domain.User, error)
	PutUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// IsEmpty reports whether no users exist yet. Used for the admin
	// bootstrap: the first registrant becomes ADMIN.
	IsEmpty(ctx context.Context) (bool, error)
}

// LinkStore persists go links keyed by keyword.
type LinkStore interface {
	GetLink(ctx context.Context, keyword string) (*domain.Link, error)
	PutLink(ctx context.Context, link *domain.Link) error
	DeleteLink(ctx context.Context, keyword string) error
	ListLinks(ctx context.Context) ([]*domain.Link, error)
	ListLinksByOwner(ctx context.Context, username string) ([]*domain.Link, error)
	// IncrementClicks atomically advances the click counter by one,
	// treating a missing counter as zero. Concurrent increments must
	// never lose updates.
	IncrementClicks(ctx context.Context, keyword string) error
}

// Storage combines both stores; the gorm and memory implementations
// satisfy it with a single value.
type Storage interface {
	UserStore
	LinkStore
}
