package gormstore

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store implements repository.Storage on top of GORM (PostgreSQL or SQLite).
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a new GORM-backed store.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{
		db:  db,
		log: log,
	}
}

// --- User methods ---

func (s *Store) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User

	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// PutUser inserts or overwrites a user record (key-value semantics, like
// a DynamoDB put).
func (s *Store) PutUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		s.log.Error("failed to put user", zap.String("username", user.Username), zap.Error(err))
		return fmt.Errorf("failed to put user: %w", err)
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, username string) error {
	err := s.db.WithContext(ctx).Where("username = ?", username).Delete(&domain.User{}).Error
	if err != nil {
		s.log.Error("failed to delete user", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	// Deleting a non-existent user is not an error.
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User

	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&domain.User{}).Limit(1).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check if users table is empty", zap.Error(err))
		return false, fmt.Errorf("failed to check users: %w", err)
	}

	return count == 0, nil
}

// --- Link methods ---

func (s *Store) GetLink(ctx context.Context, keyword string) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).Where("keyword = ?", keyword).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrKeywordNotFound
	}
	if err != nil {
		s.log.Error("failed to get link", zap.String("keyword", keyword), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// PutLink inserts or overwrites a link record. A duplicate-key violation on
// insert is surfaced as ErrKeywordExists, which narrows (but does not close)
// the create-after-existence-check window in the service layer.
func (s *Store) PutLink(ctx context.Context, link *domain.Link) error {
	if err := s.db.WithContext(ctx).Save(link).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return repository.ErrKeywordExists
		}
		s.log.Error("failed to put link", zap.String("keyword", link.Keyword), zap.Error(err))
		return fmt.Errorf("failed to put link: %w", err)
	}
	return nil
}

func (s *Store) DeleteLink(ctx context.Context, keyword string) error {
	result := s.db.WithContext(ctx).Where("keyword = ?", keyword).Delete(&domain.Link{})
	if result.Error != nil {
		s.log.Error("failed to delete link", zap.String("keyword", keyword), zap.Error(result.Error))
		return fmt.Errorf("failed to delete link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrKeywordNotFound
	}
	return nil
}

func (s *Store) ListLinks(ctx context.Context) ([]*domain.Link, error) {
	var links []*domain.Link

	if err := s.db.WithContext(ctx).Find(&links).Error; err != nil {
		s.log.Error("failed to list links", zap.Error(err))
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	return links, nil
}

func (s *Store) ListLinksByOwner(ctx context.Context, username string) ([]*domain.Link, error) {
	var links []*domain.Link

	err := s.db.WithContext(ctx).Where("owner_username = ?", username).Find(&links).Error
	if err != nil {
		s.log.Error("failed to list links by owner", zap.String("owner", username), zap.Error(err))
		return nil, fmt.Errorf("failed to list links by owner: %w", err)
	}

	return links, nil
}

// IncrementClicks advances the click counter with a single server-side
// UPDATE. COALESCE gives the counter a zero floor, so the increment is
// atomic and commutative: N concurrent resolves always advance it by N.
func (s *Store) IncrementClicks(ctx context.Context, keyword string) error {
	result := s.db.WithContext(ctx).Model(&domain.Link{}).
		Where("keyword = ?", keyword).
		Update("click_count", gorm.Expr("COALESCE(click_count, 0) + 1"))
	if result.Error != nil {
		s.log.Error("failed to increment click count", zap.String("keyword", keyword), zap.Error(result.Error))
		return fmt.Errorf("failed to increment click count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrKeywordNotFound
	}
	return nil
}

// isDuplicateKeyErr matches unique constraint violations from both the
// postgres driver (SQLSTATE 23505) and sqlite.
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}
