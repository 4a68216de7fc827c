package service

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrReservedKeyword    = errors.New("keyword is reserved")
	ErrInvalidKeyword     = errors.New("keyword must be 1-50 characters: lowercase letters, numbers, and hyphens")
	ErrForbidden          = errors.New("you can only modify your own go links")
	ErrDescriptionTooLong = errors.New("description must be at most 200 characters")
)

const (
	maxKeywordLen     = 50
	maxDescriptionLen = 200
)

// Keywords that can't be used as go links (they'd conflict with app routes).
var reservedKeywords = map[string]struct{}{
	"api":         {},
	"app":         {},
	"static":      {},
	"favicon.ico": {},
	"health":      {},
}

var keywordPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// LinkService is the resolution/mutation core: keyword validation,
// ownership enforcement, and keyword-to-URL resolution with click
// accounting.
type LinkService struct {
	links repository.LinkStore
	log   *zap.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(links repository.LinkStore, log *zap.Logger) *LinkService {
	return &LinkService{
		links: links,
		log:   log,
	}
}

// Create validates and persists a new go link owned by ownerUsername.
//
// The existence check and the write are two separate store calls; two
// concurrent creates for the same new keyword can both pass the check, with
// the last write winning. The store narrows this by reporting duplicate key
// violations, but the lenient read-then-write is the baseline contract.
func (s *LinkService) Create(ctx context.Context, keyword, url, description, ownerUsername string) (*domain.Link, error) {
	keyword = normalizeKeyword(keyword)

	if _, reserved := reservedKeywords[keyword]; reserved {
		return nil, ErrReservedKeyword
	}
	if err := validateKeyword(keyword); err != nil {
		return nil, err
	}
	if len(description) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}

	_, err := s.links.GetLink(ctx, keyword)
	if err == nil {
		return nil, repository.ErrKeywordExists
	}
	if !errors.Is(err, repository.ErrKeywordNotFound) {
		return nil, fmt.Errorf("failed to check keyword: %w", err)
	}

	link := &domain.Link{
		Keyword:       keyword,
		URL:           normalizeURL(url),
		OwnerUsername: ownerUsername,
		Description:   description,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		ClickCount:    0,
	}

	if err := s.links.PutLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save link: %w", err)
	}

	s.log.Info("created go link",
		zap.String("keyword", keyword),
		zap.String("url", link.URL),
		zap.String("owner", ownerUsername))
	return link, nil
}

// Update overwrites a link's URL and description in place. Keyword, owner,
// creation time and click count never change here. Only the owner or an
// admin may update.
func (s *LinkService) Update(ctx context.Context, keyword, newURL, newDescription, requestingUsername string, isAdmin bool) (*domain.Link, error) {
	existing, err := s.links.GetLink(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if !isAdmin && existing.OwnerUsername != requestingUsername {
		return nil, ErrForbidden
	}
	if len(newDescription) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}

	existing.URL = normalizeURL(newURL)
	existing.Description = newDescription

	if err := s.links.PutLink(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save link: %w", err)
	}

	s.log.Info("updated go link",
		zap.String("keyword", keyword),
		zap.String("url", existing.URL),
		zap.String("by", requestingUsername))
	return existing, nil
}

// Delete removes a link. Only the owner or an admin may delete.
func (s *LinkService) Delete(ctx context.Context, keyword, requestingUsername string, isAdmin bool) error {
	existing, err := s.links.GetLink(ctx, keyword)
	if err != nil {
		return err
	}

	if !isAdmin && existing.OwnerUsername != requestingUsername {
		return ErrForbidden
	}

	if err := s.links.DeleteLink(ctx, keyword); err != nil {
		return err
	}

	s.log.Info("deleted go link",
		zap.String("keyword", keyword),
		zap.String("by", requestingUsername))
	return nil
}

// Resolve looks up a keyword and counts the click. The returned link
// carries the pre-increment state; the increment itself is a single atomic
// store operation, so concurrent resolves never lose a click. A miss
// returns (nil, nil) and performs no write.
//
// An increment failure is logged and swallowed: the redirect must not fail
// because the counter write did.
func (s *LinkService) Resolve(ctx context.Context, keyword string) (*domain.Link, error) {
	link, err := s.links.GetLink(ctx, normalizeKeyword(keyword))
	if errors.Is(err, repository.ErrKeywordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve keyword: %w", err)
	}

	if err := s.links.IncrementClicks(ctx, link.Keyword); err != nil {
		s.log.Warn("failed to count click", zap.String("keyword", link.Keyword), zap.Error(err))
	}

	return link, nil
}

// FindByKeyword looks up a link without touching the click counter.
func (s *LinkService) FindByKeyword(ctx context.Context, keyword string) (*domain.Link, error) {
	link, err := s.links.GetLink(ctx, normalizeKeyword(keyword))
	if errors.Is(err, repository.ErrKeywordNotFound) {
		return nil, nil
	}
	return link, err
}

// FindByOwner returns all links owned by the given user.
func (s *LinkService) FindByOwner(ctx context.Context, username string) ([]*domain.Link, error) {
	return s.links.ListLinksByOwner(ctx, username)
}

// FindAll returns every link in the store (public directory).
func (s *LinkService) FindAll(ctx context.Context) ([]*domain.Link, error) {
	return s.links.ListLinks(ctx)
}

func normalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func validateKeyword(keyword string) error {
	if len(keyword) == 0 || len(keyword) > maxKeywordLen {
		return ErrInvalidKeyword
	}
	if !keywordPattern.MatchString(keyword) {
		return ErrInvalidKeyword
	}
	return nil
}

// normalizeURL prefixes https:// when the caller omitted an explicit
// scheme.
func normalizeURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}
