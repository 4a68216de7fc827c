package memory

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"sync"
)

// MemStorage is an in-memory implementation of repository.Storage. It backs
// unit tests and keyless local runs; all access is guarded by a single
// RWMutex, which makes every operation (including the click counter
// increment) atomic.
type MemStorage struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	links map[string]*domain.Link
}

func New() *MemStorage {
	return &MemStorage{
		users: make(map[string]*domain.User),
		links: make(map[string]*domain.Link),
	}
}

// --- User methods ---

func (s *MemStorage) GetUser(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemStorage) PutUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *MemStorage) DeleteUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, username)
	return nil
}

func (s *MemStorage) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	return users, nil
}

func (s *MemStorage) IsEmpty(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) == 0, nil
}

// --- Link methods ---

func (s *MemStorage) GetLink(_ context.Context, keyword string) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[keyword]
	if !ok {
		return nil, repository.ErrKeywordNotFound
	}
	l := *link
	return &l, nil
}

func (s *MemStorage) PutLink(_ context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := *link
	s.links[link.Keyword] = &l
	return nil
}

func (s *MemStorage) DeleteLink(_ context.Context, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[keyword]; !ok {
		return repository.ErrKeywordNotFound
	}
	delete(s.links, keyword)
	return nil
}

func (s *MemStorage) ListLinks(_ context.Context) ([]*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := make([]*domain.Link, 0, len(s.links))
	for _, link := range s.links {
		l := *link
		links = append(links, &l)
	}
	return links, nil
}

func (s *MemStorage) ListLinksByOwner(_ context.Context, username string) ([]*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var links []*domain.Link
	for _, link := range s.links {
		if link.OwnerUsername == username {
			l := *link
			links = append(links, &l)
		}
	}
	return links, nil
}

func (s *MemStorage) IncrementClicks(_ context.Context, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[keyword]
	if !ok {
		return repository.ErrKeywordNotFound
	}
	link.ClickCount++
	return nil
}
