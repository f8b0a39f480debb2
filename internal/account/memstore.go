package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store with the same uniqueness semantics as
// PostgresStore. Used by tests and local development.
type MemStore struct {
	mu       sync.Mutex
	accounts map[string]*Account // keyed by ID
}

func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[string]*Account)}
}

func (s *MemStore) find(match func(*Account) bool) *Account {
	for _, a := range s.accounts {
		if match(a) {
			copied := *a
			return &copied
		}
	}
	return nil
}

func (s *MemStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(func(a *Account) bool {
		return strings.EqualFold(a.Email, email)
	})
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *MemStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(func(a *Account) bool {
		return strings.EqualFold(a.Username, username)
	})
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *MemStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(func(a *Account) bool {
		return strings.EqualFold(a.Email, email)
	}) != nil, nil
}

func (s *MemStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(func(a *Account) bool {
		return strings.EqualFold(a.Username, username)
	}) != nil, nil
}

func (s *MemStore) Save(ctx context.Context, a *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := s.find(func(existing *Account) bool {
		return strings.EqualFold(existing.Email, a.Email) ||
			strings.EqualFold(existing.Username, a.Username)
	})
	if dup != nil {
		return nil, ErrDuplicate
	}

	saved := *a
	saved.ID = uuid.NewString()
	now := time.Now()
	saved.CreatedAt = now
	saved.UpdatedAt = now

	stored := saved
	s.accounts[saved.ID] = &stored

	return &saved, nil
}
