package oauthstate

import (
	"context"
	"sync"

	"github.com/Nagamytreya123/PaduchuAndham/internal/utils"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu       sync.Mutex
	attempts map[string]Attempt
}

func NewMemStore() *MemStore {
	return &MemStore{attempts: make(map[string]Attempt)}
}

func (s *MemStore) Create(ctx context.Context, providerName string) (Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := Attempt{
		State:        utils.RandomString(32),
		CodeVerifier: utils.RandomString(32),
		Provider:     providerName,
	}
	s.attempts[a.State] = a
	return a, nil
}

func (s *MemStore) Consume(ctx context.Context, state string) (Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[state]
	if !ok {
		return Attempt{}, ErrNotFound
	}
	delete(s.attempts, state)
	return a, nil
}
