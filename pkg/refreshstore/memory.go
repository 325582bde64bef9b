package refreshstore

import (
	"context"
	"sync"
)

// MemoryStore keeps tokens in a process-local map with lazy expiry.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]Token
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]Token)}
}

func (s *MemoryStore) Save(_ context.Context, token Token) error {
	if err := validate(token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.ID] = token
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *MemoryStore) Rotate(_ context.Context, oldID string, next Token) error {
	if err := validate(next); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getLocked(oldID); err != nil {
		return err
	}
	delete(s.tokens, oldID)
	s.tokens[next.ID] = next
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
	return nil
}

func (s *MemoryStore) getLocked(id string) (Token, error) {
	token, ok := s.tokens[id]
	if !ok {
		return Token{}, ErrNotFound
	}
	if token.Expired() {
		delete(s.tokens, id)
		return Token{}, ErrNotFound
	}
	return token, nil
}
