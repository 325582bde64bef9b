package userstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps accounts in process-local maps.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]Record
	byEmail map[string]string // normalized email -> id
}

// NewMemoryStore creates an empty in-memory account store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]Record),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryStore) Create(_ context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.Profile.ID]; exists {
		return ErrConflict
	}
	if _, exists := s.byEmail[normalizeEmail(rec.Profile.Email)]; exists {
		return ErrConflict
	}
	if rec.Provider != "" {
		for _, other := range s.byID {
			if other.Provider == rec.Provider && other.ProviderID == rec.ProviderID {
				return ErrConflict
			}
		}
	}

	s.byID[rec.Profile.ID] = rec
	s.byEmail[normalizeEmail(rec.Profile.Email)] = rec.Profile.ID
	return nil
}

func (s *MemoryStore) ByID(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) ByEmail(_ context.Context, email string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryStore) ByProvider(_ context.Context, provider, providerID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.byID {
		if rec.Provider == provider && rec.ProviderID == providerID {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

func (s *MemoryStore) Update(_ context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[rec.Profile.ID]
	if !ok {
		return ErrNotFound
	}

	newEmail := normalizeEmail(rec.Profile.Email)
	if oldEmail := normalizeEmail(old.Profile.Email); oldEmail != newEmail {
		if _, taken := s.byEmail[newEmail]; taken {
			return ErrConflict
		}
		delete(s.byEmail, oldEmail)
		s.byEmail[newEmail] = rec.Profile.ID
	}

	s.byID[rec.Profile.ID] = rec
	return nil
}
