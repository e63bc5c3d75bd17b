package otp

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	hash      []byte
	expiresAt time.Time
}

// InMemoryStore keeps pending codes in memory with per-entry expiry; used in
// development and tests. Expired entries are dropped on read.
type InMemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	clock   func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]entry),
		clock:   time.Now,
	}
}

func (s *InMemoryStore) Put(_ context.Context, email string, codeHash []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{hash: codeHash, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, email string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return nil, ErrNotFound
	}
	if s.clock().After(e.expiresAt) {
		delete(s.entries, email)
		return nil, ErrNotFound
	}
	return e.hash, nil
}

func (s *InMemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
