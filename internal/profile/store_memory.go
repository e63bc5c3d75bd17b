package profile

import (
	"context"
	"sort"
	"sync"

	"trustbridge/internal/domain"
)

// InMemoryStore keeps profiles in memory for development and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]domain.Profile)}
}

func (s *InMemoryStore) Get(_ context.Context, userID string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return domain.Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) Merge(_ context.Context, userID string, update domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := MergeProfiles(s.profiles[userID], update)
	s.profiles[userID] = merged
	return merged, nil
}

func (s *InMemoryStore) ListByRole(_ context.Context, role string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []Entry
	for uid, p := range s.profiles {
		if p.Role == role {
			entries = append(entries, Entry{UserID: uid, Profile: p})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	return entries, nil
}
