package trustscore

import (
	"context"
	"sync"

	"trustbridge/internal/domain"
)

// InMemoryStore keeps trust scores in memory for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	scores map[string]domain.TrustScore
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{scores: make(map[string]domain.TrustScore)}
}

func (s *InMemoryStore) Get(_ context.Context, userID string) (domain.TrustScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[userID]
	if !ok {
		return domain.TrustScore{}, ErrNotFound
	}
	return score, nil
}

func (s *InMemoryStore) Merge(_ context.Context, userID string, update domain.TrustScoreUpdate) (domain.TrustScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := update.ApplyTo(s.scores[userID])
	s.scores[userID] = merged
	return merged, nil
}
