package govregistry

import (
	"context"
	"sync"

	"trustbridge/internal/domain"
)

// InMemoryStore keeps registry records in memory for development and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.GovernmentRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]domain.GovernmentRecord)}
}

// Seed loads a record, overwriting any existing entry for the PAN.
func (s *InMemoryStore) Seed(record domain.GovernmentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.PANNumber] = record
}

func (s *InMemoryStore) FindByPAN(_ context.Context, panNumber string) (domain.GovernmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[panNumber]; ok {
		return record, nil
	}
	return domain.GovernmentRecord{}, ErrNotFound
}
