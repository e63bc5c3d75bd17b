package lender

import (
	"context"
	"sync"

	"trustbridge/internal/domain"
)

// InMemoryStore keeps lenders and offers in memory for development and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	lenders map[string]domain.Lender
	offers  map[string][]domain.LenderOffer
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		lenders: make(map[string]domain.Lender),
		offers:  make(map[string][]domain.LenderOffer),
	}
}

func (s *InMemoryStore) SaveLender(_ context.Context, lender domain.Lender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lenders[lender.UserID] = lender
	return nil
}

func (s *InMemoryStore) GetLender(_ context.Context, lenderID string) (domain.Lender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lender, ok := s.lenders[lenderID]
	if !ok {
		return domain.Lender{}, ErrNotFound
	}
	return lender, nil
}

func (s *InMemoryStore) AddOffer(_ context.Context, offer domain.LenderOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.LenderID] = append(s.offers[offer.LenderID], offer)
	return nil
}

func (s *InMemoryStore) ListOffers(_ context.Context, lenderID string) ([]domain.LenderOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LenderOffer{}, s.offers[lenderID]...), nil
}
