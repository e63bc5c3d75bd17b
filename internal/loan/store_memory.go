package loan

import (
	"context"
	"sync"
	"time"

	"trustbridge/internal/domain"
)

type loanKey struct {
	userID string
	loanID string
}

// InMemoryStore keeps loans in memory for development and tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	loans map[loanKey]domain.LoanRecord
	order []loanKey
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{loans: make(map[loanKey]domain.LoanRecord)}
}

func (s *InMemoryStore) Create(_ context.Context, record domain.LoanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := loanKey{record.UserID, record.ID}
	if _, exists := s.loans[key]; !exists {
		s.order = append(s.order, key)
	}
	s.loans[key] = record
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, userID, loanID string) (domain.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.loans[loanKey{userID, loanID}]
	if !ok {
		return domain.LoanRecord{}, ErrNotFound
	}
	return record, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]domain.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []domain.LoanRecord
	for _, key := range s.order {
		if key.userID == userID {
			records = append(records, s.loans[key])
		}
	}
	return records, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, userID, loanID string, status domain.LoanStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := loanKey{userID, loanID}
	record, ok := s.loans[key]
	if !ok {
		return ErrNotFound
	}
	record.Status = status
	s.loans[key] = record
	return nil
}

func (s *InMemoryStore) MarkSettled(_ context.Context, userID, loanID string, settledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := loanKey{userID, loanID}
	record, ok := s.loans[key]
	if !ok {
		return ErrNotFound
	}
	record.SettledAt = &settledAt
	s.loans[key] = record
	return nil
}

// InMemoryEscrowStore keeps escrow documents in memory.
type InMemoryEscrowStore struct {
	mu   sync.RWMutex
	docs map[loanKey][]domain.EscrowDocument
}

func NewInMemoryEscrowStore() *InMemoryEscrowStore {
	return &InMemoryEscrowStore{docs: make(map[loanKey][]domain.EscrowDocument)}
}

func (s *InMemoryEscrowStore) Add(_ context.Context, doc domain.EscrowDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := loanKey{doc.UserID, doc.LoanID}
	s.docs[key] = append(s.docs[key], doc)
	return nil
}

func (s *InMemoryEscrowStore) ListByLoan(_ context.Context, userID, loanID string) ([]domain.EscrowDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.EscrowDocument{}, s.docs[loanKey{userID, loanID}]...), nil
}

func (s *InMemoryEscrowStore) Release(_ context.Context, userID, loanID string, releasedAt time.Time) ([]domain.EscrowDocument, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := loanKey{userID, loanID}
	changed := false
	docs := s.docs[key]
	for i := range docs {
		if !docs[i].Released {
			docs[i].Released = true
			at := releasedAt
			docs[i].ReleasedAt = &at
			changed = true
		}
	}
	s.docs[key] = docs
	return append([]domain.EscrowDocument{}, docs...), changed, nil
}
