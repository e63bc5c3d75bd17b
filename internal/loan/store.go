package loan

import (
	"context"
	"errors"
	"time"

	"trustbridge/internal/domain"
)

// ErrNotFound is returned when a loan or escrow record does not exist.
var ErrNotFound = errors.New("loan not found")

// Store persists loan records, keyed by borrower and loan ID.
type Store interface {
	Create(ctx context.Context, record domain.LoanRecord) error
	Get(ctx context.Context, userID, loanID string) (domain.LoanRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.LoanRecord, error)
	UpdateStatus(ctx context.Context, userID, loanID string, status domain.LoanStatus) error
	MarkSettled(ctx context.Context, userID, loanID string, settledAt time.Time) error
}

// EscrowStore persists the documents held against a loan. Release marks all
// of a loan's documents released and reports whether any transitioned on
// this call; repeated releases are no-ops.
type EscrowStore interface {
	Add(ctx context.Context, doc domain.EscrowDocument) error
	ListByLoan(ctx context.Context, userID, loanID string) ([]domain.EscrowDocument, error)
	Release(ctx context.Context, userID, loanID string, releasedAt time.Time) (docs []domain.EscrowDocument, changed bool, err error)
}
