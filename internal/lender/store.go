// Package lender manages lender registration, standing offers, and the
// borrower directory shown to lenders.
package lender

import (
	"context"
	"errors"

	"trustbridge/internal/domain"
)

// ErrNotFound is returned when a lender record does not exist.
var ErrNotFound = errors.New("lender not found")

// Store persists lenders and their offers.
type Store interface {
	SaveLender(ctx context.Context, lender domain.Lender) error
	GetLender(ctx context.Context, lenderID string) (domain.Lender, error)
	AddOffer(ctx context.Context, offer domain.LenderOffer) error
	ListOffers(ctx context.Context, lenderID string) ([]domain.LenderOffer, error)
}
