// Package govregistry provides read access to the authoritative government
// identity records keyed by PAN number. Records are external data: this
// service never creates or mutates them outside of seeding.
package govregistry

import (
	"context"

	"trustbridge/internal/domain"
	dErrors "trustbridge/pkg/domain-errors"
)

// ErrNotFound keeps registry 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "government record not found")

// Store is interface-driven to keep the scoring logic testable and to allow
// swapping in-memory or external persistence without rewiring business code.
type Store interface {
	FindByPAN(ctx context.Context, panNumber string) (domain.GovernmentRecord, error)
}
