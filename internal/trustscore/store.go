package trustscore

import (
	"context"
	"errors"

	"trustbridge/internal/domain"
)

// ErrNotFound is returned by Get when no score exists for the user yet.
var ErrNotFound = errors.New("trust score not found")

// Store persists per-user trust scores. Merge is a read-modify-write over the
// user's record: identity and financial evaluations write disjoint fields and
// both re-derive the composite, so concurrent merges converge. Merge creates
// the record lazily on first evaluation.
type Store interface {
	Get(ctx context.Context, userID string) (domain.TrustScore, error)
	Merge(ctx context.Context, userID string, update domain.TrustScoreUpdate) (domain.TrustScore, error)
}
