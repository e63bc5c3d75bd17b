package lender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustbridge/internal/domain"
	"trustbridge/internal/profile"
	"trustbridge/internal/trustscore"
	dErrors "trustbridge/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *InMemoryStore, *profile.InMemoryStore, *trustscore.InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	profiles := profile.NewInMemoryStore()
	scores := trustscore.NewInMemoryStore()
	return NewService(store, profiles, scores), store, profiles, scores
}

func TestRegisterRequiresUID(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), domain.Lender{Name: "Meera"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestPostOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("requires registration first", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.PostOffer(ctx, "l1", OfferInput{Amount: 5000, InterestRate: 8})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("records offers in order", func(t *testing.T) {
		service, _, _, _ := newTestService(t)
		_, err := service.Register(ctx, domain.Lender{UserID: "l1", Name: "Meera"})
		require.NoError(t, err)

		first, err := service.PostOffer(ctx, "l1", OfferInput{Amount: 5000, InterestRate: 8, Wallet: "0xdef"})
		require.NoError(t, err)
		_, err = service.PostOffer(ctx, "l1", OfferInput{Amount: 2000, InterestRate: 10})
		require.NoError(t, err)

		offers, err := service.Offers(ctx, "l1")
		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Equal(t, first.ID, offers[0].ID)
		assert.Equal(t, 5000.0, offers[0].Amount)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		service, _, _, _ := newTestService(t)
		_, err := service.Register(ctx, domain.Lender{UserID: "l1"})
		require.NoError(t, err)

		_, err = service.PostOffer(ctx, "l1", OfferInput{Amount: 0, InterestRate: 8})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestBorrowersIncludeTrustScores(t *testing.T) {
	ctx := context.Background()
	service, _, profiles, scores := newTestService(t)

	_, err := profiles.Merge(ctx, "b1", domain.Profile{Name: "Ravi", Role: "borrower"})
	require.NoError(t, err)
	_, err = profiles.Merge(ctx, "b2", domain.Profile{Name: "Arjun", Role: "borrower"})
	require.NoError(t, err)
	_, err = profiles.Merge(ctx, "l1", domain.Profile{Name: "Meera", Role: "lender"})
	require.NoError(t, err)

	identity := 15
	_, err = scores.Merge(ctx, "b1", domain.TrustScoreUpdate{IdentityScore: &identity})
	require.NoError(t, err)

	borrowers, err := service.Borrowers(ctx)
	require.NoError(t, err)
	require.Len(t, borrowers, 2)

	assert.Equal(t, "b1", borrowers[0].UserID)
	assert.Equal(t, 15, borrowers[0].TrustScore)
	assert.Equal(t, "b2", borrowers[1].UserID)
	assert.Equal(t, 0, borrowers[1].TrustScore)
}
