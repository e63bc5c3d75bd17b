package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustbridge/internal/domain"
)

func TestMergeKeepsExistingFields(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Merge(ctx, "u1", domain.Profile{Name: "Ravi", Email: "ravi@example.com", Role: "borrower"})
	require.NoError(t, err)

	merged, err := store.Merge(ctx, "u1", domain.Profile{Wallet: "0xabc"})
	require.NoError(t, err)

	assert.Equal(t, "Ravi", merged.Name)
	assert.Equal(t, "ravi@example.com", merged.Email)
	assert.Equal(t, "borrower", merged.Role)
	assert.Equal(t, "0xabc", merged.Wallet)
}

func TestGetMissingProfile(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByRole(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Merge(ctx, "b1", domain.Profile{Name: "Ravi", Role: "borrower"})
	require.NoError(t, err)
	_, err = store.Merge(ctx, "l1", domain.Profile{Name: "Meera", Role: "lender"})
	require.NoError(t, err)
	_, err = store.Merge(ctx, "b2", domain.Profile{Name: "Arjun", Role: "borrower"})
	require.NoError(t, err)

	borrowers, err := store.ListByRole(ctx, "borrower")
	require.NoError(t, err)
	require.Len(t, borrowers, 2)
	assert.Equal(t, "b1", borrowers[0].UserID)
	assert.Equal(t, "b2", borrowers[1].UserID)
}
