// Package profile stores the merge-persisted user profile.
package profile

import (
	"context"
	"errors"

	"trustbridge/internal/domain"
)

// ErrNotFound is returned when no profile exists for the user.
var ErrNotFound = errors.New("profile not found")

// Entry pairs a profile with its owner for listings.
type Entry struct {
	UserID  string
	Profile domain.Profile
}

// Store persists profiles. Merge overwrites only the non-empty fields of the
// update, creating the profile when absent.
type Store interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Merge(ctx context.Context, userID string, update domain.Profile) (domain.Profile, error)
	ListByRole(ctx context.Context, role string) ([]Entry, error)
}

// MergeProfiles overlays the non-empty fields of update onto base.
func MergeProfiles(base, update domain.Profile) domain.Profile {
	if update.Name != "" {
		base.Name = update.Name
	}
	if update.Email != "" {
		base.Email = update.Email
	}
	if update.Phone != "" {
		base.Phone = update.Phone
	}
	if update.Role != "" {
		base.Role = update.Role
	}
	if update.Wallet != "" {
		base.Wallet = update.Wallet
	}
	return base
}
