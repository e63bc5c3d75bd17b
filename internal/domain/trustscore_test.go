package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestTrustScoreUpdateApplyTo(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("composite is capped at one hundred", func(t *testing.T) {
		tests := []struct {
			identity  int
			financial int
			want      int
		}{
			{0, 0, 0},
			{15, 40, 55},
			{15, 60, 75},
			{50, 60, 100},
			{99, 99, 100},
		}
		for _, tt := range tests {
			merged := TrustScoreUpdate{
				IdentityScore:  intPtr(tt.identity),
				FinancialScore: intPtr(tt.financial),
				UpdatedAt:      now,
			}.ApplyTo(TrustScore{})
			assert.Equal(t, tt.want, merged.Current)
			assert.Equal(t, merged.Composite(), merged.Current)
		}
	})

	t.Run("identity entry replaces history", func(t *testing.T) {
		prior := TrustScore{
			IdentityHistory: []HistoryEntry{{Score: 10, Reason: "old", Date: now.AddDate(0, -1, 0)}},
		}
		merged := TrustScoreUpdate{
			IdentityScore: intPtr(15),
			IdentityEntry: &HistoryEntry{Score: 15, Reason: "new", Date: now},
			UpdatedAt:     now,
		}.ApplyTo(prior)

		assert.Len(t, merged.IdentityHistory, 1)
		assert.Equal(t, "new", merged.IdentityHistory[0].Reason)
	})

	t.Run("financial entry appends to history", func(t *testing.T) {
		prior := TrustScore{
			FinancialHistory: []HistoryEntry{{Score: 30, Reason: "first", Date: now.AddDate(0, -1, 0)}},
		}
		merged := TrustScoreUpdate{
			FinancialScore: intPtr(45),
			FinancialEntry: &HistoryEntry{Score: 45, Reason: "second", Date: now},
			UpdatedAt:      now,
		}.ApplyTo(prior)

		assert.Len(t, merged.FinancialHistory, 2)
		assert.Equal(t, "first", merged.FinancialHistory[0].Reason)
		assert.Equal(t, "second", merged.FinancialHistory[1].Reason)
	})

	t.Run("partial update keeps the other sub-score", func(t *testing.T) {
		prior := TrustScore{Current: 15, IdentityScore: 15}
		merged := TrustScoreUpdate{
			FinancialScore: intPtr(40),
			UpdatedAt:      now,
		}.ApplyTo(prior)

		assert.Equal(t, 15, merged.IdentityScore)
		assert.Equal(t, 40, merged.FinancialScore)
		assert.Equal(t, 55, merged.Current)
	})
}
