package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trustbridge/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateTotalDue(t *testing.T) {
	const rate = 0.002
	due := date(2024, 1, 31)

	tests := []struct {
		name      string
		principal float64
		current   time.Time
		want      float64
	}{
		{
			name:      "before due date no penalty",
			principal: 1000,
			current:   date(2024, 1, 15),
			want:      1000,
		},
		{
			name:      "on due date no penalty",
			principal: 1000,
			current:   due,
			want:      1000,
		},
		{
			name:      "one day overdue",
			principal: 1000,
			current:   date(2024, 2, 1),
			want:      1002,
		},
		{
			name:      "fifteen days overdue",
			principal: 1000,
			current:   date(2024, 2, 15),
			want:      1030,
		},
		{
			name:      "rounds to two decimals",
			principal: 333.33,
			current:   date(2024, 2, 1),
			want:      334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalDue(tt.principal, due, tt.current, rate)
			assert.InDelta(t, tt.want, got, 0.001)
			if !tt.current.After(due) {
				assert.Equal(t, tt.principal, got)
			} else {
				assert.Greater(t, got, tt.principal)
			}
		})
	}
}

func TestDaysOverdueUsesCalendarDates(t *testing.T) {
	due := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)

	// Late evening vs early morning must still compare as whole dates.
	assert.Equal(t, 0, DaysOverdue(due, time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysOverdue(due, time.Date(2024, 2, 1, 0, 1, 0, 0, time.UTC)))

	// A non-UTC clock reading is normalized before comparison.
	ist := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, 0, DaysOverdue(due, time.Date(2024, 2, 1, 4, 0, 0, 0, ist)))
}

func TestReleaseEligible(t *testing.T) {
	due := date(2024, 1, 31)
	settled := date(2024, 2, 10)

	base := domain.LoanRecord{DueDate: due, Status: domain.LoanStatusApproved}

	t.Run("on or before due date releases", func(t *testing.T) {
		assert.True(t, ReleaseEligible(base, date(2024, 1, 15)))
		assert.True(t, ReleaseEligible(base, due))
	})

	t.Run("overdue without settlement never releases", func(t *testing.T) {
		assert.False(t, ReleaseEligible(base, date(2024, 2, 1)))

		pending := base
		pending.Status = domain.LoanStatusPending
		assert.False(t, ReleaseEligible(pending, date(2024, 2, 1)))
	})

	t.Run("approved and settled releases even overdue", func(t *testing.T) {
		record := base
		record.SettledAt = &settled
		assert.True(t, ReleaseEligible(record, date(2024, 3, 1)))
	})

	t.Run("settled but not approved follows the date guard", func(t *testing.T) {
		record := base
		record.Status = domain.LoanStatusPending
		record.SettledAt = &settled
		assert.False(t, ReleaseEligible(record, date(2024, 2, 1)))
	})
}
