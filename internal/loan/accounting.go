// Package loan implements the borrower loan lifecycle: request, decision,
// amount-due accounting, and escrow document release.
package loan

import (
	"math"
	"time"

	"trustbridge/internal/domain"
)

// utcDate strips the time of day, comparing calendar dates in UTC so stored
// timestamps and wall-clock "now" cannot drift across timezones.
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysOverdue returns how many whole calendar days current is past due.
// Zero when current is on or before the due date.
func DaysOverdue(dueDate, currentDate time.Time) int {
	due, current := utcDate(dueDate), utcDate(currentDate)
	if !current.After(due) {
		return 0
	}
	return int(current.Sub(due).Hours() / 24)
}

// CalculateTotalDue computes the amount owed as of currentDate. The penalty
// is simple daily interest on the principal at dailyRate per day overdue:
//
//	total_due = principal * (1 + dailyRate*daysOverdue)
//
// No penalty accrues while currentDate is on or before dueDate. The result
// is rounded to 2 decimal places.
func CalculateTotalDue(principal float64, dueDate, currentDate time.Time, dailyRate float64) float64 {
	total := principal * (1 + dailyRate*float64(DaysOverdue(dueDate, currentDate)))
	return math.Round(total*100) / 100
}

// ReleaseEligible reports whether the loan's escrowed documents may be
// released as of currentDate. Release requires either an approved and
// settled loan, or a current date no later than the due date. Overdue with
// no settlement never releases.
func ReleaseEligible(record domain.LoanRecord, currentDate time.Time) bool {
	if record.Status == domain.LoanStatusApproved && record.Settled() {
		return true
	}
	return !utcDate(currentDate).After(utcDate(record.DueDate))
}
