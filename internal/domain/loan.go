package domain

import (
	"time"

	dErrors "trustbridge/pkg/domain-errors"
)

// LoanStatus is the lifecycle state of a loan request.
// Invariant: pending may transition once to approved or rejected; decisions
// are terminal.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
)

var validDecisions = map[LoanStatus]bool{
	LoanStatusApproved: true,
	LoanStatusRejected: true,
}

// ParseLoanDecision constructs a terminal LoanStatus from external input.
// Only approved and rejected are valid decisions; pending is not a decision.
func ParseLoanDecision(s string) (LoanStatus, error) {
	d := LoanStatus(s)
	if !validDecisions[d] {
		return "", dErrors.New(dErrors.CodeBadRequest, "decision must be either 'approved' or 'rejected'")
	}
	return d, nil
}

func (s LoanStatus) String() string { return string(s) }

// LoanRecord is a borrower's loan request. Created once on submission;
// Status is mutated exactly once by a decision; SettledAt is set once on
// repayment confirmation. All other fields are immutable.
type LoanRecord struct {
	ID        string     `json:"id"`
	UserID    string     `json:"uid"`
	Amount    float64    `json:"amount"`
	Purpose   string     `json:"purpose"`
	Wallet    string     `json:"wallet"`
	IssueDate time.Time  `json:"issue_date"`
	DueDate   time.Time  `json:"due_date"`
	Status    LoanStatus `json:"status"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// Settled reports whether repayment has been confirmed.
func (l LoanRecord) Settled() bool { return l.SettledAt != nil }

// EscrowDocument is a held supporting document associated with a loan.
// Released is set at most once; release is idempotent.
type EscrowDocument struct {
	ID         string     `json:"id"`
	LoanID     string     `json:"loan_id"`
	UserID     string     `json:"uid"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Released   bool       `json:"released"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}

// Lender is a registered capital provider.
type Lender struct {
	UserID       string    `json:"uid"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Wallet       string    `json:"wallet,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// LenderOffer is a lender's standing loan offer.
type LenderOffer struct {
	ID           string    `json:"id"`
	LenderID     string    `json:"uid"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interest_rate"`
	Wallet       string    `json:"wallet"`
	PostedAt     time.Time `json:"timestamp"`
}

// Borrower summarizes a borrower for lender-side listings.
type Borrower struct {
	UserID     string `json:"uid"`
	Name       string `json:"name,omitempty"`
	TrustScore int    `json:"trust_score"`
}
