// Package audit captures key scoring and loan actions for the audit trail.
// Events are emitted from domain logic, drained by a worker, and fanned out
// to the configured sinks (local store, Kafka).
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies what happened.
type Action string

const (
	ActionIdentityScored     Action = "identity_scored"
	ActionFinancialScored    Action = "financial_scored"
	ActionFaceVerified       Action = "face_verified"
	ActionLoanRequested      Action = "loan_requested"
	ActionLoanDecided        Action = "loan_decided"
	ActionDocumentsReleased  Action = "documents_released"
	ActionLenderOfferPosted  Action = "lender_offer_posted"
	ActionOTPSent            Action = "otp_sent"
	ActionOTPVerified        Action = "otp_verified"
	ActionVerificationFailed Action = "verification_failed"
)

// Event is emitted from domain logic. Keep it transport-agnostic so sinks
// can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"uid,omitempty"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
