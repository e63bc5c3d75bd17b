package loan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"trustbridge/internal/audit"
	"trustbridge/internal/domain"
	"trustbridge/internal/platform/config"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/requestcontext"
)

// RequestInput is a borrower's loan application.
type RequestInput struct {
	Amount  float64 `json:"amount"`
	Purpose string  `json:"purpose"`
	Wallet  string  `json:"wallet"`
}

// StatusResult is the computed state of a loan as of the query date.
type StatusResult struct {
	LoanID            string                  `json:"loan_id"`
	Principal         float64                 `json:"principal"`
	TotalDue          float64                 `json:"total_due"`
	IssueDate         string                  `json:"issue_date"`
	DueDate           string                  `json:"due_date"`
	CurrentDate       string                  `json:"current_date"`
	DocumentsReleased []domain.EscrowDocument `json:"documents_released"`
	Status            domain.LoanStatus       `json:"status"`
}

const dateLayout = "2006-01-02"

// Service owns the loan lifecycle and escrow release decisions.
type Service struct {
	loans  Store
	escrow EscrowStore
	cfg    config.LoanConfig
	logger *slog.Logger
	audit  audit.Publisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(loans Store, escrow EscrowStore, cfg config.LoanConfig, opts ...Option) *Service {
	s := &Service{
		loans:  loans,
		escrow: escrow,
		cfg:    cfg,
		logger: slog.Default(),
		audit:  audit.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request creates a pending loan due the configured term after issue.
func (s *Service) Request(ctx context.Context, userID string, input RequestInput) (domain.LoanRecord, error) {
	if userID == "" || input.Purpose == "" || input.Wallet == "" {
		return domain.LoanRecord{}, dErrors.New(dErrors.CodeBadRequest, "missing required fields")
	}
	if input.Amount <= 0 {
		return domain.LoanRecord{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}

	now := requestcontext.Now(ctx).UTC()
	record := domain.LoanRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    input.Amount,
		Purpose:   input.Purpose,
		Wallet:    input.Wallet,
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, s.cfg.TermDays),
		Status:    domain.LoanStatusPending,
	}
	if err := s.loans.Create(ctx, record); err != nil {
		return domain.LoanRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create loan")
	}

	s.audit.Emit(ctx, audit.Event{
		UserID:  userID,
		Action:  audit.ActionLoanRequested,
		Subject: record.ID,
	})
	return record, nil
}

// ListByUser returns all of the borrower's loans.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.LoanRecord, error) {
	records, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list loans")
	}
	return records, nil
}

// Status computes the amount due as of the request date and evaluates the
// escrow release guard. The guard runs once per query and release is
// idempotent: repeat queries after release return the already-released list.
func (s *Service) Status(ctx context.Context, userID, loanID string) (StatusResult, error) {
	record, err := s.getLoan(ctx, userID, loanID)
	if err != nil {
		return StatusResult{}, err
	}

	now := requestcontext.Now(ctx).UTC()
	totalDue := CalculateTotalDue(record.Amount, record.DueDate, now, s.cfg.DailyPenaltyRate)

	var released []domain.EscrowDocument
	if ReleaseEligible(record, now) {
		docs, changed, err := s.escrow.Release(ctx, userID, loanID, now)
		if err != nil {
			return StatusResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to release documents")
		}
		if changed {
			s.audit.Emit(ctx, audit.Event{
				UserID:  userID,
				Action:  audit.ActionDocumentsReleased,
				Subject: loanID,
			})
		}
		released = releasedOnly(docs)
	} else {
		docs, err := s.escrow.ListByLoan(ctx, userID, loanID)
		if err != nil {
			return StatusResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
		}
		released = releasedOnly(docs)
	}

	return StatusResult{
		LoanID:            record.ID,
		Principal:         record.Amount,
		TotalDue:          totalDue,
		IssueDate:         record.IssueDate.UTC().Format(dateLayout),
		DueDate:           record.DueDate.UTC().Format(dateLayout),
		CurrentDate:       now.Format(dateLayout),
		DocumentsReleased: released,
		Status:            record.Status,
	}, nil
}

// Decide applies a terminal approve/reject decision to a pending loan.
func (s *Service) Decide(ctx context.Context, userID, loanID, decision string) (domain.LoanStatus, error) {
	status, err := domain.ParseLoanDecision(decision)
	if err != nil {
		return "", err
	}

	record, err := s.getLoan(ctx, userID, loanID)
	if err != nil {
		return "", err
	}
	if record.Status != domain.LoanStatusPending {
		return "", dErrors.Newf(dErrors.CodeConflict, "loan already %s", record.Status)
	}

	if err := s.loans.UpdateStatus(ctx, userID, loanID, status); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to update loan decision")
	}

	s.audit.Emit(ctx, audit.Event{
		UserID:   userID,
		Action:   audit.ActionLoanDecided,
		Subject:  loanID,
		Decision: status.String(),
	})
	return status, nil
}

// Settle records repayment confirmation. Settlement is what allows escrow
// release after the due date has passed.
func (s *Service) Settle(ctx context.Context, userID, loanID string) error {
	record, err := s.getLoan(ctx, userID, loanID)
	if err != nil {
		return err
	}
	if record.Settled() {
		return nil
	}
	if record.Status != domain.LoanStatusApproved {
		return dErrors.New(dErrors.CodeConflict, "only approved loans can be settled")
	}

	now := requestcontext.Now(ctx).UTC()
	if err := s.loans.MarkSettled(ctx, userID, loanID, now); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark loan settled")
	}
	return nil
}

// AddEscrowDocument registers a held document against a loan.
func (s *Service) AddEscrowDocument(ctx context.Context, userID, loanID, name, url string) (domain.EscrowDocument, error) {
	if name == "" {
		return domain.EscrowDocument{}, dErrors.New(dErrors.CodeBadRequest, "document name required")
	}
	if _, err := s.getLoan(ctx, userID, loanID); err != nil {
		return domain.EscrowDocument{}, err
	}

	doc := domain.EscrowDocument{
		ID:     uuid.NewString(),
		LoanID: loanID,
		UserID: userID,
		Name:   name,
		URL:    url,
	}
	if err := s.escrow.Add(ctx, doc); err != nil {
		return domain.EscrowDocument{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store escrow document")
	}
	return doc, nil
}

func (s *Service) getLoan(ctx context.Context, userID, loanID string) (domain.LoanRecord, error) {
	record, err := s.loans.Get(ctx, userID, loanID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.LoanRecord{}, dErrors.New(dErrors.CodeNotFound, "loan not found")
		}
		return domain.LoanRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read loan")
	}
	return record, nil
}

func releasedOnly(docs []domain.EscrowDocument) []domain.EscrowDocument {
	released := make([]domain.EscrowDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.Released {
			released = append(released, doc)
		}
	}
	return released
}
