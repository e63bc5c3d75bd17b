package lender

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"trustbridge/internal/audit"
	"trustbridge/internal/domain"
	"trustbridge/internal/profile"
	"trustbridge/internal/trustscore"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/requestcontext"
)

// ProfileDirectory lists user profiles by role.
type ProfileDirectory interface {
	ListByRole(ctx context.Context, role string) ([]profile.Entry, error)
}

// ScoreReader reads a borrower's persisted trust score.
type ScoreReader interface {
	Get(ctx context.Context, userID string) (domain.TrustScore, error)
}

// OfferInput is a lender's standing offer submission.
type OfferInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Wallet       string  `json:"wallet"`
}

// Service owns lender registration, offers, and the borrower directory.
type Service struct {
	store    Store
	profiles ProfileDirectory
	scores   ScoreReader
	logger   *slog.Logger
	audit    audit.Publisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(store Store, profiles ProfileDirectory, scores ScoreReader, opts ...Option) *Service {
	s := &Service{
		store:    store,
		profiles: profiles,
		scores:   scores,
		logger:   slog.Default(),
		audit:    audit.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates or updates a lender record.
func (s *Service) Register(ctx context.Context, lender domain.Lender) (domain.Lender, error) {
	if lender.UserID == "" {
		return domain.Lender{}, dErrors.New(dErrors.CodeBadRequest, "UID is required")
	}

	lender.RegisteredAt = requestcontext.Now(ctx).UTC()
	if err := s.store.SaveLender(ctx, lender); err != nil {
		return domain.Lender{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register lender")
	}
	return lender, nil
}

// PostOffer records a standing offer for a registered lender.
func (s *Service) PostOffer(ctx context.Context, lenderID string, input OfferInput) (domain.LenderOffer, error) {
	if lenderID == "" {
		return domain.LenderOffer{}, dErrors.New(dErrors.CodeBadRequest, "UID is required")
	}
	if input.Amount <= 0 {
		return domain.LenderOffer{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}
	if input.InterestRate < 0 {
		return domain.LenderOffer{}, dErrors.New(dErrors.CodeInvalidInput, "interest rate must not be negative")
	}

	if _, err := s.store.GetLender(ctx, lenderID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.LenderOffer{}, dErrors.New(dErrors.CodeNotFound, "lender not registered")
		}
		return domain.LenderOffer{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read lender")
	}

	offer := domain.LenderOffer{
		ID:           uuid.NewString(),
		LenderID:     lenderID,
		Amount:       input.Amount,
		InterestRate: input.InterestRate,
		Wallet:       input.Wallet,
		PostedAt:     requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.AddOffer(ctx, offer); err != nil {
		return domain.LenderOffer{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to post offer")
	}

	s.audit.Emit(ctx, audit.Event{
		UserID:  lenderID,
		Action:  audit.ActionLenderOfferPosted,
		Subject: offer.ID,
	})
	return offer, nil
}

// Offers lists a lender's standing offers.
func (s *Service) Offers(ctx context.Context, lenderID string) ([]domain.LenderOffer, error) {
	offers, err := s.store.ListOffers(ctx, lenderID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list offers")
	}
	return offers, nil
}

// Borrowers lists all borrowers with their current trust scores. A borrower
// who was never scored appears with a zero score rather than being dropped.
func (s *Service) Borrowers(ctx context.Context) ([]domain.Borrower, error) {
	entries, err := s.profiles.ListByRole(ctx, "borrower")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list borrowers")
	}

	borrowers := make([]domain.Borrower, 0, len(entries))
	for _, entry := range entries {
		borrower := domain.Borrower{
			UserID: entry.UserID,
			Name:   entry.Profile.Name,
		}
		score, err := s.scores.Get(ctx, entry.UserID)
		switch {
		case err == nil:
			borrower.TrustScore = score.Current
		case errors.Is(err, trustscore.ErrNotFound):
			// Unscored borrowers list with zero.
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read trust score")
		}
		borrowers = append(borrowers, borrower)
	}
	return borrowers, nil
}
