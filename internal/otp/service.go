// Package otp implements emailed one-time codes: issued with an expiry,
// stored hashed, and consumed on first successful verification.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"trustbridge/internal/audit"
	dErrors "trustbridge/pkg/domain-errors"
)

// ErrNotFound is returned when no code is pending for the email, or the
// pending code expired.
var ErrNotFound = errors.New("otp not found")

// Store keeps pending code hashes keyed by email. Entries are time-boxed and
// removed on consumption.
type Store interface {
	Put(ctx context.Context, email string, codeHash []byte, ttl time.Duration) error
	Get(ctx context.Context, email string) ([]byte, error)
	Delete(ctx context.Context, email string) error
}

// Sender delivers the code to the user.
type Sender interface {
	Send(ctx context.Context, email, code string) error
}

// Service issues and verifies one-time codes.
type Service struct {
	store  Store
	sender Sender
	ttl    time.Duration
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

func NewService(store Store, sender Sender, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		store:  store,
		sender: sender,
		ttl:    ttl,
		logger: slog.Default(),
		audit:  audit.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send issues a fresh 6-digit code to the email, replacing any pending one.
// Only the bcrypt hash is stored; the plaintext code exists in the outbound
// mail alone.
func (s *Service) Send(ctx context.Context, email string) error {
	if email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Email required")
	}

	code, err := generateCode()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate OTP")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash OTP")
	}

	if err := s.store.Put(ctx, email, hash, s.ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store OTP")
	}
	if err := s.sender.Send(ctx, email, code); err != nil {
		s.logger.ErrorContext(ctx, "otp delivery failed",
			"email", email,
			"error", err.Error(),
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Failed to send OTP")
	}

	s.audit.Emit(ctx, audit.Event{Subject: email, Action: audit.ActionOTPSent})
	return nil
}

// Verify checks the code and consumes it on success. A wrong code leaves the
// pending entry in place until it expires; a correct one is single-use.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Email and OTP required")
	}

	hash, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return dErrors.New(dErrors.CodeInvalidInput, "Invalid OTP")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read OTP")
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "Invalid OTP")
	}

	if err := s.store.Delete(ctx, email); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume OTP")
	}

	s.audit.Emit(ctx, audit.Event{Subject: email, Action: audit.ActionOTPVerified})
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
