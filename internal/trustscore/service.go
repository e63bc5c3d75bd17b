// Package trustscore implements the composite borrower trust score: identity
// and financial sub-scores computed from AI-extracted document text, merged
// into a capped running total with history.
package trustscore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"trustbridge/internal/audit"
	"trustbridge/internal/domain"
	"trustbridge/internal/govregistry"
	"trustbridge/internal/platform/config"
	"trustbridge/internal/trustscore/metrics"
	"trustbridge/internal/vision"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/requestcontext"
)

// GovernmentRegistry resolves PAN numbers to authoritative records.
type GovernmentRegistry interface {
	FindByPAN(ctx context.Context, panNumber string) (domain.GovernmentRecord, error)
}

// DocumentExtraction is the per-file extraction echoed back to the caller.
type DocumentExtraction struct {
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text"`
}

// IdentityResult is the outcome of an identity evaluation.
type IdentityResult struct {
	TrustScore      int                  `json:"trust_score"`
	PANVerified     bool                 `json:"pan_verified"`
	PANNumber       string               `json:"pan_number"`
	AadhaarVerified bool                 `json:"aadhaar_verified"`
	AadhaarNumber   string               `json:"aadhaar_number,omitempty"`
	PhoneProvided   string               `json:"phone_provided"`
	PhoneExtracted  string               `json:"phone_extracted,omitempty"`
	NameExtracted   string               `json:"name_extracted"`
	Explanation     string               `json:"explanation"`
	Results         []DocumentExtraction `json:"results"`
	Message         string               `json:"message"`
}

// FinancialResult is the outcome of a financial evaluation. TrustScore is the
// composite total, not the financial sub-score alone.
type FinancialResult struct {
	TrustScore     int                  `json:"trust_score"`
	IdentityScore  int                  `json:"identity_score"`
	FinancialScore int                  `json:"financial_score"`
	Explanation    string               `json:"explanation"`
	Results        []DocumentExtraction `json:"results"`
	Message        string               `json:"message"`
}

// Service coordinates extraction, verification, scoring, and the merge into
// the persisted trust score.
type Service struct {
	judge   vision.Judge
	gov     GovernmentRegistry
	store   Store
	cfg     config.ScoringConfig
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(judge vision.Judge, gov GovernmentRegistry, store Store, cfg config.ScoringConfig, opts ...Option) *Service {
	s := &Service{
		judge:  judge,
		gov:    gov,
		store:  store,
		cfg:    cfg,
		logger: slog.Default(),
		audit:  audit.NopPublisher{},
		tracer: otel.Tracer("trustscore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EvaluateIdentity extracts identity fields from the documents, verifies them
// against government records, scores them, and overwrites the identity slice
// of the user's trust score.
func (s *Service) EvaluateIdentity(ctx context.Context, userID, phone string, docs []vision.Document) (IdentityResult, error) {
	ctx, span := s.tracer.Start(ctx, "trustscore.EvaluateIdentity")
	defer span.End()

	if userID == "" {
		return IdentityResult{}, dErrors.New(dErrors.CodeInvalidInput, "user ID required")
	}
	if phone == "" {
		return IdentityResult{}, dErrors.New(dErrors.CodeInvalidInput, "phone number required")
	}

	results, err := s.extractAll(ctx, docs, s.judge.ExtractIdentity)
	if err != nil {
		s.metrics.IncrementEvaluation("identity", "upstream_error")
		return IdentityResult{}, err
	}

	combined := combineExtractions(results)
	extraction := ExtractIdentityFields(combined)

	if extraction.PANNumber == "" || extraction.Name == "" {
		s.metrics.IncrementEvaluation("identity", "rejected")
		s.emitVerificationFailure(ctx, userID, "PAN or Name not verified in documents")
		return IdentityResult{}, dErrors.New(dErrors.CodeVerificationMismatch, "PAN or Name not verified in documents")
	}

	panVerified, verifyMessage, err := s.verifyPAN(ctx, extraction, phone)
	if err != nil {
		s.metrics.IncrementEvaluation("identity", "rejected")
		s.emitVerificationFailure(ctx, userID, err.Error())
		return IdentityResult{}, err
	}

	aadhaarVerified := extraction.AadhaarNumber != ""
	score, explanation := scoreIdentity(extraction, panVerified, phone)
	span.SetAttributes(attribute.Int("trustscore.identity_score", score))

	now := requestcontext.Now(ctx).UTC()
	entry := domain.HistoryEntry{
		Score:  score,
		Reason: fmt.Sprintf("Identity verification completed. PAN Verified: %t, Aadhaar Present: %t", panVerified, aadhaarVerified),
		Date:   now,
	}
	if _, err := s.store.Merge(ctx, userID, domain.TrustScoreUpdate{
		IdentityScore: &score,
		IdentityEntry: &entry,
		UpdatedAt:     now,
	}); err != nil {
		s.logger.ErrorContext(ctx, "trust score merge failed",
			"user_id", userID,
			"error", err,
		)
		return IdentityResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist identity score")
	}

	s.metrics.IncrementEvaluation("identity", "scored")
	s.metrics.ObserveScore("identity", score)
	s.audit.Emit(ctx, audit.Event{
		UserID:   userID,
		Action:   audit.ActionIdentityScored,
		Decision: fmt.Sprintf("%d", score),
		Reason:   verifyMessage,
	})

	return IdentityResult{
		TrustScore:      score,
		PANVerified:     panVerified,
		PANNumber:       extraction.PANNumber,
		AadhaarVerified: aadhaarVerified,
		AadhaarNumber:   extraction.AadhaarNumber,
		PhoneProvided:   phone,
		PhoneExtracted:  extraction.Phone,
		NameExtracted:   extraction.Name,
		Explanation:     explanation,
		Results:         results,
		Message:         "Identity verification completed successfully.",
	}, nil
}

// EvaluateFinancials extracts financial facts from the documents, asks the
// judge for a 0-60 verdict, and appends the result to the user's financial
// history. An unparseable verdict falls back to the configured default score.
func (s *Service) EvaluateFinancials(ctx context.Context, userID string, docs []vision.Document) (FinancialResult, error) {
	ctx, span := s.tracer.Start(ctx, "trustscore.EvaluateFinancials")
	defer span.End()

	if userID == "" {
		return FinancialResult{}, dErrors.New(dErrors.CodeInvalidInput, "user ID required")
	}

	results, err := s.extractAll(ctx, docs, s.judge.ExtractFinancials)
	if err != nil {
		s.metrics.IncrementEvaluation("financial", "upstream_error")
		return FinancialResult{}, err
	}

	verdict, err := s.judge.ScoreFinancials(ctx, combineExtractions(results))
	if err != nil {
		s.metrics.IncrementEvaluation("financial", "upstream_error")
		return FinancialResult{}, err
	}

	judgment := ParseScoreJudgment(verdict, s.cfg.FinancialFallbackScore)
	span.SetAttributes(
		attribute.Int("trustscore.financial_score", judgment.Score),
		attribute.Bool("trustscore.verdict_parsed", judgment.Parsed),
	)
	if !judgment.Parsed {
		s.logger.WarnContext(ctx, "financial verdict unparseable, using fallback score",
			"user_id", userID,
			"fallback", judgment.Score,
		)
	}

	now := requestcontext.Now(ctx).UTC()
	entry := domain.HistoryEntry{
		Score:  judgment.Score,
		Reason: judgment.Explanation,
		Date:   now,
	}
	merged, err := s.store.Merge(ctx, userID, domain.TrustScoreUpdate{
		FinancialScore: &judgment.Score,
		FinancialEntry: &entry,
		UpdatedAt:      now,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "trust score merge failed",
			"user_id", userID,
			"error", err,
		)
		return FinancialResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist financial score")
	}

	outcome := "scored"
	if !judgment.Parsed {
		outcome = "fallback"
	}
	s.metrics.IncrementEvaluation("financial", outcome)
	s.metrics.ObserveScore("financial", judgment.Score)
	s.audit.Emit(ctx, audit.Event{
		UserID:   userID,
		Action:   audit.ActionFinancialScored,
		Decision: fmt.Sprintf("%d", judgment.Score),
		Reason:   judgment.Explanation,
	})

	return FinancialResult{
		TrustScore:     merged.Current,
		IdentityScore:  merged.IdentityScore,
		FinancialScore: judgment.Score,
		Explanation:    judgment.Explanation,
		Results:        results,
		Message:        "Financial documents evaluated successfully.",
	}, nil
}

// GetTrustScore returns the user's persisted score, or the zero-valued
// default when no evaluation has run yet.
func (s *Service) GetTrustScore(ctx context.Context, userID string) (domain.TrustScore, error) {
	score, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.TrustScore{
				IdentityHistory:  []domain.HistoryEntry{},
				FinancialHistory: []domain.HistoryEntry{},
			}, nil
		}
		return domain.TrustScore{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read trust score")
	}
	return score, nil
}

// extractAll runs the extractor over the supported documents in parallel,
// preserving input order. Unsupported MIME types are skipped, not rejected.
func (s *Service) extractAll(ctx context.Context, docs []vision.Document, extract func(context.Context, vision.Document) (string, error)) ([]DocumentExtraction, error) {
	var supported []vision.Document
	for _, doc := range docs {
		if vision.AllowedMIMEType(doc.MIMEType) {
			supported = append(supported, doc)
		}
	}
	if len(supported) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no valid documents processed")
	}

	results := make([]DocumentExtraction, len(supported))
	g, ctx := errgroup.WithContext(ctx)
	for i, doc := range supported {
		g.Go(func() error {
			text, err := extract(ctx, doc)
			if err != nil {
				return err
			}
			results[i] = DocumentExtraction{
				Filename:      doc.Filename,
				ExtractedText: strings.TrimSpace(text),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) verifyPAN(ctx context.Context, extraction domain.IdentityExtraction, suppliedPhone string) (bool, string, error) {
	if extraction.PANNumber == s.cfg.BypassPAN {
		return true, "PAN bypass code detected.", nil
	}

	record, err := s.gov.FindByPAN(ctx, extraction.PANNumber)
	if err != nil {
		if errors.Is(err, govregistry.ErrNotFound) {
			return false, "", dErrors.New(dErrors.CodeNotFound, "PAN not found in government records").
				WithDetails(map[string]string{"pan": extraction.PANNumber})
		}
		return false, "", dErrors.Wrap(err, dErrors.CodeInternal, "government record lookup failed")
	}

	if !record.Verified {
		return false, "", dErrors.New(dErrors.CodeVerificationMismatch, "government record not verified")
	}
	if !strings.EqualFold(extraction.Name, record.Name) || suppliedPhone != record.Phone {
		return false, "", dErrors.New(dErrors.CodeVerificationMismatch, "details do not match government records").
			WithDetails(map[string]string{
				"expected_name":  record.Name,
				"provided_name":  extraction.Name,
				"expected_phone": record.Phone,
				"provided_phone": suppliedPhone,
			})
	}
	return true, "PAN and user details matched government records.", nil
}

func (s *Service) emitVerificationFailure(ctx context.Context, userID, reason string) {
	s.audit.Emit(ctx, audit.Event{
		UserID: userID,
		Action: audit.ActionVerificationFailed,
		Reason: reason,
	})
}

func combineExtractions(results []DocumentExtraction) string {
	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.ExtractedText
	}
	return strings.Join(texts, "\n\n")
}
