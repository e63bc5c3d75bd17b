// Package facematch applies the confidence policy to the AI face comparison
// verdict.
package facematch

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trustbridge/internal/audit"
	"trustbridge/internal/domain"
	"trustbridge/internal/facematch/metrics"
	"trustbridge/internal/vision"
	dErrors "trustbridge/pkg/domain-errors"
)

const lowConfidenceSuffix = " (Confidence too low)"

// Service evaluates live-capture vs document-photo matches.
type Service struct {
	judge     vision.Judge
	threshold int
	logger    *slog.Logger
	metrics   *metrics.Metrics
	audit     audit.Publisher
	tracer    trace.Tracer
}

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

func NewService(judge vision.Judge, confidenceThreshold int, opts ...Option) *Service {
	s := &Service{
		judge:     judge,
		threshold: confidenceThreshold,
		logger:    slog.Default(),
		audit:     audit.NopPublisher{},
		tracer:    otel.Tracer("facematch"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate compares the two images and applies the confidence policy: a
// positive verdict below the threshold is downgraded to no-match, and a
// negative verdict is never upgraded. An unparseable upstream response is an
// error, never a default verdict.
func (s *Service) Evaluate(ctx context.Context, userID string, live, doc vision.Document) (domain.FaceMatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "facematch.Evaluate")
	defer span.End()

	if userID == "" {
		return domain.FaceMatchResult{}, dErrors.New(dErrors.CodeInvalidInput, "user ID required")
	}

	judgment, err := s.judge.CompareFaces(ctx, live, doc)
	if err != nil {
		s.metrics.IncrementVerdict("upstream_error")
		s.logger.ErrorContext(ctx, "face comparison failed",
			"user_id", userID,
			"error", err.Error(),
		)
		return domain.FaceMatchResult{}, err
	}

	result := domain.FaceMatchResult{
		Match:      judgment.Match,
		Confidence: judgment.Confidence,
		Reason:     judgment.Reason,
	}
	if result.Match && result.Confidence < s.threshold {
		result.Match = false
		result.Reason += lowConfidenceSuffix
	}

	span.SetAttributes(
		attribute.Bool("facematch.match", result.Match),
		attribute.Int("facematch.confidence", result.Confidence),
	)

	verdict := "no_match"
	if result.Match {
		verdict = "match"
	}
	s.metrics.IncrementVerdict(verdict)
	s.audit.Emit(ctx, audit.Event{
		UserID:   userID,
		Action:   audit.ActionFaceVerified,
		Decision: verdict,
		Reason:   result.Reason,
	})

	return result, nil
}
