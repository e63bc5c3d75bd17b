// Package handler exposes the trust score endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/internal/domain"
	"trustbridge/internal/profile"
	"trustbridge/internal/trustscore"
	"trustbridge/internal/vision"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// ProfileReader checks user existence for the trust score read.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
}

// Service is the trust score surface consumed by this handler.
type Service interface {
	EvaluateIdentity(ctx context.Context, userID, phone string, docs []vision.Document) (trustscore.IdentityResult, error)
	EvaluateFinancials(ctx context.Context, userID string, docs []vision.Document) (trustscore.FinancialResult, error)
	GetTrustScore(ctx context.Context, userID string) (domain.TrustScore, error)
}

type Handler struct {
	service  Service
	profiles ProfileReader
	logger   *slog.Logger
}

func New(service Service, profiles ProfileReader, logger *slog.Logger) *Handler {
	return &Handler{service: service, profiles: profiles, logger: logger}
}

// Register mounts the trust score routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/vision/identity", h.evaluateIdentity)
	r.Post("/vision/financial", h.evaluateFinancials)
	r.Get("/user/trust-score/{uid}", h.getTrustScore)
}

func (h *Handler) evaluateIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := vision.DocumentsFromRequest(r, "document")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	userID := formUserID(r)
	phone := r.FormValue("phone")

	result, err := h.service.EvaluateIdentity(ctx, userID, phone, docs)
	if err != nil {
		h.logger.WarnContext(ctx, "identity evaluation failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) evaluateFinancials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := vision.DocumentsFromRequest(r, "document")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	userID := formUserID(r)

	result, err := h.service.EvaluateFinancials(ctx, userID, docs)
	if err != nil {
		h.logger.WarnContext(ctx, "financial evaluation failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) getTrustScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "uid")

	// An unknown user is a 404; a known user who was never evaluated gets
	// the zero-valued score.
	if _, err := h.profiles.Get(ctx, userID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "user not found"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read user"))
		return
	}

	score, err := h.service.GetTrustScore(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"trust_score": score,
	})
}

// formUserID prefers the explicit form field, falling back to the
// authenticated user.
func formUserID(r *http.Request) string {
	if uid := r.FormValue("uid"); uid != "" {
		return uid
	}
	return requestcontext.UserID(r.Context())
}
