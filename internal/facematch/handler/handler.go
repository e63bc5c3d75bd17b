// Package handler exposes the face verification endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/internal/domain"
	"trustbridge/internal/vision"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// Service is the face match surface consumed by this handler.
type Service interface {
	Evaluate(ctx context.Context, userID string, live, doc vision.Document) (domain.FaceMatchResult, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the face verification route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/face/verify", h.verify)
}

type verifyResponse struct {
	Match      bool   `json:"match"`
	Confidence int    `json:"confidence"`
	Message    string `json:"message"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart form"))
		return
	}

	userID := r.FormValue("uid")
	if userID == "" {
		userID = requestcontext.UserID(ctx)
	}
	if userID == "" || len(r.MultipartForm.File["live_image"]) == 0 || len(r.MultipartForm.File["doc_image"]) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "live_image, doc_image, and uid are required"))
		return
	}

	live, err := vision.DocumentFromRequest(r, "live_image")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	doc, err := vision.DocumentFromRequest(r, "doc_image")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Evaluate(ctx, userID, live, doc)
	if err != nil {
		h.logger.WarnContext(ctx, "face verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, verifyResponse{
		Match:      result.Match,
		Confidence: result.Confidence,
		Message:    result.Reason,
	})
}
