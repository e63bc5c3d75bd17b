// Package handler exposes the OTP endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// Service is the OTP surface consumed by this handler.
type Service interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the OTP routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/otp/send", h.send)
	r.Post("/otp/verify", h.verify)
}

type sendBody struct {
	Email string `json:"email"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[sendBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.Send(ctx, body.Email); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP sent",
	})
}

type verifyBody struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[verifyBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.Verify(ctx, body.Email, body.OTP); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP verified",
	})
}
