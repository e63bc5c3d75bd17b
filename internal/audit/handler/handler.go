// Package handler exposes the audit trail read endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/internal/audit"
	"trustbridge/pkg/platform/httputil"
)

// Reader is the audit query surface consumed by this handler.
type Reader interface {
	ListByUser(ctx context.Context, userID string) ([]audit.Event, error)
}

type Handler struct {
	reader Reader
	logger *slog.Logger
}

func New(reader Reader, logger *slog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// Register mounts the audit routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/user/{uid}", h.listByUser)
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "uid")

	events, err := h.reader.ListByUser(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"events": events,
	})
}
