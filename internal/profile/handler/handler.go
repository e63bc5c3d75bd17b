// Package handler exposes the user profile endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/internal/domain"
	"trustbridge/internal/profile"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// Store is the profile persistence consumed by this handler.
type Store interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Merge(ctx context.Context, userID string, update domain.Profile) (domain.Profile, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts the profile routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/user/profile/{uid}", h.get)
	r.Post("/user/profile/{uid}", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.store.Get(ctx, chi.URLParam(r, "uid"))
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "user not found"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read profile"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	update, ok := httputil.DecodeAndPrepare[domain.Profile](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if _, err := h.store.Merge(ctx, chi.URLParam(r, "uid"), update); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "profile updated"})
}
