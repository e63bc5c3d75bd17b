// Package handler exposes the auth endpoints.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// TokenService mints and validates bearer tokens.
type TokenService interface {
	GenerateAccessToken(userID string, expiresIn time.Duration) (string, error)
	ValidateToken(tokenString string) (userID string, err error)
}

type Handler struct {
	tokens   TokenService
	tokenTTL time.Duration
	logger   *slog.Logger
}

func New(tokens TokenService, tokenTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{tokens: tokens, tokenTTL: tokenTTL, logger: logger}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.issue)
	r.Post("/auth/verify", h.verify)
}

type issueBody struct {
	UID string `json:"uid"`
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[issueBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if body.UID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "uid required"))
		return
	}

	token, err := h.tokens.GenerateAccessToken(body.UID, h.tokenTTL)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int(h.tokenTTL.Seconds()),
	})
}

type verifyBody struct {
	Token string `json:"token"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[verifyBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	userID, err := h.tokens.ValidateToken(body.Token)
	if err != nil {
		h.logger.WarnContext(ctx, "token verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"uid":    userID,
	})
}
