// Package handler exposes the lender endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/internal/domain"
	"trustbridge/internal/lender"
	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// Service is the lender surface consumed by this handler.
type Service interface {
	Register(ctx context.Context, l domain.Lender) (domain.Lender, error)
	PostOffer(ctx context.Context, lenderID string, input lender.OfferInput) (domain.LenderOffer, error)
	Offers(ctx context.Context, lenderID string) ([]domain.LenderOffer, error)
	Borrowers(ctx context.Context) ([]domain.Borrower, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the lender routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/lender/register", h.register)
	r.Post("/lender/offer", h.postOffer)
	r.Get("/lender/offers/{uid}", h.offers)
	r.Get("/lender/borrowers", h.borrowers)
}

type registerBody struct {
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Wallet string `json:"wallet"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[registerBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	registered, err := h.service.Register(ctx, domain.Lender{
		UserID: body.UID,
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Wallet: body.Wallet,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"lender": registered,
	})
}

type offerBody struct {
	UID          string  `json:"uid"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Wallet       string  `json:"wallet"`
}

func (h *Handler) postOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[offerBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	offer, err := h.service.PostOffer(ctx, body.UID, lender.OfferInput{
		Amount:       body.Amount,
		InterestRate: body.InterestRate,
		Wallet:       body.Wallet,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"offer":  offer,
	})
}

func (h *Handler) offers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offers, err := h.service.Offers(ctx, chi.URLParam(r, "uid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if offers == nil {
		offers = []domain.LenderOffer{}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"offers": offers,
	})
}

func (h *Handler) borrowers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	borrowers, err := h.service.Borrowers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "borrower listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if borrowers == nil {
		borrowers = []domain.Borrower{}
	}

	httputil.WriteJSON(w, http.StatusOK, borrowers)
}
