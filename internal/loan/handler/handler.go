// Package handler exposes the loan lifecycle endpoints.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustbridge/internal/domain"
	"trustbridge/internal/loan"
	"trustbridge/pkg/platform/httputil"
	"trustbridge/pkg/requestcontext"
)

// Service is the loan surface consumed by this handler.
type Service interface {
	Request(ctx context.Context, userID string, input loan.RequestInput) (domain.LoanRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.LoanRecord, error)
	Status(ctx context.Context, userID, loanID string) (loan.StatusResult, error)
	Decide(ctx context.Context, userID, loanID, decision string) (domain.LoanStatus, error)
	Settle(ctx context.Context, userID, loanID string) error
	AddEscrowDocument(ctx context.Context, userID, loanID, name, url string) (domain.EscrowDocument, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the loan routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/loan/request", h.request)
	r.Get("/loan/user/{uid}", h.listByUser)
	r.Get("/loan/status/{uid}/{loanID}", h.status)
	r.Post("/loan/decision/{uid}/{loanID}", h.decide)
	r.Post("/loan/settle/{uid}/{loanID}", h.settle)
	r.Post("/loan/escrow/{uid}/{loanID}", h.addEscrowDocument)
}

type requestBody struct {
	UID     string  `json:"uid"`
	Amount  float64 `json:"amount"`
	Purpose string  `json:"purpose"`
	Wallet  string  `json:"wallet"`
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[requestBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if body.UID == "" {
		body.UID = requestcontext.UserID(ctx)
	}

	record, err := h.service.Request(ctx, body.UID, loan.RequestInput{
		Amount:  body.Amount,
		Purpose: body.Purpose,
		Wallet:  body.Wallet,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "loan request submitted",
		"loan_id": record.ID,
	})
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.ListByUser(ctx, chi.URLParam(r, "uid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []domain.LoanRecord{}
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Status(ctx, chi.URLParam(r, "uid"), chi.URLParam(r, "loanID"))
	if err != nil {
		h.logger.WarnContext(ctx, "loan status query failed",
			"request_id", requestcontext.RequestID(ctx),
			"loan_id", chi.URLParam(r, "loanID"),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

type decisionBody struct {
	Decision string `json:"decision"`
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loanID := chi.URLParam(r, "loanID")

	body, ok := httputil.DecodeAndPrepare[decisionBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	status, err := h.service.Decide(ctx, chi.URLParam(r, "uid"), loanID, body.Decision)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Loan %s has been %s", loanID, status),
	})
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.Settle(ctx, chi.URLParam(r, "uid"), chi.URLParam(r, "loanID")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "loan settled"})
}

type escrowBody struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (h *Handler) addEscrowDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := httputil.DecodeAndPrepare[escrowBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	doc, err := h.service.AddEscrowDocument(ctx, chi.URLParam(r, "uid"), chi.URLParam(r, "loanID"), body.Name, body.URL)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, doc)
}
