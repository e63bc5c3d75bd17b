package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustbridge/internal/loan"
	"trustbridge/internal/platform/config"
	"trustbridge/internal/platform/logger"
	"trustbridge/pkg/testutil"
)

var requestDate = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func newTestHandler() http.Handler {
	service := loan.NewService(
		loan.NewInMemoryStore(),
		loan.NewInMemoryEscrowStore(),
		config.LoanConfig{TermDays: 30, DailyPenaltyRate: 0.002},
	)

	r := chi.NewRouter()
	New(service, logger.New()).Register(r)
	return r
}

type requestResponse struct {
	Status string `json:"status"`
	LoanID string `json:"loan_id"`
}

func TestRequestFallsBackToAuthenticatedUser(t *testing.T) {
	router := newTestHandler()

	// No uid in the body; the handler must take it from the request context.
	req := testutil.NewJSONRequest(t, http.MethodPost, "/loan/request", map[string]any{
		"amount":  1000.0,
		"purpose": "inventory",
		"wallet":  "0xabc",
	})
	req = testutil.WithUserID(req, "borrower-1")
	req = testutil.WithRequestTime(req, requestDate)

	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	created := testutil.UnmarshalResponse[requestResponse](t, rr)
	assert.Equal(t, "loan request submitted", created.Status)
	require.NotEmpty(t, created.LoanID)

	statusReq := testutil.NewRequest(t, http.MethodGet, "/loan/status/borrower-1/"+created.LoanID)
	statusReq = testutil.WithRequestTime(statusReq, requestDate)

	rr = testutil.DoRequest(router, statusReq)
	require.Equal(t, http.StatusOK, rr.Code)

	status := testutil.UnmarshalResponse[loan.StatusResult](t, rr)
	assert.Equal(t, 1000.0, status.TotalDue)
	assert.Equal(t, "2024-01-01", status.IssueDate)
	assert.Equal(t, "2024-01-31", status.DueDate)
	assert.Equal(t, "2024-01-01", status.CurrentDate)
}

func TestRequestRejectsMissingFields(t *testing.T) {
	router := newTestHandler()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/loan/request", map[string]any{
		"amount": 1000.0,
	})
	req = testutil.WithUserID(req, "borrower-1")

	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, "bad_request", body["error"])
}

func TestStatusUnknownLoan(t *testing.T) {
	router := newTestHandler()

	req := testutil.NewRequest(t, http.MethodGet, "/loan/status/borrower-1/no-such-loan")
	req = testutil.WithRequestTime(req, requestDate)

	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
