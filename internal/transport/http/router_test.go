package httptransport

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustbridge/internal/jwtauth"
	"trustbridge/internal/platform/logger"
	"trustbridge/pkg/requestcontext"
	"trustbridge/pkg/testutil"
)

// routeStub mounts a single echo route so group policy can be asserted
// without real services.
type routeStub struct {
	method, path string
}

func (s routeStub) Register(r chi.Router) {
	r.MethodFunc(s.method, s.path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Auth-User", requestcontext.UserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	tokens := jwtauth.NewService("test-signing-key", "trustbridge", "trustbridge-api")
	token, err := tokens.GenerateAccessToken("user-1", time.Hour)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Logger:         logger.New(),
		TokenValidator: tokens,
		RequestTimeout: 5 * time.Second,

		Auth:       routeStub{http.MethodPost, "/auth/verify"},
		OTP:        routeStub{http.MethodPost, "/otp/send"},
		TrustScore: routeStub{http.MethodPost, "/vision/identity"},
		FaceMatch:  routeStub{http.MethodPost, "/face/verify"},
		Loan:       routeStub{http.MethodPost, "/loan/request"},
		Lender:     routeStub{http.MethodGet, "/lender/borrowers"},
		Profile:    routeStub{http.MethodGet, "/user/profile/{uid}"},
		Audit:      routeStub{http.MethodGet, "/audit/user/{uid}"},
	})
	return router, token
}

func TestRouterOperationalEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "TrustBridge Backend Running")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router, token := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/loan/request", map[string]any{}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/loan/request", map[string]any{})
	req.Header.Set("Authorization", "Bearer "+token)
	rr = testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-1", rr.Header().Get("X-Auth-User"))
}

func TestRouterRejectsInvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/loan/request", map[string]any{})
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouterJSONGroupRejectsOtherContentTypes(t *testing.T) {
	router, token := newTestRouter(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/loan/request", "{}")
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestRouterUploadRoutesAcceptMultipart(t *testing.T) {
	router, token := newTestRouter(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/vision/identity", "--x--")
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterOpenRoutesSkipAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/otp/send", map[string]any{"email": "a@b.c"}))
	assert.Equal(t, http.StatusOK, rr.Code)
}
