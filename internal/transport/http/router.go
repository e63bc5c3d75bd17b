// Package httptransport assembles the HTTP surface: middleware chain, route
// groups, and operational endpoints. Handlers stay thin and live next to
// their modules.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trustbridge/internal/platform/metrics"
	"trustbridge/internal/platform/middleware"
	"trustbridge/pkg/platform/httputil"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries everything the router needs. All handler fields are
// required; Metrics may be nil in tests.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	TokenValidator middleware.TokenValidator
	RequestTimeout time.Duration

	Auth       Registrar
	OTP        Registrar
	TrustScore Registrar
	FaceMatch  Registrar
	Loan       Registrar
	Lender     Registrar
	Profile    Registrar
	Audit      Registrar
}

// NewRouter wires the full route tree.
//
// Route groups by policy:
//   - open: health, metrics, auth, OTP
//   - bearer + JSON body: loan, lender, profile, audit
//   - bearer + multipart: document and face uploads
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "TrustBridge Backend Running",
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(g chi.Router) {
		g.Use(middleware.ContentTypeJSON)
		cfg.Auth.Register(g)
		cfg.OTP.Register(g)
	})

	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth(cfg.TokenValidator, cfg.Logger))
		g.Use(middleware.ContentTypeJSON)
		cfg.Loan.Register(g)
		cfg.Lender.Register(g)
		cfg.Profile.Register(g)
		cfg.Audit.Register(g)
	})

	// Upload routes carry multipart bodies and must not sit behind the JSON
	// content-type guard.
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth(cfg.TokenValidator, cfg.Logger))
		cfg.TrustScore.Register(g)
		cfg.FaceMatch.Register(g)
	})

	return r
}
