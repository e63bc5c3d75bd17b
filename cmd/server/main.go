// Command server runs the TrustBridge backend: trust scoring, face
// verification, loans, lender offers, OTP, and the audit trail behind one
// HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"trustbridge/internal/audit"
	audithandler "trustbridge/internal/audit/handler"
	"trustbridge/internal/facematch"
	facematchhandler "trustbridge/internal/facematch/handler"
	facematchmetrics "trustbridge/internal/facematch/metrics"
	"trustbridge/internal/govregistry"
	"trustbridge/internal/jwtauth"
	authhandler "trustbridge/internal/jwtauth/handler"
	"trustbridge/internal/lender"
	lenderhandler "trustbridge/internal/lender/handler"
	"trustbridge/internal/loan"
	loanhandler "trustbridge/internal/loan/handler"
	"trustbridge/internal/otp"
	otphandler "trustbridge/internal/otp/handler"
	"trustbridge/internal/platform/config"
	"trustbridge/internal/platform/httpserver"
	"trustbridge/internal/platform/logger"
	"trustbridge/internal/platform/metrics"
	"trustbridge/internal/platform/postgres"
	redisplatform "trustbridge/internal/platform/redis"
	"trustbridge/internal/profile"
	profilehandler "trustbridge/internal/profile/handler"
	"trustbridge/internal/trustscore"
	trustscorehandler "trustbridge/internal/trustscore/handler"
	trustscoremetrics "trustbridge/internal/trustscore/metrics"
	httptransport "trustbridge/internal/transport/http"
	"trustbridge/internal/vision"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		scoreStore   trustscore.Store
		govStore     govregistry.Store
		loanStore    loan.Store
		escrowStore  loan.EscrowStore
		profileStore profile.Store
		lenderStore  lender.Store
		otpStore     otp.Store
	)
	if db != nil {
		scoreStore = trustscore.NewPostgresStore(db)
		govStore = govregistry.NewPostgresStore(db)
		loanStore = loan.NewPostgresStore(db)
		escrowStore = loan.NewPostgresEscrowStore(db)
		profileStore = profile.NewPostgresStore(db)
		lenderStore = lender.NewPostgresStore(db)
	} else {
		log.Warn("POSTGRES_URL not set, using in-memory stores")
		scoreStore = trustscore.NewInMemoryStore()
		govStore = govregistry.NewInMemoryStore()
		loanStore = loan.NewInMemoryStore()
		escrowStore = loan.NewInMemoryEscrowStore()
		profileStore = profile.NewInMemoryStore()
		lenderStore = lender.NewInMemoryStore()
	}
	if redisClient != nil {
		otpStore = otp.NewRedisStore(redisClient.Client)
	} else {
		log.Warn("REDIS_URL not set, using in-memory OTP store")
		otpStore = otp.NewInMemoryStore()
	}

	var (
		auditSink   audit.Sink
		auditReader audithandler.Reader
	)
	if db != nil {
		pgAudit := audit.NewPostgresStore(db)
		auditSink, auditReader = pgAudit, pgAudit
	} else {
		memAudit := audit.NewInMemoryStore()
		auditSink, auditReader = memAudit, memAudit
	}
	sinks := []audit.Sink{auditSink}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return fmt.Errorf("audit kafka sink: %w", err)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	recorder := audit.NewRecorder(log, sinks...)
	go func() { _ = recorder.Run(ctx) }()

	appMetrics := metrics.New()
	judge := vision.NewGeminiClient(cfg.Gemini)
	tokens := jwtauth.NewService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)

	trustService := trustscore.NewService(judge, govStore, scoreStore, cfg.Scoring,
		trustscore.WithLogger(log),
		trustscore.WithMetrics(trustscoremetrics.New(prometheus.DefaultRegisterer)),
		trustscore.WithAuditPublisher(recorder),
	)
	faceService := facematch.NewService(judge, cfg.Scoring.FaceConfidenceThreshold,
		facematch.WithLogger(log),
		facematch.WithMetrics(facematchmetrics.New(prometheus.DefaultRegisterer)),
		facematch.WithAuditPublisher(recorder),
	)
	loanService := loan.NewService(loanStore, escrowStore, cfg.Loan,
		loan.WithLogger(log),
		loan.WithAuditPublisher(recorder),
	)
	lenderService := lender.NewService(lenderStore, profileStore, scoreStore,
		lender.WithLogger(log),
		lender.WithAuditPublisher(recorder),
	)
	otpService := otp.NewService(otpStore, otp.NewSMTPSender(cfg.SMTP), cfg.OTP.TTL,
		otp.WithLogger(log),
		otp.WithAuditPublisher(recorder),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        appMetrics,
		TokenValidator: tokens,
		RequestTimeout: cfg.HTTP.RequestTimeout,

		Auth:       authhandler.New(tokens, cfg.Auth.TokenTTL, log),
		OTP:        otphandler.New(otpService, log),
		TrustScore: trustscorehandler.New(trustService, profileStore, log),
		FaceMatch:  facematchhandler.New(faceService, log),
		Loan:       loanhandler.New(loanService, log),
		Lender:     lenderhandler.New(lenderService, log),
		Profile:    profilehandler.New(profileStore, log),
		Audit:      audithandler.New(auditReader, log),
	})

	srv := httpserver.New(cfg.HTTP.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
