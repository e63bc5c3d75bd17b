// Package config loads service configuration from the environment so main
// stays lean. Each section maps to one infrastructure or policy concern.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Gemini   GeminiConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Scoring  ScoringConfig
	Loan     LoanConfig
	OTP      OTPConfig
}

// HTTPConfig captures HTTP server level configuration.
type HTTPConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// PostgresConfig holds the connection settings for the primary store.
// Empty URL means in-memory stores are used instead.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds the connection settings for the OTP store.
// Empty URL means the in-memory OTP store is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the audit publisher settings. Empty brokers disable
// Kafka publishing (events still reach the local audit store).
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// GeminiConfig configures the document/face AI adapter.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// SMTPConfig configures outbound OTP mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// AuthConfig configures JWT issuance and validation for user-facing
// endpoints.
type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
	TokenTTL      time.Duration
}

// ScoringConfig carries the trust-score policy knobs. Defaults match the
// documented policy; override only for test and demo environments.
type ScoringConfig struct {
	// BypassPAN short-circuits government verification for demo accounts.
	// This is an operational override, not a security boundary.
	BypassPAN               string
	FaceConfidenceThreshold int
	FinancialFallbackScore  int
}

// LoanConfig carries loan accounting policy.
type LoanConfig struct {
	TermDays         int
	DailyPenaltyRate float64
}

// OTPConfig carries one-time-code policy.
type OTPConfig struct {
	TTL time.Duration
}

// FromEnv builds the configuration from environment variables, applying
// development defaults for anything unset.
func FromEnv() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            getEnv("TRUSTBRIDGE_ADDR", ":8080"),
			RequestTimeout:  getDuration("TRUSTBRIDGE_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("TRUSTBRIDGE_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			URL:          os.Getenv("POSTGRES_URL"),
			MaxOpenConns: getInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "trustbridge.audit"),
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Timeout: getDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
		Auth: AuthConfig{
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:        getEnv("JWT_ISSUER", "trustbridge"),
			Audience:      getEnv("JWT_AUDIENCE", "trustbridge-api"),
			TokenTTL:      getDuration("JWT_TTL", 24*time.Hour),
		},
		Scoring: ScoringConfig{
			BypassPAN:               getEnv("SCORING_BYPASS_PAN", "EMPPG7988Q"),
			FaceConfidenceThreshold: getInt("SCORING_FACE_CONFIDENCE_THRESHOLD", 70),
			FinancialFallbackScore:  getInt("SCORING_FINANCIAL_FALLBACK", 5),
		},
		Loan: LoanConfig{
			TermDays:         getInt("LOAN_TERM_DAYS", 30),
			DailyPenaltyRate: getFloat("LOAN_DAILY_PENALTY_RATE", 0.002),
		},
		OTP: OTPConfig{
			TTL: getDuration("OTP_TTL", 5*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if part := s[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
