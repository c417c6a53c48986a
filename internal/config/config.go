package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	defaultPort              = "8080"
	defaultDatabaseURL       = "studiobook.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTAccessTTL      = "15m"
	defaultLogLevel          = "info"
	defaultCurrency          = "INR"
	defaultTimezone          = "UTC"
	defaultRefundLeadTime    = "24h"
	defaultRefundPercent     = "80"
	defaultBookingLockTTL    = "10s"
	defaultEventLogRetention = "2160h"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret    string
	JWTAccessTTL time.Duration

	LogLevel string
	LogFile  string

	BookingCurrency string
	BookingLocation *time.Location
	RefundLeadTime  time.Duration
	RefundPercent   decimal.Decimal
	BookingLockTTL  time.Duration

	CORSAllowedOrigins []string
	EventLogRetention  time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))
	cfg.BookingCurrency = strings.ToUpper(strings.TrimSpace(getEnv("BOOKING_CURRENCY", defaultCurrency)))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefundLeadTime, err = parseDurationEnv("REFUND_LEAD_TIME", defaultRefundLeadTime); err != nil {
		return nil, err
	}
	if cfg.BookingLockTTL, err = parseDurationEnv("BOOKING_LOCK_TTL", defaultBookingLockTTL); err != nil {
		return nil, err
	}
	if cfg.EventLogRetention, err = parseDurationEnv("EVENT_LOG_RETENTION", defaultEventLogRetention); err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("BOOKING_TIMEZONE", defaultTimezone))
	if cfg.BookingLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE value %q: %w", tz, err)
	}

	pct := strings.TrimSpace(getEnv("REFUND_PERCENT", defaultRefundPercent))
	if cfg.RefundPercent, err = decimal.NewFromString(pct); err != nil {
		return nil, fmt.Errorf("invalid REFUND_PERCENT value %q: %w", pct, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("PORT must be numeric")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefundLeadTime < 0 {
		return fmt.Errorf("REFUND_LEAD_TIME must be >= 0")
	}
	if cfg.RefundPercent.IsNegative() || cfg.RefundPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("REFUND_PERCENT must be between 0 and 100")
	}
	if cfg.BookingLockTTL <= 0 {
		return fmt.Errorf("BOOKING_LOCK_TTL must be > 0")
	}
	if cfg.EventLogRetention <= 0 {
		return fmt.Errorf("EVENT_LOG_RETENTION must be > 0")
	}
	if len(cfg.BookingCurrency) != 3 {
		return fmt.Errorf("BOOKING_CURRENCY must be a 3-letter code")
	}

	if IsProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
