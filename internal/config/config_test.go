package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INR", cfg.BookingCurrency)
	assert.Equal(t, 24*time.Hour, cfg.RefundLeadTime)
	assert.True(t, decimal.NewFromInt(80).Equal(cfg.RefundPercent))
	assert.Equal(t, time.UTC, cfg.BookingLocation)
	assert.Equal(t, 90*24*time.Hour, cfg.EventLogRetention)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BOOKING_CURRENCY", "usd")
	t.Setenv("BOOKING_TIMEZONE", "Asia/Kolkata")
	t.Setenv("REFUND_LEAD_TIME", "48h")
	t.Setenv("REFUND_PERCENT", "50.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "USD", cfg.BookingCurrency)
	assert.Equal(t, "Asia/Kolkata", cfg.BookingLocation.String())
	assert.Equal(t, 48*time.Hour, cfg.RefundLeadTime)
	assert.Equal(t, "50.5", cfg.RefundPercent.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad duration", "JWT_ACCESS_TTL", "soon"},
		{"bad timezone", "BOOKING_TIMEZONE", "Mars/Olympus"},
		{"percent above 100", "REFUND_PERCENT", "120"},
		{"percent not a number", "REFUND_PERCENT", "most"},
		{"port not numeric", "PORT", "http"},
		{"currency length", "BOOKING_CURRENCY", "RUPEE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
}
