package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CHECKOUT_PAYMENT_DELAY", "")
	t.Setenv("DB_DRIVER", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "books", cfg.ESIndex)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CHECKOUT_PAYMENT_DELAY", "10ms")
	t.Setenv("CSRF_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Millisecond, cfg.PaymentDelay)
	assert.False(t, cfg.CSRFEnabled)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		ServerPort:       8080,
		DatabaseURL:      "postgres://localhost/biblion",
		JWTAccessSecret:  []byte("a"),
		JWTRefreshSecret: []byte("r"),
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
	}
	require.NoError(t, cfg.Validate())

	missing := cfg
	missing.JWTAccessSecret = nil
	assert.ErrorContains(t, missing.Validate(), "JWT_SECRET")

	badTTL := cfg
	badTTL.RefreshTTL = time.Second
	assert.Error(t, badTTL.Validate())
}
