package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.PaymentLinkFallback)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	t.Setenv("PAYMENT_LINKS", "headshots:https://pay.example/h,classic:https://pay.example/c")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "https://pay.example/h", cfg.PaymentLinks["headshots"])
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
