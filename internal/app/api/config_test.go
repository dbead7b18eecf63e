package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "POSTGRES_SCHEMA", "BACKEND_URL", "ASSET_BASE_URL",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "RABBITMQ_URL", "EVENTS_EXCHANGE",
		"COOKIE_SECURE", "SESSION_TTL_HOURS", "SESSION_IDLE_MINUTES", "SESSION_PURGE_INTERVAL_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, defaultBackendURL, cfg.BackendURL)
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Equal(t, "storefront.events", cfg.EventsExchange)
	assert.False(t, cfg.TemporalDisabled)
	assert.False(t, cfg.CookieSecure)
	assert.Zero(t, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.SessionPurgeInterval)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
}

func TestLoadConfig_ReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "https://shop.example/api")
	t.Setenv("TEMPORAL_DISABLED", "Yes")
	t.Setenv("COOKIE_SECURE", "1")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("SESSION_IDLE_MINUTES", "15")
	t.Setenv("SESSION_PURGE_INTERVAL_MINUTES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "https://shop.example/api", cfg.BackendURL)
	assert.True(t, cfg.TemporalDisabled)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionPurgeInterval)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SESSION_TTL_HOURS":              "0",
		"SESSION_IDLE_MINUTES":           "soon",
		"SESSION_PURGE_INTERVAL_MINUTES": "-3",
		"PORT":                           "http",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
