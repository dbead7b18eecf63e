package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/platform/events"
)

const (
	defaultBackendURL    = "http://localhost:5000/api"
	defaultPurgeInterval = time.Hour
	defaultSweepInterval = time.Minute
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	PostgresSchema    string
	BackendURL        string
	AssetBaseURL      string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	RabbitMQURL       string
	EventsExchange    string
	CookieSecure      bool

	SessionTTL           time.Duration
	SessionIdleTimeout   time.Duration
	SessionPurgeInterval time.Duration
	SessionSweepInterval time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		PostgresSchema:       strings.TrimSpace(os.Getenv("POSTGRES_SCHEMA")),
		BackendURL:           envDefault("BACKEND_URL", defaultBackendURL),
		AssetBaseURL:         strings.TrimSpace(os.Getenv("ASSET_BASE_URL")),
		TemporalAddress:      envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:    envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:     isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		RabbitMQURL:          strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		EventsExchange:       envDefault("EVENTS_EXCHANGE", events.DefaultExchange),
		CookieSecure:         isTruthy(os.Getenv("COOKIE_SECURE")),
		SessionPurgeInterval: defaultPurgeInterval,
		SessionSweepInterval: defaultSweepInterval,
	}
	var err error
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL_HOURS", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTimeout, err = positiveDuration("SESSION_IDLE_MINUTES", time.Minute); err != nil {
		return Config{}, err
	}
	purge, err := positiveDuration("SESSION_PURGE_INTERVAL_MINUTES", time.Minute)
	if err != nil {
		return Config{}, err
	}
	if purge > 0 {
		cfg.SessionPurgeInterval = purge
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// positiveDuration parses key as a positive integer count of unit. Unset yields zero so callers
// keep their own default.
func positiveDuration(key string, unit time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(n) * unit, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
