package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	accountsbackend "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/external/backend"
	accountsapp "github.com/Apurer/go-gin-storefront/internal/domains/accounts/application"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogbackend "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/external/backend"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	notificationsobs "github.com/Apurer/go-gin-storefront/internal/domains/notifications/adapters/observability"
	notificationsapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	ordersbackend "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/external/backend"
	ordersmessaging "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/messaging"
	ordersobs "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	prefapp "github.com/Apurer/go-gin-storefront/internal/domains/preferences/application"
	sessionsmemory "github.com/Apurer/go-gin-storefront/internal/domains/sessions/adapters/memory"
	sessionspostgres "github.com/Apurer/go-gin-storefront/internal/domains/sessions/adapters/persistence/postgres"
	sessionsapp "github.com/Apurer/go-gin-storefront/internal/domains/sessions/application"
	sessionsports "github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	storagememory "github.com/Apurer/go-gin-storefront/internal/domains/storage/adapters/memory"
	storagepostgres "github.com/Apurer/go-gin-storefront/internal/domains/storage/adapters/persistence/postgres"
	storageports "github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/events"
	platformmetrics "github.com/Apurer/go-gin-storefront/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

const serviceName = "storefront-api"

// Run boots the storefront BFF with observability, session storage, backend gateways, and
// checkout workflows wired. It returns when ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectDatabase(ctx, cfg, logger)
	defer cleanupDB()
	sessionStore, storage := buildSessionStorage(db, logger)

	backend, err := backendclient.NewClient(cfg.BackendURL, nil)
	if err != nil {
		return fmt.Errorf("configure backend client: %w", err)
	}
	catalogService := catalogobs.New(
		catalogapp.NewService(catalogbackend.NewGateway(backend), cfg.AssetBaseURL),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	accountService := accountsapp.NewService(accountsbackend.NewGateway(backend))

	orderGateway := ordersbackend.NewGateway(backend)
	var submitter ordersports.OrderSubmitter = ordersworkflows.NewInlineSubmitter(orderGateway)
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, submitting orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		submitter = ordersworkflows.NewTemporalSubmitter(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	publisher := connectPublisher(cfg, logger)
	defer func() { _ = publisher.Close() }()
	orderService := ordersobs.New(
		ordersapp.NewService(orderGateway, submitter,
			ordersapp.WithLogger(logger),
			ordersapp.WithEventPublisher(ordersmessaging.NewPublisher(publisher)),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	registry := platformmetrics.NewRegistry()
	manager := sessionsapp.NewManager(sessionStore, storage,
		sessionsapp.WithLogger(logger),
		sessionsapp.WithTTL(cfg.SessionTTL),
		sessionsapp.WithIdleTimeout(cfg.SessionIdleTimeout),
		sessionsapp.WithActiveObserver(registry.SetActiveSessions),
		sessionsapp.WithWorkspaceBuilder(observedWorkspace(
			logger,
			instruments.Tracer("internal.cart.application"),
			instruments.Meter("internal.cart.application"),
			instruments.Meter("internal.notifications.application"),
		)),
	)

	responder := storefrontserver.NewResponder(logger)
	handlers := storefrontserver.ApiHandleFunctions{
		CartAPI:         storefrontserver.NewCartAPI(catalogService, responder),
		NotificationAPI: storefrontserver.NewNotificationAPI(responder),
		StreamAPI: storefrontserver.NewStreamAPI(manager,
			storefrontserver.WithStreamObserver(registry),
			storefrontserver.WithStreamLogger(logger),
		),
		PreferencesAPI: storefrontserver.NewPreferencesAPI(responder),
		CatalogAPI:     storefrontserver.NewCatalogAPI(catalogService, responder),
		OrderAPI:       storefrontserver.NewOrderAPI(orderService, responder),
		AuthAPI:        storefrontserver.NewAuthAPI(accountService, responder),
		AdminAPI:       storefrontserver.NewAdminAPI(catalogService, orderService, responder),
		OpsAPI:         storefrontserver.NewOpsAPI(registry.Handler(), healthChecks(db, temporalClient)),
	}
	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{
		Global:  []gin.HandlerFunc{otelgin.Middleware(serviceName), registry.Middleware()},
		Session: storefrontserver.SessionMiddleware(manager, storefrontserver.CookieConfig{Secure: cfg.CookieSecure}, responder),
	})

	go runSessionMaintenance(ctx, logger, manager, cfg.SessionPurgeInterval, cfg.SessionSweepInterval)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("storefront API shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory storage")
		return nil, func() {}
	}
	return platformpostgres.ConnectAndMigrate(ctx, logger, cfg.PostgresDSN, cfg.PostgresSchema)
}

func buildSessionStorage(db *gorm.DB, logger *slog.Logger) (sessionsports.SessionStore, storageports.Provider) {
	if db == nil {
		logger.Warn("session storage running in memory, carts will not survive restarts")
		return sessionsmemory.NewSessionStore(), storagememory.NewProvider()
	}
	logger.Info("session storage configured with postgres")
	return sessionspostgres.NewSessionStore(db), storagepostgres.NewProvider(db)
}

// observedWorkspace builds session stores wrapped in the logging and metrics decorators.
func observedWorkspace(logger *slog.Logger, cartTracer trace.Tracer, cartMeter, notificationsMeter metric.Meter) sessionsapp.WorkspaceBuilder {
	return func(ctx context.Context, sessionID string, storage storageports.LocalStorage) *sessionsapp.Workspace {
		sessionLogger := logger.With(slog.String("session.id", sessionID))
		return &sessionsapp.Workspace{
			ID:      sessionID,
			Storage: storage,
			Cart: cartobs.New(
				cartapp.NewStore(ctx, storage, cartapp.WithLogger(sessionLogger)),
				cartobs.WithLogger(sessionLogger),
				cartobs.WithTracer(cartTracer),
				cartobs.WithMeter(cartMeter),
			),
			Notifications: notificationsobs.New(
				notificationsapp.NewQueue(),
				notificationsobs.WithLogger(sessionLogger),
				notificationsobs.WithMeter(notificationsMeter),
			),
			Preferences: prefapp.New(storage),
		}
	}
}

func runSessionMaintenance(ctx context.Context, logger *slog.Logger, manager *sessionsapp.Manager, purgeEvery, sweepEvery time.Duration) {
	purge := time.NewTicker(purgeEvery)
	defer purge.Stop()
	sweep := time.NewTicker(sweepEvery)
	defer sweep.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			if n := manager.Sweep(); n > 0 {
				logger.Debug("idle workspaces released", slog.Int("count", n))
			}
		case <-purge.C:
			if _, err := manager.Purge(ctx); err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
			}
		}
	}
}

func connectPublisher(cfg Config, logger *slog.Logger) events.Publisher {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, order events will be dropped")
		return events.NoopPublisher{Logger: logger}
	}
	publisher, err := events.Dial(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		logger.Warn("failed to connect to rabbitmq, order events will be dropped", slog.String("error", err.Error()))
		return events.NoopPublisher{Logger: logger}
	}
	logger.Info("order events publishing to rabbitmq", slog.String("exchange", cfg.EventsExchange))
	return publisher
}

func healthChecks(db *gorm.DB, temporalClient client.Client) map[string]storefrontserver.HealthCheck {
	checks := map[string]storefrontserver.HealthCheck{}
	if db != nil {
		checks["postgres"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if temporalClient != nil {
		checks["temporal"] = func(ctx context.Context) error {
			_, err := temporalClient.CheckHealth(ctx, &client.CheckHealthRequest{})
			return err
		}
	}
	return checks
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
