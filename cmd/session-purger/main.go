package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	sessionspostgres "github.com/Apurer/go-gin-storefront/internal/domains/sessions/adapters/persistence/postgres"
	sessionsapp "github.com/Apurer/go-gin-storefront/internal/domains/sessions/application"
	storagepostgres "github.com/Apurer/go-gin-storefront/internal/domains/storage/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "session purge failed: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		dsn      string
		schema   string
		timeout  time.Duration
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "session-purger",
		Short: "Delete expired browser sessions and their stored cart and preferences",
		Long: `session-purger removes every browser session whose sliding lifetime has ended,
together with the local storage rows (cart, language) kept for it.

Run it from cron when the API runs with periodic purging disabled or in several replicas.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return purge(ctx, platformobservability.NewLogger(cmd.OutOrStdout(), logLevel), dsn, schema)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL DSN (defaults to POSTGRES_DSN)")
	cmd.Flags().StringVar(&schema, "schema", os.Getenv("POSTGRES_SCHEMA"), "PostgreSQL schema (defaults to POSTGRES_SCHEMA)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall deadline for the purge")
	cmd.Flags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "debug, info, warn, or error")
	return cmd
}

func purge(ctx context.Context, logger *slog.Logger, dsn, schema string) error {
	if strings.TrimSpace(dsn) == "" {
		return errors.New("no DSN given; set --dsn or POSTGRES_DSN")
	}
	db, cleanup := platformpostgres.ConnectAndMigrate(ctx, logger, dsn, schema)
	defer cleanup()
	if db == nil {
		return errors.New("postgres unavailable")
	}

	manager := sessionsapp.NewManager(
		sessionspostgres.NewSessionStore(db),
		storagepostgres.NewProvider(db),
		sessionsapp.WithLogger(logger),
	)
	purged, err := manager.Purge(ctx)
	if err != nil {
		return err
	}
	logger.Info("session purge completed", slog.Int("purged", purged))
	return nil
}
