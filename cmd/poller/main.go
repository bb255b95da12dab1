package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArgyPorgy/stx-names-indexer/internal/adapter"
	"github.com/ArgyPorgy/stx-names-indexer/internal/config"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
	"github.com/ArgyPorgy/stx-names-indexer/internal/messaging"
	"github.com/ArgyPorgy/stx-names-indexer/internal/poller"
	"github.com/ArgyPorgy/stx-names-indexer/internal/providers/jetstream"
	"github.com/ArgyPorgy/stx-names-indexer/internal/providers/stacks"
	"github.com/ArgyPorgy/stx-names-indexer/internal/ratelimit"
	"github.com/ArgyPorgy/stx-names-indexer/internal/reconcile"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadPollerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "poller",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting username indexer poller")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Run migrations
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	// Initialize store and reconciliation engine
	dataStore := store.NewPGStore(db)
	engine := reconcile.NewEngine(dataStore)

	// Connect to NATS when configured
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: "stx-names-indexer-poller",
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, applied events will not be published")
	}

	// Create the rate-limiting proxy for Hiro API requests
	proxy, err := ratelimit.NewProxy(cfg.RateLimiter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limit proxy", zap.Error(err))
	}
	defer func() {
		if err := proxy.Close(); err != nil {
			logger.Warn("Failed to close rate limit proxy", zap.Error(err))
		}
	}()

	// Create the Hiro API client and the poller
	httpClient := adapter.NewHTTPClient(cfg.Poller.HTTPTimeout)
	stacksClient := stacks.NewRateLimitedClient(stacks.NewClient(cfg.Stacks.APIURL, httpClient), proxy)

	p := poller.NewPoller(
		poller.Config{
			Contract: cfg.Stacks.Contract,
			Interval: cfg.Poller.Interval,
			PageSize: cfg.Poller.PageSize,
		},
		stacksClient,
		engine,
		dataStore,
		publisher,
		adapter.NewClock(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := p.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the poller
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "poller"))
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := p.Stop(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Poller forced to shutdown", zap.Error(err))
	}
	cancel()

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Poller stopped")
}
