package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ArgyPorgy/stx-names-indexer/internal/adapter"
	"github.com/ArgyPorgy/stx-names-indexer/internal/api/middleware"
	"github.com/ArgyPorgy/stx-names-indexer/internal/api/rest"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
	"github.com/ArgyPorgy/stx-names-indexer/internal/messaging"
	"github.com/ArgyPorgy/stx-names-indexer/internal/reconcile"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug         bool
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	JWTPublicKey  string
	APIKeys       []string
	WebhookSecret string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	engine     reconcile.Engine
	publisher  messaging.Publisher
	clock      adapter.Clock
	httpServer *http.Server
}

// New creates a new API server. The publisher may be nil when no broker is
// configured.
func New(cfg Config, st store.Store, engine reconcile.Engine, publisher messaging.Publisher, clock adapter.Clock) *Server {
	return &Server{
		config:    cfg,
		store:     st,
		engine:    engine,
		publisher: publisher,
		clock:     clock,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Create REST handler
	restHandler := rest.NewHandler(s.store, s.engine, s.publisher, s.clock)

	// Setup REST routes
	authCfg := middleware.AuthConfig{
		JWTPublicKey: s.config.JWTPublicKey,
		APIKeys:      s.config.APIKeys,
	}
	rest.SetupRoutes(router, restHandler, authCfg, s.config.WebhookSecret)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
