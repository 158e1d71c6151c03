package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/amirhossein-jamali/league-wallet/internal/app"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/validation"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/scheduler"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := cfg.Validate()
	if err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	if len(warnings) > 0 {
		log.Printf("Warning: potential security issues in production configuration: %v", warnings)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	level, err := coreport.ParseLogLevel(cfg.Logger.Level)
	if err != nil {
		log.Printf("Warning: %v, using info", err)
	}
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, level)
	defer func() { _ = appLogger.Flush() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	league, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to start league services", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if created, err := league.SeedAdmins(ctx); err != nil {
		appLogger.Error("Failed to create admin accounts", map[string]any{"error": err.Error()})
	} else if created > 0 {
		appLogger.Info("Admin accounts created", map[string]any{"count": created})
	}

	if _, err := league.Matches.EnsureFeed(ctx); err != nil {
		appLogger.Error("Failed to generate the initial match feed", map[string]any{"error": err.Error()})
	}

	var feed *scheduler.FeedScheduler
	if cfg.Feed.Enabled {
		feed, err = scheduler.NewFeedScheduler(league.Matches, cfg.Feed.DailyAt, league.TimeProvider.Location(), appLogger)
		if err != nil {
			appLogger.Error("Failed to create feed scheduler", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		feed.Start()
	}

	if err := validation.Register(); err != nil {
		appLogger.Error("Failed to register request validations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	router := gin.New()

	var observer middleware.HTTPObserver = metrics.NoopMetrics{}
	var gatherer prometheus.Gatherer
	if league.Metrics != nil {
		observer = league.Metrics
		gatherer = league.Registry
	}
	routes.SetupMiddlewares(router, appLogger, observer)
	routes.SetupOperational(router, gatherer, cfg.Metrics.Path)
	routes.SetupRoutes(router, routes.Handlers{
		Account: handler.NewAccountHandler(league.Accounts, appLogger),
		Wallet:  handler.NewWalletHandler(league.Wallets, appLogger),
		Match:   handler.NewMatchHandler(league.Matches, league.Registrations, league.Advice, appLogger),
		Admin:   handler.NewAdminHandler(league.Moderation, league.Accounts, league.Registrations, league.Matches, appLogger),
	}, league.Tokens)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           routes.WithCORS(router, cfg.Server.CORSOrigins),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":  server.Addr,
			"env":   cfg.Environment,
			"store": cfg.Store.Driver,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if feed != nil {
		if err := feed.Shutdown(); err != nil {
			appLogger.Warn("Feed scheduler did not stop cleanly", map[string]any{"error": err.Error()})
		}
	}

	// In-flight updates finish before the store closes
	if err := league.Close(); err != nil {
		appLogger.Error("Failed to close league services", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}
