package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/fundledger/internal/adapter/http"
	"github.com/iho/fundledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/fundledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fundledger/internal/adapter/repository/redis"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/config"
	"github.com/iho/fundledger/internal/infrastructure/logger"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
	"github.com/iho/fundledger/internal/infrastructure/redis"
	"github.com/iho/fundledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis when configured; without it mutations still work,
	// only idempotency-key replay is disabled.
	var (
		idempotencyStore usecase.IdempotencyStore
		redisClient      *redislib.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		appLogger.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize store and metrics
	appMetrics := metrics.New()
	retrier := postgresRepo.NewRetrier(appLogger)
	store := postgresRepo.NewRetryingStore(postgresRepo.NewLedgerStore(pool), retrier, appMetrics)
	idGen := postgresRepo.NewULIDGenerator()

	coord := usecase.NewCoordinator(store, func(l *domain.Ledger) {
		appMetrics.RefreshFundState(l)
	})

	// Initialize use cases
	investorUC := usecase.NewInvestorUseCase(coord)
	ledgerUC := usecase.NewLedgerUseCase(coord, idGen, appMetrics)
	feeUC := usecase.NewFeeUseCase(coord, idGen, appMetrics)
	reportUC := usecase.NewReportUseCase(coord)

	// Initialize handlers
	investorHandler := handler.NewInvestorHandler(investorUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	feeHandler := handler.NewFeeHandler(feeUC)
	reportHandler := handler.NewReportHandler(reportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		InvestorHandler:  investorHandler,
		LedgerHandler:    ledgerHandler,
		FeeHandler:       feeHandler,
		ReportHandler:    reportHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
