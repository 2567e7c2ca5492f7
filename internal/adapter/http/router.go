package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/handler"
	"github.com/iho/fundledger/internal/adapter/http/middleware"
	"github.com/iho/fundledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	InvestorHandler  *handler.InvestorHandler
	LedgerHandler    *handler.LedgerHandler
	FeeHandler       *handler.FeeHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Investors
		r.Route("/investors", func(r chi.Router) {
			r.Post("/", cfg.InvestorHandler.Create)
			r.Get("/", cfg.InvestorHandler.List)
			r.Get("/{id}", cfg.InvestorHandler.Get)
			r.Patch("/{id}", cfg.InvestorHandler.Update)
			r.Get("/{id}/balance", cfg.ReportHandler.Balance)
			r.Get("/{id}/performance", cfg.ReportHandler.Performance)
			r.Get("/{id}/fees/effective", cfg.FeeHandler.GetEffectiveRates)
			r.Put("/{id}/fees/override", cfg.FeeHandler.UpsertOverride)
			r.Delete("/{id}/fees/override", cfg.FeeHandler.DeleteOverride)
		})

		// Ledger operations
		r.Post("/deposits", cfg.LedgerHandler.Deposit)
		r.Post("/withdrawals", cfg.LedgerHandler.Withdraw)
		r.Post("/nav", cfg.LedgerHandler.RecordNAV)

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.ListTransactions)
			r.Post("/{id}/undo", cfg.LedgerHandler.Undo)
		})

		// Fees
		r.Route("/fees", func(r chi.Router) {
			r.Post("/preview", cfg.FeeHandler.Preview)
			r.Post("/apply", cfg.FeeHandler.Apply)
			r.Get("/config", cfg.FeeHandler.GetConfig)
			r.Put("/config", cfg.FeeHandler.UpdateConfig)
		})
	})

	return r
}
