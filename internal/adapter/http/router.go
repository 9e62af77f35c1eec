package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/tellerledger/internal/adapter/http/handler"
	"github.com/iho/tellerledger/internal/adapter/http/middleware"
	"github.com/iho/tellerledger/internal/infrastructure/metrics"
	"github.com/iho/tellerledger/internal/usecase"
)

// RouterConfig holds dependencies for the router. Metrics, Gatherer,
// RateLimiter and IdempotencyStore are optional.
type RouterConfig struct {
	CustomerHandler    *handler.CustomerHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	Metrics            *metrics.Metrics
	Gatherer           prometheus.Gatherer
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
	IdempotencyTTL     time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Ops endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Metrics, cfg.Logger)
			r.Use(idempotency.Wrap)
		}

		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Route("/{key}", func(r chi.Router) {
				r.Get("/", cfg.CustomerHandler.Get)
				r.Post("/accounts", cfg.AccountHandler.Create)
				r.Post("/deposits", cfg.TransactionHandler.Deposit)
				r.Post("/withdrawals", cfg.TransactionHandler.Withdraw)
				r.Get("/statement", cfg.TransactionHandler.Statement)
			})
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{number}", cfg.AccountHandler.Get)
		})
	})

	return r
}
