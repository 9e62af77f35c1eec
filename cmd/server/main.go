package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/tellerledger/internal/adapter/http"
	"github.com/iho/tellerledger/internal/adapter/http/handler"
	"github.com/iho/tellerledger/internal/adapter/http/middleware"
	"github.com/iho/tellerledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/tellerledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/tellerledger/internal/adapter/repository/redis"
	"github.com/iho/tellerledger/internal/infrastructure/audit"
	"github.com/iho/tellerledger/internal/infrastructure/config"
	"github.com/iho/tellerledger/internal/infrastructure/logger"
	"github.com/iho/tellerledger/internal/infrastructure/metrics"
	"github.com/iho/tellerledger/internal/infrastructure/postgres"
	"github.com/iho/tellerledger/internal/infrastructure/redis"
	"github.com/iho/tellerledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "tellerledger",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

// run wires the ledger and serves HTTP until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	policy, err := cfg.CheckingPolicy()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	sink, closeSinks, err := buildAuditSink(cfg, log, m, deps.pool)
	if err != nil {
		return err
	}
	defer closeSinks()

	// Initialize use cases
	registry := memory.NewRegistry()
	bank := usecase.NewBankUseCase(usecase.BankConfig{
		Customers:       registry.Customers(),
		Accounts:        registry.Accounts(),
		Audit:           sink,
		Clock:           usecase.NewSystemClock(loc),
		IDGen:           postgresRepo.NewULIDGenerator(),
		Logger:          &log,
		DailyCap:        cfg.DailyTransactionCap,
		DefaultChecking: policy,
	})

	// Initialize handlers
	var checks []handler.ReadinessCheck
	routerCfg := httpAdapter.RouterConfig{
		CustomerHandler:    handler.NewCustomerHandler(bank),
		AccountHandler:     handler.NewAccountHandler(bank),
		TransactionHandler: handler.NewTransactionHandler(bank),
		Metrics:            m,
		Gatherer:           reg,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
		Logger:             logger.Component(log, "http"),
		IdempotencyTTL:     cfg.IdempotencyTTL,
	}
	if deps.pool != nil {
		checks = append(checks, handler.PostgresCheck(deps.pool))
	}
	if deps.redis != nil {
		checks = append(checks, handler.RedisCheck(deps.redis))
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(deps.redis)
	}
	routerCfg.HealthHandler = handler.NewHealthHandler(checks...)

	// Create server
	server := &http.Server{
		Addr:         serverAddr(cfg),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// dependencies are the optional external services.
type dependencies struct {
	pool  *pgxpool.Pool
	redis *goredis.Client
}

func (d *dependencies) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redis != nil {
		d.redis.Close()
	}
}

// connect opens the audit database and the idempotency store when they
// are configured, applying audit migrations first.
func connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	if cfg.AuditDatabaseURL != "" {
		if err := postgres.NewMigrator(cfg.AuditDatabaseURL, cfg.AuditMigrationsPath, log).Up(); err != nil {
			return nil, fmt.Errorf("audit migrations: %w", err)
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.AuditDatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		deps.pool = pool
		log.Info().Msg("connected to postgres")
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, redis.ClientConfig{
			URL:         cfg.RedisURL,
			DialTimeout: cfg.RedisDialTimeout,
			PoolSize:    cfg.RedisPoolSize,
		})
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.redis = client
		log.Info().Msg("connected to redis")
	}

	return deps, nil
}

// buildAuditSink fans audit records out to the log, metrics and, when
// configured, the audit file and database. The returned func closes
// the file sink.
func buildAuditSink(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, pool *pgxpool.Pool) (usecase.AuditSink, func(), error) {
	sinks := usecase.NewMultiSink(func(name string, err error) {
		m.AuditFailure(name)
	})
	sinks.Add("log", audit.NewLogSink(log))
	sinks.Add("metrics", m)

	closeFn := func() {}
	if cfg.AuditLogPath != "" {
		file, err := audit.OpenFileSink(cfg.AuditLogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		sinks.Add("file", file)
		closeFn = func() {
			if err := file.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close audit log")
			}
		}
	}

	if pool != nil {
		retrier := postgresRepo.NewRetrier(logger.Component(log, "audit_db"))
		sinks.Add("postgres", postgresRepo.NewAuditRepository(pool, retrier))
	}

	return sinks, closeFn, nil
}

func serverAddr(cfg *config.Config) string {
	return fmt.Sprintf(":%s", cfg.HTTPPort)
}
