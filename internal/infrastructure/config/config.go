package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Audit database (optional - leave empty to disable)
	AuditDatabaseURL    string        `env:"AUDIT_DATABASE_URL"    envDefault:""`
	AuditMigrationsPath string        `env:"AUDIT_MIGRATIONS_PATH" envDefault:"migrations"`
	DatabaseMaxConns    int           `env:"DATABASE_MAX_CONNS"    envDefault:"10"`
	DatabaseMinConns    int           `env:"DATABASE_MIN_CONNS"    envDefault:"1"`
	DatabaseTimeout     time.Duration `env:"DATABASE_TIMEOUT"      envDefault:"30s"`

	// Audit file (optional - leave empty to disable)
	AuditLogPath string `env:"AUDIT_LOG_PATH" envDefault:"audit.log"`

	// Redis (optional - leave empty to disable idempotency)
	RedisURL         string        `env:"REDIS_URL"          envDefault:""`
	RedisDialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisPoolSize    int           `env:"REDIS_POOL_SIZE"    envDefault:"0"` // 0 keeps the client default

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Rate limiting (0 RPS disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Ledger rules
	DailyTransactionCap     int    `env:"DAILY_TRANSACTION_CAP"     envDefault:"2"`
	CheckingWithdrawalLimit string `env:"CHECKING_WITHDRAWAL_LIMIT" envDefault:"500"`
	CheckingMaxWithdrawals  int    `env:"CHECKING_MAX_WITHDRAWALS"  envDefault:"50"`
	LedgerTimezone          string `env:"LEDGER_TIMEZONE"           envDefault:"UTC"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c *Config) Validate() error {
	var errs []error

	if c.DailyTransactionCap <= 0 {
		errs = append(errs, fmt.Errorf("DAILY_TRANSACTION_CAP must be positive, got %d", c.DailyTransactionCap))
	}

	if _, err := c.CheckingPolicy(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit settings cannot be negative"))
	}

	if c.RedisDialTimeout < 0 || c.RedisPoolSize < 0 {
		errs = append(errs, errors.New("redis settings cannot be negative"))
	}

	if c.DatabaseMinConns > c.DatabaseMaxConns {
		errs = append(errs, fmt.Errorf("DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", c.DatabaseMinConns, c.DatabaseMaxConns))
	}

	return errors.Join(errs...)
}

// CheckingPolicy returns the default policy for checking accounts.
func (c *Config) CheckingPolicy() (domain.CheckingPolicy, error) {
	limit, err := decimal.NewFromString(c.CheckingWithdrawalLimit)
	if err != nil {
		return domain.CheckingPolicy{}, fmt.Errorf("CHECKING_WITHDRAWAL_LIMIT: %w", err)
	}

	policy := domain.CheckingPolicy{PerOperationLimit: limit, MaxWithdrawals: c.CheckingMaxWithdrawals}
	if err := policy.Validate(); err != nil {
		return domain.CheckingPolicy{}, fmt.Errorf("checking policy: %w", err)
	}

	return policy, nil
}

// Location resolves LEDGER_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.LedgerTimezone)
	if err != nil {
		return nil, fmt.Errorf("LEDGER_TIMEZONE: %w", err)
	}
	return loc, nil
}
