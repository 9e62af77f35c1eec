package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Operations        *prometheus.CounterVec
	CustomersCreated  prometheus.Counter
	AccountsCreated   prometheus.Counter
	TransactionAmount *prometheus.HistogramVec

	// Audit metrics
	AuditFailures *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting and idempotency metrics
	RateLimitHits     prometheus.Counter
	IdempotentReplays prometheus.Counter
	IdempotencyErrors prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tellerledger_operations_total",
				Help: "Core ledger operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		CustomersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tellerledger_customers_created_total",
			Help: "Total number of customers registered",
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tellerledger_accounts_created_total",
			Help: "Total number of accounts opened",
		}),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tellerledger_transaction_amount",
				Help:    "Amounts of applied transactions",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
			},
			[]string{"kind"},
		),

		// Audit metrics
		AuditFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tellerledger_audit_failures_total",
				Help: "Audit records a sink failed to store",
			},
			[]string{"sink"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tellerledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tellerledger_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tellerledger_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Rate limiting and idempotency metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "tellerledger_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),
		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "tellerledger_idempotent_replays_total",
			Help: "Responses replayed from the idempotency store",
		}),
		IdempotencyErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "tellerledger_idempotency_errors_total",
			Help: "Idempotency store failures",
		}),
	}
}

// Record implements usecase.AuditSink by counting the audited outcome.
func (m *Metrics) Record(_ context.Context, record *domain.AuditRecord) error {
	m.Operations.WithLabelValues(string(record.Operation), record.Outcome).Inc()

	if !record.Succeeded() {
		return nil
	}

	switch record.Operation {
	case domain.AuditOperationCreateCustomer:
		m.CustomersCreated.Inc()
	case domain.AuditOperationCreateAccount:
		m.AccountsCreated.Inc()
	case domain.AuditOperationDeposit:
		m.observeAmount(domain.KindDeposit, record.Arguments["amount"])
	case domain.AuditOperationWithdraw:
		m.observeAmount(domain.KindWithdrawal, record.Arguments["amount"])
	}

	return nil
}

// AuditFailure counts a failed write to the named audit sink.
func (m *Metrics) AuditFailure(sink string) {
	m.AuditFailures.WithLabelValues(sink).Inc()
}

func (m *Metrics) observeAmount(kind domain.Kind, raw string) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return
	}
	m.TransactionAmount.WithLabelValues(string(kind)).Observe(amount.InexactFloat64())
}
