package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/domain"
)

// BankUseCase implements the ledger core API: customers, accounts,
// deposits, withdrawals, statements and listings.
type BankUseCase struct {
	customers       CustomerRepository
	accounts        AccountRepository
	audit           AuditSink
	clock           Clock
	idGen           IDGenerator
	locks           *Locks
	logger          zerolog.Logger
	defaultChecking domain.CheckingPolicy
	dailyCap        int
}

// BankConfig holds BankUseCase dependencies.
type BankConfig struct {
	Customers CustomerRepository
	Accounts  AccountRepository
	Audit     AuditSink   // Optional observer of every call outcome
	Clock     Clock       // Defaults to a UTC system clock
	IDGen     IDGenerator // Audit record IDs; left empty when nil
	Logger    *zerolog.Logger

	// DailyCap is the number of successful transactions allowed per
	// account per calendar day.
	DailyCap int

	// DefaultChecking applies to checking accounts opened without
	// explicit limits.
	DefaultChecking domain.CheckingPolicy
}

// NewBankUseCase creates a new BankUseCase.
func NewBankUseCase(cfg BankConfig) *BankUseCase {
	if cfg.Clock == nil {
		cfg.Clock = NewSystemClock(time.UTC)
	}
	if cfg.DailyCap <= 0 {
		cfg.DailyCap = domain.DefaultDailyTransactionCap
	}
	if cfg.DefaultChecking.PerOperationLimit.IsZero() {
		cfg.DefaultChecking = domain.DefaultCheckingPolicy
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &BankUseCase{
		customers:       cfg.Customers,
		accounts:        cfg.Accounts,
		audit:           cfg.Audit,
		clock:           cfg.Clock,
		idGen:           cfg.IDGen,
		locks:           NewLocks(),
		logger:          logger,
		defaultChecking: cfg.DefaultChecking,
		dailyCap:        cfg.DailyCap,
	}
}

// record reports an operation outcome to the audit sink. Sink failures are
// logged and otherwise ignored.
func (uc *BankUseCase) record(ctx context.Context, op domain.AuditOperation, args map[string]string, opErr error) {
	if uc.audit == nil {
		return
	}

	rec := &domain.AuditRecord{
		Operation: op,
		Arguments: args,
		Outcome:   domain.OutcomeCode(opErr),
		RequestID: RequestIDFromContext(ctx),
		At:        uc.clock.Now(),
	}
	if uc.idGen != nil {
		rec.ID = uc.idGen.Generate()
	}
	if opErr != nil {
		rec.Error = opErr.Error()
	}

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), AuditTimeout)
	defer cancel()

	if err := uc.audit.Record(auditCtx, rec); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("operation", string(op)).
			Str("outcome", rec.Outcome).
			Msg("audit sink failed")
	}
}

func amountArg(amount decimal.Decimal) string {
	return domain.FormatAmount(amount)
}
