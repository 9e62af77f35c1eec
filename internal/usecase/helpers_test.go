package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/tellerledger/internal/adapter/repository/memory"
	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
	"github.com/iho/tellerledger/internal/usecase/mocks"
)

var monday = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *usecase.BankUseCase
	clock *mocks.FakeClock
	audit *mocks.RecordingAuditSink
}

func newFixture(t *testing.T, mutate func(*usecase.BankConfig)) *fixture {
	t.Helper()

	registry := memory.NewRegistry()
	f := &fixture{
		clock: mocks.NewFakeClock(monday),
		audit: mocks.NewRecordingAuditSink(),
	}

	cfg := usecase.BankConfig{
		Customers: registry.Customers(),
		Accounts:  registry.Accounts(),
		Audit:     f.audit,
		Clock:     f.clock,
		IDGen:     mocks.NewSequenceIDGenerator(),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	f.uc = usecase.NewBankUseCase(cfg)
	return f
}

func (f *fixture) customer(t *testing.T, key string) {
	t.Helper()
	_, err := f.uc.CreateCustomer(context.Background(), usecase.CreateCustomerInput{
		Key:       key,
		Name:      "Holder " + key,
		BirthDate: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Address:   "Rua A, 1",
	})
	require.NoError(t, err)
}

func (f *fixture) account(t *testing.T, input usecase.CreateAccountInput) int {
	t.Helper()
	summary, err := f.uc.CreateAccount(context.Background(), input)
	require.NoError(t, err)
	return summary.Number
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func balanceOf(t *testing.T, f *fixture, number int) string {
	t.Helper()
	summary, err := f.uc.GetAccount(context.Background(), number)
	require.NoError(t, err)
	return domain.FormatAmount(summary.Balance)
}
