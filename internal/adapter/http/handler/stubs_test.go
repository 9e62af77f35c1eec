package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
)

type customerServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateCustomerInput) (domain.CustomerSnapshot, error)
	getFn    func(ctx context.Context, key string) (domain.CustomerSnapshot, error)
}

func (s *customerServiceStub) CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (domain.CustomerSnapshot, error) {
	return s.createFn(ctx, input)
}

func (s *customerServiceStub) GetCustomer(ctx context.Context, key string) (domain.CustomerSnapshot, error) {
	return s.getFn(ctx, key)
}

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (usecase.AccountSummary, error)
	getFn    func(ctx context.Context, number int) (usecase.AccountSummary, error)
	listFn   func(ctx context.Context) ([]usecase.AccountSummary, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (usecase.AccountSummary, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, number int) (usecase.AccountSummary, error) {
	return s.getFn(ctx, number)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context) ([]usecase.AccountSummary, error) {
	return s.listFn(ctx)
}

type transactionServiceStub struct {
	depositFn   func(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error)
	withdrawFn  func(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error)
	statementFn func(ctx context.Context, input usecase.StatementInput) (usecase.Statement, error)
}

func (s *transactionServiceStub) Deposit(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error) {
	return s.depositFn(ctx, input)
}

func (s *transactionServiceStub) Withdraw(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error) {
	return s.withdrawFn(ctx, input)
}

func (s *transactionServiceStub) Statement(ctx context.Context, input usecase.StatementInput) (usecase.Statement, error) {
	return s.statementFn(ctx, input)
}

// withURLParams attaches chi route params to r.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
