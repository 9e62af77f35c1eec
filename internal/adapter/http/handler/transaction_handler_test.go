package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/adapter/http/dto"
	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
)

func TestTransactionHandler_Deposit_Success(t *testing.T) {
	var captured usecase.TransactionInput
	handler := NewTransactionHandler(&transactionServiceStub{
		depositFn: func(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error) {
			captured = input
			return usecase.TransactionResult{
				Entry:   domain.HistoryEntry{Sequence: 1, Kind: domain.KindDeposit, Amount: input.Amount},
				Account: domain.AccountSnapshot{Number: 1, Balance: input.Amount},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/customers/111/deposits", bytes.NewBufferString(`{"amount":"200"}`))
	req = withURLParams(req, map[string]string{"key": "111"})
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.CustomerKey != "111" || captured.AccountNumber != 0 || !captured.Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Entry.Kind != "Deposit" || resp.Account.Balance != "200.00" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionHandler_Withdraw_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		expected   int
		code       string
	}{
		{name: "malformed body", body: "not json", expected: http.StatusBadRequest, code: "invalid_request"},
		{name: "non-numeric amount", body: `{"amount":"ten"}`, expected: http.StatusBadRequest, code: "invalid_amount"},
		{name: "negative amount", body: `{"amount":"-1"}`, serviceErr: domain.ErrInvalidAmount, expected: http.StatusBadRequest, code: "invalid_amount"},
		{name: "insufficient funds", body: `{"amount":"1000"}`, serviceErr: domain.ErrInsufficientFunds, expected: http.StatusUnprocessableEntity, code: "insufficient_funds"},
		{name: "daily limit", body: `{"amount":"10"}`, serviceErr: domain.ErrDailyLimitReached, expected: http.StatusUnprocessableEntity, code: "daily_limit_reached"},
		{name: "no account", body: `{"amount":"10","account":4}`, serviceErr: domain.ErrNoAccount, expected: http.StatusNotFound, code: "no_account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(&transactionServiceStub{
				withdrawFn: func(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error) {
					return usecase.TransactionResult{}, tt.serviceErr
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/customers/111/withdrawals", bytes.NewBufferString(tt.body))
			req = withURLParams(req, map[string]string{"key": "111"})
			rec := httptest.NewRecorder()
			handler.Withdraw(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d: %s", tt.expected, rec.Code, rec.Body.String())
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if resp.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, resp.Code)
			}
		})
	}
}

func TestTransactionHandler_Statement(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	var captured usecase.StatementInput
	handler := NewTransactionHandler(&transactionServiceStub{
		statementFn: func(ctx context.Context, input usecase.StatementInput) (usecase.Statement, error) {
			captured = input
			return usecase.Statement{
				OwnerName: "Ana",
				Balance:   decimal.RequireFromString("150"),
				Entries: []domain.HistoryEntry{
					{Sequence: 2, Kind: domain.KindWithdrawal, Amount: decimal.NewFromInt(50), Timestamp: at},
				},
				Account: domain.AccountSnapshot{Number: 2},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/customers/111/statement?account=2&kind=withdrawal", nil)
	req = withURLParams(req, map[string]string{"key": "111"})
	rec := httptest.NewRecorder()
	handler.Statement(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AccountNumber != 2 || captured.Kind != "withdrawal" || captured.CustomerKey != "111" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != "150.00" || len(resp.Entries) != 1 {
		t.Fatalf("unexpected statement: %+v", resp)
	}
}

func TestTransactionHandler_Statement_BadQuery(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{})

	for _, query := range []string{"?account=x", "?account=-1", "?kind=transfer"} {
		req := httptest.NewRequest(http.MethodGet, "/customers/111/statement"+query, nil)
		req = withURLParams(req, map[string]string{"key": "111"})
		rec := httptest.NewRecorder()
		handler.Statement(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}
