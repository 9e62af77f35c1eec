package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tellerledger/internal/adapter/http/dto"
	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Deposit(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error)
	Withdraw(ctx context.Context, input usecase.TransactionInput) (usecase.TransactionResult, error)
	Statement(ctx context.Context, input usecase.StatementInput) (usecase.Statement, error)
}

// TransactionHandler handles deposits, withdrawals and statements.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Deposit credits the customer's account.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "deposit failed", h.transactionUC.Deposit)
}

// Withdraw debits the customer's account.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "withdrawal failed", h.transactionUC.Withdraw)
}

func (h *TransactionHandler) execute(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	run func(context.Context, usecase.TransactionInput) (usecase.TransactionResult, error),
) {
	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeInvalidRequest, err.Error())
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "key"))
	if err != nil {
		writeDomainError(w, message, err)
		return
	}

	result, err := run(r.Context(), input)
	if err != nil {
		writeDomainError(w, message, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromResult(result))
}

// Statement lists the account history with the current balance.
func (h *TransactionHandler) Statement(w http.ResponseWriter, r *http.Request) {
	account, err := parseIntQuery(r, "account", 0)
	if err != nil || account < 0 {
		writeError(w, http.StatusBadRequest, "invalid account number", codeInvalidRequest, r.URL.Query().Get("account"))
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" {
		if _, ok := domain.ParseKind(kind); !ok {
			writeError(w, http.StatusBadRequest, "invalid kind filter", codeInvalidRequest, kind)
			return
		}
	}

	stmt, err := h.transactionUC.Statement(r.Context(), usecase.StatementInput{
		CustomerKey:   chi.URLParam(r, "key"),
		AccountNumber: account,
		Kind:          kind,
	})
	if err != nil {
		writeDomainError(w, "failed to build statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromUseCase(stmt))
}
