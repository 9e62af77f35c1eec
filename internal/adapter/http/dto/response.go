package dto

import (
	"time"

	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
)

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date,omitempty"`
	Address   string    `json:"address,omitempty"`
	Accounts  []int     `json:"accounts"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerFromDomain converts a customer snapshot to response.
func CustomerFromDomain(c domain.CustomerSnapshot) *CustomerResponse {
	resp := &CustomerResponse{
		Key:       c.Key,
		Name:      c.Name,
		Address:   c.Address,
		Accounts:  c.AccountNumbers,
		CreatedAt: c.CreatedAt,
	}
	if resp.Accounts == nil {
		resp.Accounts = []int{}
	}
	if !c.BirthDate.IsZero() {
		resp.BirthDate = c.BirthDate.Format(time.DateOnly)
	}
	return resp
}

// AccountResponse represents an account in API responses. Amounts are
// rendered with two decimal places.
type AccountResponse struct {
	Agency            string    `json:"agency"`
	Number            int       `json:"number"`
	OwnerKey          string    `json:"owner_key"`
	OwnerName         string    `json:"owner_name,omitempty"`
	Type              string    `json:"type"`
	Balance           string    `json:"balance"`
	PerOperationLimit *string   `json:"per_operation_limit,omitempty"`
	MaxWithdrawals    *int      `json:"max_withdrawals,omitempty"`
	Withdrawals       int       `json:"withdrawals"`
	Entries           int       `json:"entries"`
	CreatedAt         time.Time `json:"created_at"`
}

// AccountFromSnapshot converts an account snapshot to response.
func AccountFromSnapshot(a domain.AccountSnapshot, ownerName string) *AccountResponse {
	resp := &AccountResponse{
		Agency:         a.Agency,
		Number:         a.Number,
		OwnerKey:       a.OwnerKey,
		OwnerName:      ownerName,
		Type:           string(a.Type),
		Balance:        domain.FormatAmount(a.Balance),
		MaxWithdrawals: a.MaxWithdrawals,
		Withdrawals:    a.Withdrawals,
		Entries:        a.Entries,
		CreatedAt:      a.CreatedAt,
	}
	if a.PerOperationLimit != nil {
		limit := domain.FormatAmount(*a.PerOperationLimit)
		resp.PerOperationLimit = &limit
	}
	return resp
}

// AccountFromSummary converts an account listing row to response.
func AccountFromSummary(s usecase.AccountSummary) *AccountResponse {
	return AccountFromSnapshot(s.AccountSnapshot, s.OwnerName)
}

// AccountsFromSummaries converts account listing rows to responses.
func AccountsFromSummaries(summaries []usecase.AccountSummary) []*AccountResponse {
	result := make([]*AccountResponse, len(summaries))
	for i, s := range summaries {
		result[i] = AccountFromSummary(s)
	}
	return result
}

// EntryResponse represents a history entry in API responses.
type EntryResponse struct {
	Sequence  int       `json:"sequence"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// EntryFromDomain converts a history entry to response.
func EntryFromDomain(e domain.HistoryEntry) EntryResponse {
	return EntryResponse{
		Sequence:  e.Sequence,
		Kind:      string(e.Kind),
		Amount:    domain.FormatAmount(e.Amount),
		Timestamp: e.Timestamp,
	}
}

// EntriesFromDomain converts history entries to responses.
func EntriesFromDomain(entries []domain.HistoryEntry) []EntryResponse {
	result := make([]EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransactionResponse is returned for an applied deposit or withdrawal.
type TransactionResponse struct {
	Entry   EntryResponse    `json:"entry"`
	Account *AccountResponse `json:"account"`
}

// TransactionFromResult converts a transaction result to response.
func TransactionFromResult(res usecase.TransactionResult) *TransactionResponse {
	return &TransactionResponse{
		Entry:   EntryFromDomain(res.Entry),
		Account: AccountFromSnapshot(res.Account, ""),
	}
}

// StatementResponse represents an account statement.
type StatementResponse struct {
	Account *AccountResponse `json:"account"`
	Entries []EntryResponse  `json:"entries"`
	Balance string           `json:"balance"`
}

// StatementFromUseCase converts a statement to response.
func StatementFromUseCase(s usecase.Statement) *StatementResponse {
	return &StatementResponse{
		Account: AccountFromSnapshot(s.Account, s.OwnerName),
		Entries: EntriesFromDomain(s.Entries),
		Balance: domain.FormatAmount(s.Balance),
	}
}

// ListResponse wraps a list of items.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse creates a list response.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
