package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
)

// CreateCustomerRequest represents a request to register a customer.
type CreateCustomerRequest struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD, DD-MM-YYYY or DD/MM/YYYY
	Address   string `json:"address"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() (usecase.CreateCustomerInput, error) {
	birthDate, err := domain.ParseBirthDate(r.BirthDate)
	if err != nil {
		return usecase.CreateCustomerInput{}, err
	}

	return usecase.CreateCustomerInput{
		Key:       r.Key,
		Name:      r.Name,
		BirthDate: birthDate,
		Address:   r.Address,
	}, nil
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Type              string  `json:"type,omitempty"`
	PerOperationLimit *string `json:"per_operation_limit,omitempty"`
	MaxWithdrawals    *int    `json:"max_withdrawals,omitempty"`
}

// ToUseCaseInput converts to use case input for the given customer.
func (r *CreateAccountRequest) ToUseCaseInput(customerKey string) (usecase.CreateAccountInput, error) {
	input := usecase.CreateAccountInput{
		CustomerKey:    customerKey,
		Type:           domain.AccountType(r.Type),
		MaxWithdrawals: r.MaxWithdrawals,
	}

	if r.PerOperationLimit != nil {
		limit, err := decimal.NewFromString(*r.PerOperationLimit)
		if err != nil {
			return usecase.CreateAccountInput{}, err
		}
		input.PerOperationLimit = &limit
	}

	return input, nil
}

// TransactionRequest represents a deposit or withdrawal.
type TransactionRequest struct {
	Amount  string `json:"amount"`
	Account int    `json:"account,omitempty"` // 0 selects the first account
}

// ToUseCaseInput converts to use case input for the given customer.
func (r *TransactionRequest) ToUseCaseInput(customerKey string) (usecase.TransactionInput, error) {
	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.TransactionInput{}, err
	}

	return usecase.TransactionInput{
		CustomerKey:   customerKey,
		AccountNumber: r.Account,
		Amount:        amount,
	}, nil
}
