package domain

import "errors"

var (
	// Amount errors
	ErrInvalidAmount = errors.New("amount must be positive")

	// Withdrawal errors
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrLimitExceeded        = errors.New("amount exceeds per-operation limit")
	ErrWithdrawalCapReached = errors.New("maximum number of withdrawals reached")

	// Customer errors
	ErrDailyLimitReached = errors.New("daily transaction limit reached")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoAccount         = errors.New("customer has no account")
	ErrDuplicateKey      = errors.New("customer key already registered")
	ErrInvalidCustomer   = errors.New("invalid customer")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Outcome codes reported to audit sinks, metrics and API clients.
const (
	OutcomeApplied              = "applied"
	OutcomeInvalidAmount        = "invalid_amount"
	OutcomeInsufficientFunds    = "insufficient_funds"
	OutcomeLimitExceeded        = "limit_exceeded"
	OutcomeWithdrawalCapReached = "withdrawal_cap_reached"
	OutcomeDailyLimitReached    = "daily_limit_reached"
	OutcomeCustomerNotFound     = "customer_not_found"
	OutcomeNoAccount            = "no_account"
	OutcomeDuplicateKey         = "duplicate_key"
	OutcomeInvalidCustomer      = "invalid_customer"
	OutcomeAccountNotFound      = "account_not_found"
	OutcomeInvalidAccountType   = "invalid_account_type"
	OutcomeError                = "error"
)

// OutcomeCode maps an operation error to its stable outcome code.
// A nil error is OutcomeApplied.
func OutcomeCode(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, ErrLimitExceeded):
		return OutcomeLimitExceeded
	case errors.Is(err, ErrWithdrawalCapReached):
		return OutcomeWithdrawalCapReached
	case errors.Is(err, ErrDailyLimitReached):
		return OutcomeDailyLimitReached
	case errors.Is(err, ErrCustomerNotFound):
		return OutcomeCustomerNotFound
	case errors.Is(err, ErrNoAccount):
		return OutcomeNoAccount
	case errors.Is(err, ErrDuplicateKey):
		return OutcomeDuplicateKey
	case errors.Is(err, ErrInvalidCustomer):
		return OutcomeInvalidCustomer
	case errors.Is(err, ErrAccountNotFound):
		return OutcomeAccountNotFound
	case errors.Is(err, ErrInvalidAccountType):
		return OutcomeInvalidAccountType
	default:
		return OutcomeError
	}
}

// IsRejection reports whether err is an expected business-rule outcome
// rather than an infrastructure failure.
func IsRejection(err error) bool {
	code := OutcomeCode(err)
	return code != OutcomeApplied && code != OutcomeError
}
