package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAgency is the branch code every account is opened under.
const DefaultAgency = "0001"

// AccountType distinguishes account variants.
type AccountType string

const (
	AccountTypeBasic    AccountType = "basic"
	AccountTypeChecking AccountType = "checking"
)

// ParseAccountType resolves an account type label. Empty means checking.
func ParseAccountType(raw string) (AccountType, error) {
	switch AccountType(raw) {
	case "", AccountTypeChecking:
		return AccountTypeChecking, nil
	case AccountTypeBasic:
		return AccountTypeBasic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, raw)
	}
}

// CheckingPolicy holds the extra withdrawal rules of a checking account.
type CheckingPolicy struct {
	PerOperationLimit decimal.Decimal
	MaxWithdrawals    int
}

// DefaultCheckingPolicy mirrors the reference checking account.
var DefaultCheckingPolicy = CheckingPolicy{
	PerOperationLimit: decimal.NewFromInt(500),
	MaxWithdrawals:    3,
}

// Validate checks the policy values.
func (p CheckingPolicy) Validate() error {
	if !p.PerOperationLimit.IsPositive() {
		return fmt.Errorf("%w: per-operation limit must be positive", ErrInvalidAccountType)
	}
	if p.MaxWithdrawals < 0 {
		return fmt.Errorf("%w: max withdrawals cannot be negative", ErrInvalidAccountType)
	}
	return nil
}

// Account is a balance-holding entity owned by a customer.
// The balance only changes through Deposit and Withdrawal application.
type Account struct {
	createdAt time.Time
	balance   decimal.Decimal
	history   *History
	checking  *CheckingPolicy
	agency    string
	ownerKey  string
	number    int
}

// NewBasicAccount opens a basic account.
func NewBasicAccount(number int, ownerKey string, createdAt time.Time) *Account {
	return &Account{
		number:    number,
		agency:    DefaultAgency,
		ownerKey:  ownerKey,
		balance:   decimal.Zero,
		history:   NewHistory(),
		createdAt: createdAt,
	}
}

// NewCheckingAccount opens a checking account with the given policy.
func NewCheckingAccount(number int, ownerKey string, policy CheckingPolicy, createdAt time.Time) (*Account, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	acc := NewBasicAccount(number, ownerKey, createdAt)
	acc.checking = &policy
	return acc, nil
}

func (a *Account) Number() int              { return a.number }
func (a *Account) Agency() string           { return a.agency }
func (a *Account) OwnerKey() string         { return a.ownerKey }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) History() *History        { return a.history }
func (a *Account) CreatedAt() time.Time     { return a.createdAt }

// Type returns the account variant.
func (a *Account) Type() AccountType {
	if a.checking != nil {
		return AccountTypeChecking
	}
	return AccountTypeBasic
}

// CheckingPolicy returns the checking rules, if any.
func (a *Account) CheckingPolicy() (CheckingPolicy, bool) {
	if a.checking == nil {
		return CheckingPolicy{}, false
	}
	return *a.checking, true
}

// ValidateWithdrawal checks whether amount can be withdrawn. Checks run in
// a fixed order: amount, per-operation limit, withdrawal cap, balance.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if _, err := ValidateAmount(amount); err != nil {
		return err
	}

	if a.checking != nil {
		if amount.GreaterThan(a.checking.PerOperationLimit) {
			return fmt.Errorf("%w: limit is %s", ErrLimitExceeded, FormatAmount(a.checking.PerOperationLimit))
		}
		if a.history.CountOfKind(string(KindWithdrawal)) >= a.checking.MaxWithdrawals {
			return fmt.Errorf("%w: %d allowed", ErrWithdrawalCapReached, a.checking.MaxWithdrawals)
		}
	}

	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}

	return nil
}

// ValidateDeposit checks whether amount can be deposited. Deposits are
// never limited beyond amount validation.
func (a *Account) ValidateDeposit(amount decimal.Decimal) error {
	_, err := ValidateAmount(amount)
	return err
}

func (a *Account) credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

func (a *Account) debit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
}

// AccountSnapshot is a point-in-time copy of an account's state.
type AccountSnapshot struct {
	CreatedAt         time.Time
	Balance           decimal.Decimal
	PerOperationLimit *decimal.Decimal
	MaxWithdrawals    *int
	Agency            string
	OwnerKey          string
	Type              AccountType
	Number            int
	Withdrawals       int
	Entries           int
}

// Snapshot copies the account state.
func (a *Account) Snapshot() AccountSnapshot {
	s := AccountSnapshot{
		Number:      a.number,
		Agency:      a.agency,
		OwnerKey:    a.ownerKey,
		Type:        a.Type(),
		Balance:     a.balance,
		Withdrawals: a.history.CountOfKind(string(KindWithdrawal)),
		Entries:     a.history.Len(),
		CreatedAt:   a.createdAt,
	}

	if a.checking != nil {
		limit := a.checking.PerOperationLimit
		maxWithdrawals := a.checking.MaxWithdrawals
		s.PerOperationLimit = &limit
		s.MaxWithdrawals = &maxWithdrawals
	}

	return s
}
