package domain

import (
	"fmt"
	"time"
)

// DefaultDailyTransactionCap is the number of successful transactions a
// customer may execute on one account per calendar day.
const DefaultDailyTransactionCap = 2

// Customer is an account holder identified by a tax id.
type Customer struct {
	BirthDate time.Time
	CreatedAt time.Time
	Key       string
	Name      string
	Address   string
	accounts  []*Account
}

// NewCustomer validates the fields and creates a customer without accounts.
func NewCustomer(key, name string, birthDate time.Time, address string, createdAt time.Time) (*Customer, error) {
	if err := ValidateCustomerKey(key); err != nil {
		return nil, err
	}
	if err := ValidateCustomerName(name); err != nil {
		return nil, err
	}
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	return &Customer{
		Key:       key,
		Name:      name,
		BirthDate: birthDate,
		Address:   address,
		CreatedAt: createdAt,
	}, nil
}

// AddAccount attaches an account owned by this customer.
func (c *Customer) AddAccount(account *Account) error {
	if account.OwnerKey() != c.Key {
		return fmt.Errorf("%w: account %d belongs to another customer", ErrNoAccount, account.Number())
	}

	c.accounts = append(c.accounts, account)
	return nil
}

// Accounts returns the customer's accounts in opening order.
func (c *Customer) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Account resolves one of the customer's accounts. Number 0 selects the
// first account opened.
func (c *Customer) Account(number int) (*Account, error) {
	if len(c.accounts) == 0 {
		return nil, ErrNoAccount
	}

	if number == 0 {
		return c.accounts[0], nil
	}

	for _, a := range c.accounts {
		if a.Number() == number {
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: account %d", ErrNoAccount, number)
}

// Execute runs tx against account, enforcing the daily transaction cap.
//
// The cap is evaluated against the account history before the transaction
// is attempted. Only successful transactions are recorded, so rejected
// attempts never count toward the cap.
func (c *Customer) Execute(account *Account, tx Transaction, now time.Time, dailyCap int) (HistoryEntry, error) {
	if account.OwnerKey() != c.Key {
		return HistoryEntry{}, fmt.Errorf("%w: account %d", ErrNoAccount, account.Number())
	}

	if len(account.History().EntriesToday(now)) >= dailyCap {
		return HistoryEntry{}, ErrDailyLimitReached
	}

	if err := tx.Apply(account); err != nil {
		return HistoryEntry{}, err
	}

	return account.History().Append(tx.Kind(), tx.Amount(), now), nil
}

// CustomerSnapshot is a point-in-time copy of a customer.
type CustomerSnapshot struct {
	BirthDate      time.Time
	CreatedAt      time.Time
	Key            string
	Name           string
	Address        string
	AccountNumbers []int
}

// Snapshot copies the customer's fields and account numbers.
func (c *Customer) Snapshot() CustomerSnapshot {
	numbers := make([]int, len(c.accounts))
	for i, a := range c.accounts {
		numbers[i] = a.Number()
	}

	return CustomerSnapshot{
		Key:            c.Key,
		Name:           c.Name,
		BirthDate:      c.BirthDate,
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
		AccountNumbers: numbers,
	}
}
