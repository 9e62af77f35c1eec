package domain

import "github.com/shopspring/decimal"

// Transaction is a requested balance-changing operation.
// Apply mutates the account only when it returns nil.
type Transaction interface {
	Kind() Kind
	Amount() decimal.Decimal
	Apply(account *Account) error
}

// Deposit credits an account.
type Deposit struct {
	amount decimal.Decimal
}

// NewDeposit creates a deposit of amount.
func NewDeposit(amount decimal.Decimal) Deposit {
	return Deposit{amount: amount}
}

func (d Deposit) Kind() Kind              { return KindDeposit }
func (d Deposit) Amount() decimal.Decimal { return d.amount }

// Apply credits the account.
func (d Deposit) Apply(account *Account) error {
	if err := account.ValidateDeposit(d.amount); err != nil {
		return err
	}

	account.credit(d.amount)
	return nil
}

// Withdrawal debits an account.
type Withdrawal struct {
	amount decimal.Decimal
}

// NewWithdrawal creates a withdrawal of amount.
func NewWithdrawal(amount decimal.Decimal) Withdrawal {
	return Withdrawal{amount: amount}
}

func (w Withdrawal) Kind() Kind              { return KindWithdrawal }
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }

// Apply debits the account when the account's withdrawal rules allow it.
func (w Withdrawal) Apply(account *Account) error {
	if err := account.ValidateWithdrawal(w.amount); err != nil {
		return err
	}

	account.debit(w.amount)
	return nil
}

// NewTransaction builds a transaction of the given kind.
func NewTransaction(kind Kind, amount decimal.Decimal) Transaction {
	if kind == KindWithdrawal {
		return NewWithdrawal(amount)
	}
	return NewDeposit(amount)
}
