package usecase

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/domain"
)

// TransactionInput represents a deposit or withdrawal request.
type TransactionInput struct {
	Amount      decimal.Decimal
	CustomerKey string
	// AccountNumber selects one of the customer's accounts; 0 means the
	// first account opened.
	AccountNumber int
}

// TransactionResult is the outcome of an applied transaction.
type TransactionResult struct {
	Entry   domain.HistoryEntry
	Account domain.AccountSnapshot
}

// StatementInput represents a statement request.
type StatementInput struct {
	CustomerKey   string
	Kind          string // Optional case-insensitive kind filter
	AccountNumber int
}

// Statement lists an account's history with its current balance.
type Statement struct {
	Balance   decimal.Decimal
	OwnerName string
	Entries   []domain.HistoryEntry
	Account   domain.AccountSnapshot
}

// Deposit credits the customer's account.
func (uc *BankUseCase) Deposit(ctx context.Context, input TransactionInput) (TransactionResult, error) {
	return uc.execute(ctx, domain.AuditOperationDeposit, input, domain.NewDeposit(input.Amount))
}

// Withdraw debits the customer's account.
func (uc *BankUseCase) Withdraw(ctx context.Context, input TransactionInput) (TransactionResult, error) {
	return uc.execute(ctx, domain.AuditOperationWithdraw, input, domain.NewWithdrawal(input.Amount))
}

func (uc *BankUseCase) execute(
	ctx context.Context,
	op domain.AuditOperation,
	input TransactionInput,
	tx domain.Transaction,
) (result TransactionResult, err error) {
	defer func() {
		args := map[string]string{
			"customer_key": input.CustomerKey,
			"amount":       amountArg(input.Amount),
		}
		if result.Account.Number != 0 {
			args["account_number"] = strconv.Itoa(result.Account.Number)
		} else if input.AccountNumber != 0 {
			args["account_number"] = strconv.Itoa(input.AccountNumber)
		}
		uc.record(ctx, op, args, err)
	}()

	err = uc.locks.ReadRegistry(func() error {
		customer, err := uc.customers.GetByKey(ctx, input.CustomerKey)
		if err != nil {
			return err
		}

		account, err := customer.Account(input.AccountNumber)
		if err != nil {
			return err
		}
		result.Account.Number = account.Number()

		return uc.locks.WithAccount(account.Number(), func() error {
			entry, err := customer.Execute(account, tx, uc.clock.Now(), uc.dailyCap)
			if err != nil {
				return err
			}

			result.Entry = entry
			result.Account = account.Snapshot()
			return nil
		})
	})
	if err != nil {
		uc.logger.Debug().
			Err(err).
			Str("operation", string(op)).
			Str("customer_key", input.CustomerKey).
			Msg("transaction rejected")

		return TransactionResult{Account: domain.AccountSnapshot{Number: result.Account.Number}}, err
	}

	uc.logger.Info().
		Str("operation", string(op)).
		Str("customer_key", input.CustomerKey).
		Int("account_number", result.Account.Number).
		Str("amount", amountArg(tx.Amount())).
		Str("balance", amountArg(result.Account.Balance)).
		Msg("transaction applied")

	return result, nil
}

// Statement returns the account history in the order performed, optionally
// filtered by kind, with the current balance.
func (uc *BankUseCase) Statement(ctx context.Context, input StatementInput) (stmt Statement, err error) {
	defer func() {
		args := map[string]string{"customer_key": input.CustomerKey}
		if input.Kind != "" {
			args["kind"] = input.Kind
		}
		if stmt.Account.Number != 0 {
			args["account_number"] = strconv.Itoa(stmt.Account.Number)
		}
		uc.record(ctx, domain.AuditOperationStatement, args, err)
	}()

	err = uc.locks.ReadRegistry(func() error {
		customer, err := uc.customers.GetByKey(ctx, input.CustomerKey)
		if err != nil {
			return err
		}

		account, err := customer.Account(input.AccountNumber)
		if err != nil {
			return err
		}

		return uc.locks.WithAccount(account.Number(), func() error {
			entries := make([]domain.HistoryEntry, 0, account.History().Len())
			for e := range account.History().EntriesOfKind(input.Kind) {
				entries = append(entries, e)
			}

			stmt = Statement{
				Account:   account.Snapshot(),
				OwnerName: customer.Name,
				Entries:   entries,
				Balance:   account.Balance(),
			}
			return nil
		})
	})
	if err != nil {
		return Statement{}, err
	}

	return stmt, nil
}
