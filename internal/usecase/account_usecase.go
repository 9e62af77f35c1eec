package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/tellerledger/internal/domain"
)

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	PerOperationLimit *decimal.Decimal // Checking only; nil uses the default
	MaxWithdrawals    *int             // Checking only; nil uses the default
	CustomerKey       string
	Type              domain.AccountType
}

// AccountSummary is an account listing row.
type AccountSummary struct {
	OwnerName string
	domain.AccountSnapshot
}

// CreateAccount opens an account for an existing customer. Accounts are
// numbered sequentially from 1 and attached to the owner immediately.
func (uc *BankUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (summary AccountSummary, err error) {
	defer func() {
		args := map[string]string{
			"customer_key": input.CustomerKey,
			"type":         string(input.Type),
		}
		if err == nil {
			args["number"] = strconv.Itoa(summary.Number)
		}
		uc.record(ctx, domain.AuditOperationCreateAccount, args, err)
	}()

	accountType, err := domain.ParseAccountType(string(input.Type))
	if err != nil {
		return AccountSummary{}, err
	}
	if accountType == domain.AccountTypeBasic && (input.PerOperationLimit != nil || input.MaxWithdrawals != nil) {
		return AccountSummary{}, fmt.Errorf("%w: withdrawal policy applies to checking accounts only", domain.ErrInvalidAccountType)
	}

	policy := uc.defaultChecking
	if input.PerOperationLimit != nil {
		policy.PerOperationLimit = *input.PerOperationLimit
	}
	if input.MaxWithdrawals != nil {
		policy.MaxWithdrawals = *input.MaxWithdrawals
	}

	err = uc.locks.WriteRegistry(func() error {
		customer, err := uc.customers.GetByKey(ctx, input.CustomerKey)
		if err != nil {
			return err
		}

		number, err := uc.accounts.NextNumber(ctx)
		if err != nil {
			return err
		}

		now := uc.clock.Now()

		var account *domain.Account
		switch accountType {
		case domain.AccountTypeBasic:
			account = domain.NewBasicAccount(number, customer.Key, now)
		case domain.AccountTypeChecking:
			account, err = domain.NewCheckingAccount(number, customer.Key, policy, now)
			if err != nil {
				return err
			}
		}

		if err := uc.accounts.Create(ctx, account); err != nil {
			return err
		}
		if err := customer.AddAccount(account); err != nil {
			return err
		}

		summary = AccountSummary{OwnerName: customer.Name, AccountSnapshot: account.Snapshot()}
		return nil
	})
	if err != nil {
		return AccountSummary{}, err
	}

	uc.logger.Info().
		Str("customer_key", input.CustomerKey).
		Int("account_number", summary.Number).
		Str("type", string(summary.Type)).
		Msg("account created")

	return summary, nil
}

// GetAccount retrieves an account by number.
func (uc *BankUseCase) GetAccount(ctx context.Context, number int) (AccountSummary, error) {
	var summary AccountSummary

	err := uc.locks.ReadRegistry(func() error {
		account, err := uc.accounts.GetByNumber(ctx, number)
		if err != nil {
			return err
		}

		summary, err = uc.summarize(ctx, account)
		return err
	})

	return summary, err
}

// ListAccounts lists every account in opening order.
func (uc *BankUseCase) ListAccounts(ctx context.Context) (summaries []AccountSummary, err error) {
	defer func() {
		uc.record(ctx, domain.AuditOperationListAccounts, map[string]string{
			"count": strconv.Itoa(len(summaries)),
		}, err)
	}()

	err = uc.locks.ReadRegistry(func() error {
		accounts, err := uc.accounts.List(ctx)
		if err != nil {
			return err
		}

		summaries = make([]AccountSummary, 0, len(accounts))
		for _, account := range accounts {
			summary, err := uc.summarize(ctx, account)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// summarize snapshots an account under its lock and resolves the owner.
// Callers hold the registry lock.
func (uc *BankUseCase) summarize(ctx context.Context, account *domain.Account) (AccountSummary, error) {
	var summary AccountSummary
	err := uc.locks.WithAccount(account.Number(), func() error {
		owner, err := uc.customers.GetByKey(ctx, account.OwnerKey())
		if err != nil {
			return err
		}

		summary = AccountSummary{OwnerName: owner.Name, AccountSnapshot: account.Snapshot()}
		return nil
	})

	return summary, err
}
