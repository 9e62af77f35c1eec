package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/tellerledger/internal/domain"
)

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	BirthDate time.Time
	Key       string
	Name      string
	Address   string
}

// CreateCustomer registers a new customer. The key must not already exist.
func (uc *BankUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (snap domain.CustomerSnapshot, err error) {
	defer func() {
		uc.record(ctx, domain.AuditOperationCreateCustomer, map[string]string{
			"key":        input.Key,
			"name":       input.Name,
			"birth_date": input.BirthDate.Format(time.DateOnly),
			"address":    input.Address,
		}, err)
	}()

	customer, err := domain.NewCustomer(
		strings.TrimSpace(input.Key),
		strings.TrimSpace(input.Name),
		input.BirthDate,
		strings.TrimSpace(input.Address),
		uc.clock.Now(),
	)
	if err != nil {
		return domain.CustomerSnapshot{}, err
	}

	err = uc.locks.WriteRegistry(func() error {
		return uc.customers.Create(ctx, customer)
	})
	if err != nil {
		return domain.CustomerSnapshot{}, err
	}

	uc.logger.Info().Str("customer_key", customer.Key).Msg("customer created")

	return customer.Snapshot(), nil
}

// GetCustomer retrieves a customer by key.
func (uc *BankUseCase) GetCustomer(ctx context.Context, key string) (domain.CustomerSnapshot, error) {
	var snap domain.CustomerSnapshot

	err := uc.locks.ReadRegistry(func() error {
		customer, err := uc.customers.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		snap = customer.Snapshot()
		return nil
	})

	return snap, err
}
