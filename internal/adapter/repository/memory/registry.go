// Package memory keeps the customer and account registry in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/tellerledger/internal/domain"
)

// Registry holds the ordered customer and account lists.
type Registry struct {
	mu        sync.RWMutex
	customers []*domain.Customer
	accounts  []*domain.Account
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Customers returns the customer repository view of the registry.
func (r *Registry) Customers() *CustomerRepository {
	return &CustomerRepository{registry: r}
}

// Accounts returns the account repository view of the registry.
func (r *Registry) Accounts() *AccountRepository {
	return &AccountRepository{registry: r}
}

// findCustomer scans customers by key. Callers hold r.mu.
func (r *Registry) findCustomer(key string) *domain.Customer {
	for _, c := range r.customers {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	registry *Registry
}

// Create appends a customer, rejecting duplicate keys.
func (c *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r := c.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findCustomer(customer.Key) != nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, customer.Key)
	}

	r.customers = append(r.customers, customer)
	return nil
}

// GetByKey finds a customer by key.
func (c *CustomerRepository) GetByKey(ctx context.Context, key string) (*domain.Customer, error) {
	r := c.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer := r.findCustomer(key)
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	registry *Registry
}

// NextNumber returns len(accounts)+1.
func (a *AccountRepository) NextNumber(ctx context.Context) (int, error) {
	r := a.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts) + 1, nil
}

// Create appends an account. Its number must be the next sequential
// number and its owner must be registered.
func (a *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r := a.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findCustomer(account.OwnerKey()) == nil {
		return domain.ErrCustomerNotFound
	}

	if want := len(r.accounts) + 1; account.Number() != want {
		return fmt.Errorf("account number %d out of sequence, expected %d", account.Number(), want)
	}

	r.accounts = append(r.accounts, account)
	return nil
}

// GetByNumber finds an account by number.
func (a *AccountRepository) GetByNumber(ctx context.Context, number int) (*domain.Account, error) {
	r := a.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	if number < 1 || number > len(r.accounts) {
		return nil, domain.ErrAccountNotFound
	}
	return r.accounts[number-1], nil
}

// List returns accounts in opening order.
func (a *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	r := a.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}
