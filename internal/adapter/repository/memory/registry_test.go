package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tellerledger/internal/domain"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func mustCustomer(t *testing.T, key string) *domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(key, "Customer "+key, time.Time{}, "", now)
	require.NoError(t, err)
	return c
}

func TestCustomerRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistry().Customers()

	require.NoError(t, repo.Create(ctx, mustCustomer(t, "111")))
	require.NoError(t, repo.Create(ctx, mustCustomer(t, "222")))

	err := repo.Create(ctx, mustCustomer(t, "111"))
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey), "got %v", err)

	got, err := repo.GetByKey(ctx, "222")
	require.NoError(t, err)
	assert.Equal(t, "Customer 222", got.Name)

	_, err = repo.GetByKey(ctx, "333")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestAccountRepository_SequentialNumbering(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()
	customers := registry.Customers()
	accounts := registry.Accounts()

	require.NoError(t, customers.Create(ctx, mustCustomer(t, "111")))

	for want := 1; want <= 3; want++ {
		n, err := accounts.NextNumber(ctx)
		require.NoError(t, err)
		require.Equal(t, want, n)
		require.NoError(t, accounts.Create(ctx, domain.NewBasicAccount(n, "111", now)))
	}

	err := accounts.Create(ctx, domain.NewBasicAccount(7, "111", now))
	assert.Error(t, err)

	got, err := accounts.GetByNumber(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Number())

	_, err = accounts.GetByNumber(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = accounts.GetByNumber(ctx, 4)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	list, err := accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestAccountRepository_RequiresRegisteredOwner(t *testing.T) {
	ctx := context.Background()
	accounts := NewRegistry().Accounts()

	err := accounts.Create(ctx, domain.NewBasicAccount(1, "999", now))
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
