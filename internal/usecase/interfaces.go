package usecase

import (
	"context"
	"time"

	"github.com/iho/tellerledger/internal/domain"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByKey(ctx context.Context, key string) (*domain.Customer, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// NextNumber returns the number the next created account will receive.
	NextNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, account *domain.Account) error
	GetByNumber(ctx context.Context, number int) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// AuditSink observes the outcome of every core operation.
// It must never influence the operation result.
type AuditSink interface {
	Record(ctx context.Context, record *domain.AuditRecord) error
}

// Clock supplies the reference time for transactions.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key so the request can be retried.
	Delete(ctx context.Context, key string) error
}
