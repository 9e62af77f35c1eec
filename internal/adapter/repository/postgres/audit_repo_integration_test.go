//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tellerledger/internal/domain"
	infrapg "github.com/iho/tellerledger/internal/infrastructure/postgres"
)

// Run with AUDIT_DATABASE_URL pointing at a disposable database:
//
//	go test -tags integration ./internal/adapter/repository/postgres/...
func TestAuditRepository_Integration(t *testing.T) {
	dbURL := os.Getenv("AUDIT_DATABASE_URL")
	if dbURL == "" {
		t.Skip("AUDIT_DATABASE_URL not set")
	}

	require.NoError(t, infrapg.NewMigrator(dbURL, "../../../../migrations", zerolog.Nop()).Up())

	ctx := context.Background()
	pool, err := infrapg.NewPool(ctx, dbURL, 2, 1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewAuditRepository(pool, NewRetrier(zerolog.Nop()))
	id := NewULIDGenerator().Generate()

	err = repo.Record(ctx, &domain.AuditRecord{
		ID:        id,
		Operation: domain.AuditOperationWithdraw,
		Arguments: map[string]string{"customer_key": "111", "amount": "900.00"},
		Outcome:   domain.OutcomeInsufficientFunds,
		Error:     domain.ErrInsufficientFunds.Error(),
		RequestID: "req-1",
		At:        time.Now().UTC(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DELETE FROM audit_logs WHERE id = $1", id)
	})

	var (
		outcome string
		amount  string
	)
	err = pool.QueryRow(ctx,
		"SELECT outcome, arguments->>'amount' FROM audit_logs WHERE id = $1", id,
	).Scan(&outcome, &amount)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeInsufficientFunds, outcome)
	assert.Equal(t, "900.00", amount)
}
