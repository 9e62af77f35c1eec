package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/tellerledger/internal/domain"
)

// DBTX is the subset of pgxpool.Pool the repository uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const insertAuditLog = `
	INSERT INTO audit_logs (
		id, operation, arguments, outcome, error_message, request_id, created_at
	) VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7)
`

// AuditRepository stores audit records in the audit_logs table.
type AuditRepository struct {
	db      DBTX
	retrier *Retrier
}

// NewAuditRepository creates a new audit repository. A nil retrier
// executes each insert once.
func NewAuditRepository(db DBTX, retrier *Retrier) *AuditRepository {
	return &AuditRepository{db: db, retrier: retrier}
}

// Record implements usecase.AuditSink.
func (r *AuditRepository) Record(ctx context.Context, record *domain.AuditRecord) error {
	id := record.ID
	if id == "" {
		id = uuid.New().String()
	}

	arguments := record.Arguments
	if arguments == nil {
		arguments = map[string]string{}
	}
	argsJSON, err := json.Marshal(arguments)
	if err != nil {
		return fmt.Errorf("marshal audit arguments: %w", err)
	}

	insert := func() error {
		_, err := r.db.Exec(ctx, insertAuditLog,
			id,
			string(record.Operation),
			argsJSON,
			record.Outcome,
			nullable(record.Error),
			nullable(record.RequestID),
			record.At,
		)
		return err
	}

	if r.retrier != nil {
		err = r.retrier.Retry(ctx, insert)
	} else {
		err = insert()
	}
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
