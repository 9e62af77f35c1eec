package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// AuditTimeout bounds a single audit sink call
	AuditTimeout = 5 * time.Second
)
