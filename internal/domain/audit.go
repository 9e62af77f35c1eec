package domain

import (
	"time"
)

// AuditRecord describes one completed core operation for audit sinks.
type AuditRecord struct {
	At        time.Time
	Arguments map[string]string
	ID        string
	Operation AuditOperation
	Outcome   string // Outcome code, see OutcomeCode
	Error     string // Error text for rejected or failed calls
	RequestID string
}

// AuditOperation names an auditable core operation.
type AuditOperation string

const (
	AuditOperationCreateCustomer AuditOperation = "create_customer"
	AuditOperationCreateAccount  AuditOperation = "create_account"
	AuditOperationDeposit        AuditOperation = "deposit"
	AuditOperationWithdraw       AuditOperation = "withdraw"
	AuditOperationStatement      AuditOperation = "statement"
	AuditOperationListAccounts   AuditOperation = "list_accounts"
)

// Succeeded reports whether the audited call was applied.
func (r *AuditRecord) Succeeded() bool {
	return r.Outcome == OutcomeApplied
}
