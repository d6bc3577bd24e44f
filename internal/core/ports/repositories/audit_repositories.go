package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// AuditStore persists hash-chained audit records.
type AuditStore interface {
	// LastAuditHash returns the hash of the tenant's newest record, or "" when there is none.
	LastAuditHash(ctx context.Context, tenantID string) (string, error)

	// AppendAuditRecord stores a record.
	AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error

	// ListAuditRecords returns the tenant's records oldest first.
	ListAuditRecords(ctx context.Context, tenantID string, limit int) ([]domain.AuditRecord, error)
}
