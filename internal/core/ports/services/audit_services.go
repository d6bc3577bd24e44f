package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// AuditService reads the tamper-evident audit chain back.
type AuditService interface {
	// VerifyAuditChain re-hashes the tenant's whole chain, oldest record first.
	VerifyAuditChain(ctx context.Context, tenantID string) (*domain.AuditChainReport, error)
}
