package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/audit"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

type auditService struct {
	BaseService
	store portsrepo.AuditStore
}

// NewAuditService creates an AuditService over the stored chain.
func NewAuditService(store portsrepo.AuditStore) portssvc.AuditService {
	return &auditService{store: store}
}

func (s *auditService) VerifyAuditChain(ctx context.Context, tenantID string) (*domain.AuditChainReport, error) {
	records, err := s.store.ListAuditRecords(ctx, tenantID, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit chain", slog.String("tenant_id", tenantID))
		return nil, err
	}

	report := &domain.AuditChainReport{Records: len(records), Intact: true}
	if n := len(records); n > 0 {
		report.HeadHash = records[n-1].Hash
	}
	if broken := audit.VerifyChain(records); broken >= 0 {
		report.Intact = false
		report.BrokenAt = &broken
		report.BrokenRecordID = &records[broken].RecordID
		s.GetLogger(ctx).Warn("Audit chain is broken",
			slog.String("tenant_id", tenantID),
			slog.Int("position", broken),
			slog.String("record_id", records[broken].RecordID))
		return report, nil
	}

	s.LogDebug(ctx, "Audit chain verified", slog.String("tenant_id", tenantID), slog.Int("records", len(records)))
	return report, nil
}
