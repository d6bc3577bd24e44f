package mapping

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelAuditFields converts the row stamps of an account or journal entry.
// Timestamps are truncated to the microsecond precision timestamptz keeps.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt.UTC().Truncate(time.Microsecond),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt.UTC().Truncate(time.Microsecond),
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts stored row stamps back, normalised to UTC
// whatever session time zone the row was read in.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt.UTC(),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelAuditRecord converts a domain AuditRecord to a model AuditRecord
func ToModelAuditRecord(d domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		RecordID:     d.RecordID,
		TenantID:     d.TenantID,
		Kind:         string(d.Kind),
		UserID:       d.UserID,
		EntityType:   d.EntityType,
		EntityID:     d.EntityID,
		Payload:      d.Payload,
		PreviousHash: d.PreviousHash,
		Hash:         d.Hash,
		RecordedAt:   d.RecordedAt,
	}
}

// ToDomainAuditRecord converts a model AuditRecord to a domain AuditRecord
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		RecordID:     m.RecordID,
		TenantID:     m.TenantID,
		Kind:         domain.AuditKind(m.Kind),
		UserID:       m.UserID,
		EntityType:   m.EntityType,
		EntityID:     m.EntityID,
		Payload:      m.Payload,
		PreviousHash: m.PreviousHash,
		Hash:         m.Hash,
		RecordedAt:   m.RecordedAt.UTC(),
	}
}
