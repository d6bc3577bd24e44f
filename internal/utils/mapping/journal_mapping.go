package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TenantID:      d.TenantID,
		StationID:     d.StationID,
		EntryNumber:   d.EntryNumber,
		EntryDate:     domain.DateOnly(d.EntryDate),
		Description:   d.Description,
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		TotalDebit:    d.TotalDebit,
		TotalCredit:   d.TotalCredit,
		Status:        string(d.Status),
		PostedBy:      d.PostedBy,
		PostedAt:      d.PostedAt,
		DeletedBy:     d.DeletedBy,
		DeletedAt:     d.DeletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TenantID:      m.TenantID,
		StationID:     m.StationID,
		EntryNumber:   m.EntryNumber,
		EntryDate:     domain.DateOnly(m.EntryDate),
		Description:   m.Description,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		TotalDebit:    m.TotalDebit,
		TotalCredit:   m.TotalCredit,
		Status:        domain.JournalStatus(m.Status),
		PostedBy:      m.PostedBy,
		PostedAt:      m.PostedAt,
		DeletedBy:     m.DeletedBy,
		DeletedAt:     m.DeletedAt,
		Lines:         ToDomainJournalEntryLineSlice(lines),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		AccountCode:    d.AccountCode,
		AccountName:    d.AccountName,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Description:    d.Description,
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
		AccountCode:    m.AccountCode,
		AccountName:    m.AccountName,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Description:    m.Description,
	}
}

// ToDomainJournalEntryLineSlice converts model lines to domain lines. A nil
// input yields an empty slice so entries always serialise a lines array.
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}

// ToDomainPostedLine converts a model PostedLine to a domain PostedLine
func ToDomainPostedLine(m models.PostedLine) domain.PostedLine {
	return domain.PostedLine{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        domain.DateOnly(m.EntryDate),
		EntryDescription: m.EntryDescription,
		LineNo:           m.LineNo,
		AccountID:        m.AccountID,
		Debit:            m.Debit,
		Credit:           m.Credit,
		Description:      m.Description,
	}
}

// ToDomainAccountTotals converts a model AccountTotals to a domain AccountTotals
func ToDomainAccountTotals(m models.AccountTotals) domain.AccountTotals {
	return domain.AccountTotals{AccountID: m.AccountID, Debit: m.Debit, Credit: m.Credit}
}
