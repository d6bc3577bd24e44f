package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "draft"
	Posted JournalStatus = "posted"
	Voided JournalStatus = "voided"
)

// IsValid reports whether s is a known status.
func (s JournalStatus) IsValid() bool {
	switch s {
	case Draft, Posted, Voided:
		return true
	}
	return false
}

// JournalEntry is a balanced set of debit and credit lines recorded on one date.
type JournalEntry struct {
	EntryID       string             `json:"id"`
	TenantID      string             `json:"tenantId"`
	StationID     *string            `json:"stationId,omitempty"`
	EntryNumber   string             `json:"entryNumber"`
	EntryDate     time.Time          `json:"entryDate"`
	Description   *string            `json:"description,omitempty"`
	ReferenceType *string            `json:"referenceType,omitempty"`
	ReferenceID   *string            `json:"referenceId,omitempty"`
	TotalDebit    decimal.Decimal    `json:"totalDebit"`
	TotalCredit   decimal.Decimal    `json:"totalCredit"`
	Status        JournalStatus      `json:"status"`
	PostedBy      *string            `json:"postedBy,omitempty"`
	PostedAt      *time.Time         `json:"postedAt,omitempty"`
	DeletedBy     *string            `json:"deletedBy,omitempty"`
	DeletedAt     *time.Time         `json:"deletedAt,omitempty"`
	Lines         []JournalEntryLine `json:"lines"`
	AuditFields
}

// JournalEntryLine is one side of a journal entry against a single leaf account.
type JournalEntryLine struct {
	LineID         string          `json:"id"`
	JournalEntryID string          `json:"journalEntryId"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountId"`
	AccountCode    string          `json:"accountCode,omitempty"`
	AccountName    string          `json:"accountName,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    *string         `json:"description,omitempty"`
}

// JournalFilter narrows journal entry listings. Nil fields are not applied.
type JournalFilter struct {
	Status    *JournalStatus
	StationID *string
	From      *time.Time
	To        *time.Time
}

const entryNumberFormat = "JE-%04d-%06d"

// FormatEntryNumber renders the tenant-scoped entry number for a year and sequence.
func FormatEntryNumber(year int, seq int64) string {
	return fmt.Sprintf(entryNumberFormat, year, seq)
}
