package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	TenantID      string          `db:"tenant_id"`
	StationID     *string         `db:"station_id"`
	EntryNumber   string          `db:"entry_number"`
	EntryDate     time.Time       `db:"entry_date"`
	Description   *string         `db:"description"`
	ReferenceType *string         `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	TotalDebit    decimal.Decimal `db:"total_debit"`
	TotalCredit   decimal.Decimal `db:"total_credit"`
	Status        string          `db:"status"`
	PostedBy      *string         `db:"posted_by"`
	PostedAt      *time.Time      `db:"posted_at"`
	DeletedBy     *string         `db:"deleted_by"`
	DeletedAt     *time.Time      `db:"deleted_at"`
	AuditFields
}

// JournalEntryLine is a row of journal_entry_lines joined with the account's code and name.
type JournalEntryLine struct {
	LineID         string          `db:"line_id"`
	JournalEntryID string          `db:"entry_id"`
	LineNo         int             `db:"line_no"`
	AccountID      string          `db:"account_id"`
	AccountCode    string          `db:"account_code"`
	AccountName    string          `db:"account_name"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Description    *string         `db:"description"`
}

// PostedLine is a line of a posted entry joined with its header.
type PostedLine struct {
	EntryID          string          `db:"entry_id"`
	EntryNumber      string          `db:"entry_number"`
	EntryDate        time.Time       `db:"entry_date"`
	EntryDescription *string         `db:"entry_description"`
	LineNo           int             `db:"line_no"`
	AccountID        string          `db:"account_id"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	Description      *string         `db:"description"`
}

// AccountTotals is one row of a per-account debit/credit aggregate.
type AccountTotals struct {
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
}
