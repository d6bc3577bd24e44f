package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReportingRepository reads posted ledger history. Only lines whose entry is
// posted and not soft-deleted are visible.
type ReportingRepository interface {
	// SumPostedLines aggregates debit and credit per account.
	SumPostedLines(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.AccountTotals, error)

	// ListPostedLines returns lines ordered by entry date, entry number and line number.
	ListPostedLines(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.PostedLine, error)

	// ListPostedEntries returns one page of posted entries in [from, to] with
	// their lines, and the total number of matching entries.
	ListPostedEntries(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]domain.JournalEntry, int, error)
}
