package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReportingService defines read-only financial reports derived from posted lines
type ReportingService interface {
	// TrialBalance sums posted activity per leaf account over [start, end].
	TrialBalance(ctx context.Context, tenantID string, start, end time.Time) (*domain.TrialBalanceReport, error)

	// IncomeStatement reports revenue, expenses and net income over [start, end].
	IncomeStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.IncomeStatementReport, error)

	// BalanceSheet reports the cumulative position as of a date.
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GeneralLedger walks one account's posted lines with a running balance.
	GeneralLedger(ctx context.Context, tenantID, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error)

	// AccountStatement is the general ledger of one account.
	AccountStatement(ctx context.Context, tenantID, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error)

	// JournalBook pages through posted entries ordered by date and number.
	JournalBook(ctx context.Context, tenantID string, start, end time.Time, page, limit int) (*domain.JournalBook, error)

	// AccountBalance returns an account's signed balance as of a date.
	AccountBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, error)
}
