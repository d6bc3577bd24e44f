package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals is the aggregate of posted debit and credit amounts on one account.
type AccountTotals struct {
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// PostedLine is a journal line joined with its posted entry's header fields.
type PostedLine struct {
	EntryID          string          `json:"entryId"`
	EntryNumber      string          `json:"entryNumber"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription *string         `json:"entryDescription,omitempty"`
	LineNo           int             `json:"lineNo"`
	AccountID        string          `json:"accountId"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      *string         `json:"description,omitempty"`
}

// LineFilter selects posted lines. From and To are inclusive, Before is exclusive.
type LineFilter struct {
	AccountIDs []string
	From       *time.Time
	To         *time.Time
	Before     *time.Time
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"type"`
	Nature      AccountNature   `json:"nature"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceReport lists every leaf account with activity in the window.
type TrialBalanceReport struct {
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// StatementLine is an account with its signed balance in a financial statement.
type StatementLine struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// IncomeStatementReport covers revenue and expenses in a date window.
type IncomeStatementReport struct {
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Revenue       []StatementLine `json:"revenue"`
	Expenses      []StatementLine `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport is the cumulative position as of a date. CurrentEarnings
// is revenue minus expenses since inception and is included in TotalEquity.
type BalanceSheetReport struct {
	AsOfDate         time.Time       `json:"asOfDate"`
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Equity           []StatementLine `json:"equity"`
	CurrentEarnings  decimal.Decimal `json:"currentEarnings"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// LedgerLine is one posted line in a general ledger walk.
type LedgerLine struct {
	EntryID     string          `json:"entryId"`
	EntryNumber string          `json:"entryNumber"`
	EntryDate   time.Time       `json:"entryDate"`
	Description *string         `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// GeneralLedgerReport is the running-balance history of one account.
type GeneralLedgerReport struct {
	AccountID      string          `json:"accountId"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Nature         AccountNature   `json:"nature"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// JournalBook is one page of posted entries with their lines.
type JournalBook struct {
	Data       []JournalEntry `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// AccountBalance is the signed cumulative balance of an account as of a date.
type AccountBalance struct {
	AccountID string          `json:"accountId"`
	AsOfDate  time.Time       `json:"asOfDate"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}
