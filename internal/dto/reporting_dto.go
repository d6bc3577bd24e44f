package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodQuery is an inclusive [start, end] date window.
type PeriodQuery struct {
	StartDate time.Time `form:"start" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end" time_format:"2006-01-02" binding:"required,gtefield=StartDate"`
}

// AsOfQuery selects a single cut-off date.
type AsOfQuery struct {
	AsOfDate time.Time `form:"asOfDate" time_format:"2006-01-02" binding:"required"`
}

// GeneralLedgerQuery selects an account and an inclusive date window.
type GeneralLedgerQuery struct {
	AccountID string    `form:"accountId" binding:"required"`
	StartDate time.Time `form:"start" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end" time_format:"2006-01-02" binding:"required,gtefield=StartDate"`
}

// JournalBookQuery selects one page of posted entries in a date window.
type JournalBookQuery struct {
	StartDate time.Time `form:"start" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end" time_format:"2006-01-02" binding:"required,gtefield=StartDate"`
	Page      int       `form:"page,default=1" binding:"min=1"`
	Limit     int       `form:"limit,default=20" binding:"min=1,max=100"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	StartDate  Date                      `json:"startDate"`
	EndDate    Date                      `json:"endDate"`
	Rows       []TrialBalanceRowResponse `json:"rows"`
	IsBalanced bool                      `json:"isBalanced"`
	Totals     struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	response := TrialBalanceResponse{
		StartDate:  NewDate(report.StartDate),
		EndDate:    NewDate(report.EndDate),
		Rows:       make([]TrialBalanceRowResponse, len(report.Rows)),
		IsBalanced: report.IsBalanced,
	}
	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.Name,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	response.Totals.Debit = report.TotalDebit
	response.Totals.Credit = report.TotalCredit
	return response
}

// JournalBookResponse is a page of posted entries.
type JournalBookResponse struct {
	Data       []JournalEntryResponse `json:"data"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// ToJournalBookResponse converts a domain journal book page to its DTO.
func ToJournalBookResponse(book *domain.JournalBook) JournalBookResponse {
	return JournalBookResponse{
		Data:       ToJournalEntryResponses(book.Data),
		Total:      book.Total,
		Page:       book.Page,
		Limit:      book.Limit,
		TotalPages: book.TotalPages,
	}
}
