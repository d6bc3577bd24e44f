package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *handlerSuite) TestTrialBalance() {
	report := &domain.TrialBalanceReport{
		StartDate: day(2024, time.January, 1),
		EndDate:   day(2024, time.January, 31),
		Rows: []domain.TrialBalanceRow{
			{AccountID: "acc-cash", Code: "1110", Name: "Cash", AccountType: domain.Asset, Nature: domain.DebitNature,
				Debit: decimal.NewFromInt(500), Credit: decimal.Zero, Balance: decimal.NewFromInt(500)},
			{AccountID: "acc-sales", Code: "4100", Name: "Sales", AccountType: domain.Revenue, Nature: domain.CreditNature,
				Debit: decimal.Zero, Credit: decimal.NewFromInt(500), Balance: decimal.NewFromInt(500)},
		},
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
		IsBalanced:  true,
	}
	s.reporting.On("TrialBalance", mock.Anything, testTenant, onDay("2024-01-01"), onDay("2024-01-31")).
		Return(report, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/trial-balance?start=2024-01-01&end=2024-01-31", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.IsBalanced)
	s.Len(resp.Rows, 2)
	s.Equal("4100", resp.Rows[1].Code)
	s.True(resp.Totals.Credit.Equal(decimal.NewFromInt(500)))
}

func (s *handlerSuite) TestTrialBalance_EndBeforeStart() {
	w := s.do(http.MethodGet, "/api/v1/reports/trial-balance?start=2024-02-01&end=2024-01-01", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestIncomeStatement() {
	s.reporting.On("IncomeStatement", mock.Anything, testTenant, onDay("2024-01-01"), onDay("2024-12-31")).
		Return(&domain.IncomeStatementReport{NetIncome: decimal.NewFromInt(1200)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/income-statement?start=2024-01-01&end=2024-12-31", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp domain.IncomeStatementReport
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.NetIncome.Equal(decimal.NewFromInt(1200)))
}

func (s *handlerSuite) TestBalanceSheet() {
	s.reporting.On("BalanceSheet", mock.Anything, testTenant, onDay("2024-06-30")).
		Return(&domain.BalanceSheetReport{IsBalanced: true}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOfDate=2024-06-30", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *handlerSuite) TestGeneralLedger_UnknownAccount() {
	s.reporting.On("GeneralLedger", mock.Anything, testTenant, "missing", onDay("2024-01-01"), onDay("2024-01-31")).
		Return(nil, fmt.Errorf("%w: account missing", apperrors.ErrNotFound)).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/general-ledger?accountId=missing&start=2024-01-01&end=2024-01-31", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *handlerSuite) TestAccountStatement() {
	s.reporting.On("AccountStatement", mock.Anything, testTenant, "acc-cash", onDay("2024-01-01"), onDay("2024-01-31")).
		Return(&domain.GeneralLedgerReport{AccountID: "acc-cash", ClosingBalance: decimal.NewFromInt(75)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/account-statement?accountId=acc-cash&start=2024-01-01&end=2024-01-31", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp domain.GeneralLedgerReport
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.ClosingBalance.Equal(decimal.NewFromInt(75)))
}

func (s *handlerSuite) TestGeneralLedger_MissingAccount() {
	w := s.do(http.MethodGet, "/api/v1/reports/general-ledger?start=2024-01-01&end=2024-01-31", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestJournalBook_DefaultsPaging() {
	s.reporting.On("JournalBook", mock.Anything, testTenant, onDay("2024-01-01"), onDay("2024-01-31"), 1, 20).
		Return(&domain.JournalBook{
			Data:       []domain.JournalEntry{*sampleEntry(domain.Posted)},
			Total:      1,
			Page:       1,
			Limit:      20,
			TotalPages: 1,
		}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/journal-book?start=2024-01-01&end=2024-01-31", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.JournalBookResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Total)
	s.Len(resp.Data, 1)
	s.Len(resp.Data[0].Lines, 2)
}

func (s *handlerSuite) TestJournalBook_LimitTooLarge() {
	w := s.do(http.MethodGet, "/api/v1/reports/journal-book?start=2024-01-01&end=2024-01-31&limit=500", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}
