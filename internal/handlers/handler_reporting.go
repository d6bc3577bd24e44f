package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	RegisterValidators()
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/account-statement", h.getAccountStatement)
		reportingGroup.GET("/journal-book", h.getJournalBook)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Sums posted activity per leaf account over an inclusive date window
// @Tags reports
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, q.StartDate, q.EndDate)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	if !report.IsBalanced {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Trial balance is out of balance",
			slog.String("debit", report.TotalDebit.String()), slog.String("credit", report.TotalCredit.String()))
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue, expenses and net income over an inclusive date window
// @Tags reports
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), tenantID, q.StartDate, q.EndDate)
	if err != nil {
		respondError(c, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Cumulative assets, liabilities and equity (with current earnings) as of a date
// @Tags reports
// @Produce json
// @Param asOfDate query string true "Cut-off date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var q dto.AsOfQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, q.AsOfDate)
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getGeneralLedger godoc
// @Summary Generate general ledger for an account
// @Description Posted lines of one account with opening, running and closing balances
// @Tags reports
// @Produce json
// @Param accountId query string true "Account ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	h.ledgerReport(c, h.reportingService.GeneralLedger)
}

// getAccountStatement godoc
// @Summary Generate account statement
// @Description Same as the general ledger of the account
// @Tags reports
// @Produce json
// @Param accountId query string true "Account ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/account-statement [get]
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	h.ledgerReport(c, h.reportingService.AccountStatement)
}

func (h *reportingHandler) ledgerReport(c *gin.Context, build func(ctx context.Context, tenantID, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error)) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var q dto.GeneralLedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	report, err := build(c.Request.Context(), tenantID, q.AccountID, q.StartDate, q.EndDate)
	if err != nil {
		respondError(c, err, "Failed to generate general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getJournalBook godoc
// @Summary Generate journal book
// @Description One page of posted entries with their lines, ordered by date and entry number
// @Tags reports
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.JournalBookResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/journal-book [get]
func (h *reportingHandler) getJournalBook(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var q dto.JournalBookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	book, err := h.reportingService.JournalBook(c.Request.Context(), tenantID, q.StartDate, q.EndDate, q.Page, q.Limit)
	if err != nil {
		respondError(c, err, "Failed to generate journal book")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalBookResponse(book))
}
