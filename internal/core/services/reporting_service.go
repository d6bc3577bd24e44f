package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultJournalBookLimit = 20
	maxJournalBookLimit     = 100
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	balanceCache  portssvc.BalanceCache
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithBalanceCache puts a read-through cache in front of AccountBalance.
func WithBalanceCache(cache portssvc.BalanceCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.balanceCache = cache
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report for [start, end]
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, start, end time.Time) (*domain.TrialBalanceReport, error) {
	start, end, err := normalizeWindow(start, end)
	if err != nil {
		return nil, err
	}

	leaves, totals, err := s.leafTotals(ctx, tenantID, domain.LineFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		StartDate:   start,
		EndDate:     end,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range leaves {
		t, ok := totals[acc.AccountID]
		if !ok || !hasActivity(t) {
			continue
		}
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Nature:      acc.Nature,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     acc.Nature.Signed(t.Debit, t.Credit),
		})
		report.TotalDebit = report.TotalDebit.Add(t.Debit)
		report.TotalCredit = report.TotalCredit.Add(t.Credit)
	}
	report.IsBalanced = accounting.WithinReportTolerance(report.TotalDebit, report.TotalCredit)

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("tenant_id", tenantID),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// IncomeStatement generates revenue, expenses and net income for [start, end]
func (s *reportingService) IncomeStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.IncomeStatementReport, error) {
	start, end, err := normalizeWindow(start, end)
	if err != nil {
		return nil, err
	}

	leaves, totals, err := s.leafTotals(ctx, tenantID, domain.LineFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	report := &domain.IncomeStatementReport{
		StartDate: start,
		EndDate:   end,
		Revenue:   []domain.StatementLine{},
		Expenses:  []domain.StatementLine{},
	}
	for _, acc := range leaves {
		t, ok := totals[acc.AccountID]
		if !ok || !hasActivity(t) {
			continue
		}
		switch acc.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, statementLine(acc, domain.CreditNature.Signed(t.Debit, t.Credit)))
		case domain.Expense:
			report.Expenses = append(report.Expenses, statementLine(acc, domain.DebitNature.Signed(t.Debit, t.Credit)))
		}
	}
	report.TotalRevenue = accounting.SumPositive(report.Revenue)
	report.TotalExpenses = accounting.SumPositive(report.Expenses)
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("tenant_id", tenantID),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

// BalanceSheet generates the cumulative position as of a date. Section totals
// use the section's normal side, so contra accounts reduce their section.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	asOf = domain.DateOnly(asOf)

	leaves, totals, err := s.leafTotals(ctx, tenantID, domain.LineFilter{To: &asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOfDate:         asOf,
		Assets:           []domain.StatementLine{},
		Liabilities:      []domain.StatementLine{},
		Equity:           []domain.StatementLine{},
		CurrentEarnings:  decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, acc := range leaves {
		t, ok := totals[acc.AccountID]
		if !ok || !hasActivity(t) {
			continue
		}
		line := statementLine(acc, acc.Nature.Signed(t.Debit, t.Credit))
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(domain.DebitNature.Signed(t.Debit, t.Credit))
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(domain.CreditNature.Signed(t.Debit, t.Credit))
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(domain.CreditNature.Signed(t.Debit, t.Credit))
		case domain.Revenue, domain.Expense:
			report.CurrentEarnings = report.CurrentEarnings.Add(domain.CreditNature.Signed(t.Debit, t.Credit))
		}
	}
	report.TotalEquity = report.TotalEquity.Add(report.CurrentEarnings)
	report.IsBalanced = accounting.WithinReportTolerance(report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity))

	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("tenant_id", tenantID),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}
	return report, nil
}

// GeneralLedger walks one account's posted lines with a running balance
func (s *reportingService) GeneralLedger(ctx context.Context, tenantID, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error) {
	start, end, err := normalizeWindow(start, end)
	if err != nil {
		return nil, err
	}

	acc, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.reportingRepo.SumPostedLines(ctx, tenantID, domain.LineFilter{
		AccountIDs: []string{accountID},
		Before:     &start,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum opening balance", slog.String("account_id", accountID))
		return nil, err
	}
	openingBalance := decimal.Zero
	for _, t := range opening {
		openingBalance = openingBalance.Add(acc.Nature.Signed(t.Debit, t.Credit))
	}

	lines, err := s.reportingRepo.ListPostedLines(ctx, tenantID, domain.LineFilter{
		AccountIDs: []string{accountID},
		From:       &start,
		To:         &end,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted lines", slog.String("account_id", accountID))
		return nil, err
	}

	report := &domain.GeneralLedgerReport{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		Nature:         acc.Nature,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: openingBalance,
		Lines:          make([]domain.LedgerLine, 0, len(lines)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	running := openingBalance
	for _, l := range lines {
		running = running.Add(acc.Nature.Signed(l.Debit, l.Credit))
		description := l.Description
		if description == nil {
			description = l.EntryDescription
		}
		report.Lines = append(report.Lines, domain.LedgerLine{
			EntryID:     l.EntryID,
			EntryNumber: l.EntryNumber,
			EntryDate:   l.EntryDate,
			Description: description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Balance:     running,
		})
		report.TotalDebit = report.TotalDebit.Add(l.Debit)
		report.TotalCredit = report.TotalCredit.Add(l.Credit)
	}
	report.ClosingBalance = running

	s.LogDebug(ctx, "General ledger generated",
		slog.String("account_id", accountID),
		slog.Int("line_count", len(report.Lines)))
	return report, nil
}

// AccountStatement is the general ledger of one account
func (s *reportingService) AccountStatement(ctx context.Context, tenantID, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error) {
	return s.GeneralLedger(ctx, tenantID, accountID, start, end)
}

// JournalBook pages through posted entries ordered by date and number
func (s *reportingService) JournalBook(ctx context.Context, tenantID string, start, end time.Time, page, limit int) (*domain.JournalBook, error) {
	start, end, err := normalizeWindow(start, end)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = defaultJournalBookLimit
	case limit > maxJournalBookLimit:
		limit = maxJournalBookLimit
	}

	entries, total, err := s.reportingRepo.ListPostedEntries(ctx, tenantID, start, end, limit, (page-1)*limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted entries", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}

	return &domain.JournalBook{
		Data:       entries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// AccountBalance returns an account's signed balance as of a date
func (s *reportingService) AccountBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, error) {
	asOf = domain.DateOnly(asOf)

	acc, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	// cacheable stays false when the generation is unknown, so nothing is
	// written that a concurrent invalidation could miss.
	var generation int64
	cacheable := false
	if s.balanceCache != nil {
		cached, gen, err := s.balanceCache.GetBalance(ctx, tenantID, accountID, asOf)
		switch {
		case err != nil:
			s.LogError(ctx, err, "Balance cache read failed", slog.String("account_id", accountID))
		case cached != nil:
			return cached, nil
		default:
			generation, cacheable = gen, true
		}
	}

	totals, err := s.reportingRepo.SumPostedLines(ctx, tenantID, domain.LineFilter{
		AccountIDs: []string{accountID},
		To:         &asOf,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account balance", slog.String("account_id", accountID))
		return nil, err
	}

	balance := domain.AccountBalance{
		AccountID: accountID,
		AsOfDate:  asOf,
		Debit:     decimal.Zero,
		Credit:    decimal.Zero,
	}
	for _, t := range totals {
		balance.Debit = balance.Debit.Add(t.Debit)
		balance.Credit = balance.Credit.Add(t.Credit)
	}
	balance.Balance = acc.Nature.Signed(balance.Debit, balance.Credit)

	if cacheable {
		if err := s.balanceCache.SetBalance(ctx, tenantID, generation, balance); err != nil {
			s.LogError(ctx, err, "Balance cache write failed", slog.String("account_id", accountID))
		}
	}
	return &balance, nil
}

// leafTotals loads the tenant's leaf accounts ordered by code together with
// their posted totals under filter, keyed by account id.
func (s *reportingService) leafTotals(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.Account, map[string]domain.AccountTotals, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, domain.AccountFilter{LeafOnly: true})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for report", slog.String("tenant_id", tenantID))
		return nil, nil, err
	}
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })

	sums, err := s.reportingRepo.SumPostedLines(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate posted lines", slog.String("tenant_id", tenantID))
		return nil, nil, err
	}
	totals := make(map[string]domain.AccountTotals, len(sums))
	for _, t := range sums {
		totals[t.AccountID] = t
	}
	return accounts, totals, nil
}

func normalizeWindow(start, end time.Time) (time.Time, time.Time, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return start, end, fmt.Errorf("%w: end date %s is before start date %s", apperrors.ErrValidation,
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return start, end, nil
}

func hasActivity(t domain.AccountTotals) bool {
	return !t.Debit.IsZero() || !t.Credit.IsZero()
}

func statementLine(acc domain.Account, balance decimal.Decimal) domain.StatementLine {
	return domain.StatementLine{
		AccountID: acc.AccountID,
		Code:      acc.Code,
		Name:      acc.Name,
		Balance:   balance,
	}
}
