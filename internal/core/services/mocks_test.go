package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a live transaction; mocks never call through it.
type fakeTx struct {
	pgx.Tx
}

// --- Mock TransactionManager ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx wires a successful Begin/Commit pair. Rollback is always deferred.
func (m *mockTxManager) expectTx(tx pgx.Tx) {
	m.On("Begin", mock.Anything).Return(tx, nil).Once()
	m.On("Commit", mock.Anything, tx).Return(nil).Maybe()
	m.On("Rollback", mock.Anything, tx).Return(nil).Maybe()
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mockTxManager
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountChildren(ctx context.Context, tenantID, accountID string) (int, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) HasJournalLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tx pgx.Tx, tenantID, accountID string) error {
	args := m.Called(ctx, tx, tenantID, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) SetIsParent(ctx context.Context, tx pgx.Tx, tenantID, accountID string, isParent bool, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, accountID, isParent, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateLevels(ctx context.Context, tx pgx.Tx, tenantID string, levels map[string]int, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, levels, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountChildrenInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (int, error) {
	args := m.Called(ctx, tx, tenantID, accountID)
	return args.Int(0), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mockTxManager
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) NextEntrySequence(ctx context.Context, tx pgx.Tx, tenantID string, year int) (int64, error) {
	args := m.Called(ctx, tx, tenantID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryHeader(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, tx, entryID, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SumPostedLines(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

func (m *MockReportingRepository) ListPostedLines(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.PostedLine, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

func (m *MockReportingRepository) ListPostedEntries(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]domain.JournalEntry, int, error) {
	args := m.Called(ctx, tenantID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Int(1), args.Error(2)
}

// --- Mock collaborators ---
type MockPeriodLock struct {
	mock.Mock
}

var _ portssvc.PeriodLock = (*MockPeriodLock)(nil)

func (m *MockPeriodLock) FindClosedPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

type MockStationDirectory struct {
	mock.Mock
}

var _ portssvc.StationDirectory = (*MockStationDirectory)(nil)

func (m *MockStationDirectory) StationExists(ctx context.Context, tenantID, stationID string) (bool, error) {
	args := m.Called(ctx, tenantID, stationID)
	return args.Bool(0), args.Error(1)
}

type MockAuditSink struct {
	mock.Mock
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

func (m *MockAuditSink) Record(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockAuditStore struct {
	mock.Mock
}

var _ portsrepo.AuditStore = (*MockAuditStore)(nil)

func (m *MockAuditStore) LastAuditHash(ctx context.Context, tenantID string) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

func (m *MockAuditStore) AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditStore) ListAuditRecords(ctx context.Context, tenantID string, limit int) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

type MockBalanceCache struct {
	mock.Mock
}

var _ portssvc.BalanceCache = (*MockBalanceCache)(nil)

func (m *MockBalanceCache) GetBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, int64, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*domain.AccountBalance), args.Get(1).(int64), args.Error(2)
}

func (m *MockBalanceCache) SetBalance(ctx context.Context, tenantID string, generation int64, balance domain.AccountBalance) error {
	args := m.Called(ctx, tenantID, generation, balance)
	return args.Error(0)
}

func (m *MockBalanceCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// auditKind matches an audit event by kind.
func auditKind(kind domain.AuditKind) interface{} {
	return mock.MatchedBy(func(e domain.AuditEvent) bool { return e.Kind == kind })
}
