package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodLock  *MockPeriodLock
	mockStations    *MockStationDirectory
	mockAudit       *MockAuditSink
	mockCache       *MockBalanceCache
	service         portssvc.JournalSvcFacade
	tx              *fakeTx
	now             time.Time
	tenantID        string
	userID          string
	cashAccount     domain.Account
	salesAccount    domain.Account
	parentAccount   domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodLock = new(MockPeriodLock)
	suite.mockStations = new(MockStationDirectory)
	suite.mockAudit = new(MockAuditSink)
	suite.mockCache = new(MockBalanceCache)
	suite.tx = &fakeTx{}
	suite.now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		services.WithPeriodLock(suite.mockPeriodLock),
		services.WithStationDirectory(suite.mockStations),
		services.WithJournalAuditSink(suite.mockAudit),
		services.WithBalanceCacheInvalidation(suite.mockCache),
		services.WithClock(func() time.Time { return suite.now }),
	)

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1111", Name: "Cash on Hand",
		AccountType: domain.Asset, Nature: domain.DebitNature, Level: 4, IsActive: true,
	}
	suite.salesAccount = domain.Account{
		AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "411", Name: "Gasoline Sales",
		AccountType: domain.Revenue, Nature: domain.CreditNature, Level: 3, IsActive: true,
	}
	suite.parentAccount = domain.Account{
		AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "41", Name: "Fuel Sales",
		AccountType: domain.Revenue, Nature: domain.CreditNature, Level: 2, IsActive: true, IsParent: true,
	}
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) createRequest(debit, credit int64) dto.CreateJournalEntryRequest {
	desc := "Shift sales"
	return dto.CreateJournalEntryRequest{
		EntryDate:   dto.NewDate(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)),
		Description: &desc,
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(debit)},
			{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(credit)},
		},
	}
}

func (suite *JournalServiceTestSuite) draftEntry(status domain.JournalStatus) *domain.JournalEntry {
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    suite.tenantID,
		EntryNumber: "JE-2024-000007",
		EntryDate:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalDebit:  decimal.NewFromInt(1000),
		TotalCredit: decimal.NewFromInt(1000),
		Status:      status,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), JournalEntryID: entryID, LineNo: 1, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(1000)},
			{LineID: uuid.NewString(), JournalEntryID: entryID, LineNo: 2, AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(1000)},
		},
	}
}

func (suite *JournalServiceTestSuite) expectAccounts() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID,
		[]string{suite.cashAccount.AccountID, suite.salesAccount.AccountID}).
		Return(map[string]domain.Account{
			suite.cashAccount.AccountID:  suite.cashAccount,
			suite.salesAccount.AccountID: suite.salesAccount,
		}, nil).Once()
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Balanced() {
	ctx := context.Background()
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("NextEntrySequence", mock.Anything, suite.tx, suite.tenantID, 2024).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("InsertEntry", mock.Anything, suite.tx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft && e.EntryNumber == "JE-2024-000001" && len(e.Lines) == 2 &&
			e.Lines[0].LineNo == 1 && e.Lines[1].LineNo == 2 && e.Lines[0].AccountCode == "1111"
	})).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, auditKind(domain.AuditCreate)).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, suite.tenantID, suite.userID, suite.createRequest(1000, 1000))

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-2024-000001", entry.EntryNumber)
	suite.Equal(domain.Draft, entry.Status)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(1000)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(1000)))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Nil(entry.PostedAt)
	for _, l := range entry.Lines {
		suite.Equal(entry.EntryID, l.JournalEntryID)
		suite.NotEmpty(l.LineID)
	}

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, suite.createRequest(1000, 999))

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Contains(err.Error(), "1000")
	suite.Contains(err.Error(), "999")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InvalidLines() {
	testCases := []struct {
		name  string
		lines []dto.JournalLineRequest
	}{
		{
			name:  "single line",
			lines: []dto.JournalLineRequest{{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)}},
		},
		{
			name: "both sides on one line",
			lines: []dto.JournalLineRequest{
				{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
				{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(10)},
			},
		},
		{
			name: "zero line",
			lines: []dto.JournalLineRequest{
				{AccountID: suite.cashAccount.AccountID},
				{AccountID: suite.salesAccount.AccountID},
			},
		},
		{
			name: "negative amount",
			lines: []dto.JournalLineRequest{
				{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(-10)},
				{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(-10)},
			},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.createRequest(1, 1)
			req.Lines = tc.lines
			_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, req)
			suite.True(errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_MissingDate() {
	req := suite.createRequest(10, 10)
	req.EntryDate = dto.Date{}

	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, req)

	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ParentAccountRejected() {
	req := suite.createRequest(500, 500)
	req.Lines[1].AccountID = suite.parentAccount.AccountID
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID,
		[]string{suite.cashAccount.AccountID, suite.parentAccount.AccountID}).
		Return(map[string]domain.Account{
			suite.cashAccount.AccountID:   suite.cashAccount,
			suite.parentAccount.AccountID: suite.parentAccount,
		}, nil).Once()

	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Contains(err.Error(), "missing/inactive/parent accounts")
	suite.Contains(err.Error(), suite.parentAccount.AccountID)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccountRejected() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, mock.Anything).
		Return(map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}, nil).Once()

	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, suite.createRequest(5, 5))

	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Contains(err.Error(), suite.salesAccount.AccountID)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ClosedPeriod() {
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, mock.Anything).Return(&domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		Name:      "March 2024",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		IsClosed:  true,
	}, nil).Once()

	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, suite.createRequest(10, 10))

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrPeriodLocked))
	suite.Contains(err.Error(), "March 2024")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownStation() {
	stationID := uuid.NewString()
	req := suite.createRequest(10, 10)
	req.StationID = &stationID
	suite.expectAccounts()
	suite.mockStations.On("StationExists", mock.Anything, suite.tenantID, stationID).Return(false, nil).Once()

	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, req)

	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.mockStations.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_SequenceFailureRollsBack() {
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, suite.tx).Return(nil).Once()
	suite.mockJournalRepo.On("NextEntrySequence", mock.Anything, suite.tx, suite.tenantID, 2024).
		Return(int64(0), apperrors.ErrRetryable).Once()

	_, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, suite.createRequest(10, 10))

	suite.True(errors.Is(err, apperrors.ErrRetryable))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_AuditFailureDoesNotFail() {
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("NextEntrySequence", mock.Anything, suite.tx, suite.tenantID, 2024).Return(int64(42), nil).Once()
	suite.mockJournalRepo.On("InsertEntry", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	entry, err := suite.service.CreateJournalEntry(context.Background(), suite.tenantID, suite.userID, suite.createRequest(10, 10))

	suite.Require().NoError(err)
	suite.Equal("JE-2024-000042", entry.EntryNumber)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_Draft() {
	draft := suite.draftEntry(domain.Draft)
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, draft.EntryDate).Return(nil, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", mock.Anything, suite.tx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Posted && e.PostedBy != nil && *e.PostedBy == suite.userID && e.PostedAt != nil
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateTenant", mock.Anything, suite.tenantID).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, auditKind(domain.AuditPost)).Return(nil).Once()

	posted, err := suite.service.PostJournalEntry(context.Background(), suite.tenantID, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(suite.now, *posted.PostedAt)
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_NonDraftForbidden() {
	for _, status := range []domain.JournalStatus{domain.Posted, domain.Voided} {
		suite.Run(string(status), func() {
			suite.SetupTest()
			entry := suite.draftEntry(status)
			suite.mockJournalRepo.expectTx(suite.tx)
			suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

			_, err := suite.service.PostJournalEntry(context.Background(), suite.tenantID, entry.EntryID, suite.userID)

			suite.True(errors.Is(err, apperrors.ErrForbidden), "got %v", err)
			suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything, mock.Anything)
			suite.mockCache.AssertNotCalled(suite.T(), "InvalidateTenant", mock.Anything, mock.Anything)
		})
	}
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_NotFound() {
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostJournalEntry(context.Background(), suite.tenantID, "missing", suite.userID)

	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_ClosedPeriod() {
	draft := suite.draftEntry(domain.Draft)
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, draft.EntryDate).
		Return(&domain.AccountingPeriod{Name: "Q1 2024", StartDate: draft.EntryDate, EndDate: draft.EntryDate, IsClosed: true}, nil).Once()

	_, err := suite.service.PostJournalEntry(context.Background(), suite.tenantID, draft.EntryID, suite.userID)

	suite.True(errors.Is(err, apperrors.ErrPeriodLocked))
	suite.Contains(err.Error(), "Q1 2024")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_Posted() {
	posted := suite.draftEntry(domain.Posted)
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, posted.EntryID).Return(posted, nil).Once()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, posted.EntryDate).Return(nil, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", mock.Anything, suite.tx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Voided
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateTenant", mock.Anything, suite.tenantID).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, auditKind(domain.AuditVoid)).Return(nil).Once()

	voided, err := suite.service.VoidJournalEntry(context.Background(), suite.tenantID, posted.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, voided.Status)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_PostedInClosedPeriod() {
	posted := suite.draftEntry(domain.Posted)
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, posted.EntryID).Return(posted, nil).Once()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, posted.EntryDate).
		Return(&domain.AccountingPeriod{Name: "FY 2023", StartDate: posted.EntryDate, EndDate: posted.EntryDate, IsClosed: true}, nil).Once()

	_, err := suite.service.VoidJournalEntry(context.Background(), suite.tenantID, posted.EntryID, suite.userID)

	suite.True(errors.Is(err, apperrors.ErrPeriodLocked))
	suite.Contains(err.Error(), "FY 2023")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "InvalidateTenant", mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_DraftSkipsCache() {
	draft := suite.draftEntry(domain.Draft)
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, auditKind(domain.AuditVoid)).Return(nil).Once()

	_, err := suite.service.VoidJournalEntry(context.Background(), suite.tenantID, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockCache.AssertNotCalled(suite.T(), "InvalidateTenant", mock.Anything, mock.Anything)
	suite.mockPeriodLock.AssertNotCalled(suite.T(), "FindClosedPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_TwiceConflicts() {
	voided := suite.draftEntry(domain.Voided)
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, voided.EntryID).Return(voided, nil).Once()

	_, err := suite.service.VoidJournalEntry(context.Background(), suite.tenantID, voided.EntryID, suite.userID)

	suite.True(errors.Is(err, apperrors.ErrConflict))
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_ReplacesLines() {
	draft := suite.draftEntry(domain.Draft)
	desc := "Corrected"
	req := dto.UpdateJournalEntryRequest{
		Description: &desc,
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(750)},
			{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(750)},
		},
	}
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.expectAccounts()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, draft.EntryDate).Return(nil, nil).Once()
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", mock.Anything, suite.tx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.TotalDebit.Equal(decimal.NewFromInt(750)) && *e.Description == desc
	})).Return(nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", mock.Anything, suite.tx, draft.EntryID, mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 2 && lines[0].JournalEntryID == draft.EntryID && lines[1].Credit.Equal(decimal.NewFromInt(750))
	})).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, auditKind(domain.AuditUpdate)).Return(nil).Once()

	updated, err := suite.service.UpdateJournalEntry(context.Background(), suite.tenantID, draft.EntryID, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(draft.EntryNumber, updated.EntryNumber)
	suite.True(updated.TotalCredit.Equal(decimal.NewFromInt(750)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_HeaderOnlyKeepsLines() {
	draft := suite.draftEntry(domain.Draft)
	desc := "Renamed"
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.mockPeriodLock.On("FindClosedPeriod", mock.Anything, suite.tenantID, draft.EntryDate).Return(nil, nil).Once()
	suite.mockJournalRepo.expectTx(suite.tx)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateJournalEntry(context.Background(), suite.tenantID, draft.EntryID, suite.userID,
		dto.UpdateJournalEntryRequest{Description: &desc})

	suite.Require().NoError(err)
	suite.Len(updated.Lines, 2)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_NonDraftForbidden() {
	posted := suite.draftEntry(domain.Posted)
	desc := "late edit"
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, suite.tenantID, posted.EntryID).Return(posted, nil).Once()

	_, err := suite.service.UpdateJournalEntry(context.Background(), suite.tenantID, posted.EntryID, suite.userID,
		dto.UpdateJournalEntryRequest{Description: &desc})

	suite.True(errors.Is(err, apperrors.ErrForbidden))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry() {
	testCases := []struct {
		name    string
		status  domain.JournalStatus
		wantErr error
	}{
		{name: "draft is soft-deleted", status: domain.Draft},
		{name: "voided is soft-deleted", status: domain.Voided},
		{name: "posted must be voided instead", status: domain.Posted, wantErr: apperrors.ErrForbidden},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			entry := suite.draftEntry(tc.status)
			suite.mockJournalRepo.expectTx(suite.tx)
			suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, suite.tx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()
			if tc.wantErr == nil {
				suite.mockJournalRepo.On("UpdateEntryHeader", mock.Anything, suite.tx, mock.MatchedBy(func(e domain.JournalEntry) bool {
					return e.DeletedAt != nil && e.DeletedBy != nil && *e.DeletedBy == suite.userID && e.Status == tc.status
				})).Return(nil).Once()
				suite.mockAudit.On("Record", mock.Anything, auditKind(domain.AuditSoftDelete)).Return(nil).Once()
			}

			err := suite.service.DeleteJournalEntry(context.Background(), suite.tenantID, entry.EntryID, suite.userID)

			if tc.wantErr != nil {
				suite.True(errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			suite.Require().NoError(err)
			suite.mockJournalRepo.AssertExpectations(suite.T())
			suite.mockAudit.AssertExpectations(suite.T())
		})
	}
}

func (suite *JournalServiceTestSuite) TestListJournalEntries() {
	status := "posted"
	params := dto.ListJournalEntriesParams{Status: &status, Limit: 2}
	postedStatus := domain.Posted
	entries := []domain.JournalEntry{*suite.draftEntry(domain.Posted), *suite.draftEntry(domain.Posted)}
	suite.mockJournalRepo.On("ListEntries", mock.Anything, suite.tenantID, domain.JournalFilter{Status: &postedStatus}, 2, (*string)(nil)).
		Return(entries, "next-page", nil).Once()

	resp, err := suite.service.ListJournalEntries(context.Background(), suite.tenantID, params)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_UnknownStatus() {
	status := "archived"

	_, err := suite.service.ListJournalEntries(context.Background(), suite.tenantID, dto.ListJournalEntriesParams{Status: &status})

	suite.True(errors.Is(err, apperrors.ErrValidation))
}
