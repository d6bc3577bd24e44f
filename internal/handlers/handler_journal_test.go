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

func sampleEntry(status domain.JournalStatus) *domain.JournalEntry {
	now := time.Now().UTC()
	amount := decimal.NewFromInt(250)
	return &domain.JournalEntry{
		EntryID:     "je-1",
		TenantID:    testTenant,
		EntryNumber: "JE-2024-000001",
		EntryDate:   day(2024, time.February, 10),
		TotalDebit:  amount,
		TotalCredit: amount,
		Status:      status,
		Lines: []domain.JournalEntryLine{
			{LineID: "l1", JournalEntryID: "je-1", LineNo: 1, AccountID: "acc-fuel", Debit: amount, Credit: decimal.Zero},
			{LineID: "l2", JournalEntryID: "je-1", LineNo: 2, AccountID: "acc-cash", Debit: decimal.Zero, Credit: amount},
		},
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: testUser, LastUpdatedAt: now, LastUpdatedBy: testUser},
	}
}

func balancedEntryBody() map[string]interface{} {
	return map[string]interface{}{
		"entryDate":   "2024-02-10",
		"description": "Fuel purchase",
		"lines": []map[string]interface{}{
			{"accountId": "acc-fuel", "debit": 250, "credit": 0},
			{"accountId": "acc-cash", "debit": 0, "credit": 250},
		},
	}
}

func (s *handlerSuite) TestCreateJournalEntry_Created() {
	s.journals.On("CreateJournalEntry", mock.Anything, testTenant, testUser,
		mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
			return r.EntryDate.Format(dto.DateLayout) == "2024-02-10" && len(r.Lines) == 2 &&
				r.Lines[0].Debit.Equal(decimal.NewFromInt(250))
		}),
	).Return(sampleEntry(domain.Draft), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody())

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("JE-2024-000001", resp.EntryNumber)
	s.Equal(domain.Draft, resp.Status)
	s.Len(resp.Lines, 2)
}

func (s *handlerSuite) TestCreateJournalEntry_Unbalanced() {
	s.journals.On("CreateJournalEntry", mock.Anything, testTenant, testUser, mock.Anything).
		Return(nil, fmt.Errorf("%w: entry is not balanced", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody())
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w), "not balanced")
}

func (s *handlerSuite) TestCreateJournalEntry_ClosedPeriod() {
	s.journals.On("CreateJournalEntry", mock.Anything, testTenant, testUser, mock.Anything).
		Return(nil, fmt.Errorf("%w: 2024-02-10 is in January-February", apperrors.ErrPeriodLocked)).Once()

	w := s.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody())
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *handlerSuite) TestCreateJournalEntry_MalformedBody() {
	w := s.do(http.MethodPost, "/api/v1/journal-entries", `{"entryDate":"10/02/2024","lines":[]}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestListJournalEntries() {
	token := "next-page"
	s.journals.On("ListJournalEntries", mock.Anything, testTenant,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Limit == 5 && p.Status != nil && *p.Status == "posted"
		}),
	).Return(&dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses([]domain.JournalEntry{*sampleEntry(domain.Posted)}),
		NextToken: &token,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journal-entries?status=posted&limit=5", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Entries, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal(token, *resp.NextToken)
}

func (s *handlerSuite) TestListJournalEntries_RejectsUnknownStatus() {
	w := s.do(http.MethodGet, "/api/v1/journal-entries?status=archived", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestUpdateJournalEntry_NotDraft() {
	s.journals.On("UpdateJournalEntry", mock.Anything, testTenant, "je-1", testUser, mock.Anything).
		Return(nil, fmt.Errorf("%w: only draft entries can be edited", apperrors.ErrForbidden)).Once()

	w := s.do(http.MethodPut, "/api/v1/journal-entries/je-1", map[string]interface{}{"description": "late fix"})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *handlerSuite) TestPostJournalEntry() {
	s.journals.On("PostJournalEntry", mock.Anything, testTenant, "je-1", testUser).
		Return(sampleEntry(domain.Posted), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journal-entries/je-1/post", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.Posted, resp.Status)
}

func (s *handlerSuite) TestVoidJournalEntry_AlreadyVoided() {
	s.journals.On("VoidJournalEntry", mock.Anything, testTenant, "je-1", testUser).
		Return(nil, fmt.Errorf("%w: entry je-1 is already voided", apperrors.ErrConflict)).Once()

	w := s.do(http.MethodPost, "/api/v1/journal-entries/je-1/void", nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *handlerSuite) TestDeleteJournalEntry() {
	s.journals.On("DeleteJournalEntry", mock.Anything, testTenant, "je-1", testUser).Return(nil).Once()
	s.journals.On("DeleteJournalEntry", mock.Anything, testTenant, "je-2", testUser).
		Return(fmt.Errorf("%w: posted entries must be voided", apperrors.ErrForbidden)).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/journal-entries/je-1", nil).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/journal-entries/je-2", nil).Code)
}

func (s *handlerSuite) TestGetJournalEntry_RetryableIsConflict() {
	s.journals.On("GetJournalEntry", mock.Anything, testTenant, "je-1").
		Return(nil, fmt.Errorf("%w: deadlock detected", apperrors.ErrRetryable)).Once()

	w := s.do(http.MethodGet, "/api/v1/journal-entries/je-1", nil)
	s.Equal(http.StatusConflict, w.Code)
}
