package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

func (s *handlerSuite) TestVerifyAuditChain_Intact() {
	s.audit.On("VerifyAuditChain", mock.Anything, testTenant).
		Return(&domain.AuditChainReport{Records: 3, Intact: true, HeadHash: "abc"}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/audit/verify", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp domain.AuditChainReport
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Intact)
	s.Equal(3, resp.Records)
	s.Nil(resp.BrokenAt)
}

func (s *handlerSuite) TestVerifyAuditChain_Broken() {
	at, id := 1, "rec-2"
	s.audit.On("VerifyAuditChain", mock.Anything, testTenant).
		Return(&domain.AuditChainReport{Records: 3, Intact: false, BrokenAt: &at, BrokenRecordID: &id}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/audit/verify", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp domain.AuditChainReport
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Intact)
	s.Require().NotNil(resp.BrokenAt)
	s.Equal(1, *resp.BrokenAt)
	s.Equal("rec-2", *resp.BrokenRecordID)
}

func (s *handlerSuite) TestVerifyAuditChain_StoreFailureHidden() {
	s.audit.On("VerifyAuditChain", mock.Anything, testTenant).
		Return(nil, errors.New("pg: connection reset")).Once()

	w := s.do(http.MethodGet, "/api/v1/audit/verify", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to verify audit chain", s.errorBody(w))
}

func (s *handlerSuite) TestForeignIssuerRejected() {
	claims := middleware.Claims{
		TenantID: testTenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "another-ledger",
			Subject:   testUser,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit/verify", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.audit.AssertNotCalled(s.T(), "VerifyAuditChain", mock.Anything, mock.Anything)
}
