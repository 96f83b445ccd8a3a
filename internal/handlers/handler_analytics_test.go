package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnalyticsHandlerTestSuite struct {
	handlerSuite
}

func (s *AnalyticsHandlerTestSuite) TestMonthlyAnalytics() {
	s.mockAnalytics.On("GetMonthlyAnalytics", anyCtx, "biz-1", s.userID).Return([]domain.MonthlyAnalytics{
		{Month: "2024-01", TotalIn: 10000, TotalOut: 0, Balance: 10000},
		{Month: "2024-02", TotalIn: 0, TotalOut: 3000, Balance: -3000},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/analytics/monthly", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ListMonthlyAnalyticsResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("biz-1", body.BusinessID)
	s.Require().Len(body.Months, 2)
	s.Equal("2024-02", body.Months[1].Month)
	s.True(body.Months[1].Balance.Equal(decimal.NewFromInt(-30)))
}

func (s *AnalyticsHandlerTestSuite) TestVerifyBalances_Consistent() {
	s.mockAnalytics.On("VerifyBalances", anyCtx, "biz-1", s.userID).Return([]domain.BalanceMismatch{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/balances/verify", "")

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"consistent":true,"mismatches":[]}`, w.Body.String())
}

func (s *AnalyticsHandlerTestSuite) TestVerifyBalances_Drift() {
	s.mockAnalytics.On("VerifyBalances", anyCtx, "biz-1", s.userID).Return([]domain.BalanceMismatch{
		{CounterpartyID: "cp-1", Role: domain.RoleCustomer, Name: "Asha", Stored: 100, Computed: 0},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/balances/verify", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.VerifyBalancesResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.False(body.Consistent)
	s.Require().Len(body.Mismatches, 1)
	s.Equal("cp-1", body.Mismatches[0].CounterpartyID)
}

func (s *AnalyticsHandlerTestSuite) TestExport() {
	generated := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	s.mockExport.On("GetLedgerExport", anyCtx, "biz-1", s.userID).Return(&domain.LedgerExport{
		Business:      domain.Business{BusinessID: "biz-1", Name: "Corner Shop", AuditFields: testAudit()},
		Transactions:  []domain.Transaction{*sampleTransaction()},
		CustomerNames: map[string]string{"cp-1": "Asha"},
		SupplierNames: map[string]string{},
		GeneratedAt:   generated,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/export", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.LedgerExportResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("Corner Shop", body.Business.Name)
	s.Len(body.Transactions, 1)
	s.Equal("Asha", body.CustomerNames["cp-1"])
	s.True(generated.Equal(body.GeneratedAt))
}

func TestAnalyticsHandler(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerTestSuite))
}
