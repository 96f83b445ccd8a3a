package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CounterpartyHandlerTestSuite struct {
	handlerSuite
}

func (s *CounterpartyHandlerTestSuite) counterparty(role domain.CounterpartyRole, balance domain.Money) *domain.Counterparty {
	return &domain.Counterparty{
		CounterpartyID: "cp-1",
		BusinessID:     "biz-1",
		Role:           role,
		Name:           "Asha Traders",
		PhoneNumber:    "9876543210",
		Balance:        balance,
		AuditFields:    testAudit(),
	}
}

func (s *CounterpartyHandlerTestSuite) TestCreateCustomer() {
	req := dto.CreateCounterpartyRequest{Name: "Asha Traders", PhoneNumber: "9876543210"}
	s.mockCounterpart.On("CreateCounterparty", anyCtx, "biz-1", domain.RoleCustomer, req, s.userID).
		Return(s.counterparty(domain.RoleCustomer, 0), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/businesses/biz-1/customers", `{"name":"Asha Traders","phoneNumber":"9876543210"}`)

	s.Equal(http.StatusCreated, w.Code)
	var body dto.CounterpartyResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(domain.RoleCustomer, body.Role)
	s.True(body.Balance.IsZero())
}

func (s *CounterpartyHandlerTestSuite) TestCreateSupplierUsesSupplierRole() {
	req := dto.CreateCounterpartyRequest{Name: "Asha Traders", PhoneNumber: "9876543210"}
	s.mockCounterpart.On("CreateCounterparty", anyCtx, "biz-1", domain.RoleSupplier, req, s.userID).
		Return(s.counterparty(domain.RoleSupplier, 0), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/businesses/biz-1/suppliers", `{"name":"Asha Traders","phoneNumber":"9876543210"}`)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"role":"SUPPLIER"`)
}

func (s *CounterpartyHandlerTestSuite) TestCreateRejectsBadPhone() {
	for _, phone := range []string{"12345", "98765432101", "98765abcde"} {
		w := s.do(http.MethodPost, "/api/v1/businesses/biz-1/customers", `{"name":"Asha","phoneNumber":"`+phone+`"}`)
		s.Equal(http.StatusBadRequest, w.Code, phone)
	}
	s.mockCounterpart.AssertNotCalled(s.T(), "CreateCounterparty")
}

func (s *CounterpartyHandlerTestSuite) TestListWithSearch() {
	s.mockCounterpart.On("ListCounterparties", anyCtx, "biz-1", domain.RoleCustomer, dto.ListCounterpartiesParams{Search: "asha"}, s.userID).
		Return([]domain.Counterparty{*s.counterparty(domain.RoleCustomer, -10000)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/customers?search=asha", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ListCounterpartiesResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Counterparties, 1)
	s.True(body.Counterparties[0].Balance.Equal(decimal.NewFromInt(-100)))
}

func (s *CounterpartyHandlerTestSuite) TestGetWrongRoleIsNotFound() {
	s.mockCounterpart.On("GetCounterparty", anyCtx, "biz-1", domain.RoleSupplier, "cp-1", s.userID).
		Return(nil, apperrors.NotFoundf("supplier cp-1")).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/suppliers/cp-1", "")

	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"Supplier not found"}`, w.Body.String())
}

func (s *CounterpartyHandlerTestSuite) TestUpdateProfile() {
	name := "Asha & Sons"
	s.mockCounterpart.On("UpdateCounterparty", anyCtx, "biz-1", domain.RoleCustomer, "cp-1", dto.UpdateCounterpartyRequest{Name: &name}, s.userID).
		Return(s.counterparty(domain.RoleCustomer, 2500), nil).Once()

	w := s.do(http.MethodPut, "/api/v1/businesses/biz-1/customers/cp-1", `{"name":"Asha & Sons"}`)

	s.Equal(http.StatusOK, w.Code)
}

func (s *CounterpartyHandlerTestSuite) TestDeleteReportsRemovedTransactions() {
	s.mockCounterpart.On("DeleteCounterparty", anyCtx, "biz-1", domain.RoleCustomer, "cp-1", s.userID).
		Return(int64(3), nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/businesses/biz-1/customers/cp-1", "")

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"deletedTransactions":3}`, w.Body.String())
}

func (s *CounterpartyHandlerTestSuite) TestStatement() {
	cp := s.counterparty(domain.RoleCustomer, -6000)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	txn := domain.Transaction{
		TransactionID: "t-1", BusinessID: "biz-1", Type: domain.TransactionIn, Amount: 6000,
		CustomerID: "cp-1", Date: day, Category: domain.RoleCustomer, PaymentMode: domain.PaymentCash,
		AuditFields: testAudit(),
	}
	s.mockCounterpart.On("GetCounterpartyStatement", anyCtx, "biz-1", domain.RoleCustomer, "cp-1", s.userID).
		Return(&domain.CounterpartyStatement{
			Counterparty:   *cp,
			Entries:        []domain.StatementEntry{{Transaction: txn, RunningBalance: -6000}},
			ClosingBalance: -6000,
		}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/customers/cp-1/statement", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.CounterpartyStatementResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Entries, 1)
	s.True(body.Entries[0].RunningBalance.Equal(decimal.NewFromInt(-60)))
	s.True(body.ClosingBalance.Equal(decimal.NewFromInt(-60)))
	s.Equal("t-1", body.Entries[0].Transaction.TransactionID)
}

func TestCounterpartyHandler(t *testing.T) {
	suite.Run(t, new(CounterpartyHandlerTestSuite))
}
