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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	handlerSuite
}

func sampleTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "t-1",
		BusinessID:    "biz-1",
		Type:          domain.TransactionIn,
		Amount:        10050,
		CustomerID:    "cp-1",
		Description:   "March rent",
		Date:          time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		Category:      domain.RoleCustomer,
		PaymentMode:   domain.PaymentOnline,
		AuditFields:   testAudit(),
	}
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction() {
	s.mockTransaction.On("CreateTransaction", anyCtx, "biz-1",
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Type == domain.TransactionIn &&
				req.Amount.Equal(decimal.RequireFromString("100.50")) &&
				req.CustomerID == "cp-1" &&
				req.PaymentMode == domain.PaymentOnline &&
				req.Date == nil
		}),
		s.userID,
	).Return(sampleTransaction(), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/businesses/biz-1/transactions",
		`{"type":"IN","amount":"100.50","customerId":"cp-1","description":"March rent","paymentMode":"ONLINE"}`)

	s.Equal(http.StatusCreated, w.Code)
	var body dto.TransactionResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("t-1", body.TransactionID)
	s.True(body.Amount.Equal(decimal.RequireFromString("100.50")))
	s.Equal("cp-1", body.CustomerID)
	s.Empty(body.SupplierID)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_MissingType() {
	w := s.do(http.MethodPost, "/api/v1/businesses/biz-1/transactions", `{"amount":10,"customerId":"cp-1"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockTransaction.AssertNotCalled(s.T(), "CreateTransaction")
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_UnknownCounterparty() {
	s.mockTransaction.On("CreateTransaction", anyCtx, "biz-1", mock.Anything, s.userID).
		Return(nil, apperrors.NotFoundf("customer %s", "ghost")).Once()

	w := s.do(http.MethodPost, "/api/v1/businesses/biz-1/transactions", `{"type":"OUT","amount":5,"customerId":"ghost"}`)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_PassesQuery() {
	expected := dto.ListTransactionsParams{
		Limit:       2,
		NextToken:   "abc",
		Type:        "IN",
		From:        "2024-03-01",
		PaymentMode: "CASH",
	}
	s.mockTransaction.On("ListTransactions", anyCtx, "biz-1", expected, s.userID).
		Return(&dto.ListTransactionsResponse{
			Transactions: dto.ToTransactionResponses([]domain.Transaction{*sampleTransaction()}),
			NextToken:    "def",
		}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/transactions?limit=2&nextToken=abc&type=IN&from=2024-03-01&paymentMode=CASH", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ListTransactionsResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Transactions, 1)
	s.Equal("def", body.NextToken)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_BadLimit() {
	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/transactions?limit=lots", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockTransaction.AssertNotCalled(s.T(), "ListTransactions")
}

func (s *TransactionHandlerTestSuite) TestListTransactions_InvalidToken() {
	s.mockTransaction.On("ListTransactions", anyCtx, "biz-1", mock.Anything, s.userID).
		Return(nil, apperrors.NewValidationError("nextToken", "invalid pagination token")).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/transactions?nextToken=garbage", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"nextToken: invalid pagination token"}`, w.Body.String())
}

func (s *TransactionHandlerTestSuite) TestUpdateTransaction() {
	s.mockTransaction.On("UpdateTransaction", anyCtx, "biz-1", "t-1",
		mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
			return req.Type != nil && *req.Type == domain.TransactionOut && req.Amount == nil && req.CustomerID == nil
		}),
		s.userID,
	).Return(sampleTransaction(), nil).Once()

	w := s.do(http.MethodPatch, "/api/v1/businesses/biz-1/transactions/t-1", `{"type":"OUT"}`)

	s.Equal(http.StatusOK, w.Code)
}

func (s *TransactionHandlerTestSuite) TestDeleteTwice() {
	s.mockTransaction.On("DeleteTransaction", anyCtx, "biz-1", "t-1", s.userID).Return(nil).Once()
	s.mockTransaction.On("DeleteTransaction", anyCtx, "biz-1", "t-1", s.userID).
		Return(apperrors.NotFoundf("transaction t-1")).Once()

	first := s.do(http.MethodDelete, "/api/v1/businesses/biz-1/transactions/t-1", "")
	second := s.do(http.MethodDelete, "/api/v1/businesses/biz-1/transactions/t-1", "")

	s.Equal(http.StatusNoContent, first.Code)
	s.Equal(http.StatusNotFound, second.Code)
	s.JSONEq(`{"error":"Transaction not found"}`, second.Body.String())
}

func (s *TransactionHandlerTestSuite) TestGetTransaction() {
	s.mockTransaction.On("GetTransaction", anyCtx, "biz-1", "t-1", s.userID).Return(sampleTransaction(), nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1/transactions/t-1", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"paymentMode":"ONLINE"`)
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
