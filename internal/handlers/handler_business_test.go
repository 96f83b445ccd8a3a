package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type BusinessHandlerTestSuite struct {
	handlerSuite
}

func (s *BusinessHandlerTestSuite) TestCreateBusiness_Success() {
	created := &domain.Business{BusinessID: "biz-1", Name: "Corner Shop", AuditFields: testAudit()}
	s.mockBusiness.On("CreateBusiness", anyCtx, dto.CreateBusinessRequest{Name: "Corner Shop"}, s.userID).
		Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/businesses", `{"name":"Corner Shop"}`)

	s.Equal(http.StatusCreated, w.Code)
	var body dto.BusinessResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("biz-1", body.BusinessID)
	s.Equal("Corner Shop", body.Name)
	s.Equal("user-1", body.CreatedBy)
}

func (s *BusinessHandlerTestSuite) TestCreateBusiness_BindError() {
	w := s.do(http.MethodPost, "/api/v1/businesses", `{}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockBusiness.AssertNotCalled(s.T(), "CreateBusiness")
}

func (s *BusinessHandlerTestSuite) TestCreateBusiness_ValidationMessagePassedThrough() {
	s.mockBusiness.On("CreateBusiness", anyCtx, dto.CreateBusinessRequest{Name: "x"}, s.userID).
		Return(nil, fmt.Errorf("create business: %w", apperrors.NewValidationError("name", "name must be at least 2 characters"))).Once()

	w := s.do(http.MethodPost, "/api/v1/businesses", `{"name":"x"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"name: name must be at least 2 characters"}`, w.Body.String())
}

func (s *BusinessHandlerTestSuite) TestListBusinesses() {
	s.mockBusiness.On("ListBusinesses", anyCtx, s.userID).Return([]domain.Business{
		{BusinessID: "biz-1", Name: "A Shop", AuditFields: testAudit()},
		{BusinessID: "biz-2", Name: "B Shop", AuditFields: testAudit()},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses", "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ListBusinessesResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Businesses, 2)
	s.Equal("biz-2", body.Businesses[1].BusinessID)
}

func (s *BusinessHandlerTestSuite) TestGetBusiness_NotFound() {
	s.mockBusiness.On("GetBusiness", anyCtx, "missing", s.userID).
		Return(nil, apperrors.NotFoundf("business %s", "missing")).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/missing", "")

	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"Business not found"}`, w.Body.String())
}

func (s *BusinessHandlerTestSuite) TestUpdateBusiness() {
	updated := &domain.Business{BusinessID: "biz-1", Name: "Renamed", AuditFields: testAudit()}
	s.mockBusiness.On("UpdateBusiness", anyCtx, "biz-1", dto.UpdateBusinessRequest{Name: "Renamed"}, s.userID).
		Return(updated, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/businesses/biz-1", `{"name":"Renamed"}`)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"name":"Renamed"`)
}

func (s *BusinessHandlerTestSuite) TestDeleteBusiness() {
	s.mockBusiness.On("DeleteBusiness", anyCtx, "biz-1", s.userID).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/businesses/biz-1", "")

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *BusinessHandlerTestSuite) TestInternalErrorIsNotLeaked() {
	s.mockBusiness.On("DeleteBusiness", anyCtx, "biz-1", s.userID).
		Return(apperrors.NewAppError(500, "failed to delete business", errors.New("pq: connection reset"))).Once()

	w := s.do(http.MethodDelete, "/api/v1/businesses/biz-1", "")

	s.Equal(http.StatusInternalServerError, w.Code)
	s.JSONEq(`{"error":"Failed to delete business"}`, w.Body.String())
}

func (s *BusinessHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockBusiness.AssertNotCalled(s.T(), "ListBusinesses")
}

func (s *BusinessHandlerTestSuite) TestUnauthorizedServiceErrorIs401() {
	s.mockBusiness.On("GetBusiness", anyCtx, "biz-1", s.userID).
		Return(nil, fmt.Errorf("get business: %w", apperrors.ErrUnauthorized)).Once()

	w := s.do(http.MethodGet, "/api/v1/businesses/biz-1", "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.JSONEq(`{"error":"Unauthorized"}`, w.Body.String())
}

func TestBusinessHandler(t *testing.T) {
	suite.Run(t, new(BusinessHandlerTestSuite))
}
