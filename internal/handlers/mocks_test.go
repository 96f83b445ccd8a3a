package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/SscSPs/cashbook_app/internal/handlers"
	"github.com/SscSPs/cashbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BusinessService ---
type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) GetBusiness(ctx context.Context, businessID string, userID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) ListBusinesses(ctx context.Context, userID string) ([]domain.Business, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}
func (m *MockBusinessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, userID string) (*domain.Business, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) UpdateBusiness(ctx context.Context, businessID string, req dto.UpdateBusinessRequest, userID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) DeleteBusiness(ctx context.Context, businessID string, userID string) error {
	args := m.Called(ctx, businessID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

// --- Mock CounterpartyService ---
type MockCounterpartyService struct {
	mock.Mock
}

func (m *MockCounterpartyService) GetCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, businessID, role, counterpartyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}
func (m *MockCounterpartyService) ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, params dto.ListCounterpartiesParams, userID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, businessID, role, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}
func (m *MockCounterpartyService) GetCounterpartyStatement(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (*domain.CounterpartyStatement, error) {
	args := m.Called(ctx, businessID, role, counterpartyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CounterpartyStatement), args.Error(1)
}
func (m *MockCounterpartyService) CreateCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, businessID, role, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}
func (m *MockCounterpartyService) UpdateCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, businessID, role, counterpartyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}
func (m *MockCounterpartyService) DeleteCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (int64, error) {
	args := m.Called(ctx, businessID, role, counterpartyID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CounterpartySvcFacade = (*MockCounterpartyService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, businessID string, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, businessID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, businessID, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, businessID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, businessID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, businessID string, transactionID string, userID string) error {
	args := m.Called(ctx, businessID, transactionID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock AnalyticsService ---
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetMonthlyAnalytics(ctx context.Context, businessID string, userID string) ([]domain.MonthlyAnalytics, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAnalytics), args.Error(1)
}
func (m *MockAnalyticsService) VerifyBalances(ctx context.Context, businessID string, userID string) ([]domain.BalanceMismatch, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceMismatch), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AnalyticsSvcFacade = (*MockAnalyticsService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) GetLedgerExport(ctx context.Context, businessID string, userID string) (*domain.LedgerExport, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerExport), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExportSvc = (*MockExportService)(nil)

// --- Shared suite plumbing ---

// handlerSuite wires every route group against mocks behind the real AuthMiddleware.
type handlerSuite struct {
	suite.Suite
	router          *gin.Engine
	jwtSecret       string
	userID          string
	mockBusiness    *MockBusinessService
	mockCounterpart *MockCounterpartyService
	mockTransaction *MockTransactionService
	mockAnalytics   *MockAnalyticsService
	mockExport      *MockExportService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.userID = "user-1"

	s.mockBusiness = new(MockBusinessService)
	s.mockCounterpart = new(MockCounterpartyService)
	s.mockTransaction = new(MockTransactionService)
	s.mockAnalytics = new(MockAnalyticsService)
	s.mockExport = new(MockExportService)

	v1 := s.router.Group("/api/v1", middleware.AuthMiddleware(s.jwtSecret, ""))
	handlers.RegisterBusinessRoutes(v1, s.mockBusiness)
	business := v1.Group("/businesses/:business_id")
	handlers.RegisterCounterpartyRoutes(business, s.mockCounterpart)
	handlers.RegisterTransactionRoutes(business, s.mockTransaction)
	handlers.RegisterAnalyticsRoutes(business, s.mockAnalytics, s.mockExport)
}

func (s *handlerSuite) TearDownTest() {
	s.mockBusiness.AssertExpectations(s.T())
	s.mockCounterpart.AssertExpectations(s.T())
	s.mockTransaction.AssertExpectations(s.T())
	s.mockAnalytics.AssertExpectations(s.T())
	s.mockExport.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for userID.
func (s *handlerSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cashbook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request and returns the recorder.
func (s *handlerSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.generateTestToken(s.userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

var anyCtx = mock.Anything

func testAudit() domain.AuditFields {
	return domain.NewAuditFields("user-1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
}
