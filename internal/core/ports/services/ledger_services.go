package services

import (
	"context"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/SscSPs/cashbook_app/internal/dto"
)

// BusinessReaderSvc defines read operations for businesses.
type BusinessReaderSvc interface {
	// GetBusiness returns a business owned by userID. Businesses of other users are reported as not found.
	GetBusiness(ctx context.Context, businessID string, userID string) (*domain.Business, error)

	// ListBusinesses lists the businesses owned by userID.
	ListBusinesses(ctx context.Context, userID string) ([]domain.Business, error)
}

// BusinessWriterSvc defines write operations for businesses.
type BusinessWriterSvc interface {
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, userID string) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, businessID string, req dto.UpdateBusinessRequest, userID string) (*domain.Business, error)

	// DeleteBusiness removes the business with all its counterparties and transactions.
	DeleteBusiness(ctx context.Context, businessID string, userID string) error
}

// BusinessSvcFacade combines all business-related service interfaces
type BusinessSvcFacade interface {
	BusinessReaderSvc
	BusinessWriterSvc
}

// CounterpartyReaderSvc defines read operations for customers and suppliers.
type CounterpartyReaderSvc interface {
	GetCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, params dto.ListCounterpartiesParams, userID string) ([]domain.Counterparty, error)

	// GetCounterpartyStatement returns the counterparty's transactions oldest first with running balances.
	GetCounterpartyStatement(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (*domain.CounterpartyStatement, error)
}

// CounterpartyWriterSvc defines write operations for customers and suppliers.
type CounterpartyWriterSvc interface {
	CreateCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error)

	// UpdateCounterparty edits name and phone number only. The balance is never touched.
	UpdateCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error)

	// DeleteCounterparty removes the counterparty and every transaction referencing it.
	// It returns the number of transactions removed.
	DeleteCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (int64, error)
}

// CounterpartySvcFacade combines all counterparty-related service interfaces
type CounterpartySvcFacade interface {
	CounterpartyReaderSvc
	CounterpartyWriterSvc
}

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, businessID string, transactionID string, userID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, businessID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions. Each call
// updates the transaction row and the counterparty balance in one unit of work.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, businessID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, businessID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction is not idempotent: a second delete returns apperrors.ErrNotFound.
	DeleteTransaction(ctx context.Context, businessID string, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// AnalyticsSvcFacade exposes the derived views of a business ledger.
type AnalyticsSvcFacade interface {
	// GetMonthlyAnalytics returns per-month totals, oldest month first.
	GetMonthlyAnalytics(ctx context.Context, businessID string, userID string) ([]domain.MonthlyAnalytics, error)

	// VerifyBalances recomputes every counterparty balance and reports mismatches. Empty means consistent.
	VerifyBalances(ctx context.Context, businessID string, userID string) ([]domain.BalanceMismatch, error)
}

// ExportSvc produces the data an external renderer needs to print a ledger.
type ExportSvc interface {
	GetLedgerExport(ctx context.Context, businessID string, userID string) (*domain.LedgerExport, error)
}
