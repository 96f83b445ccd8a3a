package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
)

// BusinessReader defines read operations for business data.
type BusinessReader interface {
	// FindBusinessByID retrieves a business. Returns apperrors.ErrNotFound when missing.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// ListBusinessesByOwner lists the businesses created by a user, ordered by name.
	ListBusinessesByOwner(ctx context.Context, userID string) ([]domain.Business, error)
}

// BusinessWriter defines write operations for business data.
type BusinessWriter interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	UpdateBusiness(ctx context.Context, business domain.Business) error

	// DeleteBusiness removes the business row only. Callers cascade first.
	DeleteBusiness(ctx context.Context, businessID string) error
}

// CounterpartyReader defines read operations for customers and suppliers.
type CounterpartyReader interface {
	// FindCounterpartyByID retrieves a counterparty of any role within a business.
	FindCounterpartyByID(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterparties lists counterparties ordered by name. An empty role lists both roles.
	// search is a case-insensitive substring of name or phone number.
	ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, search string) ([]domain.Counterparty, error)
}

// CounterpartyWriter defines write operations for customers and suppliers.
type CounterpartyWriter interface {
	SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error

	// UpdateCounterpartyProfile persists name, phone number and audit fields. Balance is untouched.
	UpdateCounterpartyProfile(ctx context.Context, counterparty domain.Counterparty) error

	DeleteCounterparty(ctx context.Context, businessID, counterpartyID string) error
	DeleteCounterpartiesByBusiness(ctx context.Context, businessID string) (int64, error)
}

// CounterpartyBalanceSupport is used by the balance maintainer inside a unit of work.
type CounterpartyBalanceSupport interface {
	// FindCounterpartyForUpdate retrieves a counterparty and locks it until the unit of work ends.
	FindCounterpartyForUpdate(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error)

	// UpdateCounterpartyBalance persists a new balance for the counterparty.
	UpdateCounterpartyBalance(ctx context.Context, counterparty domain.Counterparty) error
}

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns up to limit transactions newest first (date, created_at, id
	// descending) that match filter and sort strictly after the optional cursor.
	ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error)

	// ListTransactionsChronological returns all transactions of a business oldest first.
	// A non-empty counterpartyID restricts the result to that counterparty.
	ListTransactionsChronological(ctx context.Context, businessID, counterpartyID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, businessID, transactionID string) error

	// DeleteTransactionsByCounterparty removes every transaction of the business that references counterpartyID.
	DeleteTransactionsByCounterparty(ctx context.Context, businessID, counterpartyID string) (int64, error)
	DeleteTransactionsByBusiness(ctx context.Context, businessID string) (int64, error)
}

// LedgerReader combines the read side of the ledger.
type LedgerReader interface {
	BusinessReader
	CounterpartyReader
	TransactionReader
}

// LedgerRepository combines all ledger repository interfaces.
type LedgerRepository interface {
	BusinessReader
	BusinessWriter
	CounterpartyReader
	CounterpartyWriter
	CounterpartyBalanceSupport
	TransactionReader
	TransactionWriter
}

// LedgerStore is the single authoritative store. Every mutation that touches
// more than one row runs inside WithinTx so readers never observe a
// transaction row without its balance effect.
type LedgerStore interface {
	LedgerRepository
	TransactionManager
}
