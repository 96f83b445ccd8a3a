package repositories

import (
	"context"
)

// TransactionManager defines unit-of-work support.
type TransactionManager interface {
	// WithinTx runs fn inside one atomic unit of work. The repository passed to fn
	// is bound to that unit; everything it writes commits together when fn
	// returns nil and is discarded otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo LedgerRepository) error) error

	// ReadSnapshot runs fn against one consistent read-only view of the store,
	// so several reads observe the same committed state.
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context, repo LedgerReader) error) error
}
