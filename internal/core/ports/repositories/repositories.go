package repositories

import "context"

// RepositoryProvider holds the store handed to the service container together
// with a hook to release it.
type RepositoryProvider struct {
	Ledger LedgerStore
	Close  func(ctx context.Context) error
}
