package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL LedgerStore. Calls made directly on the Store run on
// the pool; WithinTx hands out a repository bound to one transaction.
type Store struct {
	BaseRepository
	*ledgerRepository
}

// Ensure Store implements portsrepo.LedgerStore
var _ portsrepo.LedgerStore = (*Store)(nil)

// NewStore creates a Store over dbPool.
func NewStore(dbPool *pgxpool.Pool) *Store {
	return &Store{
		BaseRepository:   BaseRepository{Pool: dbPool},
		ledgerRepository: &ledgerRepository{q: dbPool},
	}
}

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Ledger: NewStore(dbPool),
		Close: func(context.Context) error {
			dbPool.Close()
			return nil
		},
	}
}
