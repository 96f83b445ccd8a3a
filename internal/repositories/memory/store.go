// Package memory is an in-process LedgerStore. Each unit of work runs on a
// private copy of the data that replaces the live snapshot only on success, so
// readers never see half-applied state and a failed unit leaves no trace.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
)

type snapshot struct {
	businesses     map[string]domain.Business
	counterparties map[string]domain.Counterparty
	transactions   map[string]domain.Transaction
}

func newSnapshot() *snapshot {
	return &snapshot{
		businesses:     make(map[string]domain.Business),
		counterparties: make(map[string]domain.Counterparty),
		transactions:   make(map[string]domain.Transaction),
	}
}

func (s *snapshot) clone() *snapshot {
	c := &snapshot{
		businesses:     make(map[string]domain.Business, len(s.businesses)),
		counterparties: make(map[string]domain.Counterparty, len(s.counterparties)),
		transactions:   make(map[string]domain.Transaction, len(s.transactions)),
	}
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.counterparties {
		c.counterparties[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

// Store is a LedgerStore backed by maps.
type Store struct {
	writeMu sync.Mutex   // serialises units of work
	mu      sync.RWMutex // guards current
	current *snapshot
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{current: newSnapshot()}
}

// Ensure Store implements portsrepo.LedgerStore
var _ portsrepo.LedgerStore = (*Store)(nil)

func (s *Store) view() *repo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &repo{data: s.current}
}

// WithinTx runs fn on a private copy that is published only when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repo portsrepo.LedgerRepository) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	work := s.current.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &repo{data: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = work
	s.mu.Unlock()
	return nil
}

// ReadSnapshot runs fn on the snapshot published when it is called.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, repo portsrepo.LedgerReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s.view())
}

func (s *Store) write(ctx context.Context, fn func(r *repo) error) error {
	return s.WithinTx(ctx, func(_ context.Context, r portsrepo.LedgerRepository) error {
		return fn(r.(*repo))
	})
}

func (s *Store) writeCount(ctx context.Context, fn func(r *repo) (int64, error)) (int64, error) {
	var n int64
	err := s.write(ctx, func(r *repo) error {
		var err error
		n, err = fn(r)
		return err
	})
	return n, err
}

// Reads go straight to the published snapshot. Snapshots are never mutated
// after publication, so no lock is held while the read runs.

func (s *Store) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	return s.view().FindBusinessByID(ctx, businessID)
}

func (s *Store) ListBusinessesByOwner(ctx context.Context, userID string) ([]domain.Business, error) {
	return s.view().ListBusinessesByOwner(ctx, userID)
}

func (s *Store) FindCounterpartyByID(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return s.view().FindCounterpartyByID(ctx, businessID, counterpartyID)
}

func (s *Store) ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, search string) ([]domain.Counterparty, error) {
	return s.view().ListCounterparties(ctx, businessID, role, search)
}

func (s *Store) FindCounterpartyForUpdate(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return s.view().FindCounterpartyForUpdate(ctx, businessID, counterpartyID)
}

func (s *Store) FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error) {
	return s.view().FindTransactionByID(ctx, businessID, transactionID)
}

func (s *Store) ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error) {
	return s.view().ListTransactions(ctx, businessID, filter, after, limit)
}

func (s *Store) ListTransactionsChronological(ctx context.Context, businessID, counterpartyID string) ([]domain.Transaction, error) {
	return s.view().ListTransactionsChronological(ctx, businessID, counterpartyID)
}

// Single writes outside a unit of work still get one of their own.

func (s *Store) SaveBusiness(ctx context.Context, business domain.Business) error {
	return s.write(ctx, func(r *repo) error { return r.SaveBusiness(ctx, business) })
}

func (s *Store) UpdateBusiness(ctx context.Context, business domain.Business) error {
	return s.write(ctx, func(r *repo) error { return r.UpdateBusiness(ctx, business) })
}

func (s *Store) DeleteBusiness(ctx context.Context, businessID string) error {
	return s.write(ctx, func(r *repo) error { return r.DeleteBusiness(ctx, businessID) })
}

func (s *Store) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	return s.write(ctx, func(r *repo) error { return r.SaveCounterparty(ctx, cp) })
}

func (s *Store) UpdateCounterpartyProfile(ctx context.Context, cp domain.Counterparty) error {
	return s.write(ctx, func(r *repo) error { return r.UpdateCounterpartyProfile(ctx, cp) })
}

func (s *Store) UpdateCounterpartyBalance(ctx context.Context, cp domain.Counterparty) error {
	return s.write(ctx, func(r *repo) error { return r.UpdateCounterpartyBalance(ctx, cp) })
}

func (s *Store) DeleteCounterparty(ctx context.Context, businessID, counterpartyID string) error {
	return s.write(ctx, func(r *repo) error { return r.DeleteCounterparty(ctx, businessID, counterpartyID) })
}

func (s *Store) DeleteCounterpartiesByBusiness(ctx context.Context, businessID string) (int64, error) {
	return s.writeCount(ctx, func(r *repo) (int64, error) { return r.DeleteCounterpartiesByBusiness(ctx, businessID) })
}

func (s *Store) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return s.write(ctx, func(r *repo) error { return r.SaveTransaction(ctx, txn) })
}

func (s *Store) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return s.write(ctx, func(r *repo) error { return r.UpdateTransaction(ctx, txn) })
}

func (s *Store) DeleteTransaction(ctx context.Context, businessID, transactionID string) error {
	return s.write(ctx, func(r *repo) error { return r.DeleteTransaction(ctx, businessID, transactionID) })
}

func (s *Store) DeleteTransactionsByCounterparty(ctx context.Context, businessID, counterpartyID string) (int64, error) {
	return s.writeCount(ctx, func(r *repo) (int64, error) {
		return r.DeleteTransactionsByCounterparty(ctx, businessID, counterpartyID)
	})
}

func (s *Store) DeleteTransactionsByBusiness(ctx context.Context, businessID string) (int64, error) {
	return s.writeCount(ctx, func(r *repo) (int64, error) { return r.DeleteTransactionsByBusiness(ctx, businessID) })
}

// repo implements LedgerRepository over one snapshot.
type repo struct {
	data *snapshot
}

var _ portsrepo.LedgerRepository = (*repo)(nil)

func (r *repo) FindBusinessByID(_ context.Context, businessID string) (*domain.Business, error) {
	b, ok := r.data.businesses[businessID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (r *repo) ListBusinessesByOwner(_ context.Context, userID string) ([]domain.Business, error) {
	result := []domain.Business{}
	for _, b := range r.data.businesses {
		if b.CreatedBy == userID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].BusinessID < result[j].BusinessID
	})
	return result, nil
}

func (r *repo) SaveBusiness(_ context.Context, business domain.Business) error {
	if _, exists := r.data.businesses[business.BusinessID]; exists {
		return apperrors.ErrDuplicate
	}
	r.data.businesses[business.BusinessID] = business
	return nil
}

func (r *repo) UpdateBusiness(_ context.Context, business domain.Business) error {
	if _, exists := r.data.businesses[business.BusinessID]; !exists {
		return apperrors.ErrNotFound
	}
	r.data.businesses[business.BusinessID] = business
	return nil
}

func (r *repo) DeleteBusiness(_ context.Context, businessID string) error {
	if _, exists := r.data.businesses[businessID]; !exists {
		return apperrors.ErrNotFound
	}
	delete(r.data.businesses, businessID)
	return nil
}

func (r *repo) FindCounterpartyByID(_ context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	cp, ok := r.data.counterparties[counterpartyID]
	if !ok || cp.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return &cp, nil
}

func (r *repo) ListCounterparties(_ context.Context, businessID string, role domain.CounterpartyRole, search string) ([]domain.Counterparty, error) {
	result := []domain.Counterparty{}
	for _, cp := range r.data.counterparties {
		if cp.BusinessID != businessID || (role != "" && cp.Role != role) || !cp.MatchesSearch(search) {
			continue
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if a != b {
			return a < b
		}
		return result[i].CounterpartyID < result[j].CounterpartyID
	})
	return result, nil
}

// FindCounterpartyForUpdate needs no lock: the unit of work already holds the write mutex.
func (r *repo) FindCounterpartyForUpdate(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return r.FindCounterpartyByID(ctx, businessID, counterpartyID)
}

func (r *repo) SaveCounterparty(_ context.Context, cp domain.Counterparty) error {
	if _, exists := r.data.counterparties[cp.CounterpartyID]; exists {
		return apperrors.ErrDuplicate
	}
	r.data.counterparties[cp.CounterpartyID] = cp
	return nil
}

func (r *repo) UpdateCounterpartyProfile(_ context.Context, cp domain.Counterparty) error {
	stored, ok := r.data.counterparties[cp.CounterpartyID]
	if !ok || stored.BusinessID != cp.BusinessID {
		return apperrors.ErrNotFound
	}
	stored.Name = cp.Name
	stored.PhoneNumber = cp.PhoneNumber
	stored.LastUpdatedAt = cp.LastUpdatedAt
	stored.LastUpdatedBy = cp.LastUpdatedBy
	r.data.counterparties[cp.CounterpartyID] = stored
	return nil
}

func (r *repo) UpdateCounterpartyBalance(_ context.Context, cp domain.Counterparty) error {
	stored, ok := r.data.counterparties[cp.CounterpartyID]
	if !ok || stored.BusinessID != cp.BusinessID {
		return apperrors.ErrNotFound
	}
	stored.Balance = cp.Balance
	stored.LastUpdatedAt = cp.LastUpdatedAt
	stored.LastUpdatedBy = cp.LastUpdatedBy
	r.data.counterparties[cp.CounterpartyID] = stored
	return nil
}

func (r *repo) DeleteCounterparty(_ context.Context, businessID, counterpartyID string) error {
	cp, ok := r.data.counterparties[counterpartyID]
	if !ok || cp.BusinessID != businessID {
		return apperrors.ErrNotFound
	}
	delete(r.data.counterparties, counterpartyID)
	return nil
}

func (r *repo) DeleteCounterpartiesByBusiness(_ context.Context, businessID string) (int64, error) {
	var n int64
	for id, cp := range r.data.counterparties {
		if cp.BusinessID == businessID {
			delete(r.data.counterparties, id)
			n++
		}
	}
	return n, nil
}

func (r *repo) FindTransactionByID(_ context.Context, businessID, transactionID string) (*domain.Transaction, error) {
	txn, ok := r.data.transactions[transactionID]
	if !ok || txn.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *repo) ListTransactions(_ context.Context, businessID string, filter domain.TransactionFilter, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error) {
	matched := []domain.Transaction{}
	for _, txn := range r.data.transactions {
		if txn.BusinessID != businessID || !txn.MatchesFilter(filter) {
			continue
		}
		if after != nil && !after.Precedes(txn) {
			continue
		}
		matched = append(matched, txn)
	}
	sort.Slice(matched, func(i, j int) bool {
		return domain.LessChronological(matched[j], matched[i])
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *repo) ListTransactionsChronological(_ context.Context, businessID, counterpartyID string) ([]domain.Transaction, error) {
	result := []domain.Transaction{}
	for _, txn := range r.data.transactions {
		if txn.BusinessID != businessID || (counterpartyID != "" && txn.CounterpartyID() != counterpartyID) {
			continue
		}
		result = append(result, txn)
	}
	sort.Slice(result, func(i, j int) bool {
		return domain.LessChronological(result[i], result[j])
	})
	return result, nil
}

func (r *repo) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	if _, exists := r.data.transactions[txn.TransactionID]; exists {
		return apperrors.ErrDuplicate
	}
	r.data.transactions[txn.TransactionID] = txn
	return nil
}

func (r *repo) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	stored, ok := r.data.transactions[txn.TransactionID]
	if !ok || stored.BusinessID != txn.BusinessID {
		return apperrors.ErrNotFound
	}
	r.data.transactions[txn.TransactionID] = txn
	return nil
}

func (r *repo) DeleteTransaction(_ context.Context, businessID, transactionID string) error {
	txn, ok := r.data.transactions[transactionID]
	if !ok || txn.BusinessID != businessID {
		return apperrors.ErrNotFound
	}
	delete(r.data.transactions, transactionID)
	return nil
}

func (r *repo) DeleteTransactionsByCounterparty(_ context.Context, businessID, counterpartyID string) (int64, error) {
	var n int64
	for id, txn := range r.data.transactions {
		if txn.BusinessID == businessID && txn.CounterpartyID() == counterpartyID {
			delete(r.data.transactions, id)
			n++
		}
	}
	return n, nil
}

func (r *repo) DeleteTransactionsByBusiness(_ context.Context, businessID string) (int64, error) {
	var n int64
	for id, txn := range r.data.transactions {
		if txn.BusinessID == businessID {
			delete(r.data.transactions, id)
			n++
		}
	}
	return n, nil
}
