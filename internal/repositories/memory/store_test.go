package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_app/internal/repositories/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) (domain.Business, domain.Counterparty) {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := domain.Business{BusinessID: "biz-1", Name: "Corner Shop", AuditFields: domain.NewAuditFields("user-1", now)}
	cp := domain.Counterparty{CounterpartyID: "cp-1", BusinessID: b.BusinessID, Role: domain.RoleCustomer, Name: "Asha", PhoneNumber: "9876543210", AuditFields: b.AuditFields}
	require.NoError(t, s.SaveBusiness(context.Background(), b))
	require.NoError(t, s.SaveCounterparty(context.Background(), cp))
	return b, cp
}

func txnAt(id string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		BusinessID:    "biz-1",
		Type:          domain.TransactionIn,
		Amount:        100,
		CustomerID:    "cp-1",
		Date:          date,
		Category:      domain.RoleCustomer,
		PaymentMode:   domain.PaymentCash,
		AuditFields:   domain.NewAuditFields("user-1", date),
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, cp := seed(t, s)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		cp.Balance = 500
		require.NoError(t, repo.UpdateCounterpartyBalance(ctx, cp))
		require.NoError(t, repo.SaveTransaction(ctx, txnAt("t-1", time.Now().UTC())))

		inside, err := repo.FindCounterpartyByID(ctx, cp.BusinessID, cp.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(500), inside.Balance, "writes are visible inside the unit of work")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindCounterpartyByID(ctx, cp.BusinessID, cp.CounterpartyID)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(0), got.Balance)
	_, err = s.FindTransactionByID(ctx, "biz-1", "t-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, cp := seed(t, s)

	err := s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		cp.Balance = -100
		if err := repo.UpdateCounterpartyBalance(ctx, cp); err != nil {
			return err
		}
		return repo.SaveTransaction(ctx, txnAt("t-1", time.Now().UTC()))
	})
	require.NoError(t, err)

	got, err := s.FindCounterpartyByID(ctx, cp.BusinessID, cp.CounterpartyID)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(-100), got.Balance)
	_, err = s.FindTransactionByID(ctx, "biz-1", "t-1")
	assert.NoError(t, err)
}

func TestWithinTx_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithinTx(ctx, func(context.Context, portsrepo.LedgerRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestReadSnapshot_IgnoresLaterCommits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seed(t, s)
	require.NoError(t, s.SaveTransaction(ctx, txnAt("t-1", time.Now().UTC())))

	err := s.ReadSnapshot(ctx, func(ctx context.Context, repo portsrepo.LedgerReader) error {
		before, err := repo.ListTransactionsChronological(ctx, "biz-1", "")
		require.NoError(t, err)

		require.NoError(t, s.SaveTransaction(ctx, txnAt("t-2", time.Now().UTC())))
		require.NoError(t, s.SaveCounterparty(ctx, domain.Counterparty{
			CounterpartyID: "cp-2", BusinessID: "biz-1", Role: domain.RoleSupplier,
			Name: "Mill Co", PhoneNumber: "9000000001",
		}))

		after, err := repo.ListTransactionsChronological(ctx, "biz-1", "")
		require.NoError(t, err)
		assert.Equal(t, before, after)
		cps, err := repo.ListCounterparties(ctx, "biz-1", "", "")
		require.NoError(t, err)
		assert.Len(t, cps, 1)
		return nil
	})
	require.NoError(t, err)

	txns, err := s.ListTransactionsChronological(ctx, "biz-1", "")
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, cp := seed(t, s)

	got, err := s.FindCounterpartyByID(ctx, cp.BusinessID, cp.CounterpartyID)
	require.NoError(t, err)
	got.Balance = 999

	again, err := s.FindCounterpartyByID(ctx, cp.BusinessID, cp.CounterpartyID)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(0), again.Balance)
}

func TestScopedByBusiness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, cp := seed(t, s)

	_, err := s.FindCounterpartyByID(ctx, "biz-2", cp.CounterpartyID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, s.DeleteCounterparty(ctx, "biz-2", cp.CounterpartyID), apperrors.ErrNotFound)
}

func TestListTransactions_OrderAndCursor(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seed(t, s)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTransaction(ctx, txnAt("a", day)))
	require.NoError(t, s.SaveTransaction(ctx, txnAt("b", day)))
	require.NoError(t, s.SaveTransaction(ctx, txnAt("c", day.AddDate(0, 0, 1))))

	all, err := s.ListTransactions(ctx, "biz-1", domain.TransactionFilter{}, nil, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].TransactionID, all[1].TransactionID, all[2].TransactionID})

	cursor := domain.CursorFor(all[1])
	rest, err := s.ListTransactions(ctx, "biz-1", domain.TransactionFilter{}, &cursor, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "a", rest[0].TransactionID)

	limited, err := s.ListTransactions(ctx, "biz-1", domain.TransactionFilter{}, nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	chrono, err := s.ListTransactionsChronological(ctx, "biz-1", "cp-1")
	require.NoError(t, err)
	assert.Equal(t, "c", chrono[2].TransactionID)
}

func TestBulkDeletesCount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seed(t, s)
	now := time.Now().UTC()
	require.NoError(t, s.SaveTransaction(ctx, txnAt("a", now)))
	require.NoError(t, s.SaveTransaction(ctx, txnAt("b", now)))

	n, err := s.DeleteTransactionsByCounterparty(ctx, "biz-1", "cp-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteTransactionsByBusiness(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = s.DeleteCounterpartiesByBusiness(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSaveDuplicate(t *testing.T) {
	s := NewStore()
	b, _ := seed(t, s)
	assert.ErrorIs(t, s.SaveBusiness(context.Background(), b), apperrors.ErrDuplicate)
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(*testing.T) portsrepo.LedgerStore { return NewStore() })
}
