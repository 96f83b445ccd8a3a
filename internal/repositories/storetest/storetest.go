// Package storetest holds behaviour every LedgerStore implementation must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store for one test.
type Factory func(t *testing.T) portsrepo.LedgerStore

var base = time.Date(2024, 3, 1, 9, 30, 0, 123456000, time.UTC)

type fixture struct {
	business domain.Business
	customer domain.Counterparty
	supplier domain.Counterparty
}

func seed(t *testing.T, ctx context.Context, s portsrepo.LedgerStore) fixture {
	t.Helper()
	owner := "user-" + uuid.NewString()
	f := fixture{
		business: domain.Business{BusinessID: uuid.NewString(), Name: "Corner Shop", AuditFields: domain.NewAuditFields(owner, base)},
	}
	f.customer = domain.Counterparty{
		CounterpartyID: uuid.NewString(), BusinessID: f.business.BusinessID, Role: domain.RoleCustomer,
		Name: "Asha", PhoneNumber: "9876543210", AuditFields: f.business.AuditFields,
	}
	f.supplier = domain.Counterparty{
		CounterpartyID: uuid.NewString(), BusinessID: f.business.BusinessID, Role: domain.RoleSupplier,
		Name: "Mill Co", PhoneNumber: "9000000001", AuditFields: f.business.AuditFields,
	}
	require.NoError(t, s.SaveBusiness(ctx, f.business))
	require.NoError(t, s.SaveCounterparty(ctx, f.customer))
	require.NoError(t, s.SaveCounterparty(ctx, f.supplier))
	return f
}

func customerTxn(f fixture, id string, date time.Time, description string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		BusinessID:    f.business.BusinessID,
		Type:          domain.TransactionIn,
		Amount:        1250,
		CustomerID:    f.customer.CounterpartyID,
		Description:   description,
		Date:          date,
		Category:      domain.RoleCustomer,
		PaymentMode:   domain.PaymentCash,
		AuditFields:   domain.NewAuditFields(f.business.CreatedBy, date),
	}
}

// Run executes the shared store behaviour against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("BusinessRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)

		got, err := s.FindBusinessByID(ctx, f.business.BusinessID)
		require.NoError(t, err)
		assert.Equal(t, f.business, *got)

		list, err := s.ListBusinessesByOwner(ctx, f.business.CreatedBy)
		require.NoError(t, err)
		require.Len(t, list, 1)

		assert.ErrorIs(t, s.SaveBusiness(ctx, f.business), apperrors.ErrDuplicate)

		renamed := f.business
		renamed.Name = "Corner Store"
		renamed.Touch("someone", base.Add(time.Hour))
		require.NoError(t, s.UpdateBusiness(ctx, renamed))
		got, err = s.FindBusinessByID(ctx, f.business.BusinessID)
		require.NoError(t, err)
		assert.Equal(t, renamed, *got)

		_, err = s.FindBusinessByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("CounterpartyRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)

		got, err := s.FindCounterpartyByID(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, f.customer, *got)

		_, err = s.FindCounterpartyByID(ctx, uuid.NewString(), f.customer.CounterpartyID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, "lookups are scoped to the business")

		customers, err := s.ListCounterparties(ctx, f.business.BusinessID, domain.RoleCustomer, "")
		require.NoError(t, err)
		require.Len(t, customers, 1)
		all, err := s.ListCounterparties(ctx, f.business.BusinessID, "", "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
		byPhone, err := s.ListCounterparties(ctx, f.business.BusinessID, "", "0000001")
		require.NoError(t, err)
		require.Len(t, byPhone, 1)
		assert.Equal(t, f.supplier.CounterpartyID, byPhone[0].CounterpartyID)
		byName, err := s.ListCounterparties(ctx, f.business.BusinessID, "", "ASH")
		require.NoError(t, err)
		require.Len(t, byName, 1)

		profile := f.customer
		profile.Name = "Asha K"
		profile.Balance = 999 // ignored by a profile update
		require.NoError(t, s.UpdateCounterpartyProfile(ctx, profile))
		got, err = s.FindCounterpartyByID(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, "Asha K", got.Name)
		assert.Equal(t, domain.Money(0), got.Balance)

		withBalance := *got
		withBalance.Balance = -4200
		require.NoError(t, s.UpdateCounterpartyBalance(ctx, withBalance))
		got, err = s.FindCounterpartyForUpdate(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(-4200), got.Balance)

		require.NoError(t, s.DeleteCounterparty(ctx, f.business.BusinessID, f.customer.CounterpartyID))
		assert.ErrorIs(t, s.DeleteCounterparty(ctx, f.business.BusinessID, f.customer.CounterpartyID), apperrors.ErrNotFound)
	})

	t.Run("TransactionRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)

		txn := customerTxn(f, uuid.NewString(), base, "rice")
		require.NoError(t, s.SaveTransaction(ctx, txn))
		got, err := s.FindTransactionByID(ctx, f.business.BusinessID, txn.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, txn, *got)

		moved := txn
		moved.CustomerID = ""
		moved.SupplierID = f.supplier.CounterpartyID
		moved.Category = domain.RoleSupplier
		moved.Amount = 99
		require.NoError(t, s.UpdateTransaction(ctx, moved))
		got, err = s.FindTransactionByID(ctx, f.business.BusinessID, txn.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, moved, *got)

		require.NoError(t, s.DeleteTransaction(ctx, f.business.BusinessID, txn.TransactionID))
		assert.ErrorIs(t, s.DeleteTransaction(ctx, f.business.BusinessID, txn.TransactionID), apperrors.ErrNotFound)
	})

	t.Run("ListTransactionsOrderFiltersAndCursor", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)

		older := customerTxn(f, "00000000-0000-0000-0000-00000000000a", base, "rice")
		sameDayA := customerTxn(f, "00000000-0000-0000-0000-00000000000b", base.AddDate(0, 0, 1), "oil")
		sameDayB := customerTxn(f, "00000000-0000-0000-0000-00000000000c", base.AddDate(0, 0, 1), "Rice bag")
		supplierTxn := customerTxn(f, "00000000-0000-0000-0000-00000000000d", base.AddDate(0, 0, 2), "flour")
		supplierTxn.CustomerID, supplierTxn.SupplierID, supplierTxn.Category = "", f.supplier.CounterpartyID, domain.RoleSupplier
		supplierTxn.Type, supplierTxn.PaymentMode = domain.TransactionOut, domain.PaymentOnline
		for _, txn := range []domain.Transaction{older, sameDayA, sameDayB, supplierTxn} {
			require.NoError(t, s.SaveTransaction(ctx, txn))
		}

		ids := func(txns []domain.Transaction) []string {
			out := make([]string, len(txns))
			for i, txn := range txns {
				out[i] = txn.TransactionID
			}
			return out
		}

		all, err := s.ListTransactions(ctx, f.business.BusinessID, domain.TransactionFilter{}, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{supplierTxn.TransactionID, sameDayB.TransactionID, sameDayA.TransactionID, older.TransactionID}, ids(all))

		cursor := domain.CursorFor(all[1])
		rest, err := s.ListTransactions(ctx, f.business.BusinessID, domain.TransactionFilter{}, &cursor, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{sameDayA.TransactionID, older.TransactionID}, ids(rest))

		page, err := s.ListTransactions(ctx, f.business.BusinessID, domain.TransactionFilter{}, nil, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		from, to := base.AddDate(0, 0, 1), base.AddDate(0, 0, 1)
		cases := map[string]struct {
			filter domain.TransactionFilter
			want   []string
		}{
			"search":       {domain.TransactionFilter{Search: "RICE"}, []string{sameDayB.TransactionID, older.TransactionID}},
			"date range":   {domain.TransactionFilter{From: &from, To: &to}, []string{sameDayB.TransactionID, sameDayA.TransactionID}},
			"type":         {domain.TransactionFilter{Type: domain.TransactionOut}, []string{supplierTxn.TransactionID}},
			"payment mode": {domain.TransactionFilter{PaymentMode: domain.PaymentOnline}, []string{supplierTxn.TransactionID}},
			"category":     {domain.TransactionFilter{Category: domain.RoleSupplier}, []string{supplierTxn.TransactionID}},
			"counterparty": {domain.TransactionFilter{CounterpartyID: f.supplier.CounterpartyID}, []string{supplierTxn.TransactionID}},
		}
		for name, tc := range cases {
			got, err := s.ListTransactions(ctx, f.business.BusinessID, tc.filter, nil, 0)
			require.NoError(t, err, name)
			assert.Equal(t, tc.want, ids(got), name)
		}

		chrono, err := s.ListTransactionsChronological(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, []string{older.TransactionID, sameDayA.TransactionID, sameDayB.TransactionID}, ids(chrono))
	})

	t.Run("BulkDeletes", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)
		other := seed(t, ctx, s)

		require.NoError(t, s.SaveTransaction(ctx, customerTxn(f, uuid.NewString(), base, "")))
		require.NoError(t, s.SaveTransaction(ctx, customerTxn(f, uuid.NewString(), base, "")))
		require.NoError(t, s.SaveTransaction(ctx, customerTxn(other, uuid.NewString(), base, "")))

		n, err := s.DeleteTransactionsByCounterparty(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.DeleteCounterpartiesByBusiness(ctx, f.business.BusinessID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		require.NoError(t, s.DeleteBusiness(ctx, f.business.BusinessID))

		left, err := s.ListTransactionsChronological(ctx, other.business.BusinessID, "")
		require.NoError(t, err)
		assert.Len(t, left, 1)
		n, err = s.DeleteTransactionsByBusiness(ctx, other.business.BusinessID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("WithinTxRollsBack", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)

		boom := errors.New("boom")
		err := s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
			cp, err := repo.FindCounterpartyForUpdate(ctx, f.business.BusinessID, f.customer.CounterpartyID)
			require.NoError(t, err)
			cp.Balance = -1250
			require.NoError(t, repo.UpdateCounterpartyBalance(ctx, *cp))
			require.NoError(t, repo.SaveTransaction(ctx, customerTxn(f, uuid.NewString(), base, "")))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		cp, err := s.FindCounterpartyByID(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(0), cp.Balance)
		txns, err := s.ListTransactionsChronological(ctx, f.business.BusinessID, "")
		require.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("WithinTxCommits", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)

		err := s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
			cp, err := repo.FindCounterpartyForUpdate(ctx, f.business.BusinessID, f.customer.CounterpartyID)
			if err != nil {
				return err
			}
			cp.Balance = -1250
			if err := repo.UpdateCounterpartyBalance(ctx, *cp); err != nil {
				return err
			}
			return repo.SaveTransaction(ctx, customerTxn(f, uuid.NewString(), base, ""))
		})
		require.NoError(t, err)

		cp, err := s.FindCounterpartyByID(ctx, f.business.BusinessID, f.customer.CounterpartyID)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(-1250), cp.Balance)
	})

	t.Run("ReadSnapshotSeesCommittedState", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		f := seed(t, ctx, s)
		txn := customerTxn(f, uuid.NewString(), base, "")
		require.NoError(t, s.SaveTransaction(ctx, txn))

		err := s.ReadSnapshot(ctx, func(ctx context.Context, repo portsrepo.LedgerReader) error {
			txns, err := repo.ListTransactionsChronological(ctx, f.business.BusinessID, "")
			require.NoError(t, err)
			require.Len(t, txns, 1)
			assert.Equal(t, txn.TransactionID, txns[0].TransactionID)

			cps, err := repo.ListCounterparties(ctx, f.business.BusinessID, "", "")
			require.NoError(t, err)
			assert.Len(t, cps, 2)
			return nil
		})
		require.NoError(t, err)

		boom := errors.New("boom")
		err = s.ReadSnapshot(ctx, func(context.Context, portsrepo.LedgerReader) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}
