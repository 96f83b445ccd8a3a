package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func validTransaction() domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn_123",
		BusinessID:    "biz_123",
		Type:          domain.TransactionIn,
		Amount:        10000,
		CustomerID:    "cust_123",
		Description:   "Payment received",
		Date:          time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Category:      domain.RoleCustomer,
		PaymentMode:   domain.PaymentCash,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *domain.Transaction)
		errMsg string
	}{
		{
			name:   "valid customer transaction",
			mutate: func(tx *domain.Transaction) {},
		},
		{
			name: "valid supplier transaction",
			mutate: func(tx *domain.Transaction) {
				tx.CustomerID = ""
				tx.SupplierID = "sup_1"
				tx.Category = domain.RoleSupplier
				tx.Type = domain.TransactionOut
				tx.PaymentMode = domain.PaymentOnline
			},
		},
		{
			name:   "zero amount",
			mutate: func(tx *domain.Transaction) { tx.Amount = 0 },
			errMsg: "amount must be greater than 0",
		},
		{
			name:   "negative amount",
			mutate: func(tx *domain.Transaction) { tx.Amount = -5 },
			errMsg: "amount must be greater than 0",
		},
		{
			name:   "amount above limit",
			mutate: func(tx *domain.Transaction) { tx.Amount = domain.MaxAmount + 1 },
			errMsg: "amount must not exceed",
		},
		{
			name:   "no counterparty",
			mutate: func(tx *domain.Transaction) { tx.CustomerID = "" },
			errMsg: "exactly one of customerId or supplierId",
		},
		{
			name:   "both counterparties",
			mutate: func(tx *domain.Transaction) { tx.SupplierID = "sup_1" },
			errMsg: "exactly one of customerId or supplierId",
		},
		{
			name:   "unknown type",
			mutate: func(tx *domain.Transaction) { tx.Type = "SIDEWAYS" },
			errMsg: "type must be IN or OUT",
		},
		{
			name:   "unknown payment mode",
			mutate: func(tx *domain.Transaction) { tx.PaymentMode = "CHEQUE" },
			errMsg: "paymentMode must be CASH or ONLINE",
		},
		{
			name:   "category contradicts reference",
			mutate: func(tx *domain.Transaction) { tx.Category = domain.RoleSupplier },
			errMsg: "category must match",
		},
		{
			name:   "description too long",
			mutate: func(tx *domain.Transaction) { tx.Description = strings.Repeat("a", 501) },
			errMsg: "description must be at most 500 characters",
		},
		{
			name:   "missing date",
			mutate: func(tx *domain.Transaction) { tx.Date = time.Time{} },
			errMsg: "date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTransaction_CounterpartyRole(t *testing.T) {
	tx := validTransaction()
	assert.Equal(t, domain.RoleCustomer, tx.CounterpartyRole())
	assert.Equal(t, "cust_123", tx.CounterpartyID())

	tx.CustomerID, tx.SupplierID = "", "sup_9"
	assert.Equal(t, domain.RoleSupplier, tx.CounterpartyRole())
	assert.Equal(t, "sup_9", tx.CounterpartyID())

	tx.CustomerID = "cust_1"
	assert.Equal(t, domain.CounterpartyRole(""), tx.CounterpartyRole())
}

func TestTransaction_MatchesFilter(t *testing.T) {
	tx := validTransaction()
	from := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, tx.MatchesFilter(domain.TransactionFilter{}))
	assert.True(t, tx.MatchesFilter(domain.TransactionFilter{Search: "PAYMENT"}))
	assert.False(t, tx.MatchesFilter(domain.TransactionFilter{Search: "refund"}))
	assert.True(t, tx.MatchesFilter(domain.TransactionFilter{From: &from, To: &to}), "range bounds are inclusive")
	assert.False(t, tx.MatchesFilter(domain.TransactionFilter{To: &before}))
	assert.False(t, tx.MatchesFilter(domain.TransactionFilter{Type: domain.TransactionOut}))
	assert.False(t, tx.MatchesFilter(domain.TransactionFilter{PaymentMode: domain.PaymentOnline}))
	assert.False(t, tx.MatchesFilter(domain.TransactionFilter{Category: domain.RoleSupplier}))
	assert.True(t, tx.MatchesFilter(domain.TransactionFilter{CounterpartyID: "cust_123"}))
	assert.False(t, tx.MatchesFilter(domain.TransactionFilter{CounterpartyID: "cust_999"}))
}

func TestTransactionCursor_Precedes(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := day.Add(time.Hour)
	cursor := domain.TransactionCursor{Date: day, CreatedAt: created, TransactionID: "m"}

	older := domain.Transaction{TransactionID: "z", Date: day.Add(-time.Hour), AuditFields: domain.AuditFields{CreatedAt: created}}
	newer := domain.Transaction{TransactionID: "a", Date: day.Add(time.Hour), AuditFields: domain.AuditFields{CreatedAt: created}}
	sameDateOlderCreate := domain.Transaction{TransactionID: "z", Date: day, AuditFields: domain.AuditFields{CreatedAt: created.Add(-time.Second)}}
	tieLowerID := domain.Transaction{TransactionID: "b", Date: day, AuditFields: domain.AuditFields{CreatedAt: created}}
	tieHigherID := domain.Transaction{TransactionID: "x", Date: day, AuditFields: domain.AuditFields{CreatedAt: created}}

	assert.True(t, cursor.Precedes(older))
	assert.False(t, cursor.Precedes(newer))
	assert.True(t, cursor.Precedes(sameDateOlderCreate))
	assert.True(t, cursor.Precedes(tieLowerID))
	assert.False(t, cursor.Precedes(tieHigherID))
	assert.False(t, cursor.Precedes(domain.Transaction{TransactionID: "m", Date: day, AuditFields: domain.AuditFields{CreatedAt: created}}))
}
