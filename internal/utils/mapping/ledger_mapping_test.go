package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerTransactionReferencesAreNullable(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	txn := domain.Transaction{
		TransactionID: "t-1",
		BusinessID:    "b-1",
		Type:          domain.TransactionOut,
		Amount:        4250,
		SupplierID:    "s-1",
		Date:          now,
		Category:      domain.RoleSupplier,
		PaymentMode:   domain.PaymentOnline,
		AuditFields:   domain.NewAuditFields("u-1", now),
	}

	m := ToModelLedgerTransaction(txn)
	assert.Nil(t, m.CustomerID)
	require.NotNil(t, m.SupplierID)
	assert.Equal(t, "s-1", *m.SupplierID)
	assert.Equal(t, int64(4250), m.Amount)

	assert.Equal(t, txn, ToDomainTransaction(m))
}

func TestToDomainConvertsTimesToUTC(t *testing.T) {
	local := time.Date(2024, 1, 31, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	m := ToModelLedgerTransaction(domain.Transaction{Date: local, AuditFields: domain.NewAuditFields("u", local)})

	d := ToDomainTransaction(m)
	assert.Equal(t, time.UTC, d.Date.Location())
	assert.True(t, d.Date.Equal(local))
	assert.Equal(t, time.UTC, d.CreatedAt.Location())
}
