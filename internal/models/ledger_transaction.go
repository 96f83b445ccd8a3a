package models

import "time"

// LedgerTransaction represents a row of the transactions table.
// Exactly one of CustomerID and SupplierID is non-nil.
type LedgerTransaction struct {
	TransactionID string    `db:"transaction_id"`
	BusinessID    string    `db:"business_id"`
	Type          string    `db:"type"`
	Amount        int64     `db:"amount"` // Minor units
	CustomerID    *string   `db:"customer_id"`
	SupplierID    *string   `db:"supplier_id"`
	Description   string    `db:"description"`
	TxnDate       time.Time `db:"txn_date"`
	Category      string    `db:"category"`
	PaymentMode   string    `db:"payment_mode"`
	AuditFields
}
