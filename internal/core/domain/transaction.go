package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
)

// TransactionType indicates the direction of money relative to the business.
type TransactionType string

const (
	// TransactionIn is money received by the business.
	TransactionIn TransactionType = "IN"
	// TransactionOut is money paid (or credit given) by the business.
	TransactionOut TransactionType = "OUT"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionIn || t == TransactionOut
}

// PaymentMode records how the money moved.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentOnline PaymentMode = "ONLINE"
)

// IsValid reports whether m is a known payment mode.
func (m PaymentMode) IsValid() bool {
	return m == PaymentCash || m == PaymentOnline
}

// MaxDescriptionLength bounds Transaction.Description in characters.
const MaxDescriptionLength = 500

// Transaction is a single dated money movement between a business and one counterparty.
// Exactly one of CustomerID and SupplierID is set, and Category always equals
// the role of the set reference.
type Transaction struct {
	TransactionID string           `json:"transactionID"`
	BusinessID    string           `json:"businessID"`
	Type          TransactionType  `json:"type"`
	Amount        Money            `json:"amount"` // Minor units, > 0
	CustomerID    string           `json:"customerID,omitempty"`
	SupplierID    string           `json:"supplierID,omitempty"`
	Description   string           `json:"description"`
	Date          time.Time        `json:"date"` // Always UTC
	Category      CounterpartyRole `json:"category"`
	PaymentMode   PaymentMode      `json:"paymentMode"`
	AuditFields
}

// CounterpartyID returns whichever counterparty reference is set.
func (t Transaction) CounterpartyID() string {
	if t.CustomerID != "" {
		return t.CustomerID
	}
	return t.SupplierID
}

// CounterpartyRole returns the role implied by the reference that is set, or "" if none is.
func (t Transaction) CounterpartyRole() CounterpartyRole {
	switch {
	case t.CustomerID != "" && t.SupplierID == "":
		return RoleCustomer
	case t.SupplierID != "" && t.CustomerID == "":
		return RoleSupplier
	default:
		return ""
	}
}

// Validate checks the transaction's own fields. It does not check that the
// referenced business or counterparty exists.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return apperrors.NewValidationError("amount", "amount must be greater than 0")
	}
	if t.Amount > MaxAmount {
		return apperrors.NewValidationError("amount", "amount must not exceed "+MaxAmount.String())
	}
	if (t.CustomerID == "") == (t.SupplierID == "") {
		return apperrors.NewValidationError("counterparty", "exactly one of customerId or supplierId is required")
	}
	if !t.Type.IsValid() {
		return apperrors.NewValidationError("type", "type must be IN or OUT")
	}
	if !t.PaymentMode.IsValid() {
		return apperrors.NewValidationError("paymentMode", "paymentMode must be CASH or ONLINE")
	}
	if t.Category != t.CounterpartyRole() {
		return apperrors.NewValidationError("category", "category must match the counterparty reference")
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return apperrors.NewValidationError("description", "description must be at most 500 characters")
	}
	if t.Date.IsZero() {
		return apperrors.NewValidationError("date", "date is required")
	}
	return nil
}

// MatchesFilter reports whether t satisfies every criterion set in f.
func (t Transaction) MatchesFilter(f TransactionFilter) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && t.Date.After(*f.To) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.PaymentMode != "" && t.PaymentMode != f.PaymentMode {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.CounterpartyID != "" && t.CounterpartyID() != f.CounterpartyID {
		return false
	}
	return true
}

// TransactionFilter narrows a transaction listing. Zero values mean "any".
type TransactionFilter struct {
	Search         string
	From           *time.Time // inclusive
	To             *time.Time // inclusive
	Type           TransactionType
	PaymentMode    PaymentMode
	Category       CounterpartyRole
	CounterpartyID string
}

// TransactionCursor marks the last row of a page in newest-first order.
type TransactionCursor struct {
	Date          time.Time
	CreatedAt     time.Time
	TransactionID string
}

// Precedes reports whether t sorts strictly after the cursor in newest-first
// order, i.e. t belongs on a later page.
func (c TransactionCursor) Precedes(t Transaction) bool {
	if !t.Date.Equal(c.Date) {
		return t.Date.Before(c.Date)
	}
	if !t.CreatedAt.Equal(c.CreatedAt) {
		return t.CreatedAt.Before(c.CreatedAt)
	}
	return t.TransactionID < c.TransactionID
}

// CursorFor returns the cursor positioned at t.
func CursorFor(t Transaction) TransactionCursor {
	return TransactionCursor{Date: t.Date, CreatedAt: t.CreatedAt, TransactionID: t.TransactionID}
}

// LessChronological orders transactions oldest first by date, creation time and id.
func LessChronological(a, b Transaction) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.TransactionID < b.TransactionID
}
