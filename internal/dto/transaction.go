package dto

import (
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Exactly one of CustomerID and SupplierID must be set. Category is derived
// from the reference when omitted. Date defaults to now and PaymentMode to CASH.
type CreateTransactionRequest struct {
	Type        domain.TransactionType  `json:"type" binding:"required"`
	Amount      decimal.Decimal         `json:"amount"`
	CustomerID  string                  `json:"customerId"`
	SupplierID  string                  `json:"supplierId"`
	Description string                  `json:"description"`
	Date        *time.Time              `json:"date"`
	Category    domain.CounterpartyRole `json:"category"`
	PaymentMode domain.PaymentMode      `json:"paymentMode"`
}

// UpdateTransactionRequest is a partial update. Nil fields keep their stored value.
// Setting one counterparty reference clears the other.
type UpdateTransactionRequest struct {
	Type        *domain.TransactionType  `json:"type"`
	Amount      *decimal.Decimal         `json:"amount"`
	CustomerID  *string                  `json:"customerId"`
	SupplierID  *string                  `json:"supplierId"`
	Description *string                  `json:"description"`
	Date        *time.Time               `json:"date"`
	Category    *domain.CounterpartyRole `json:"category"`
	PaymentMode *domain.PaymentMode      `json:"paymentMode"`
}

// ListTransactionsParams defines query parameters for listing transactions.
// From and To accept RFC 3339 timestamps or YYYY-MM-DD dates; both bounds are inclusive.
type ListTransactionsParams struct {
	Limit          int    `form:"limit"`
	NextToken      string `form:"nextToken"`
	Search         string `form:"search"`
	From           string `form:"from"`
	To             string `form:"to"`
	Type           string `form:"type"`
	PaymentMode    string `form:"paymentMode"`
	Category       string `form:"category"`
	CounterpartyID string `form:"counterpartyId"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                  `json:"id"`
	BusinessID    string                  `json:"businessId"`
	Type          domain.TransactionType  `json:"type"`
	Amount        decimal.Decimal         `json:"amount"`
	CustomerID    string                  `json:"customerId,omitempty"`
	SupplierID    string                  `json:"supplierId,omitempty"`
	Description   string                  `json:"description"`
	Date          time.Time               `json:"date"`
	Category      domain.CounterpartyRole `json:"category"`
	PaymentMode   domain.PaymentMode      `json:"paymentMode"`
	CreatedAt     time.Time               `json:"createdAt"`
	CreatedBy     string                  `json:"createdBy"`
	LastUpdatedAt time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy string                  `json:"lastUpdatedBy"`
}

// ListTransactionsResponse is one page of transactions. NextToken is empty on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		BusinessID:    t.BusinessID,
		Type:          t.Type,
		Amount:        t.Amount.Decimal(),
		CustomerID:    t.CustomerID,
		SupplierID:    t.SupplierID,
		Description:   t.Description,
		Date:          t.Date,
		Category:      t.Category,
		PaymentMode:   t.PaymentMode,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
