package dto

import (
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCounterpartyRequest defines the data needed to create a customer or supplier.
type CreateCounterpartyRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone10"`
}

// UpdateCounterpartyRequest edits a counterparty profile. The balance cannot be edited.
type UpdateCounterpartyRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,phone10"`
}

// ListCounterpartiesParams defines query parameters for listing counterparties.
type ListCounterpartiesParams struct {
	Search string `form:"search"`
}

// CounterpartyResponse defines the data returned for a customer or supplier.
type CounterpartyResponse struct {
	CounterpartyID string                  `json:"id"`
	BusinessID     string                  `json:"businessId"`
	Role           domain.CounterpartyRole `json:"role"`
	Name           string                  `json:"name"`
	PhoneNumber    string                  `json:"phoneNumber"`
	Balance        decimal.Decimal         `json:"balance"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
	LastUpdatedAt  time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy  string                  `json:"lastUpdatedBy"`
}

// ListCounterpartiesResponse wraps a list of counterparties.
type ListCounterpartiesResponse struct {
	Counterparties []CounterpartyResponse `json:"counterparties"`
}

// DeleteCounterpartyResponse reports how many transactions the cascade removed.
type DeleteCounterpartyResponse struct {
	DeletedTransactions int64 `json:"deletedTransactions"`
}

// StatementEntryResponse is one statement line.
type StatementEntryResponse struct {
	Transaction    TransactionResponse `json:"transaction"`
	RunningBalance decimal.Decimal     `json:"runningBalance"`
}

// CounterpartyStatementResponse lists a counterparty's transactions with running balances.
type CounterpartyStatementResponse struct {
	Counterparty   CounterpartyResponse     `json:"counterparty"`
	Entries        []StatementEntryResponse `json:"entries"`
	ClosingBalance decimal.Decimal          `json:"closingBalance"`
}

// ToCounterpartyResponse converts a domain.Counterparty to CounterpartyResponse DTO
func ToCounterpartyResponse(cp *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID: cp.CounterpartyID,
		BusinessID:     cp.BusinessID,
		Role:           cp.Role,
		Name:           cp.Name,
		PhoneNumber:    cp.PhoneNumber,
		Balance:        cp.Balance.Decimal(),
		CreatedAt:      cp.CreatedAt,
		CreatedBy:      cp.CreatedBy,
		LastUpdatedAt:  cp.LastUpdatedAt,
		LastUpdatedBy:  cp.LastUpdatedBy,
	}
}

// ToListCounterpartiesResponse converts a slice of domain.Counterparty to ListCounterpartiesResponse
func ToListCounterpartiesResponse(cps []domain.Counterparty) ListCounterpartiesResponse {
	res := make([]CounterpartyResponse, len(cps))
	for i := range cps {
		res[i] = ToCounterpartyResponse(&cps[i])
	}
	return ListCounterpartiesResponse{Counterparties: res}
}

// ToCounterpartyStatementResponse converts a domain.CounterpartyStatement to its DTO
func ToCounterpartyStatementResponse(st *domain.CounterpartyStatement) CounterpartyStatementResponse {
	entries := make([]StatementEntryResponse, len(st.Entries))
	for i := range st.Entries {
		entries[i] = StatementEntryResponse{
			Transaction:    ToTransactionResponse(&st.Entries[i].Transaction),
			RunningBalance: st.Entries[i].RunningBalance.Decimal(),
		}
	}
	return CounterpartyStatementResponse{
		Counterparty:   ToCounterpartyResponse(&st.Counterparty),
		Entries:        entries,
		ClosingBalance: st.ClosingBalance.Decimal(),
	}
}
