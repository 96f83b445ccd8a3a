package dto

import (
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyAnalyticsResponse is one month of totals.
type MonthlyAnalyticsResponse struct {
	Month    string          `json:"month"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Balance  decimal.Decimal `json:"balance"`
}

// ListMonthlyAnalyticsResponse holds the monthly analytics of a business, oldest month first.
type ListMonthlyAnalyticsResponse struct {
	BusinessID string                     `json:"businessId"`
	Months     []MonthlyAnalyticsResponse `json:"months"`
}

// BalanceMismatchResponse describes one counterparty whose stored balance is off.
type BalanceMismatchResponse struct {
	CounterpartyID string                  `json:"counterpartyId"`
	Role           domain.CounterpartyRole `json:"role"`
	Name           string                  `json:"name"`
	Stored         decimal.Decimal         `json:"stored"`
	Computed       decimal.Decimal         `json:"computed"`
}

// VerifyBalancesResponse is the reconciliation report of a business.
type VerifyBalancesResponse struct {
	Consistent bool                      `json:"consistent"`
	Mismatches []BalanceMismatchResponse `json:"mismatches"`
}

// LedgerExportResponse is the export bundle consumed by external renderers.
type LedgerExportResponse struct {
	Business      BusinessResponse      `json:"business"`
	Transactions  []TransactionResponse `json:"transactions"`
	CustomerNames map[string]string     `json:"customerNames"`
	SupplierNames map[string]string     `json:"supplierNames"`
	GeneratedAt   time.Time             `json:"generatedAt"`
}

// ToListMonthlyAnalyticsResponse converts monthly analytics to the response DTO
func ToListMonthlyAnalyticsResponse(businessID string, months []domain.MonthlyAnalytics) ListMonthlyAnalyticsResponse {
	res := make([]MonthlyAnalyticsResponse, len(months))
	for i, m := range months {
		res[i] = MonthlyAnalyticsResponse{
			Month:    m.Month,
			TotalIn:  m.TotalIn.Decimal(),
			TotalOut: m.TotalOut.Decimal(),
			Balance:  m.Balance.Decimal(),
		}
	}
	return ListMonthlyAnalyticsResponse{BusinessID: businessID, Months: res}
}

// ToVerifyBalancesResponse converts a mismatch list to the reconciliation report
func ToVerifyBalancesResponse(mismatches []domain.BalanceMismatch) VerifyBalancesResponse {
	res := make([]BalanceMismatchResponse, len(mismatches))
	for i, m := range mismatches {
		res[i] = BalanceMismatchResponse{
			CounterpartyID: m.CounterpartyID,
			Role:           m.Role,
			Name:           m.Name,
			Stored:         m.Stored.Decimal(),
			Computed:       m.Computed.Decimal(),
		}
	}
	return VerifyBalancesResponse{Consistent: len(res) == 0, Mismatches: res}
}

// ToLedgerExportResponse converts a domain.LedgerExport to its DTO
func ToLedgerExportResponse(e *domain.LedgerExport) LedgerExportResponse {
	return LedgerExportResponse{
		Business:      ToBusinessResponse(&e.Business),
		Transactions:  ToTransactionResponses(e.Transactions),
		CustomerNames: e.CustomerNames,
		SupplierNames: e.SupplierNames,
		GeneratedAt:   e.GeneratedAt,
	}
}
