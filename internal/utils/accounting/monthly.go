package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
)

// MonthKeyLayout formats the UTC calendar month used to bucket transactions.
const MonthKeyLayout = "2006-01"

// MonthKey returns the "YYYY-MM" bucket of a transaction.
func MonthKey(txn domain.Transaction) string {
	return txn.Date.UTC().Format(MonthKeyLayout)
}

// AggregateMonthly reduces transactions into one entry per UTC month that has at
// least one transaction, sorted ascending by month. Balance is TotalIn - TotalOut.
// A month whose totals leave the int64 range is an error.
func AggregateMonthly(txns []domain.Transaction) ([]domain.MonthlyAnalytics, error) {
	byMonth := make(map[string]*domain.MonthlyAnalytics)
	for _, txn := range txns {
		key := MonthKey(txn)
		m, ok := byMonth[key]
		if !ok {
			m = &domain.MonthlyAnalytics{Month: key}
			byMonth[key] = m
		}
		var err error
		switch txn.Type {
		case domain.TransactionIn:
			m.TotalIn, err = m.TotalIn.Add(txn.Amount)
		case domain.TransactionOut:
			m.TotalOut, err = m.TotalOut.Add(txn.Amount)
		}
		if err != nil {
			return nil, fmt.Errorf("monthly totals for %s: %w", key, err)
		}
	}

	result := make([]domain.MonthlyAnalytics, 0, len(byMonth))
	for _, m := range byMonth {
		balance, err := m.TotalIn.Add(-m.TotalOut)
		if err != nil {
			return nil, fmt.Errorf("monthly balance for %s: %w", m.Month, err)
		}
		m.Balance = balance
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result, nil
}
