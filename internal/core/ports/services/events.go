package services

import (
	"context"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
)

// LedgerEventPublisher receives an event after every committed ledger mutation.
// Publishing failures are logged by the caller and never undo the mutation.
type LedgerEventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error
}

// MonthlyAnalyticsCache is a read-through cache of monthly analytics keyed by business id.
type MonthlyAnalyticsCache interface {
	Get(businessID string) ([]domain.MonthlyAnalytics, bool)

	// Reserve returns a stamp to pass to Set. If the business is invalidated
	// between Reserve and Set, the Set is dropped so a result computed from
	// pre-mutation data is never cached.
	Reserve(businessID string) uint64
	Set(businessID string, stamp uint64, months []domain.MonthlyAnalytics)

	Invalidate(businessID string)
}
