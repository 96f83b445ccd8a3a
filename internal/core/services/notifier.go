package services

import (
	"context"
	"errors"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
)

// fanoutPublisher delivers every event to each publisher in order.
// Cache invalidation is registered first so it happens before any remote publish.
type fanoutPublisher struct {
	publishers []portssvc.LedgerEventPublisher
}

func (f *fanoutPublisher) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishLedgerEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// cacheInvalidator drops the cached analytics of the business an event belongs to.
type cacheInvalidator struct {
	cache portssvc.MonthlyAnalyticsCache
}

func (c cacheInvalidator) PublishLedgerEvent(_ context.Context, event domain.LedgerEvent) error {
	c.cache.Invalidate(event.BusinessID)
	return nil
}
