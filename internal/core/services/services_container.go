package services

import (
	"time"

	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
)

// containerOptions collects optional collaborators of the service container.
type containerOptions struct {
	cache      portssvc.MonthlyAnalyticsCache
	publishers []portssvc.LedgerEventPublisher
	clock      func() time.Time
}

// ContainerOption is a functional option for configuring the service container
type ContainerOption func(*containerOptions)

// WithAnalyticsCache puts a read-through cache in front of monthly analytics.
// It is invalidated by every ledger mutation.
func WithAnalyticsCache(cache portssvc.MonthlyAnalyticsCache) ContainerOption {
	return func(o *containerOptions) {
		o.cache = cache
	}
}

// WithEventPublisher adds a publisher that receives every committed ledger event.
func WithEventPublisher(publisher portssvc.LedgerEventPublisher) ContainerOption {
	return func(o *containerOptions) {
		o.publishers = append(o.publishers, publisher)
	}
}

// WithClock overrides the time source used for audit fields and default dates.
func WithClock(clock func() time.Time) ContainerOption {
	return func(o *containerOptions) {
		o.clock = clock
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	opts := &containerOptions{clock: utcNow}
	for _, option := range options {
		option(opts)
	}

	// Cache invalidation must run before any remote publisher.
	publishers := make([]portssvc.LedgerEventPublisher, 0, len(opts.publishers)+1)
	if opts.cache != nil {
		publishers = append(publishers, cacheInvalidator{cache: opts.cache})
	}
	publishers = append(publishers, opts.publishers...)

	base := BaseService{
		store: repos.Ledger,
		now:   opts.clock,
	}
	if len(publishers) > 0 {
		base.events = &fanoutPublisher{publishers: publishers}
	}

	balances := &BalanceMaintainer{BaseService: base}
	cascade := &CascadeManager{BaseService: base, balances: balances}

	return &portssvc.ServiceContainer{
		Business:     &businessService{BaseService: base, cascade: cascade},
		Counterparty: &counterpartyService{BaseService: base, cascade: cascade},
		Transaction:  &transactionService{BaseService: base, balances: balances, cascade: cascade},
		Analytics:    &analyticsService{BaseService: base, cache: opts.cache},
		Export:       &exportService{BaseService: base},
	}
}
