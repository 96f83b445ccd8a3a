// Package cache holds the read-through cache for monthly analytics.
package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// generationsPerEntry sizes the generation tracker relative to the cache so
// that a reservation outlives plenty of unrelated invalidations.
const generationsPerEntry = 4

// MonthlyAnalytics caches aggregated months per business in a size-bounded,
// expiring LRU. Each business carries a generation that Invalidate advances;
// a Set whose reserved generation is no longer current is dropped.
// Generations live in their own bounded LRU. A Set whose generation was
// evicted is dropped too, so eviction only ever costs a cache fill.
type MonthlyAnalytics struct {
	lru *expirable.LRU[string, []domain.MonthlyAnalytics]

	mu          sync.Mutex
	counter     uint64
	generations *simplelru.LRU[string, uint64]
}

var _ portssvc.MonthlyAnalyticsCache = (*MonthlyAnalytics)(nil)

// NewMonthlyAnalytics creates a cache holding at most size businesses for ttl each.
// A zero ttl disables expiry.
func NewMonthlyAnalytics(size int, ttl time.Duration) *MonthlyAnalytics {
	if size <= 0 {
		size = 1
	}
	// NewLRU only fails for a non-positive size.
	generations, _ := simplelru.NewLRU[string, uint64](size*generationsPerEntry, nil)
	return &MonthlyAnalytics{
		lru:         expirable.NewLRU[string, []domain.MonthlyAnalytics](size, nil, ttl),
		generations: generations,
	}
}

// Get returns a copy of the cached months of a business.
func (c *MonthlyAnalytics) Get(businessID string) ([]domain.MonthlyAnalytics, bool) {
	months, ok := c.lru.Get(businessID)
	if !ok {
		return nil, false
	}
	return slices.Clone(months), true
}

func (c *MonthlyAnalytics) Reserve(businessID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen, ok := c.generations.Get(businessID); ok {
		return gen
	}
	c.generations.Add(businessID, c.counter)
	return c.counter
}

func (c *MonthlyAnalytics) Set(businessID string, stamp uint64, months []domain.MonthlyAnalytics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen, ok := c.generations.Peek(businessID); !ok || gen != stamp {
		return
	}
	c.lru.Add(businessID, slices.Clone(months))
}

func (c *MonthlyAnalytics) Invalidate(businessID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	c.generations.Add(businessID, c.counter)
	c.lru.Remove(businessID)
}

// Len reports the number of cached businesses.
func (c *MonthlyAnalytics) Len() int {
	return c.lru.Len()
}
