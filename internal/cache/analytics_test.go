package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMonths() []domain.MonthlyAnalytics {
	return []domain.MonthlyAnalytics{
		{Month: "2024-01", TotalIn: 10000, Balance: 10000},
		{Month: "2024-02", TotalOut: 3000, Balance: -3000},
	}
}

func TestMonthlyAnalytics_SetAndGet(t *testing.T) {
	c := NewMonthlyAnalytics(8, time.Minute)

	_, ok := c.Get("biz-1")
	assert.False(t, ok)

	stamp := c.Reserve("biz-1")
	c.Set("biz-1", stamp, sampleMonths())

	got, ok := c.Get("biz-1")
	require.True(t, ok)
	assert.Equal(t, sampleMonths(), got)
}

func TestMonthlyAnalytics_GetReturnsCopy(t *testing.T) {
	c := NewMonthlyAnalytics(8, time.Minute)
	c.Set("biz-1", c.Reserve("biz-1"), sampleMonths())

	got, _ := c.Get("biz-1")
	got[0].TotalIn = 1

	again, _ := c.Get("biz-1")
	assert.Equal(t, domain.Money(10000), again[0].TotalIn)
}

func TestMonthlyAnalytics_InvalidateDropsEntry(t *testing.T) {
	c := NewMonthlyAnalytics(8, time.Minute)
	c.Set("biz-1", c.Reserve("biz-1"), sampleMonths())
	c.Set("biz-2", c.Reserve("biz-2"), sampleMonths())

	c.Invalidate("biz-1")

	_, ok := c.Get("biz-1")
	assert.False(t, ok)
	_, ok = c.Get("biz-2")
	assert.True(t, ok, "other businesses are unaffected")
}

func TestMonthlyAnalytics_StaleSetIsDropped(t *testing.T) {
	c := NewMonthlyAnalytics(8, time.Minute)

	stamp := c.Reserve("biz-1")
	// A mutation lands while the reader is still aggregating.
	c.Invalidate("biz-1")
	c.Set("biz-1", stamp, sampleMonths())

	_, ok := c.Get("biz-1")
	assert.False(t, ok)

	c.Set("biz-1", c.Reserve("biz-1"), sampleMonths())
	_, ok = c.Get("biz-1")
	assert.True(t, ok)
}

func TestMonthlyAnalytics_Eviction(t *testing.T) {
	c := NewMonthlyAnalytics(2, 0)
	c.Set("a", c.Reserve("a"), sampleMonths())
	c.Set("b", c.Reserve("b"), sampleMonths())
	c.Set("c", c.Reserve("c"), sampleMonths())

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestMonthlyAnalytics_Expiry(t *testing.T) {
	c := NewMonthlyAnalytics(2, 20*time.Millisecond)
	c.Set("a", c.Reserve("a"), sampleMonths())

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMonthlyAnalytics_GenerationsAreBounded(t *testing.T) {
	c := NewMonthlyAnalytics(2, time.Minute)

	for i := 0; i < 100; i++ {
		c.Invalidate(fmt.Sprintf("biz-%d", i))
	}
	assert.LessOrEqual(t, c.generations.Len(), 2*generationsPerEntry)

	stamp := c.Reserve("biz-99")
	c.Invalidate("biz-99")
	c.Set("biz-99", stamp, sampleMonths())
	_, ok := c.Get("biz-99")
	assert.False(t, ok, "recent invalidations are still honoured")
}

func TestMonthlyAnalytics_SetAfterGenerationEvictedIsDropped(t *testing.T) {
	c := NewMonthlyAnalytics(1, time.Minute)

	stamp := c.Reserve("a")
	for i := 0; i < generationsPerEntry; i++ {
		c.Invalidate(fmt.Sprintf("other-%d", i))
	}
	c.Set("a", stamp, sampleMonths())

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", c.Reserve("a"), sampleMonths())
	_, ok = c.Get("a")
	assert.True(t, ok)
}
