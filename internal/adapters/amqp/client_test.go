package amqp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{12, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"refused", errors.New("dial tcp: connection refused"), true},
		{"eof", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"channel closed", errors.New("Exception (504) Reason: \"channel/connection is not open\""), true},
		{"consumer lost", errors.New("message channel closed: connection lost"), true},
		{"other", errors.New("invalid input"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isConnectionError(tt.err))
		})
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	c := &Client{}
	for i := 0; i < maxFailures-1; i++ {
		c.recordFailure()
		assert.False(t, c.isCircuitOpen(), "failure %d should not open the circuit", i+1)
	}
	c.recordFailure()
	assert.True(t, c.isCircuitOpen())

	c.recordSuccess()
	assert.False(t, c.isCircuitOpen())
	assert.Equal(t, StateClosed, c.state)
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	c := &Client{state: StateOpen, failureCount: maxFailures}
	c.lastFailure = time.Now().Add(-openTimeout - time.Second)

	assert.False(t, c.isCircuitOpen())
	assert.Equal(t, StateHalfOpen, c.state)

	// A failure while half-open opens the circuit again at once.
	c.recordFailure()
	assert.Equal(t, StateOpen, c.state)
	assert.True(t, c.isCircuitOpen())
}

func TestPublishLedgerEvent_SkippedWhenCircuitOpen(t *testing.T) {
	c := &Client{state: StateOpen, lastFailure: time.Now()}

	err := c.PublishLedgerEvent(context.Background(), domain.LedgerEvent{BusinessID: "biz-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

type recordingCache struct {
	invalidated []string
}

func (r *recordingCache) Get(string) ([]domain.MonthlyAnalytics, bool) { return nil, false }
func (r *recordingCache) Reserve(string) uint64 { return 0 }
func (r *recordingCache) Set(string, uint64, []domain.MonthlyAnalytics) {}
func (r *recordingCache) Invalidate(businessID string) { r.invalidated = append(r.invalidated, businessID) }

func TestInvalidateCache(t *testing.T) {
	cache := &recordingCache{}
	handle := InvalidateCache(cache)

	require.NoError(t, handle(domain.LedgerEvent{BusinessID: "biz-1", Kind: domain.EventTransactionCreated}))
	require.NoError(t, handle(domain.LedgerEvent{BusinessID: "biz-2", Kind: domain.EventBusinessDeleted}))
	assert.Equal(t, []string{"biz-1", "biz-2"}, cache.invalidated)
}
