package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/utils/accounting"
)

// analyticsService implements portssvc.AnalyticsSvcFacade. Every result is
// derived from the current transaction set; the optional cache is invalidated
// by every mutation of the business before that mutation returns.
type analyticsService struct {
	BaseService
	cache portssvc.MonthlyAnalyticsCache
}

// Ensure analyticsService implements the AnalyticsSvcFacade interface
var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

func (s *analyticsService) GetMonthlyAnalytics(ctx context.Context, businessID string, userID string) ([]domain.MonthlyAnalytics, error) {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}

	var stamp uint64
	if s.cache != nil {
		if months, ok := s.cache.Get(businessID); ok {
			s.LogDebug(ctx, "Monthly analytics served from cache", slog.String("business_id", businessID))
			return months, nil
		}
		stamp = s.cache.Reserve(businessID)
	}

	txns, err := s.store.ListTransactionsChronological(ctx, businessID, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for analytics", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}
	months, err := accounting.AggregateMonthly(txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate monthly analytics", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(businessID, stamp, months)
	}
	return months, nil
}

func (s *analyticsService) VerifyBalances(ctx context.Context, businessID string, userID string) ([]domain.BalanceMismatch, error) {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}

	// Balances and transactions must come from the same state, or a concurrent
	// mutation shows up as drift.
	var (
		cps  []domain.Counterparty
		txns []domain.Transaction
	)
	err := s.store.ReadSnapshot(ctx, func(ctx context.Context, repo portsrepo.LedgerReader) error {
		var err error
		if cps, err = repo.ListCounterparties(ctx, businessID, "", ""); err != nil {
			return err
		}
		txns, err = repo.ListTransactionsChronological(ctx, businessID, "")
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for verification", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to verify balances: %w", err)
	}

	byCounterparty := make(map[string][]domain.Transaction)
	for _, txn := range txns {
		id := txn.CounterpartyID()
		byCounterparty[id] = append(byCounterparty[id], txn)
	}

	mismatches := []domain.BalanceMismatch{}
	for _, cp := range cps {
		computed, err := accounting.SumSignedAmounts(byCounterparty[cp.CounterpartyID])
		if err != nil {
			s.LogError(ctx, err, "Failed to recompute counterparty balance", slog.String("counterparty_id", cp.CounterpartyID))
			return nil, fmt.Errorf("failed to verify balances: %w", err)
		}
		if computed != cp.Balance {
			mismatches = append(mismatches, domain.BalanceMismatch{
				CounterpartyID: cp.CounterpartyID,
				Role:           cp.Role,
				Name:           cp.Name,
				Stored:         cp.Balance,
				Computed:       computed,
			})
		}
	}

	if len(mismatches) > 0 {
		s.GetLogger(ctx).Warn("Counterparty balances out of sync",
			slog.String("business_id", businessID),
			slog.Int("mismatches", len(mismatches)))
	}
	return mismatches, nil
}
