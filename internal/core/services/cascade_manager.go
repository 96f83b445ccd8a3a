package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
)

// CascadeManager owns every delete that has dependent rows. It operates on the
// repository handed in by the caller's unit of work and degrades gracefully on
// dangling references instead of failing.
type CascadeManager struct {
	BaseService
	balances *BalanceMaintainer
}

// NewCascadeManager creates a CascadeManager that reverses balances through balances.
func NewCascadeManager(balances *BalanceMaintainer) *CascadeManager {
	return &CascadeManager{BaseService: BaseService{now: utcNow}, balances: balances}
}

// DeleteTransaction reverses txn's effect on its counterparty, if that still
// exists, and removes the transaction row.
func (m *CascadeManager) DeleteTransaction(ctx context.Context, repo portsrepo.LedgerRepository, txn domain.Transaction, userID string, now time.Time) error {
	if err := m.balances.Reverse(ctx, repo, txn, userID, now); err != nil {
		return err
	}
	if err := repo.DeleteTransaction(ctx, txn.BusinessID, txn.TransactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// DeleteCounterparty removes the counterparty and every transaction of the
// business that references it. It returns the number of transactions removed.
// No balance is touched: the only balance affected is the one being deleted.
func (m *CascadeManager) DeleteCounterparty(ctx context.Context, repo portsrepo.LedgerRepository, businessID, counterpartyID string) (int64, error) {
	if err := repo.DeleteCounterparty(ctx, businessID, counterpartyID); err != nil {
		return 0, fmt.Errorf("failed to delete counterparty %s: %w", counterpartyID, err)
	}
	removed, err := repo.DeleteTransactionsByCounterparty(ctx, businessID, counterpartyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions of counterparty %s: %w", counterpartyID, err)
	}
	m.LogDebug(ctx, "Counterparty cascade completed",
		slog.String("business_id", businessID),
		slog.String("counterparty_id", counterpartyID),
		slog.Int64("transactions_removed", removed))
	return removed, nil
}

// DeleteBusiness removes all transactions, then all counterparties, then the business.
func (m *CascadeManager) DeleteBusiness(ctx context.Context, repo portsrepo.LedgerRepository, businessID string) error {
	txns, err := repo.DeleteTransactionsByBusiness(ctx, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete transactions of business %s: %w", businessID, err)
	}
	cps, err := repo.DeleteCounterpartiesByBusiness(ctx, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete counterparties of business %s: %w", businessID, err)
	}
	if err := repo.DeleteBusiness(ctx, businessID); err != nil {
		return fmt.Errorf("failed to delete business %s: %w", businessID, err)
	}
	m.LogDebug(ctx, "Business cascade completed",
		slog.String("business_id", businessID),
		slog.Int64("transactions_removed", txns),
		slog.Int64("counterparties_removed", cps))
	return nil
}
