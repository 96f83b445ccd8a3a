package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_app/internal/utils/accounting"
)

// BalanceMaintainer persists the effect of a single transaction on the balance
// of the counterparty it references. It always runs on the repository of the
// caller's unit of work and only touches that one counterparty.
type BalanceMaintainer struct {
	BaseService
}

// NewBalanceMaintainer creates a BalanceMaintainer.
func NewBalanceMaintainer() *BalanceMaintainer {
	return &BalanceMaintainer{BaseService: BaseService{now: utcNow}}
}

// Apply adds txn's effect. The counterparty must exist in txn's business with
// the role given by txn.Category, otherwise apperrors.ErrNotFound is returned.
func (m *BalanceMaintainer) Apply(ctx context.Context, repo portsrepo.LedgerRepository, txn domain.Transaction, userID string, now time.Time) error {
	cp, err := m.lockCounterparty(ctx, repo, txn)
	if err != nil {
		return err
	}
	if cp == nil {
		return apperrors.NotFoundf("%s %s", roleLabel(txn.Category), txn.CounterpartyID())
	}
	if err := accounting.ApplyEffect(cp, txn); err != nil {
		return fmt.Errorf("failed to apply transaction %s to counterparty %s: %w", txn.TransactionID, cp.CounterpartyID, err)
	}
	cp.Touch(userID, now)
	if err := repo.UpdateCounterpartyBalance(ctx, *cp); err != nil {
		return fmt.Errorf("failed to apply transaction %s to counterparty %s: %w", txn.TransactionID, cp.CounterpartyID, err)
	}
	return nil
}

// Reverse removes txn's effect. A missing counterparty is not an error: the
// transaction is dangling and there is no balance left to correct.
func (m *BalanceMaintainer) Reverse(ctx context.Context, repo portsrepo.LedgerRepository, txn domain.Transaction, userID string, now time.Time) error {
	cp, err := m.lockCounterparty(ctx, repo, txn)
	if err != nil {
		return err
	}
	if cp == nil {
		m.LogInfo(ctx, "Counterparty missing while reversing transaction, skipping balance update",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("counterparty_id", txn.CounterpartyID()),
			slog.String("business_id", txn.BusinessID))
		return nil
	}
	if err := accounting.ReverseEffect(cp, txn); err != nil {
		return fmt.Errorf("failed to reverse transaction %s on counterparty %s: %w", txn.TransactionID, cp.CounterpartyID, err)
	}
	cp.Touch(userID, now)
	if err := repo.UpdateCounterpartyBalance(ctx, *cp); err != nil {
		return fmt.Errorf("failed to reverse transaction %s on counterparty %s: %w", txn.TransactionID, cp.CounterpartyID, err)
	}
	return nil
}

// lockCounterparty returns the referenced counterparty, or nil when it does not
// exist in the business or has a different role than the transaction category.
func (m *BalanceMaintainer) lockCounterparty(ctx context.Context, repo portsrepo.LedgerRepository, txn domain.Transaction) (*domain.Counterparty, error) {
	cp, err := repo.FindCounterpartyForUpdate(ctx, txn.BusinessID, txn.CounterpartyID())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock counterparty %s: %w", txn.CounterpartyID(), err)
	}
	if cp.Role != txn.Category {
		return nil, nil
	}
	return cp, nil
}

func roleLabel(role domain.CounterpartyRole) string {
	switch role {
	case domain.RoleCustomer:
		return "customer"
	case domain.RoleSupplier:
		return "supplier"
	default:
		return strings.ToLower(string(role))
	}
}
