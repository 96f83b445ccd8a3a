package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
)

// exportService implements portssvc.ExportSvc
type exportService struct {
	BaseService
}

// Ensure exportService implements the ExportSvc interface
var _ portssvc.ExportSvc = (*exportService)(nil)

// GetLedgerExport loads the transaction list and the counterparty names from
// one snapshot, so every referenced counterparty has a name.
func (s *exportService) GetLedgerExport(ctx context.Context, businessID string, userID string) (*domain.LedgerExport, error) {
	business, err := s.AuthorizeBusiness(ctx, businessID, userID)
	if err != nil {
		return nil, err
	}

	var (
		txns []domain.Transaction
		cps  []domain.Counterparty
	)
	err = s.store.ReadSnapshot(ctx, func(ctx context.Context, repo portsrepo.LedgerReader) error {
		var err error
		if txns, err = repo.ListTransactionsChronological(ctx, businessID, ""); err != nil {
			return err
		}
		cps, err = repo.ListCounterparties(ctx, businessID, "", "")
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger export", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to export ledger: %w", err)
	}

	export := &domain.LedgerExport{
		Business:      *business,
		Transactions:  txns,
		CustomerNames: make(map[string]string),
		SupplierNames: make(map[string]string),
		GeneratedAt:   s.now(),
	}
	if export.Transactions == nil {
		export.Transactions = []domain.Transaction{}
	}
	for _, cp := range cps {
		if cp.Role == domain.RoleCustomer {
			export.CustomerNames[cp.CounterpartyID] = cp.Name
		} else {
			export.SupplierNames[cp.CounterpartyID] = cp.Name
		}
	}

	s.LogInfo(ctx, "Ledger exported",
		slog.String("business_id", businessID),
		slog.Int("transactions", len(txns)))
	return export, nil
}
