package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/SscSPs/cashbook_app/internal/utils/accounting"
	"github.com/google/uuid"
)

// counterpartyService implements portssvc.CounterpartySvcFacade for both roles.
type counterpartyService struct {
	BaseService
	cascade *CascadeManager
}

// Ensure counterpartyService implements the CounterpartySvcFacade interface
var _ portssvc.CounterpartySvcFacade = (*counterpartyService)(nil)

func checkRole(role domain.CounterpartyRole) error {
	if !role.IsValid() {
		return apperrors.NewValidationError("role", "role must be CUSTOMER or SUPPLIER")
	}
	return nil
}

// findOfRole loads a counterparty and hides it when the role does not match.
func findOfRole(ctx context.Context, repo portsrepo.CounterpartyReader, businessID string, role domain.CounterpartyRole, counterpartyID string) (*domain.Counterparty, error) {
	cp, err := repo.FindCounterpartyByID(ctx, businessID, counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("%s %s", roleLabel(role), counterpartyID)
		}
		return nil, err
	}
	if cp.Role != role {
		return nil, apperrors.NotFoundf("%s %s", roleLabel(role), counterpartyID)
	}
	return cp, nil
}

func (s *counterpartyService) CreateCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}
	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	phone, err := domain.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	cp := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		BusinessID:     businessID,
		Role:           role,
		Name:           name,
		PhoneNumber:    phone,
		Balance:        0,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	if err := s.store.SaveCounterparty(ctx, cp); err != nil {
		s.LogError(ctx, err, "Failed to save counterparty",
			slog.String("business_id", businessID),
			slog.String("counterparty_id", cp.CounterpartyID))
		return nil, fmt.Errorf("failed to create %s: %w", roleLabel(role), err)
	}

	s.notify(ctx, domain.EventCounterpartyCreated, businessID, cp.CounterpartyID)
	s.LogInfo(ctx, "Counterparty created",
		slog.String("business_id", businessID),
		slog.String("counterparty_id", cp.CounterpartyID),
		slog.String("role", string(role)))
	return &cp, nil
}

func (s *counterpartyService) GetCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (*domain.Counterparty, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}
	cp, err := findOfRole(ctx, s.store, businessID, role, counterpartyID)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to get counterparty", slog.String("counterparty_id", counterpartyID))
		return nil, err
	}
	return cp, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, params dto.ListCounterpartiesParams, userID string) ([]domain.Counterparty, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}
	cps, err := s.store.ListCounterparties(ctx, businessID, role, strings.TrimSpace(params.Search))
	if err != nil {
		s.LogError(ctx, err, "Failed to list counterparties", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list %ss: %w", roleLabel(role), err)
	}
	if cps == nil {
		return []domain.Counterparty{}, nil
	}
	return cps, nil
}

func (s *counterpartyService) UpdateCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}

	var updated *domain.Counterparty
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		cp, err := repo.FindCounterpartyForUpdate(ctx, businessID, counterpartyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NotFoundf("%s %s", roleLabel(role), counterpartyID)
			}
			return err
		}
		if cp.Role != role {
			return apperrors.NotFoundf("%s %s", roleLabel(role), counterpartyID)
		}
		if req.Name != nil {
			if cp.Name, err = domain.NormalizeName(*req.Name); err != nil {
				return err
			}
		}
		if req.PhoneNumber != nil {
			if cp.PhoneNumber, err = domain.NormalizePhoneNumber(*req.PhoneNumber); err != nil {
				return err
			}
		}
		cp.Touch(userID, s.now())
		if err := repo.UpdateCounterpartyProfile(ctx, *cp); err != nil {
			return err
		}
		updated = cp
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update counterparty", slog.String("counterparty_id", counterpartyID))
		return nil, err
	}

	s.notify(ctx, domain.EventCounterpartyUpdated, businessID, counterpartyID)
	s.LogInfo(ctx, "Counterparty updated", slog.String("counterparty_id", counterpartyID))
	return updated, nil
}

func (s *counterpartyService) DeleteCounterparty(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (int64, error) {
	if err := checkRole(role); err != nil {
		return 0, err
	}
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return 0, err
	}

	var removed int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		if _, err := findOfRole(ctx, repo, businessID, role, counterpartyID); err != nil {
			return err
		}
		n, err := s.cascade.DeleteCounterparty(ctx, repo, businessID, counterpartyID)
		removed = n
		return err
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to delete counterparty", slog.String("counterparty_id", counterpartyID))
		return 0, err
	}

	s.notify(ctx, domain.EventCounterpartyDeleted, businessID, counterpartyID)
	s.LogInfo(ctx, "Counterparty deleted",
		slog.String("counterparty_id", counterpartyID),
		slog.Int64("transactions_removed", removed))
	return removed, nil
}

func (s *counterpartyService) GetCounterpartyStatement(ctx context.Context, businessID string, role domain.CounterpartyRole, counterpartyID string, userID string) (*domain.CounterpartyStatement, error) {
	cp, err := s.GetCounterparty(ctx, businessID, role, counterpartyID, userID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactionsChronological(ctx, businessID, counterpartyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load statement transactions", slog.String("counterparty_id", counterpartyID))
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}

	balances, err := accounting.RunningBalances(txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute statement balances", slog.String("counterparty_id", counterpartyID))
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}
	entries := make([]domain.StatementEntry, len(txns))
	for i, txn := range txns {
		entries[i] = domain.StatementEntry{Transaction: txn, RunningBalance: balances[i]}
	}
	statement := &domain.CounterpartyStatement{
		Counterparty: *cp,
		Entries:      entries,
	}
	if n := len(balances); n > 0 {
		statement.ClosingBalance = balances[n-1]
	}
	return statement, nil
}
