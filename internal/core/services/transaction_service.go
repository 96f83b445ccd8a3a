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
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/SscSPs/cashbook_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// transactionService implements portssvc.TransactionSvcFacade
type transactionService struct {
	BaseService
	balances *BalanceMaintainer
	cascade  *CascadeManager
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, businessID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}

	now := s.now()
	amount, err := domain.MoneyFromDecimal(req.Amount)
	if err != nil {
		return nil, err
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BusinessID:    businessID,
		Type:          req.Type,
		Amount:        amount,
		CustomerID:    strings.TrimSpace(req.CustomerID),
		SupplierID:    strings.TrimSpace(req.SupplierID),
		Description:   strings.TrimSpace(req.Description),
		Date:          now,
		Category:      req.Category,
		PaymentMode:   req.PaymentMode,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if req.Date != nil {
		txn.Date = normalizeDate(*req.Date)
	}
	if txn.PaymentMode == "" {
		txn.PaymentMode = domain.PaymentCash
	}
	if txn.Category == "" {
		txn.Category = txn.CounterpartyRole()
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		if err := s.balances.Apply(ctx, repo, txn, userID, now); err != nil {
			return err
		}
		return repo.SaveTransaction(ctx, txn)
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to create transaction",
			slog.String("business_id", businessID),
			slog.String("counterparty_id", txn.CounterpartyID()))
		return nil, err
	}

	s.notify(ctx, domain.EventTransactionCreated, businessID, txn.TransactionID)
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, businessID string, transactionID string, userID string) (*domain.Transaction, error) {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}
	txn, err := s.store.FindTransactionByID(ctx, businessID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("transaction %s", transactionID)
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, businessID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error) {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}

	limit, err := pagination.NormalizeLimit(params.Limit)
	if err != nil {
		return nil, apperrors.NewValidationError("limit", err.Error())
	}
	filter, err := buildTransactionFilter(params)
	if err != nil {
		return nil, err
	}
	var after *domain.TransactionCursor
	if params.NextToken != "" {
		if after, err = pagination.DecodeTransactionCursor(params.NextToken); err != nil {
			return nil, apperrors.NewValidationError("nextToken", "invalid pagination token")
		}
	}

	// Fetch one extra row to learn whether another page exists.
	txns, err := s.store.ListTransactions(ctx, businessID, filter, after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{}
	if len(txns) > limit {
		txns = txns[:limit]
		resp.NextToken = pagination.EncodeTransactionCursor(domain.CursorFor(txns[limit-1]))
	}
	resp.Transactions = dto.ToTransactionResponses(txns)
	return resp, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, businessID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return nil, err
	}

	now := s.now()
	var updated domain.Transaction
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		old, err := repo.FindTransactionByID(ctx, businessID, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NotFoundf("transaction %s", transactionID)
			}
			return err
		}

		merged, err := mergeTransaction(*old, req)
		if err != nil {
			return err
		}
		merged.Touch(userID, now)
		if err := merged.Validate(); err != nil {
			return err
		}

		// Edit is reverse(old) then apply(new), never a diff. Both may hit the same row.
		if err := s.balances.Reverse(ctx, repo, *old, userID, now); err != nil {
			return err
		}
		if err := s.balances.Apply(ctx, repo, merged, userID, now); err != nil {
			return err
		}
		if err := repo.UpdateTransaction(ctx, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.notify(ctx, domain.EventTransactionUpdated, businessID, transactionID)
	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, businessID string, transactionID string, userID string) error {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return err
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		txn, err := repo.FindTransactionByID(ctx, businessID, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NotFoundf("transaction %s", transactionID)
			}
			return err
		}
		return s.cascade.DeleteTransaction(ctx, repo, *txn, userID, s.now())
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.notify(ctx, domain.EventTransactionDeleted, businessID, transactionID)
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// mergeTransaction applies a partial update on top of the stored transaction.
// Setting one counterparty reference clears the other; the category follows
// the reference unless the request sets it explicitly.
func mergeTransaction(old domain.Transaction, req dto.UpdateTransactionRequest) (domain.Transaction, error) {
	merged := old
	if req.Type != nil {
		merged.Type = *req.Type
	}
	if req.Amount != nil {
		amount, err := domain.MoneyFromDecimal(*req.Amount)
		if err != nil {
			return domain.Transaction{}, err
		}
		merged.Amount = amount
	}
	if req.CustomerID != nil {
		merged.CustomerID = strings.TrimSpace(*req.CustomerID)
		if merged.CustomerID != "" && req.SupplierID == nil {
			merged.SupplierID = ""
		}
	}
	if req.SupplierID != nil {
		merged.SupplierID = strings.TrimSpace(*req.SupplierID)
		if merged.SupplierID != "" && req.CustomerID == nil {
			merged.CustomerID = ""
		}
	}
	if req.Description != nil {
		merged.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		merged.Date = normalizeDate(*req.Date)
	}
	if req.PaymentMode != nil {
		merged.PaymentMode = *req.PaymentMode
	}
	if req.Category != nil {
		merged.Category = *req.Category
	} else if req.CustomerID != nil || req.SupplierID != nil {
		merged.Category = merged.CounterpartyRole()
	}
	return merged, nil
}

func normalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// buildTransactionFilter validates listing query parameters.
func buildTransactionFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		Search:         strings.TrimSpace(params.Search),
		Type:           domain.TransactionType(strings.ToUpper(params.Type)),
		PaymentMode:    domain.PaymentMode(strings.ToUpper(params.PaymentMode)),
		Category:       domain.CounterpartyRole(strings.ToUpper(params.Category)),
		CounterpartyID: strings.TrimSpace(params.CounterpartyID),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return filter, apperrors.NewValidationError("type", "type must be IN or OUT")
	}
	if filter.PaymentMode != "" && !filter.PaymentMode.IsValid() {
		return filter, apperrors.NewValidationError("paymentMode", "paymentMode must be CASH or ONLINE")
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		return filter, apperrors.NewValidationError("category", "category must be CUSTOMER or SUPPLIER")
	}
	if params.From != "" {
		from, err := parseDateBound(params.From, false)
		if err != nil {
			return filter, apperrors.NewValidationError("from", "from must be an RFC 3339 timestamp or YYYY-MM-DD")
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := parseDateBound(params.To, true)
		if err != nil {
			return filter, apperrors.NewValidationError("to", "to must be an RFC 3339 timestamp or YYYY-MM-DD")
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, apperrors.NewValidationError("from", "from must not be after to")
	}
	return filter, nil
}

// parseDateBound accepts a timestamp or a calendar date. A date used as an upper
// bound covers the whole UTC day.
func parseDateBound(value string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}
	if upper {
		return day.Add(24*time.Hour - time.Microsecond), nil
	}
	return day, nil
}
