package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	store  portsrepo.LedgerStore
	events portssvc.LedgerEventPublisher
	now    func() time.Time
}

// utcNow is truncated to microseconds so values survive a round trip through PostgreSQL unchanged.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logUnexpected logs err unless it is a domain error the caller is expected to handle.
func (s *BaseService) logUnexpected(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
		s.LogDebug(ctx, msg, append(keyvals, slog.String("error", err.Error()))...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// AuthorizeBusiness loads a business and checks that userID owns it.
// A business owned by someone else is reported as not found.
func (s *BaseService) AuthorizeBusiness(ctx context.Context, businessID, userID string) (*domain.Business, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}
	business, err := s.store.FindBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("business %s", businessID)
		}
		s.LogError(ctx, err, "Failed to load business", slog.String("business_id", businessID))
		return nil, err
	}
	if business.CreatedBy != userID {
		s.LogDebug(ctx, "Business belongs to another user",
			slog.String("business_id", businessID),
			slog.String("user_id", userID))
		return nil, apperrors.NotFoundf("business %s", businessID)
	}
	return business, nil
}

// requireCaller rejects calls that carry no authenticated user.
func requireCaller(userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// notify publishes a ledger event after a committed mutation. Failures are logged only.
func (s *BaseService) notify(ctx context.Context, kind domain.LedgerEventKind, businessID, entityID string) {
	if s.events == nil {
		return
	}
	event := domain.LedgerEvent{
		BusinessID: businessID,
		Kind:       kind,
		EntityID:   entityID,
		OccurredAt: s.now(),
	}
	if err := s.events.PublishLedgerEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("business_id", businessID),
			slog.String("kind", string(kind)),
			slog.String("entity_id", entityID))
	}
}
