package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/google/uuid"
)

// businessService implements portssvc.BusinessSvcFacade
type businessService struct {
	BaseService
	cascade *CascadeManager
}

// Ensure businessService implements the BusinessSvcFacade interface
var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

func (s *businessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, userID string) (*domain.Business, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}
	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	business := domain.Business{
		BusinessID:  uuid.NewString(),
		Name:        name,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.store.SaveBusiness(ctx, business); err != nil {
		s.LogError(ctx, err, "Failed to save business", slog.String("business_id", business.BusinessID))
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	s.notify(ctx, domain.EventBusinessCreated, business.BusinessID, business.BusinessID)
	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID))
	return &business, nil
}

func (s *businessService) GetBusiness(ctx context.Context, businessID string, userID string) (*domain.Business, error) {
	return s.AuthorizeBusiness(ctx, businessID, userID)
}

func (s *businessService) ListBusinesses(ctx context.Context, userID string) ([]domain.Business, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}
	businesses, err := s.store.ListBusinessesByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list businesses")
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	if businesses == nil {
		return []domain.Business{}, nil
	}
	return businesses, nil
}

func (s *businessService) UpdateBusiness(ctx context.Context, businessID string, req dto.UpdateBusinessRequest, userID string) (*domain.Business, error) {
	business, err := s.AuthorizeBusiness(ctx, businessID, userID)
	if err != nil {
		return nil, err
	}
	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	business.Name = name
	business.Touch(userID, s.now())
	if err := s.store.UpdateBusiness(ctx, *business); err != nil {
		s.logUnexpected(ctx, err, "Failed to update business", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to update business: %w", err)
	}

	s.notify(ctx, domain.EventBusinessUpdated, businessID, businessID)
	s.LogInfo(ctx, "Business renamed", slog.String("business_id", businessID))
	return business, nil
}

func (s *businessService) DeleteBusiness(ctx context.Context, businessID string, userID string) error {
	if _, err := s.AuthorizeBusiness(ctx, businessID, userID); err != nil {
		return err
	}

	if err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return s.cascade.DeleteBusiness(ctx, repo, businessID)
	}); err != nil {
		s.logUnexpected(ctx, err, "Failed to delete business", slog.String("business_id", businessID))
		return err
	}

	s.notify(ctx, domain.EventBusinessDeleted, businessID, businessID)
	s.LogInfo(ctx, "Business deleted", slog.String("business_id", businessID))
	return nil
}
