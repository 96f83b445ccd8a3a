package dto

import (
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
)

// CreateBusinessRequest defines the data needed to create a business.
type CreateBusinessRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateBusinessRequest renames a business. Name is the only mutable field.
type UpdateBusinessRequest struct {
	Name string `json:"name" binding:"required"`
}

// BusinessResponse defines the data returned for a business.
type BusinessResponse struct {
	BusinessID    string    `json:"businessId"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListBusinessesResponse wraps a list of businesses.
type ListBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// ToBusinessResponse converts a domain.Business to BusinessResponse DTO
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:    b.BusinessID,
		Name:          b.Name,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
}

// ToListBusinessesResponse converts a slice of domain.Business to ListBusinessesResponse
func ToListBusinessesResponse(businesses []domain.Business) ListBusinessesResponse {
	res := make([]BusinessResponse, len(businesses))
	for i := range businesses {
		res[i] = ToBusinessResponse(&businesses[i])
	}
	return ListBusinessesResponse{Businesses: res}
}
