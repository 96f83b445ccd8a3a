package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// Business is the root scoping unit. Counterparties and transactions belong to exactly one business.
type Business struct {
	BusinessID string `json:"businessID"`
	Name       string `json:"name"`
	AuditFields
}

// NormalizeName trims a business or counterparty name and checks its length.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	if n < minNameLength {
		return "", apperrors.NewValidationError("name", "name must be at least 2 characters")
	}
	if n > maxNameLength {
		return "", apperrors.NewValidationError("name", "name must be at most 100 characters")
	}
	return trimmed, nil
}
