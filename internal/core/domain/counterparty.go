package domain

import (
	"strings"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
)

// CounterpartyRole distinguishes customers from suppliers. Both share one shape.
type CounterpartyRole string

const (
	RoleCustomer CounterpartyRole = "CUSTOMER"
	RoleSupplier CounterpartyRole = "SUPPLIER"
)

// IsValid reports whether r is a known role.
func (r CounterpartyRole) IsValid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

const phoneDigits = 10

// Counterparty is a customer or supplier of a business.
//
// Balance is derived state: it always equals the sum of SignedAmount over the
// counterparty's transactions. Positive means the counterparty owes the
// business, negative means the business owes the counterparty. It is only
// changed by the balance maintainer.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"`
	BusinessID     string           `json:"businessID"`
	Role           CounterpartyRole `json:"role"`
	Name           string           `json:"name"`
	PhoneNumber    string           `json:"phoneNumber"`
	Balance        Money            `json:"balance"`
	AuditFields
}

// NormalizePhoneNumber trims the phone number and requires exactly 10 digits.
func NormalizePhoneNumber(phone string) (string, error) {
	trimmed := strings.TrimSpace(phone)
	if !IsPhoneNumber(trimmed) {
		return "", apperrors.NewValidationError("phoneNumber", "phone number must be exactly 10 digits")
	}
	return trimmed, nil
}

// IsPhoneNumber reports whether s consists of exactly 10 ASCII digits.
func IsPhoneNumber(s string) bool {
	if len(s) != phoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MatchesSearch reports whether the case-insensitive search text occurs in the name or phone number.
func (c Counterparty) MatchesSearch(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Name), needle) || strings.Contains(c.PhoneNumber, needle)
}
