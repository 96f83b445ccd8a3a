package models

// Counterparty represents a row of the counterparties table.
// Balance is stored in minor units.
type Counterparty struct {
	CounterpartyID string `db:"counterparty_id"`
	BusinessID     string `db:"business_id"`
	Role           string `db:"role"`
	Name           string `db:"name"`
	PhoneNumber    string `db:"phone_number"`
	Balance        int64  `db:"balance"`
	AuditFields
}
