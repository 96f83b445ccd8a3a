package models

// Business represents a row of the businesses table.
type Business struct {
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	AuditFields
}
