package domain

import "time"

// LedgerEventKind names the mutation that produced a LedgerEvent.
type LedgerEventKind string

const (
	EventBusinessCreated     LedgerEventKind = "BUSINESS_CREATED"
	EventBusinessUpdated     LedgerEventKind = "BUSINESS_UPDATED"
	EventBusinessDeleted     LedgerEventKind = "BUSINESS_DELETED"
	EventCounterpartyCreated LedgerEventKind = "COUNTERPARTY_CREATED"
	EventCounterpartyUpdated LedgerEventKind = "COUNTERPARTY_UPDATED"
	EventCounterpartyDeleted LedgerEventKind = "COUNTERPARTY_DELETED"
	EventTransactionCreated  LedgerEventKind = "TRANSACTION_CREATED"
	EventTransactionUpdated  LedgerEventKind = "TRANSACTION_UPDATED"
	EventTransactionDeleted  LedgerEventKind = "TRANSACTION_DELETED"
)

// LedgerEvent is emitted after a mutation of a business commits.
type LedgerEvent struct {
	BusinessID string          `json:"businessId"`
	Kind       LedgerEventKind `json:"kind"`
	EntityID   string          `json:"entityId"`
	OccurredAt time.Time       `json:"occurredAt"`
}
