package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
)

// LedgerEventMessage is the wire form of a committed ledger mutation. It carries
// identifiers only; consumers reload whatever state they need.
type LedgerEventMessage struct {
	BusinessID string                 `json:"businessId"`
	Kind       domain.LedgerEventKind `json:"kind"`
	EntityID   string                 `json:"entityId"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// NewLedgerEventMessage builds the message for event.
func NewLedgerEventMessage(event domain.LedgerEvent) *LedgerEventMessage {
	return &LedgerEventMessage{
		BusinessID: event.BusinessID,
		Kind:       event.Kind,
		EntityID:   event.EntityID,
		OccurredAt: event.OccurredAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Event converts the message back into a domain event.
func (m *LedgerEventMessage) Event() domain.LedgerEvent {
	return domain.LedgerEvent{
		BusinessID: m.BusinessID,
		Kind:       m.Kind,
		EntityID:   m.EntityID,
		OccurredAt: m.OccurredAt,
	}
}

// LedgerEventMessageFromJSON decodes a message and rejects one without a business id.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.BusinessID == "" {
		return nil, errors.New("ledger event without businessId")
	}
	return &msg, nil
}
