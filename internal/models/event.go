package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a customer directory change
type EventType string

const (
	EventCustomerCreated EventType = "customer.created"
	EventCustomerUpdated EventType = "customer.updated"
	EventCustomerDeleted EventType = "customer.deleted"
	EventAddressCreated  EventType = "address.created"
	EventAddressUpdated  EventType = "address.updated"
	EventAddressDeleted  EventType = "address.deleted"
)

// CustomerEvent records a mutation of a customer or one of its addresses
type CustomerEvent struct {
	ID         string          `json:"id" db:"id"`
	Type       EventType       `json:"type" db:"type"`
	CustomerID int             `json:"customer_id" db:"customer_id"`
	AddressID  *int            `json:"address_id,omitempty" db:"address_id"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty" db:"payload"`
}

// NewCustomerEvent builds an event with a fresh id. A payload that cannot be
// marshalled is dropped rather than failing the mutation that produced it.
func NewCustomerEvent(eventType EventType, customerID int, addressID *int, payload interface{}) *CustomerEvent {
	event := &CustomerEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		CustomerID: customerID,
		AddressID:  addressID,
		OccurredAt: time.Now().UTC(),
	}

	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			event.Payload = raw
		}
	}

	return event
}

// IsValid checks the event carries an id and a known type
func (e *CustomerEvent) IsValid() bool {
	if _, err := uuid.Parse(e.ID); err != nil {
		return false
	}
	switch e.Type {
	case EventCustomerCreated, EventCustomerUpdated, EventCustomerDeleted,
		EventAddressCreated, EventAddressUpdated, EventAddressDeleted:
		return true
	}
	return false
}
