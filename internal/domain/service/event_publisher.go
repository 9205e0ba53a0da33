package service

import (
	"context"
	"time"
)

// Address event types.
const (
	EventAddressCreated = "address.created"
	EventAddressUpdated = "address.updated"
	EventAddressDeleted = "address.deleted"
)

// AddressEvent describes a change to an address record. Events are emitted
// best-effort after the write succeeds; a publish failure never fails the
// request.
type AddressEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	AddressID  string    `json:"address_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing address change events
// to a message queue.
type EventPublisher interface {
	// PublishAddressEvent publishes an address change event for async consumers.
	PublishAddressEvent(ctx context.Context, event *AddressEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
