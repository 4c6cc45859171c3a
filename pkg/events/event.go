package events

import "time"

// Event codes published on the bus.
const (
	TypeOrderCreated   = "ORDER_CREATED"
	TypeProductCreated = "PRODUCT_CREATED"
	TypeProductDeleted = "PRODUCT_DELETED"
	TypeSessionStarted = "SESSION_STARTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ORDER_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation the publishers and subscribers use.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewOrderCreated is emitted when a purchase intent turns into an order
// handed to the payment service.
func NewOrderCreated(sessionID, userID, productID, productName string, amount float64, currency string) Event {
	return BaseEvent{
		Type: TypeOrderCreated,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"user_id":      userID,
			"product_id":   productID,
			"product_name": productName,
			"amount":       amount,
			"currency":     currency,
		},
		OccurredAt: time.Now(),
	}
}

// NewProductCreated is emitted after a catalog entry is stored, so the
// embedding pipeline can pick it up asynchronously.
func NewProductCreated(productID string) Event {
	return BaseEvent{
		Type:       TypeProductCreated,
		Data:       map[string]interface{}{"product_id": productID},
		OccurredAt: time.Now(),
	}
}

func NewProductDeleted(productID string) Event {
	return BaseEvent{
		Type:       TypeProductDeleted,
		Data:       map[string]interface{}{"product_id": productID},
		OccurredAt: time.Now(),
	}
}

func NewSessionStarted(sessionID, userID string) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now(),
	}
}
