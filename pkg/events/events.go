package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"

	CartItemAdded   = "cart.item_added"
	CartItemUpdated = "cart.item_updated"
	CartItemRemoved = "cart.item_removed"
	CartCleared     = "cart.cleared"
)

// Event is one entry in the storefront change feed. Key is the product id
// for catalog events and the session id for cart events, so that all events
// about one entity land on the same partition.
type Event struct {
	EventID   string      `json:"event_id"`
	Type      string      `json:"type"`
	Key       string      `json:"key"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

func New(eventType, key string, payload interface{}) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		Key:       key,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// CartChange is the payload of cart events.
type CartChange struct {
	SessionID   string  `json:"session_id"`
	ItemID      string  `json:"item_id,omitempty"`
	ProductID   string  `json:"product_id,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}
