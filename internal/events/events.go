// Package events publishes kiosk order events to the message broker.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Broker naming.
const (
	EventsExchange        = "kiosk.events"
	OrderPlacedRoutingKey = "order.placed.v1"
	OrderPlacedEventName  = "OrderPlaced"
	OrderPlacedVersion    = 1
	producerName          = "kiosk-api"
	orderPlacedSchema     = "kiosk/order.placed/v1"
)

// Publisher emits domain events.
type Publisher interface {
	// PublishOrderPlaced announces a checked-out cart.
	PublishOrderPlaced(ctx context.Context, event OrderPlaced, meta Metadata) error

	// Close releases broker resources.
	Close() error
}

// Envelope is the common wrapper of every published event.
type Envelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// Metadata carries request context into the envelope.
type Metadata struct {
	CorrelationID string
}

// OrderPlaced is emitted once per checked-out kiosk session.
type OrderPlaced struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	SessionID   string          `json:"sessionId"`
	Total       decimal.Decimal `json:"total"`
	Items       []OrderLine     `json:"items"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// OrderLine is one cart line of an OrderPlaced event.
type OrderLine struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
	Selections []Selection     `json:"selections,omitempty"`
}

// Selection is a chosen combo item.
type Selection struct {
	GroupName string `json:"groupName"`
	ItemKey   string `json:"itemKey"`
	Quantity  int    `json:"quantity"`
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderPlaced(context.Context, OrderPlaced, Metadata) error { return nil }

func (nopPublisher) Close() error { return nil }
